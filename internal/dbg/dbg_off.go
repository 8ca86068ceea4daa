// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build !lake_debug

package dbg

// Enabled is false outside of -tags lake_debug builds; Log and Assert below
// are cheap enough that the compiler inlines them away entirely.
const Enabled = false

// Log is a no-op outside debug builds.
func Log([]any, string, string, ...any) {}

// Assert is a no-op outside debug builds.
func Assert(bool, string, ...any) {}
