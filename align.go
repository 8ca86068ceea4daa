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

package lake

// AlignUp rounds offset up to the nearest multiple of align.
//
// align must be a power of two; passing anything else is a usage error
// and panics with a [MisuseError], matching the fatal-precondition
// treatment the rest of this package gives to low-level primitives.
func AlignUp(offset, align int) int {
	if align <= 0 || align&(align-1) != 0 {
		misuse("AlignUp", "alignment %d is not a power of two", align)
	}
	return (offset + align - 1) &^ (align - 1)
}
