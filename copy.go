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

// WriteTo copies len(src) bytes from src to dst.
//
// src and dst must not overlap; the arena never calls this in a way that
// would alias them, since every destination is either past the arena's
// current offset or freshly split off of it. The Go runtime's copy
// builtin already lowers to a single memmove call, which is
// architecture-tuned (including a wide vectorized path) the same way the
// source implementation's dedicated 1024-byte fast path was; there is no
// separate hand-rolled path to carry forward here.
func WriteTo(dst, src []byte) {
	if len(dst) < len(src) {
		misuse("WriteTo", "dst has %d bytes, need %d", len(dst), len(src))
	}
	copy(dst, src)
}
