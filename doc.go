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

// Package lake is a linear (bump) memory arena.
//
// A [Lake] is a preallocated byte buffer with a single advancing offset.
// Allocating from it is just bumping that offset; there is no per-object
// free. Reclamation is coarse: [Lake.Reset] wipes the whole arena and bumps
// a generation counter, [Lake.Rewind] jumps back to a [Snapshot], and
// [Lake.Mark]/[Lake.ResetToMark] support nested scoped rewinds.
//
// Handles carved from a Lake ([Droplet], [DropletDyn]) capture the arena's
// generation at the time of allocation. [Droplet.IsValid] compares that
// generation, and the captured end offset, against the arena's current
// state, so a handle that survives past a [Lake.Reset] (or a rewind that
// passes below it) is detected rather than silently read as garbage.
//
// [LakeView] partitions a parent arena's remaining tail into an
// independent child arena with its own offset, mark stack, and
// generation. [SandboxGuard] (via [Sandbox]) is a scoped borrow that rolls
// an arena back to its entry offset unless explicitly committed.
//
// None of this is safe in the way ordinary Go code is safe: a Lake is not
// safe for concurrent use, and nothing stops a caller from holding a
// Droplet past a Reset and reading through it anyway (see
// [Droplet.IsValid] for the one check this package does perform). The
// concurrency model is one Lake per goroutine; see [Local] for a
// goroutine-local registry that enforces this structurally.
package lake
