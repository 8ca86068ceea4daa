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

// Meta is the read/write capability every arena (a [Lake] or a
// [LakeView]) exposes. Droplets hold a back-reference typed as Meta
// rather than as a concrete arena type, so a [Droplet] or [DropletDyn]
// can be carved from either kind of arena without knowing which.
type Meta interface {
	// Offset returns the arena's current offset.
	Offset() int
	// SetOffset overwrites the arena's offset directly. Used by
	// [SandboxGuard] to roll back or commit; callers outside this
	// package should prefer Rewind/ResetToMark/Reset.
	SetOffset(int)
	// Generation returns the arena's current generation counter.
	Generation() uint64
	// Capacity returns the arena's total capacity in bytes.
	Capacity() int
	// Stats summarizes the arena's current usage.
	Stats() Stats
}

// Stats is a snapshot of an arena's usage.
type Stats struct {
	Used       int
	Remaining  int
	Capacity   int
	Generation uint64
}

func statsOf(m Meta) Stats {
	used := m.Offset()
	return Stats{
		Used:       used,
		Remaining:  m.Capacity() - used,
		Capacity:   m.Capacity(),
		Generation: m.Generation(),
	}
}
