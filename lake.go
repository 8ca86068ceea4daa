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

import "github.com/lakearena/lake/internal/dbg"

// Lake is a preallocated byte arena with a single advancing offset.
//
// Allocating from a Lake is bumping that offset forward; nothing is ever
// freed individually. [Lake.Reset] is the coarse way back to empty,
// [Lake.Mark] and [Lake.ResetToMark] support nested scoped rewinds, and
// [Lake.Snapshot]/[Lake.Rewind] support a single saved rewind point that
// lives independently of the mark stack.
//
// A Lake is not safe for concurrent use; see [Local] for the intended
// one-arena-per-goroutine model.
type Lake struct {
	buf        []byte
	offset     int
	markStack  []int
	generation uint64
	zeroing    bool
	name       string
}

// New allocates a Lake with the given capacity in bytes.
func New(capacity int, opts ...Option) *Lake {
	cfg := newConfig(opts)
	l := &Lake{
		buf:       make([]byte, capacity),
		markStack: make([]int, 0, cfg.markStackHint),
		zeroing:   cfg.zeroing,
		name:      cfg.name,
	}
	dbg.Log([]any{"lake %s", l.name}, "New", "capacity=%d zeroing=%v", capacity, l.zeroing)
	return l
}

// Offset implements [Meta].
func (l *Lake) Offset() int { return l.offset }

// SetOffset implements [Meta]. Used internally by [SandboxGuard]; callers
// should prefer Rewind, ResetToMark, or Reset.
func (l *Lake) SetOffset(off int) { l.offset = off }

// Generation implements [Meta].
func (l *Lake) Generation() uint64 { return l.generation }

// Capacity implements [Meta].
func (l *Lake) Capacity() int { return len(l.buf) }

// Stats implements [Meta].
func (l *Lake) Stats() Stats { return statsOf(l) }

// Name returns the name this Lake was constructed with (see [WithName]),
// used only to tag its debug log lines.
func (l *Lake) Name() string { return l.name }

// Used returns the number of bytes currently allocated.
func (l *Lake) Used() int { return l.offset }

// Remaining returns the number of bytes left before the arena overflows.
func (l *Lake) Remaining() int { return len(l.buf) - l.offset }

// IsEmpty reports whether nothing has been allocated since the last Reset.
func (l *Lake) IsEmpty() bool { return l.offset == 0 }

// IsFull reports whether the arena has no remaining capacity.
func (l *Lake) IsFull() bool { return l.offset == len(l.buf) }

// SetZeroing toggles whether Reset zeroes the bytes it reclaims.
// ResetToMark, Rewind, and ResetTo never zero.
func (l *Lake) SetZeroing(z bool) { l.zeroing = z }

// Zeroing reports whether Reset zeroes reclaimed bytes.
func (l *Lake) Zeroing() bool { return l.zeroing }

// Snapshot is a saved offset that [Lake.Rewind] can jump back to. Unlike
// the mark stack, a Snapshot is a single independent value: taking a new
// one does not invalidate an older one, and rewinding does not pop
// anything.
type Snapshot struct {
	offset int
}

// Snapshot captures the arena's current offset.
func (l *Lake) Snapshot() Snapshot { return Snapshot{offset: l.offset} }

// Rewind jumps the arena's offset back to a previously captured Snapshot.
//
// This does not touch the mark stack or the generation counter. A
// droplet whose end lies above the rewound offset reports invalid by
// IsValid's check; since the generation is unchanged, it reports valid
// again once later allocations advance the offset back past its end,
// even though those allocations reuse its bytes.
func (l *Lake) Rewind(s Snapshot) {
	l.offset = s.offset
	dbg.Log(nil, "Rewind", "offset=%d", l.offset)
}

// Mark pushes the current offset onto the arena's mark stack, to be
// restored later by ResetToMark.
func (l *Lake) Mark() {
	l.markStack = append(l.markStack, l.offset)
}

// ResetToMark pops the most recently pushed mark and rewinds the offset
// to it. It is a no-op if the mark stack is empty.
func (l *Lake) ResetToMark() {
	if n := len(l.markStack); n > 0 {
		l.offset = l.markStack[n-1]
		l.markStack = l.markStack[:n-1]
		dbg.Log(nil, "ResetToMark", "offset=%d", l.offset)
	}
}

// MoveMark overwrites the most recently pushed mark with the current
// offset, without popping it. It is a no-op if the mark stack is empty.
func (l *Lake) MoveMark() {
	if n := len(l.markStack); n > 0 {
		l.markStack[n-1] = l.offset
	}
}

// ResetTo rewinds the offset backward by n bytes, saturating at zero.
// Unlike Rewind, this is not validated against any prior snapshot.
func (l *Lake) ResetTo(n int) {
	if n > l.offset {
		l.offset = 0
		return
	}
	l.offset -= n
}

// Reset wipes the arena back to empty, clears the mark stack, and bumps
// the generation counter so that every droplet allocated before this
// call is reported invalid by IsValid. If [WithZeroing] is set, the
// reclaimed bytes are zeroed first.
func (l *Lake) Reset() {
	if l.zeroing {
		clear(l.buf[:l.offset])
	}
	l.offset = 0
	l.markStack = l.markStack[:0]
	l.generation++
	dbg.Log([]any{"lake %s", l.name}, "Reset", "generation=%d", l.generation)
}

// Clear is an alias for Reset.
func (l *Lake) Clear() { l.Reset() }

// Peek previews the n bytes that the next allocation would return,
// without advancing the offset. It reports an [OverflowError] if n
// bytes are not available.
func (l *Lake) Peek(n int) ([]byte, error) {
	if l.offset+n > len(l.buf) {
		return nil, overflow("Peek", n, l.Remaining(), len(l.buf))
	}
	return l.buf[l.offset : l.offset+n : l.offset+n], nil
}

// AsSlice returns the portion of the arena that has been allocated so
// far, as a read-only view.
func (l *Lake) AsSlice() []byte { return l.buf[:l.offset] }

// AsMutSlice returns the portion of the arena that has been allocated so
// far, as a mutable view.
func (l *Lake) AsMutSlice() []byte { return l.buf[:l.offset] }

// AllocRaw allocates n raw, unaligned bytes and returns them as a slice.
// This is the untyped building block that AllocFixed and the Droplet
// constructors are built on; most callers should prefer those instead.
func (l *Lake) AllocRaw(n int) ([]byte, error) {
	if l.offset+n > len(l.buf) {
		return nil, overflow("AllocRaw", n, l.Remaining(), len(l.buf))
	}
	start := l.offset
	l.offset += n
	return l.buf[start:l.offset:l.offset], nil
}

// Process invokes f with the number of bytes currently remaining in the
// arena, copies the []byte it returns into the arena, and hands back a
// [DropletDyn] over the copy. It reports an [OverflowError], without
// advancing the offset, if f's result does not fit.
//
// This is the escape hatch for producers that don't know their output
// length up front: encoders, compressors, anything that wants to write
// "as much as fits" into the arena in one shot.
func (l *Lake) Process(f func(remaining int) []byte) (DropletDyn, error) {
	remaining := len(l.buf) - l.offset
	if remaining == 0 {
		return DropletDyn{}, overflow("Process", 0, 0, len(l.buf))
	}

	offset := l.offset
	generation := l.generation
	data := f(remaining)
	if len(data) > remaining {
		return DropletDyn{}, overflow("Process", len(data), remaining, len(l.buf))
	}

	dst := l.buf[offset : offset+len(data)]
	WriteTo(dst, data)
	l.offset += len(data)

	dbg.Log([]any{"lake %s", l.name}, "Process", "len=%d offset=%d", len(data), offset)

	return DropletDyn{
		data:       dst,
		end:        l.offset,
		lake:       l,
		generation: generation,
	}, nil
}

// Split carves off the next n bytes of the arena's remaining tail into
// an independent [LakeView] with its own offset, mark stack, and
// generation, and advances this arena's offset past them.
func (l *Lake) Split(n int) (*LakeView, error) {
	if l.offset+n > len(l.buf) {
		return nil, overflow("Split", n, l.Remaining(), len(l.buf))
	}
	view := &LakeView{
		buf:     l.buf[l.offset : l.offset+n : l.offset+n],
		zeroing: l.zeroing,
		parent:  l,
	}
	l.offset += n
	dbg.Log([]any{"lake %s", l.name}, "Split", "len=%d", n)
	return view, nil
}
