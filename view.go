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

// LakeView is a sub-arena carved from a parent [Lake] (or another
// LakeView) by [Lake.Split]. It behaves exactly like a Lake — its own
// offset, mark stack, and generation counter — but its backing bytes are
// borrowed from the parent's tail rather than separately allocated.
//
// A LakeView holds a back-pointer to the arena it was split from. Go has
// no borrow checker, so that pointer cannot enforce that the view does
// not outlive its parent's backing buffer the way the source
// implementation's lifetime parameter did; it exists only for
// [LakeView.Parent]. The real safety property — don't keep using
// a view after its parent's buffer has been reallocated or discarded — is
// a caller contract, the same as it is for any slice taken from a Lake.
type LakeView struct {
	buf        []byte
	offset     int
	markStack  []int
	generation uint64
	zeroing    bool
	parent     Meta
}

// Parent returns the arena this view was split from.
func (v *LakeView) Parent() Meta { return v.parent }

// Offset implements [Meta].
func (v *LakeView) Offset() int { return v.offset }

// SetOffset implements [Meta].
func (v *LakeView) SetOffset(off int) { v.offset = off }

// Generation implements [Meta].
func (v *LakeView) Generation() uint64 { return v.generation }

// Capacity implements [Meta].
func (v *LakeView) Capacity() int { return len(v.buf) }

// Stats implements [Meta].
func (v *LakeView) Stats() Stats { return statsOf(v) }

// Used returns the number of bytes currently allocated within this view.
func (v *LakeView) Used() int { return v.offset }

// Remaining returns the number of bytes left before this view overflows.
func (v *LakeView) Remaining() int { return len(v.buf) - v.offset }

// SetZeroing toggles whether Reset zeroes the bytes it reclaims.
func (v *LakeView) SetZeroing(z bool) { v.zeroing = z }

// Zeroing reports whether Reset zeroes reclaimed bytes.
func (v *LakeView) Zeroing() bool { return v.zeroing }

// Mark pushes the view's current offset onto its own mark stack.
func (v *LakeView) Mark() {
	v.markStack = append(v.markStack, v.offset)
}

// ResetToMark pops the view's most recently pushed mark and rewinds to
// it. It is a no-op if the view's mark stack is empty.
func (v *LakeView) ResetToMark() {
	if n := len(v.markStack); n > 0 {
		v.offset = v.markStack[n-1]
		v.markStack = v.markStack[:n-1]
	}
}

// MoveMark overwrites the view's most recently pushed mark with its
// current offset.
func (v *LakeView) MoveMark() {
	if n := len(v.markStack); n > 0 {
		v.markStack[n-1] = v.offset
	}
}

// Reset wipes the view back to empty, clears its mark stack, and bumps
// its own generation counter. This does not affect the parent arena: the
// bytes the view was split from remain consumed from the parent's
// perspective until the parent itself is reset.
func (v *LakeView) Reset() {
	if v.zeroing {
		clear(v.buf[:v.offset])
	}
	v.offset = 0
	v.markStack = v.markStack[:0]
	v.generation++
}

// Clear is an alias for Reset.
func (v *LakeView) Clear() { v.Reset() }

// AllocRaw allocates n raw, unaligned bytes from the view.
func (v *LakeView) AllocRaw(n int) ([]byte, error) {
	if v.offset+n > len(v.buf) {
		return nil, overflow("AllocRaw", n, v.Remaining(), len(v.buf))
	}
	start := v.offset
	v.offset += n
	return v.buf[start:v.offset:v.offset], nil
}

// Process invokes f with the number of bytes currently remaining in the
// view, copies the []byte it returns into the view, and hands back a
// [DropletDyn] over the copy.
func (v *LakeView) Process(f func(remaining int) []byte) (DropletDyn, error) {
	remaining := len(v.buf) - v.offset
	if remaining == 0 {
		return DropletDyn{}, overflow("Process", 0, 0, len(v.buf))
	}

	offset := v.offset
	generation := v.generation
	data := f(remaining)
	if len(data) > remaining {
		return DropletDyn{}, overflow("Process", len(data), remaining, len(v.buf))
	}

	dst := v.buf[offset : offset+len(data)]
	WriteTo(dst, data)
	v.offset += len(data)

	return DropletDyn{
		data:       dst,
		end:        v.offset,
		lake:       v,
		generation: generation,
	}, nil
}

// Split forks this view into a sub-view over the next n bytes of its own
// remaining tail — a tributary of a tributary.
func (v *LakeView) Split(n int) (*LakeView, error) {
	if v.offset+n > len(v.buf) {
		return nil, overflow("Split", n, v.Remaining(), len(v.buf))
	}
	child := &LakeView{
		buf:     v.buf[v.offset : v.offset+n : v.offset+n],
		zeroing: v.zeroing,
		parent:  v,
	}
	v.offset += n
	return child, nil
}
