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

import (
	"unsafe"

	"github.com/lakearena/lake/internal/dbg"
)

// arena is the allocation capability both [Lake] and [LakeView] provide.
// Droplet constructors take one of these so they work over either.
type arena interface {
	Meta
	AllocRaw(n int) ([]byte, error)
}

// Droplet is a fixed-size memory fragment allocated from an arena, sized
// to exactly fit T.
//
// It holds a raw pointer into the arena's buffer and a back-reference to
// the arena it came from, so [Droplet.IsValid] can detect whether the
// arena has since been reset (or rewound past this droplet) without the
// droplet itself doing anything to stop it: a Droplet does not own the
// memory it points to, it just borrows a view into the arena for as long
// as the caller respects IsValid.
type Droplet[T any] struct {
	ptr        unsafe.Pointer
	end        int
	cursor     int
	lake       Meta
	generation uint64
}

// AllocFixed allocates a Droplet sized to hold exactly one T from the
// given arena. The allocation is unaligned raw bytes, the same as the
// source arena's fixed-size droplets; use [AllocStruct] if T's alignment
// matters.
func AllocFixed[T any](a arena) (Droplet[T], error) {
	var zero T
	n := int(unsafe.Sizeof(zero))
	buf, err := a.AllocRaw(n)
	if err != nil {
		return Droplet[T]{}, err
	}
	return newDroplet[T](a, buf), nil
}

func newDroplet[T any](a arena, buf []byte) Droplet[T] {
	var ptr unsafe.Pointer
	if len(buf) > 0 {
		ptr = unsafe.Pointer(&buf[0])
	}
	return Droplet[T]{
		ptr:        ptr,
		end:        a.Offset(),
		lake:       a,
		generation: a.Generation(),
	}
}

// IsValid reports whether this droplet's arena is still on the
// generation it was allocated under, and has not been rewound below the
// end of this allocation. It is the one safety check this package
// performs; nothing stops a caller from reading through an invalid
// droplet anyway; they are just no longer guaranteed to see what they
// wrote.
func (d Droplet[T]) IsValid() bool {
	return d.lake.Generation() == d.generation && d.lake.Offset() >= d.end
}

// guard panics with a MisuseError if the droplet is no longer valid.
// Every mutation and every typed reinterpretation of a droplet's bytes
// passes through this, unconditionally, in every build: once an arena
// has moved past a droplet there is no guarantee anything still lives
// at that address, let alone a well-formed T. Only the plain
// byte-slice read in Bytes gets the cheaper, debug-build-only check.
func (d Droplet[T]) guard(op string) {
	if !d.IsValid() {
		misuse(op, "droplet is no longer valid (arena was reset or rewound past it)")
	}
}

// Bytes returns the droplet's backing memory as a byte slice.
func (d Droplet[T]) Bytes() []byte {
	dbg.Assert(d.IsValid(), "Droplet[%T] read after arena reset/rewind", *new(T))
	var zero T
	n := int(unsafe.Sizeof(zero))
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(d.ptr), n)
}

// Ptr returns a pointer to the droplet's T, for in-place reads and
// writes.
func (d Droplet[T]) Ptr() *T {
	d.guard("Droplet.Ptr")
	return (*T)(d.ptr)
}

// Lake returns the arena this droplet was allocated from.
func (d Droplet[T]) Lake() Meta { return d.lake }

// DropletDeserialize reinterprets a Droplet's bytes as a *U, as long as U
// is no larger than the droplet's own T. It reports false if U does not
// fit, and panics if the droplet is no longer valid.
func DropletDeserialize[T, U any](d Droplet[T]) (*U, bool) {
	var zero U
	if int(unsafe.Sizeof(zero)) > int(unsafe.Sizeof(*new(T))) {
		return nil, false
	}
	d.guard("DropletDeserialize")
	return (*U)(d.ptr), true
}

// DropletDeserializeSlice reinterprets a Droplet's bytes as a []U, as
// long as T's size is an exact multiple of U's. It reports false if it
// does not divide evenly, and panics if the droplet is no longer valid.
func DropletDeserializeSlice[T, U any](d Droplet[T]) ([]U, bool) {
	sizeT := int(unsafe.Sizeof(*new(T)))
	sizeU := int(unsafe.Sizeof(*new(U)))
	if sizeU == 0 || sizeT%sizeU != 0 {
		return nil, false
	}
	d.guard("DropletDeserializeSlice")
	return unsafe.Slice((*U)(d.ptr), sizeT/sizeU), true
}

// DropletAsSliceOf reinterprets a Droplet's bytes as a []U, requiring
// both that T's size divides evenly by U's and that the droplet's
// backing address is itself aligned for U. It reports false if either
// does not hold, and panics if the droplet is no longer valid.
func DropletAsSliceOf[T, U any](d Droplet[T]) ([]U, bool) {
	sizeT := int(unsafe.Sizeof(*new(T)))
	sizeU := int(unsafe.Sizeof(*new(U)))
	if sizeU == 0 || sizeT%sizeU != 0 {
		return nil, false
	}
	if uintptr(d.ptr)%unsafe.Alignof(*new(U)) != 0 {
		return nil, false
	}
	d.guard("DropletAsSliceOf")
	return unsafe.Slice((*U)(d.ptr), sizeT/sizeU), true
}

// Write appends len(src) raw bytes to the droplet's internal write
// cursor, advancing it. It panics with a [MisuseError] if src does not
// fit in the remaining space, or if the droplet is no longer valid.
func (d *Droplet[T]) Write(src []byte) {
	d.guard("Droplet.Write")
	buf := d.bytesUnchecked()
	remaining := len(buf) - d.cursor
	if len(src) > remaining {
		misuse("Droplet.Write", "writing %d bytes, only %d remain of %d", len(src), remaining, len(buf))
	}
	WriteTo(buf[d.cursor:d.cursor+len(src)], src)
	d.cursor += len(src)
}

// WriteByte appends a single byte at the write cursor. It panics with a
// [MisuseError] if no space remains, or if the droplet is no longer
// valid.
func (d *Droplet[T]) WriteByte(c byte) {
	d.guard("Droplet.WriteByte")
	buf := d.bytesUnchecked()
	if d.cursor >= len(buf) {
		misuse("Droplet.WriteByte", "no space remains of %d", len(buf))
	}
	buf[d.cursor] = c
	d.cursor++
}

// WriteDecimal appends the decimal ASCII representation of value at the
// write cursor, advancing it by the number of digits written. It panics
// with a [MisuseError] if the droplet is no longer valid.
func (d *Droplet[T]) WriteDecimal(value uint64) {
	var tmp [20]byte
	curr := len(tmp)
	for value >= 10 {
		curr--
		tmp[curr] = byte(value%10) + '0'
		value /= 10
	}
	curr--
	tmp[curr] = byte(value) + '0'
	d.Write(tmp[curr:])
}

// WriteDecimalFixedWidth appends the decimal ASCII representation of
// value, left-padded with '0' to exactly width digits, advancing the
// cursor by width. It panics with a [MisuseError] if value does not fit
// in width digits, if width does not fit in the remaining space, or if
// the droplet is no longer valid.
func (d *Droplet[T]) WriteDecimalFixedWidth(value uint64, width int) {
	d.guard("Droplet.WriteDecimalFixedWidth")
	buf := d.bytesUnchecked()
	remaining := len(buf) - d.cursor
	if width > remaining {
		misuse("Droplet.WriteDecimalFixedWidth", "writing %d digits, only %d remain of %d", width, remaining, len(buf))
	}
	dst := buf[d.cursor : d.cursor+width]
	rest := value
	for i := width - 1; i >= 0; i-- {
		dst[i] = byte(rest%10) + '0'
		rest /= 10
	}
	if rest != 0 {
		misuse("Droplet.WriteDecimalFixedWidth", "value %d does not fit in %d digits", value, width)
	}
	d.cursor += width
}

// bytesUnchecked returns the droplet's backing memory without
// re-checking validity, for callers that have already called guard.
func (d Droplet[T]) bytesUnchecked() []byte {
	var zero T
	n := int(unsafe.Sizeof(zero))
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(d.ptr), n)
}
