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

// DropletDyn is a dynamically sized droplet, the kind [Lake.Process]
// hands back. Unlike [Droplet], its length is only known at runtime, so
// it carries its own slice header rather than being sized by a type
// parameter.
type DropletDyn struct {
	data       []byte
	end        int
	generation uint64
	lake       Meta
}

// IsValid reports whether this droplet's arena is still on the
// generation it was allocated under, and has not been rewound below the
// end of this allocation.
func (d DropletDyn) IsValid() bool {
	return d.lake.Generation() == d.generation && d.lake.Offset() >= d.end
}

// guard panics with a MisuseError if the droplet is no longer valid.
// Every typed reinterpretation of a DropletDyn's bytes passes through
// this, unconditionally, in every build; only the plain byte-slice read
// in Bytes gets the cheaper, debug-build-only check.
func (d DropletDyn) guard(op string) {
	if !d.IsValid() {
		misuse(op, "droplet is no longer valid (arena was reset or rewound past it)")
	}
}

// Len returns the number of bytes this droplet covers.
func (d DropletDyn) Len() int { return len(d.data) }

// Bytes returns the droplet's backing memory as a byte slice.
func (d DropletDyn) Bytes() []byte {
	dbg.Assert(d.IsValid(), "DropletDyn read after arena reset/rewind")
	return d.data
}

// Lake returns the arena this droplet was allocated from.
func (d DropletDyn) Lake() Meta { return d.lake }

// DropletDynDeserialize reinterprets a DropletDyn's bytes as a *U, as
// long as U fits within the droplet's length. It panics if the droplet
// is no longer valid.
func DropletDynDeserialize[U any](d DropletDyn) (*U, bool) {
	var zero U
	if len(d.data) < int(unsafe.Sizeof(zero)) {
		return nil, false
	}
	d.guard("DropletDynDeserialize")
	return (*U)(unsafe.Pointer(&d.data[0])), true
}

// DropletDynDeserializeSlice reinterprets a DropletDyn's bytes as a []U,
// as long as U's size is non-zero and the droplet's length is an exact
// multiple of it; a zero-length droplet yields a nil slice and true. It
// panics if the droplet is no longer valid.
func DropletDynDeserializeSlice[U any](d DropletDyn) ([]U, bool) {
	size := int(unsafe.Sizeof(*new(U)))
	if size == 0 || len(d.data)%size != 0 {
		return nil, false
	}
	d.guard("DropletDynDeserializeSlice")
	if len(d.data) == 0 {
		return nil, true
	}
	return unsafe.Slice((*U)(unsafe.Pointer(&d.data[0])), len(d.data)/size), true
}

// DropletDynAsSliceOf reinterprets a DropletDyn's bytes as a []U,
// requiring both that the droplet's length divides evenly by U's size
// and that the droplet's backing address is itself aligned for U. It
// reports false if either does not hold, and panics if the droplet is
// no longer valid.
func DropletDynAsSliceOf[U any](d DropletDyn) ([]U, bool) {
	size := int(unsafe.Sizeof(*new(U)))
	if size == 0 || len(d.data)%size != 0 {
		return nil, false
	}
	if len(d.data) == 0 {
		d.guard("DropletDynAsSliceOf")
		return nil, true
	}
	ptr := unsafe.Pointer(&d.data[0])
	if uintptr(ptr)%unsafe.Alignof(*new(U)) != 0 {
		return nil, false
	}
	d.guard("DropletDynAsSliceOf")
	return unsafe.Slice((*U)(ptr), len(d.data)/size), true
}
