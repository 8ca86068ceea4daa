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

import "unsafe"

// AllocStruct allocates space for one T, aligned to T's natural
// alignment, and returns a pointer into the arena.
//
// This differs from [AllocFixed] in that it inserts padding so the
// returned pointer is properly aligned for T; AllocFixed hands back raw,
// unaligned bytes. Unlike AllocFixed, this is out-of-contract use if the
// arena does not have room: it panics with a [MisuseError] rather than
// returning a recoverable [OverflowError], the same as the source
// arena's alloc_struct.
func AllocStruct[T any](a arena) *T {
	var zero T
	align := int(unsafe.Alignof(zero))
	size := int(unsafe.Sizeof(zero))

	padTo(a, align, "AllocStruct")
	buf := allocOrPanic(a, size, "AllocStruct")
	if size == 0 {
		return new(T)
	}
	return (*T)(unsafe.Pointer(&buf[0]))
}

// AllocSlice allocates space for count contiguous Ts, aligned to T's
// natural alignment, and returns a slice into the arena. Like
// AllocStruct, overflow is out-of-contract use and panics with a
// [MisuseError].
func AllocSlice[T any](a arena, count int) []T {
	var zero T
	align := int(unsafe.Alignof(zero))
	size := int(unsafe.Sizeof(zero)) * count

	padTo(a, align, "AllocSlice")
	buf := allocOrPanic(a, size, "AllocSlice")
	if count == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&buf[0])), count)
}

// padTo consumes whatever padding bytes are needed to bring a's offset
// up to the next multiple of align, panicking on overflow.
func padTo(a arena, align int, op string) {
	cur := a.Offset()
	aligned := AlignUp(cur, align)
	if pad := aligned - cur; pad > 0 {
		allocOrPanic(a, pad, op)
	}
}

// allocOrPanic allocates n raw bytes, converting the arena's recoverable
// overflow error into a fatal MisuseError: AllocStruct/AllocSlice are a
// different contract from AllocRaw/AllocFixed, where overflow is
// expected and handled by the caller.
func allocOrPanic(a arena, n int, op string) []byte {
	buf, err := a.AllocRaw(n)
	if err != nil {
		misuse(op, "%s", err)
	}
	return buf
}
