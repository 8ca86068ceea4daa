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

package lake_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakearena/lake"
)

func TestAllocFixed(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	d, err := lake.AllocFixed[[8]byte](l)
	require.NoError(t, err)
	assert.True(t, d.IsValid())
	assert.Equal(t, 8, l.Used())

	copy(d.Bytes(), []byte("hi there"))
	assert.Equal(t, []byte("hi there"), d.Bytes())
}

func TestAllocOverflow(t *testing.T) {
	t.Parallel()

	l := lake.New(4)
	_, err := lake.AllocFixed[[8]byte](l)
	require.Error(t, err)

	var overflow *lake.OverflowError
	assert.ErrorAs(t, err, &overflow)
	assert.True(t, errors.Is(err, lake.ErrOverflow))
	assert.Equal(t, 0, l.Used(), "a failed allocation must not advance the offset")
}

func TestResetBumpsGeneration(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	d, err := lake.AllocFixed[[8]byte](l)
	require.NoError(t, err)
	assert.True(t, d.IsValid())

	l.Reset()
	assert.False(t, d.IsValid(), "droplet must be invalid after the arena it came from resets")
	assert.Equal(t, 0, l.Used())
	assert.Equal(t, uint64(1), l.Generation())
}

func TestZeroingOnReset(t *testing.T) {
	t.Parallel()

	l := lake.New(16, lake.WithZeroing(true))
	d, err := lake.AllocFixed[[8]byte](l)
	require.NoError(t, err)
	copy(d.Bytes(), []byte{1, 2, 3, 4, 5, 6, 7, 8})

	l.Reset()
	d2, err := lake.AllocFixed[[8]byte](l)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 8), d2.Bytes(), "zeroing must clear previously written bytes")
}

func TestMarkNesting(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	_, err := lake.AllocFixed[[8]byte](l)
	require.NoError(t, err)

	l.Mark()
	_, err = lake.AllocFixed[[8]byte](l)
	require.NoError(t, err)

	l.Mark()
	_, err = lake.AllocFixed[[8]byte](l)
	require.NoError(t, err)
	assert.Equal(t, 24, l.Used())

	l.ResetToMark()
	assert.Equal(t, 16, l.Used())

	l.ResetToMark()
	assert.Equal(t, 8, l.Used())

	// No mark left: a further call is a no-op.
	l.ResetToMark()
	assert.Equal(t, 8, l.Used())
}

func TestMoveMark(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	l.Mark()
	_, err := lake.AllocFixed[[8]byte](l)
	require.NoError(t, err)

	l.MoveMark()
	_, err = lake.AllocFixed[[8]byte](l)
	require.NoError(t, err)

	l.ResetToMark()
	assert.Equal(t, 8, l.Used(), "MoveMark should move the mark up, not just record a new one")
}

func TestSnapshotIndependentOfMarkStack(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	snap := l.Snapshot()

	l.Mark()
	_, err := lake.AllocFixed[[8]byte](l)
	require.NoError(t, err)
	_, err = lake.AllocFixed[[8]byte](l)
	require.NoError(t, err)

	// Rewind via snapshot does not touch (or require) the mark stack.
	l.Rewind(snap)
	assert.Equal(t, 0, l.Used())

	// The mark pushed earlier is still sitting on the stack, at offset
	// 0, the same offset the snapshot rewound to.
	l.ResetToMark()
	assert.Equal(t, 0, l.Used())
}

func TestSplit(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	view, err := l.Split(16)
	require.NoError(t, err)
	assert.Equal(t, 16, l.Used(), "splitting must advance the parent's offset")
	assert.Equal(t, 16, view.Capacity())
	assert.Equal(t, 0, view.Used())

	_, err = lake.AllocFixed[[8]byte](view)
	require.NoError(t, err)
	assert.Equal(t, 8, view.Used())
	assert.Equal(t, 16, l.Used(), "allocating in the view must not move the parent's offset")

	_, err = view.Split(4)
	require.NoError(t, err)
}

func TestProcess(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	d, err := l.Process(func(remaining int) []byte {
		assert.Equal(t, 64, remaining)
		return []byte("hello")
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), d.Bytes())
	assert.Equal(t, 5, l.Used())
}

func TestProcessOverflow(t *testing.T) {
	t.Parallel()

	l := lake.New(4)
	_, err := l.Process(func(remaining int) []byte {
		return make([]byte, remaining+1)
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, lake.ErrOverflow))
	assert.Equal(t, 0, l.Used(), "a failed process must not advance the offset")
}

func TestAllocStructAlignment(t *testing.T) {
	t.Parallel()

	type wide struct {
		x uint64
	}

	l := lake.New(64)
	_, err := lake.AllocFixed[[3]byte](l)
	require.NoError(t, err)
	assert.Equal(t, 3, l.Used())

	w := lake.AllocStruct[wide](l)
	assert.Equal(t, 0, l.Used()%8, "AllocStruct must pad up to the type's alignment")
	w.x = 42
	assert.Equal(t, uint64(42), w.x)
}

func TestAllocStructOverflowPanics(t *testing.T) {
	t.Parallel()

	l := lake.New(4)
	assert.Panics(t, func() {
		lake.AllocStruct[[8]byte](l)
	}, "AllocStruct overflow must be a fatal panic, not a recoverable error")
}

func TestAllocSlice(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	s := lake.AllocSlice[int32](l, 4)
	require.Len(t, s, 4)
	for i := range s {
		s[i] = int32(i)
	}
	assert.Equal(t, []int32{0, 1, 2, 3}, s)
}

func TestAllocSliceOverflowPanics(t *testing.T) {
	t.Parallel()

	l := lake.New(4)
	assert.Panics(t, func() {
		lake.AllocSlice[int32](l, 4)
	}, "AllocSlice overflow must be a fatal panic, not a recoverable error")
}

func TestPeek(t *testing.T) {
	t.Parallel()

	l := lake.New(8)
	_, err := l.AllocRaw(4)
	require.NoError(t, err)

	peeked, err := l.Peek(4)
	require.NoError(t, err)
	assert.Len(t, peeked, 4)
	assert.Equal(t, 4, l.Used(), "Peek must not advance the offset")

	_, err = l.Peek(5)
	assert.Error(t, err)
}
