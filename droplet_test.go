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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakearena/lake"
)

func TestDropletDeserialize(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	d, err := lake.AllocFixed[[8]byte](l)
	require.NoError(t, err)

	u64, ok := lake.DropletDeserialize[[8]byte, uint64](d)
	require.True(t, ok)
	*u64 = 0x0102030405060708
	assert.Equal(t, uint64(0x0102030405060708), *u64)

	// A type larger than the droplet's own backing size must fail.
	_, ok = lake.DropletDeserialize[[8]byte, [16]byte](d)
	assert.False(t, ok)
}

func TestDropletDeserializeSlice(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	d, err := lake.AllocFixed[[16]byte](l)
	require.NoError(t, err)

	u32s, ok := lake.DropletDeserializeSlice[[16]byte, uint32](d)
	require.True(t, ok)
	require.Len(t, u32s, 4)
}

func TestDropletCursorWriters(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	d, err := lake.AllocFixed[[32]byte](l)
	require.NoError(t, err)

	d.WriteByte('[')
	d.WriteDecimal(123)
	d.WriteByte(',')
	d.WriteDecimalFixedWidth(7, 4)
	d.WriteByte(']')

	assert.Equal(t, "[123,0007]", string(d.Bytes()[:10]))
}

func TestDropletWriteOverflowPanics(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	d, err := lake.AllocFixed[[2]byte](l)
	require.NoError(t, err)

	assert.Panics(t, func() {
		d.Write([]byte{1, 2, 3})
	})
}

func TestDropletWriteDecimalFixedWidthOverflowPanics(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	d, err := lake.AllocFixed[[8]byte](l)
	require.NoError(t, err)

	assert.Panics(t, func() {
		d.WriteDecimalFixedWidth(12345, 2)
	}, "a value that does not fit in width digits must panic, not truncate silently")
}

func TestDropletInvalidAccessPanicsWithoutDebugTag(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	d, err := lake.AllocFixed[[8]byte](l)
	require.NoError(t, err)
	l.Reset()

	assert.False(t, d.IsValid())
	assert.Panics(t, func() {
		d.Ptr()
	}, "Ptr must panic on a stale droplet even in an ordinary (non -tags lake_debug) build")
	assert.Panics(t, func() {
		d.WriteByte('x')
	}, "WriteByte must panic on a stale droplet even in an ordinary build")
	assert.Panics(t, func() {
		d.WriteDecimal(1)
	}, "WriteDecimal must panic on a stale droplet even in an ordinary build")
	assert.Panics(t, func() {
		lake.DropletDeserialize[[8]byte, uint64](d)
	}, "DropletDeserialize must panic on a stale droplet even in an ordinary build")
}

func TestDropletAsSliceOf(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	d, err := lake.AllocFixed[[16]byte](l)
	require.NoError(t, err)

	u32s, ok := lake.DropletAsSliceOf[[16]byte, uint32](d)
	require.True(t, ok)
	assert.Len(t, u32s, 4)

	// A size that does not evenly divide must be rejected.
	_, ok = lake.DropletAsSliceOf[[16]byte, [3]byte](d)
	assert.False(t, ok)
}

func TestDropletDynProcess(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	d, err := l.Process(func(remaining int) []byte {
		return []byte("dynamic")
	})
	require.NoError(t, err)
	assert.True(t, d.IsValid())
	assert.Equal(t, 7, d.Len())

	str, ok := lake.DropletDynDeserializeSlice[byte](d)
	require.True(t, ok)
	assert.Equal(t, "dynamic", string(str))
}

func TestDropletDynInvalidAfterReset(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	d, err := l.Process(func(remaining int) []byte { return []byte("x") })
	require.NoError(t, err)
	assert.True(t, d.IsValid())

	l.Reset()
	assert.False(t, d.IsValid())
}

func TestForever(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	d, err := lake.AllocFixed[[8]byte](l)
	require.NoError(t, err)
	copy(d.Bytes(), []byte("escaped!"))

	escaped := lake.Forever(d)
	l.Reset()

	assert.False(t, d.IsValid())
	assert.Equal(t, "escaped!", string(escaped[:]))
}
