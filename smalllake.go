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

// SmallLake is a small, fixed-capacity ring buffer: a peripheral
// collaborator to the arena types above, not itself generation-tracked
// or reset-aware. It exists for hot loops that need a scratch buffer for
// formatting (decimal numbers, short tags) without touching a Lake at
// all — the ring wraps instead of overflowing.
//
// Go has no const-generic array lengths, so where the source
// implementation parameterizes this type by its size, here the
// capacity is fixed at construction time in NewSmallLake.
type SmallLake struct {
	buf []byte
	pos int
}

// NewSmallLake creates a SmallLake with the given capacity.
func NewSmallLake(capacity int) *SmallLake {
	return &SmallLake{buf: make([]byte, capacity)}
}

// ResetPos rewinds the ring's write position to the start, without
// clearing its contents.
func (s *SmallLake) ResetPos() { s.pos = 0 }

// Len returns the number of valid bytes currently in the ring.
func (s *SmallLake) Len() int { return s.pos }

// AsSlice returns the valid bytes written since the last ResetPos, or
// since the ring last wrapped.
func (s *SmallLake) AsSlice() []byte { return s.buf[:s.pos] }

// WriteByte appends a single byte, wrapping to the start if the ring is
// full.
func (s *SmallLake) WriteByte(c byte) {
	s.buf[s.pos] = c
	s.pos++
	if s.pos >= len(s.buf) {
		s.pos = 0
	}
}

// Write copies src into the ring starting at the current position,
// wrapping to the start first if src would not otherwise fit before the
// end. It panics with a [MisuseError] if src is larger than the ring's
// entire capacity.
func (s *SmallLake) Write(src []byte) {
	if len(src) > len(s.buf) {
		misuse("SmallLake.Write", "writing %d bytes, buffer is only %d", len(src), len(s.buf))
	}
	if len(src) > len(s.buf)-s.pos {
		s.pos = 0
	}
	WriteTo(s.buf[s.pos:s.pos+len(src)], src)
	s.pos += len(src)
}

// WriteDecimal appends the decimal ASCII representation of value,
// wrapping as needed.
func (s *SmallLake) WriteDecimal(value uint64) {
	var tmp [20]byte
	curr := len(tmp)
	for value >= 10 {
		curr--
		tmp[curr] = byte(value%10) + '0'
		value /= 10
	}
	curr--
	tmp[curr] = byte(value) + '0'
	s.Write(tmp[curr:])
}

// WriteDecimalFixedWidth appends value as exactly width decimal digits,
// left-padded with '0'. It does not wrap: width bytes starting at the
// current position are overwritten directly, matching the source
// implementation's unchecked fixed-width writer.
func (s *SmallLake) WriteDecimalFixedWidth(value uint64, width int) {
	dst := s.buf[s.pos : s.pos+width]
	for i := width - 1; i >= 0; i-- {
		dst[i] = byte(value%10) + '0'
		value /= 10
	}
	s.pos += width
}
