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
	"errors"
	"fmt"
)

// ErrOverflow is the sentinel that every [OverflowError] unwraps to.
//
// Capacity overflow is the one recoverable failure mode in this package:
// callers are expected to back off, split differently, or reset the
// arena. Compare against it with errors.Is.
var ErrOverflow = errors.New("lake: overflow")

// OverflowError reports that an allocation, split, or peek would exceed
// an arena's remaining capacity.
type OverflowError struct {
	Op        string
	Requested int
	Remaining int
	Capacity  int
}

// Error implements error.
func (e *OverflowError) Error() string {
	return fmt.Sprintf("lake: overflow: %s requested %d, remaining %d of %d",
		e.Op, e.Requested, e.Remaining, e.Capacity)
}

// Unwrap allows errors.Is(err, ErrOverflow).
func (e *OverflowError) Unwrap() error { return ErrOverflow }

// MisuseError is panicked (never returned) when a caller violates a
// precondition of a low-level primitive: overflowing a typed allocation,
// overrunning a droplet cursor writer, or touching a droplet that is no
// longer valid. Continuing past any of these would hand back undefined
// bytes, so they are fatal rather than recoverable.
type MisuseError struct {
	Op  string
	Msg string
}

// Error implements error.
func (e *MisuseError) Error() string {
	return fmt.Sprintf("lake: %s: %s", e.Op, e.Msg)
}

func misuse(op, format string, args ...any) {
	panic(&MisuseError{Op: op, Msg: fmt.Sprintf(format, args...)})
}

func overflow(op string, requested, remaining, capacity int) *OverflowError {
	return &OverflowError{Op: op, Requested: requested, Remaining: remaining, Capacity: capacity}
}
