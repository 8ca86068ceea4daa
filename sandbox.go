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

// SandboxGuard is a scoped borrow of an arena that rolls it back to the
// offset it had when the guard was opened, unless the guard is
// committed first.
//
// Rust's version of this type rolls back automatically when it is
// dropped. Go has no destructors, so a SandboxGuard instead needs
// either an explicit [SandboxGuard.Rollback]/[SandboxGuard.Commit] call,
// or (preferably) should be driven through [Sandbox], which plays the
// role the compiler-enforced drop played in the original: the rollback
// always happens unless the callback returns without error.
type SandboxGuard struct {
	arena      Meta
	baseOffset int
	done       bool
}

// OpenSandbox begins a sandboxed region over arena, recording its
// current offset as the rollback point.
func OpenSandbox(arena Meta) *SandboxGuard {
	return &SandboxGuard{arena: arena, baseOffset: arena.Offset()}
}

// Arena returns the arena this guard was opened over.
func (g *SandboxGuard) Arena() Meta { return g.arena }

// Commit keeps every allocation made since the guard was opened. After
// Commit, further calls to Commit or Rollback are no-ops.
func (g *SandboxGuard) Commit() {
	if g.done {
		return
	}
	g.done = true
}

// Rollback restores the arena's offset to what it was when the guard
// was opened, discarding every allocation made since. After Rollback,
// further calls to Commit or Rollback are no-ops.
func (g *SandboxGuard) Rollback() {
	if g.done {
		return
	}
	g.arena.SetOffset(g.baseOffset)
	g.done = true
}

// Sandbox runs fn with a [SandboxGuard] open over arena. If fn returns
// an error, the guard is rolled back before Sandbox returns that error;
// otherwise the guard is committed, so fn's allocations survive. This is
// the Go equivalent of the source implementation's rollback-on-drop:
// the rollback is guaranteed to run on the error path via defer, rather
// than relying on a destructor.
func Sandbox(arena Meta, fn func(*SandboxGuard) error) error {
	g := OpenSandbox(arena)
	defer func() {
		if !g.done {
			g.Rollback()
		}
	}()
	if err := fn(g); err != nil {
		return err
	}
	g.Commit()
	return nil
}
