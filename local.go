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
	"github.com/timandy/routine"

	"github.com/lakearena/lake/internal/dbg"
	"github.com/lakearena/lake/internal/xsync"
)

// Local is a goroutine-local registry of arenas, keyed by goroutine id.
// It is the structural answer to "one Lake per goroutine": each
// goroutine that calls [Local.Init] gets its own arena, and
// [Local.Current] always returns the calling goroutine's own.
//
// Go has no first-class thread-locals, so this is built on top of
// github.com/timandy/routine's goroutine id, the same mechanism this
// module's debug logging uses to tag log lines by goroutine.
var Local localRegistry

type localRegistry struct {
	arenas xsync.Map[int64, *Lake]
}

// Init creates this goroutine's arena. Calling Init again from the same
// goroutine discards the previous arena and starts a fresh one.
func (r *localRegistry) Init(opts ...Option) {
	l := New(DefaultLocalCapacity, opts...)
	r.arenas.Store(routine.Goid(), l)
	dbg.Log(nil, "Local.Init", "goid=%d", routine.Goid())
}

// Current returns the calling goroutine's arena. It panics if the
// calling goroutine never called Init: unlike a lazily-initializing
// pool, Local requires the goroutine to opt in explicitly, since a
// silently-created arena would defeat the purpose of making arena
// lifetime visible at the call site.
func (r *localRegistry) Current() *Lake {
	l, ok := r.arenas.Load(routine.Goid())
	if !ok {
		misuse("Local.Current", "arena not initialized for goroutine %d; call lake.Local.Init first", routine.Goid())
	}
	return l
}

// With runs fn with the calling goroutine's arena.
func (r *localRegistry) With(fn func(*Lake)) {
	fn(r.Current())
}

// Close discards the calling goroutine's arena. A subsequent Current
// call from the same goroutine panics until Init is called again.
func (r *localRegistry) Close() {
	r.arenas.Delete(routine.Goid())
}
