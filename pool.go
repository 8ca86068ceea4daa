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

import "github.com/lakearena/lake/internal/sync2"

// Pool recycles arenas of a fixed capacity across goroutines, so that a
// server handling many short-lived requests can reuse the backing
// buffer instead of allocating and discarding one per request.
//
// The drop function returned by [Pool.Get] resets the Lake (bumping its
// generation, so droplets from the previous borrower are reported
// invalid) before putting it back in the pool. A Lake whose drop
// function is never called is not returned to the pool.
type Pool struct {
	capacity int
	opts     []Option
	impl     sync2.Pool[Lake]
}

// NewPool creates a Pool whose arenas have the given capacity.
func NewPool(capacity int, opts ...Option) *Pool {
	p := &Pool{capacity: capacity, opts: opts}
	p.impl.New = func() *Lake { return New(p.capacity, p.opts...) }
	p.impl.Reset = func(l *Lake) { l.Reset() }
	return p
}

// Get returns an arena from the pool (allocating a new one if the pool
// is empty), and a function to call once the caller is done with it.
//
// Use like this:
//
//	l, drop := pool.Get()
//	defer drop()
func (p *Pool) Get() (l *Lake, drop func()) {
	return p.impl.Get()
}
