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

import "github.com/google/uuid"

// DefaultLocalCapacity is the capacity used for arenas that
// [Local.Init] creates.
const DefaultLocalCapacity = 65536

// DefaultMarkStackHint is the initial capacity reserved for an arena's
// mark stack, sized for a handful of nested [Lake.Mark] scopes before
// the backing slice needs to grow.
const DefaultMarkStackHint = 8

// config collects the result of applying a set of Options.
type config struct {
	zeroing       bool
	name          string
	markStackHint int
}

func newConfig(opts []Option) config {
	cfg := config{
		markStackHint: DefaultMarkStackHint,
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	if cfg.name == "" {
		cfg.name = uuid.NewString()
	}
	return cfg
}

// Option configures a [Lake] at construction time.
type Option struct {
	apply func(*config)
}

// WithZeroing causes every [Lake.Reset] to zero the bytes it reclaims,
// rather than merely rewinding the offset. [Lake.ResetToMark] and
// [Lake.Rewind] do not zero.
//
// This is off by default: zeroing costs a memclr proportional to the
// region being released, which defeats part of the point of a bump
// arena. Turn it on when droplets might otherwise leak stale data
// across a reset boundary (e.g. the arena backs a response buffer
// that is handed to untrusted code).
func WithZeroing(zero bool) Option {
	return Option{func(c *config) { c.zeroing = zero }}
}

// WithName attaches a name to an arena, used only to tag its debug
// log lines. If omitted, a random name is generated so concurrent
// arenas in a debug log remain distinguishable.
func WithName(name string) Option {
	return Option{func(c *config) { c.name = name }}
}

// WithMarkStackHint reserves capacity for n nested [Lake.Mark] scopes
// up front, avoiding reallocation of the mark stack for workloads with
// a known nesting depth.
func WithMarkStackHint(n int) Option {
	return Option{func(c *config) { c.markStackHint = n }}
}
