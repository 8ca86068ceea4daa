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

// Forever copies a Droplet's value out of the arena and onto the
// ordinary Go heap, returning a pointer that is no longer tied to the
// arena's lifetime at all: it survives Reset, Rewind, and the arena
// being discarded entirely.
//
// This is the one escape hatch in this package that steps outside the
// arena model rather than working within it. It exists for the rare
// case where a value needs to genuinely outlive the arena it was
// computed in (e.g. a single aggregate result pulled out of a
// request-scoped arena to be cached across requests); it is not part of
// the core allocation path and nothing else in this package calls it.
// Prefer copying through ordinary assignment when the escaping value is
// small; Forever is for when T itself is inconvenient to reconstruct by
// hand.
func Forever[T any](d Droplet[T]) *T {
	v := new(T)
	*v = *d.Ptr()
	return v
}

// ForeverDyn copies a DropletDyn's bytes out of the arena and onto the
// ordinary Go heap.
func ForeverDyn(d DropletDyn) []byte {
	buf := make([]byte, d.Len())
	WriteTo(buf, d.Bytes())
	return buf
}
