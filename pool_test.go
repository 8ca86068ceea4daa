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

func TestPoolReusesAndResets(t *testing.T) {
	t.Parallel()

	pool := lake.NewPool(64)

	l, drop := pool.Get()
	d, err := lake.AllocFixed[[16]byte](l)
	require.NoError(t, err)
	assert.Equal(t, 16, l.Used())
	drop()

	l2, drop2 := pool.Get()
	defer drop2()
	assert.Equal(t, 0, l2.Used(), "a recycled arena must come back reset")
	assert.False(t, d.IsValid(), "a droplet from before the arena was returned to the pool must not read as valid")
}
