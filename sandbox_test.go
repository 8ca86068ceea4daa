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

func TestSandboxRollsBackOnError(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	_, err := lake.AllocFixed[[8]byte](l)
	require.NoError(t, err)
	before := l.Used()

	sentinel := errors.New("boom")
	err = lake.Sandbox(l, func(g *lake.SandboxGuard) error {
		_, err := lake.AllocFixed[[8]byte](g.Arena().(*lake.Lake))
		require.NoError(t, err)
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, before, l.Used(), "a failed sandbox must roll back to its entry offset")
}

func TestSandboxCommitsOnSuccess(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	err := lake.Sandbox(l, func(g *lake.SandboxGuard) error {
		_, err := lake.AllocFixed[[16]byte](g.Arena().(*lake.Lake))
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 16, l.Used(), "a successful sandbox must keep its allocations")
}

func TestSandboxGuardExplicitRollback(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	g := lake.OpenSandbox(l)
	_, err := lake.AllocFixed[[8]byte](l)
	require.NoError(t, err)

	g.Rollback()
	assert.Equal(t, 0, l.Used())

	// A commit after rollback is a no-op: the offset stays rolled back.
	g.Commit()
	assert.Equal(t, 0, l.Used())
}

func TestNestedSandboxes(t *testing.T) {
	t.Parallel()

	l := lake.New(64)
	err := lake.Sandbox(l, func(outer *lake.SandboxGuard) error {
		_, err := lake.AllocFixed[[8]byte](l)
		require.NoError(t, err)

		innerErr := lake.Sandbox(l, func(inner *lake.SandboxGuard) error {
			_, err := lake.AllocFixed[[8]byte](l)
			require.NoError(t, err)
			return errors.New("inner failed")
		})
		assert.Error(t, innerErr)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 8, l.Used(), "the inner sandbox must roll back while the outer's allocation survives")
}
