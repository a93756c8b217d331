package state

import (
	"testing"

	"github.com/ringlock-game/ringlock/pkg/puzzle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySnapshotManager(t *testing.T) {
	m := NewInMemorySnapshotManager()

	initial, err := m.Get()
	require.NoError(t, err)
	assert.Equal(t, "idle", initial.Phase)

	p := puzzle.New()
	p.ApplyMove(4, 90)
	stored := p.Snapshot()
	require.NoError(t, m.Set(stored))

	got, err := m.Get()
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	// reads are detached copies
	got.Angles[0] = 999
	again, err := m.Get()
	require.NoError(t, err)
	assert.Zero(t, again.Angles[0])
}

func TestInMemorySnapshotManager_NilSet(t *testing.T) {
	m := NewInMemorySnapshotManager()
	assert.Error(t, m.Set(nil))
}
