package state

import (
	"fmt"
	"sync"

	"github.com/ringlock-game/ringlock/pkg/puzzle"
)

type InMemorySnapshotManager struct {
	lock     sync.RWMutex
	snapshot *puzzle.Snapshot
}

func NewInMemorySnapshotManager() *InMemorySnapshotManager {
	return &InMemorySnapshotManager{
		snapshot: puzzle.New().Snapshot(),
	}
}

func (m *InMemorySnapshotManager) Get() (*puzzle.Snapshot, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.snapshot.Copy(), nil
}

func (m *InMemorySnapshotManager) Set(snapshot *puzzle.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot is nil")
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.snapshot = snapshot.Copy()
	return nil
}
