package state

import (
	"github.com/ringlock-game/ringlock/pkg/puzzle"
)

// SnapshotManager provides shared access to the latest puzzle snapshot of a
// session, so HTTP reads never touch the live session loop.
// Implementations must be thread-safe.
type SnapshotManager interface {
	// Get returns a copy of the latest snapshot.
	Get() (*puzzle.Snapshot, error)
	// Set stores the latest snapshot.
	Set(snapshot *puzzle.Snapshot) error
}
