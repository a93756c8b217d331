package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ringlock-game/ringlock/pkg/log"
	"github.com/ringlock-game/ringlock/pkg/puzzle"
	"github.com/ringlock-game/ringlock/pkg/queue"
	"github.com/ringlock-game/ringlock/pkg/state"
	"github.com/ringlock-game/ringlock/pkg/workers"
)

const (
	// IntentQueueSize bounds each session's pending intent queue
	IntentQueueSize = 256
)

type runningSession struct {
	session *GameSession
	cancel  context.CancelFunc
}

// SessionManager creates, looks up and removes game sessions. Every
// session gets its own puzzle, intent queue and snapshot store; broadcast
// events from all sessions share one channel.
type SessionManager struct {
	lock          sync.RWMutex
	sessions      map[uuid.UUID]*runningSession
	broadcastChan chan<- workers.BroadcastMessage
	tickInterval  time.Duration
	shuffleCount  int
}

// NewSessionManagerOptions contains options for creating a new SessionManager.
type NewSessionManagerOptions struct {
	BroadcastChan chan<- workers.BroadcastMessage
	TickInterval  time.Duration
	ShuffleCount  int
}

func NewSessionManager(opts NewSessionManagerOptions) *SessionManager {
	return &SessionManager{
		sessions:      make(map[uuid.UUID]*runningSession),
		broadcastChan: opts.BroadcastChan,
		tickInterval:  opts.TickInterval,
		shuffleCount:  opts.ShuffleCount,
	}
}

// CreateSession creates a new session and starts its loop. The session
// runs until RemoveSession is called or ctx is cancelled.
func (m *SessionManager) CreateSession(ctx context.Context) *GameSession {
	id := uuid.New()
	gs := NewGameSession(NewGameSessionOptions{
		ID:              id,
		Puzzle:          puzzle.New(),
		IntentQueue:     queue.NewInMemoryQueue(IntentQueueSize),
		SnapshotManager: state.NewInMemorySnapshotManager(),
		BroadcastChan:   m.broadcastChan,
		TickInterval:    m.tickInterval,
		ShuffleCount:    m.shuffleCount,
	})

	sessionCtx, cancel := context.WithCancel(ctx)
	m.lock.Lock()
	m.sessions[id] = &runningSession{
		session: gs,
		cancel:  cancel,
	}
	m.lock.Unlock()

	go gs.Start(sessionCtx)
	log.Info("Created session %s", id)
	return gs
}

// GetSession returns the session with the given ID.
func (m *SessionManager) GetSession(id uuid.UUID) (*GameSession, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	running, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}
	return running.session, nil
}

// HasSession reports whether a session with the given ID exists.
func (m *SessionManager) HasSession(id uuid.UUID) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, ok := m.sessions[id]
	return ok
}

// RemoveSession stops a session's loop and forgets it.
func (m *SessionManager) RemoveSession(id uuid.UUID) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	running, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("session %s not found", id)
	}
	running.cancel()
	delete(m.sessions, id)
	log.Info("Removed session %s", id)
	return nil
}

// SessionIDs returns the IDs of all live sessions.
func (m *SessionManager) SessionIDs() []uuid.UUID {
	m.lock.RLock()
	defer m.lock.RUnlock()
	ids := make([]uuid.UUID, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}
