package network

import (
	"sync"

	"github.com/google/uuid"
	"nhooyr.io/websocket"
)

// Subscriber represents one WebSocket connection watching a session
type Subscriber struct {
	ID        uint32
	SessionID uuid.UUID
	Conn      *websocket.Conn
}

// SubscriberManager manages connected subscribers
type SubscriberManager struct {
	subscribers     map[uint32]*Subscriber
	subscribersLock sync.RWMutex
	nextID          uint32
}

// NewSubscriberManager creates a new SubscriberManager
func NewSubscriberManager() *SubscriberManager {
	return &SubscriberManager{
		subscribers: make(map[uint32]*Subscriber),
		nextID:      1,
	}
}

// AddSubscriber registers a connection as a subscriber of a session and
// returns it with its assigned ID.
func (sm *SubscriberManager) AddSubscriber(sessionID uuid.UUID, conn *websocket.Conn) *Subscriber {
	sm.subscribersLock.Lock()
	defer sm.subscribersLock.Unlock()
	subscriber := &Subscriber{
		ID:        sm.nextID,
		SessionID: sessionID,
		Conn:      conn,
	}
	sm.nextID++
	sm.subscribers[subscriber.ID] = subscriber
	return subscriber
}

// RemoveSubscriber removes a subscriber from the manager.
func (sm *SubscriberManager) RemoveSubscriber(id uint32) {
	sm.subscribersLock.Lock()
	defer sm.subscribersLock.Unlock()
	delete(sm.subscribers, id)
}

// GetSessionSubscribers returns all subscribers of a session.
func (sm *SubscriberManager) GetSessionSubscribers(sessionID uuid.UUID) []*Subscriber {
	sm.subscribersLock.RLock()
	defer sm.subscribersLock.RUnlock()
	subscribers := make([]*Subscriber, 0)
	for _, subscriber := range sm.subscribers {
		if subscriber.SessionID == sessionID {
			subscribers = append(subscribers, subscriber)
		}
	}
	return subscribers
}
