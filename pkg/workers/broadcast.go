package workers

import (
	"context"

	"github.com/google/uuid"
	"github.com/ringlock-game/ringlock/pkg/log"
	"github.com/ringlock-game/ringlock/pkg/messages"
	"github.com/ringlock-game/ringlock/pkg/network"
)

// BroadcastMessage is a server event addressed to every subscriber of one
// session.
type BroadcastMessage struct {
	SessionID uuid.UUID
	Type      string
	Message   interface{}
}

// BroadcastMessageWorker fans session events out to WebSocket subscribers.
type BroadcastMessageWorker struct {
	subscriberManager    *network.SubscriberManager
	broadcastMessageChan <-chan BroadcastMessage
}

type NewBroadcastMessageWorkerOptions struct {
	SubscriberManager    *network.SubscriberManager
	BroadcastMessageChan <-chan BroadcastMessage
}

func NewBroadcastMessageWorker(opts NewBroadcastMessageWorkerOptions) *BroadcastMessageWorker {
	return &BroadcastMessageWorker{
		subscriberManager:    opts.SubscriberManager,
		broadcastMessageChan: opts.BroadcastMessageChan,
	}
}

func (w *BroadcastMessageWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-w.broadcastMessageChan:
			if err := w.broadcast(ctx, msg); err != nil {
				log.Error("Failed to broadcast %s message: %v", msg.Type, err)
			}
		}
	}
}

func (w *BroadcastMessageWorker) broadcast(ctx context.Context, broadcastMsg BroadcastMessage) error {
	msg, err := messages.NewMessage(0, broadcastMsg.Type, broadcastMsg.Message)
	if err != nil {
		return err
	}

	for _, subscriber := range w.subscriberManager.GetSessionSubscribers(broadcastMsg.SessionID) {
		if err := network.WriteMessageToWS(ctx, subscriber.Conn, msg); err != nil {
			log.Error("Failed to write %s message to subscriber %d: %v", broadcastMsg.Type, subscriber.ID, err)
			w.subscriberManager.RemoveSubscriber(subscriber.ID)
		}
	}
	return nil
}
