package main

import (
	"context"

	"github.com/ringlock-game/ringlock/pkg/log"
	"github.com/ringlock-game/ringlock/pkg/messages"
	"github.com/ringlock-game/ringlock/pkg/network"
	"github.com/ringlock-game/ringlock/pkg/session"
)

// newSubscriberMessageHandler routes WebSocket messages: pings get an
// immediate pong, everything else is queued as an intent for the
// subscriber's session loop.
func newSubscriberMessageHandler(sessionManager *session.SessionManager) network.MessageHandler {
	return func(ctx context.Context, subscriber *network.Subscriber, msg *messages.Message) {
		if msg.Type == messages.MessageTypeClientPing {
			pong, err := messages.NewMessage(0, messages.MessageTypeServerPong, nil)
			if err != nil {
				log.Error("Failed to build pong message: %v", err)
				return
			}
			if err := network.WriteMessageToWS(ctx, subscriber.Conn, pong); err != nil {
				log.Error("Failed to write pong to subscriber %d: %v", subscriber.ID, err)
			}
			return
		}

		gs, err := sessionManager.GetSession(subscriber.SessionID)
		if err != nil {
			log.Warn("Subscriber %d references missing session %s", subscriber.ID, subscriber.SessionID)
			return
		}
		if err := gs.Enqueue(msg); err != nil {
			log.Warn("Failed to enqueue %s intent for session %s: %v", msg.Type, gs.ID(), err)
		}
	}
}
