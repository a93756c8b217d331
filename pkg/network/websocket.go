package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/ringlock-game/ringlock/pkg/log"
	"github.com/ringlock-game/ringlock/pkg/messages"
	"nhooyr.io/websocket"
)

// SessionChecker reports whether a session exists and accepts subscribers.
type SessionChecker func(sessionID uuid.UUID) bool

// MessageHandler handles a message received from a subscriber.
type MessageHandler func(ctx context.Context, subscriber *Subscriber, msg *messages.Message)

// WSServer accepts WebSocket subscriptions to sessions on /ws/{sessionID}.
type WSServer struct {
	port              int
	subscriberManager *SubscriberManager
	sessionChecker    SessionChecker
	messageHandler    MessageHandler
}

type NewWSServerOptions struct {
	Port              int
	SubscriberManager *SubscriberManager
	SessionChecker    SessionChecker
	MessageHandler    MessageHandler
}

// NewWSServer creates a new WebSocket server.
func NewWSServer(opts NewWSServerOptions) *WSServer {
	return &WSServer{
		port:              opts.Port,
		subscriberManager: opts.SubscriberManager,
		sessionChecker:    opts.SessionChecker,
		messageHandler:    opts.MessageHandler,
	}
}

// Start starts the WebSocket server. It blocks until ctx is cancelled.
func (s *WSServer) Start(ctx context.Context) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/", func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/ws/"))
		if err != nil {
			http.Error(w, "invalid session ID", http.StatusBadRequest)
			return
		}
		if !s.sessionChecker(sessionID) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			log.Error("Failed to accept WebSocket connection: %v", err)
			return
		}
		log.Debug("New WebSocket subscriber for session %s", sessionID)
		go s.handleWSConnection(ctx, sessionID, conn)
	})

	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	log.Info("WebSocket server listening on %s", addr)
	if err := server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("WebSocket server closed")
			return
		}
		log.Error("WebSocket server error: %v", err)
	}
}

// handleWSConnection pumps messages from one subscriber until it
// disconnects or ctx is cancelled.
func (s *WSServer) handleWSConnection(ctx context.Context, sessionID uuid.UUID, conn *websocket.Conn) {
	subscriber := s.subscriberManager.AddSubscriber(sessionID, conn)
	defer func() {
		s.subscriberManager.RemoveSubscriber(subscriber.ID)
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		msg, err := ReadMessageFromWS(ctx, conn)
		if err != nil {
			if websocket.CloseStatus(err) == -1 && ctx.Err() == nil {
				log.Error("Error reading WebSocket message from subscriber %d: %v", subscriber.ID, err)
			}
			log.Trace("Connection closed for subscriber %d", subscriber.ID)
			return
		}

		s.messageHandler(ctx, subscriber, msg)
	}
}

// WriteMessageToWS writes a Message to a WebSocket connection
func WriteMessageToWS(ctx context.Context, conn *websocket.Conn, msg *messages.Message) error {
	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	if err := conn.Write(ctx, websocket.MessageBinary, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %v", err)
	}

	return nil
}

// ReadMessageFromWS reads a Message from a WebSocket connection
func ReadMessageFromWS(ctx context.Context, conn *websocket.Conn) (*messages.Message, error) {
	_, b, err := conn.Read(ctx)
	if err != nil {
		return nil, err
	}

	msg, err := messages.DeserializeMessage(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return msg, nil
}
