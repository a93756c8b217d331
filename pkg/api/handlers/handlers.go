package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/ringlock-game/ringlock/pkg/log"
	"github.com/ringlock-game/ringlock/pkg/messages"
	"github.com/ringlock-game/ringlock/pkg/session"
)

// CreateSessionResponse is the body returned for a newly created session.
type CreateSessionResponse struct {
	ID           string `json:"id"`
	WebSocketURL string `json:"websocketURL"`
}

// ListSessionsResponse lists the IDs of all live sessions.
type ListSessionsResponse struct {
	Sessions []string `json:"sessions"`
}

// HandleCreateSession creates a new game session. The session's loop is
// tied to ctx (the server lifetime), not to the request.
func HandleCreateSession(ctx context.Context, sessionManager *session.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gs := sessionManager.CreateSession(ctx)
		writeJSON(w, http.StatusCreated, &CreateSessionResponse{
			ID:           gs.ID().String(),
			WebSocketURL: fmt.Sprintf("/ws/%s", gs.ID()),
		})
	}
}

// HandleListSessions lists all live sessions.
func HandleListSessions(sessionManager *session.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := sessionManager.SessionIDs()
		response := &ListSessionsResponse{
			Sessions: make([]string, 0, len(ids)),
		}
		for _, id := range ids {
			response.Sessions = append(response.Sessions, id.String())
		}
		writeJSON(w, http.StatusOK, response)
	}
}

// HandleGetSession returns the latest puzzle snapshot of a session.
func HandleGetSession(sessionManager *session.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gs, ok := lookupSession(w, r, sessionManager)
		if !ok {
			return
		}
		snapshot, err := gs.Snapshot()
		if err != nil {
			http.Error(w, "failed to read session state", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, snapshot)
	}
}

// HandleDeleteSession stops and removes a session.
func HandleDeleteSession(sessionManager *session.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}
		if err := sessionManager.RemoveSession(id); err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleShuffleSession queues a new-game intent: reset and scramble.
func HandleShuffleSession(sessionManager *session.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		newGame := &messages.ClientNewGame{}
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(newGame); err != nil {
				http.Error(w, "invalid request body", http.StatusBadRequest)
				return
			}
		}
		enqueueIntent(w, r, sessionManager, messages.MessageTypeClientNewGame, newGame)
	}
}

// HandleSolveSession queues a solve intent.
func HandleSolveSession(sessionManager *session.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		solve := &messages.ClientSolve{}
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(solve); err != nil {
				http.Error(w, "invalid request body", http.StatusBadRequest)
				return
			}
		}
		enqueueIntent(w, r, sessionManager, messages.MessageTypeClientSolve, solve)
	}
}

// HandleInterruptSession queues a solve interruption intent.
func HandleInterruptSession(sessionManager *session.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enqueueIntent(w, r, sessionManager, messages.MessageTypeClientInterruptSolve, nil)
	}
}

func enqueueIntent(w http.ResponseWriter, r *http.Request, sessionManager *session.SessionManager, msgType string, payload interface{}) {
	gs, ok := lookupSession(w, r, sessionManager)
	if !ok {
		return
	}
	msg, err := messages.NewMessage(0, msgType, payload)
	if err != nil {
		http.Error(w, "failed to build intent", http.StatusInternalServerError)
		return
	}
	if err := gs.Enqueue(msg); err != nil {
		log.Warn("Failed to enqueue %s intent for session %s: %v", msgType, gs.ID(), err)
		http.Error(w, "session is busy", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func lookupSession(w http.ResponseWriter, r *http.Request, sessionManager *session.SessionManager) (*session.GameSession, bool) {
	id, ok := sessionID(w, r)
	if !ok {
		return nil, false
	}
	gs, err := sessionManager.GetSession(id)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return gs, true
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["sessionID"])
	if err != nil {
		http.Error(w, "invalid session ID", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to write JSON response: %v", err)
	}
}
