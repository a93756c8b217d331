package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/ringlock-game/ringlock/pkg/puzzle"
	"github.com/ringlock-game/ringlock/pkg/session"
	"github.com/ringlock-game/ringlock/pkg/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*mux.Router, *session.SessionManager) {
	t.Helper()
	broadcastChan := make(chan workers.BroadcastMessage, 1024)
	sessionManager := session.NewSessionManager(session.NewSessionManagerOptions{
		BroadcastChan: broadcastChan,
		TickInterval:  time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	router := mux.NewRouter()
	router.HandleFunc("/sessions", HandleCreateSession(ctx, sessionManager)).Methods(http.MethodPost)
	router.HandleFunc("/sessions", HandleListSessions(sessionManager)).Methods(http.MethodGet)
	router.HandleFunc("/sessions/{sessionID}", HandleGetSession(sessionManager)).Methods(http.MethodGet)
	router.HandleFunc("/sessions/{sessionID}", HandleDeleteSession(sessionManager)).Methods(http.MethodDelete)
	router.HandleFunc("/sessions/{sessionID}/shuffle", HandleShuffleSession(sessionManager)).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{sessionID}/solve", HandleSolveSession(sessionManager)).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{sessionID}/interrupt", HandleInterruptSession(sessionManager)).Methods(http.MethodPost)
	return router, sessionManager
}

func createSession(t *testing.T, router *mux.Router) string {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	created := &CreateSessionResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), created))
	return created.ID
}

func getSnapshot(t *testing.T, router *mux.Router, id string) (*puzzle.Snapshot, int) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil))
	if rec.Code != http.StatusOK {
		return nil, rec.Code
	}
	snapshot := &puzzle.Snapshot{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), snapshot))
	return snapshot, rec.Code
}

func TestHandleCreateSession(t *testing.T) {
	router, sessionManager := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	created := &CreateSessionResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), created))
	id, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "/ws/"+created.ID, created.WebSocketURL)
	assert.True(t, sessionManager.HasSession(id))
}

func TestHandleGetSession(t *testing.T) {
	router, _ := newTestRouter(t)
	id := createSession(t, router)

	snapshot, code := getSnapshot(t, router, id)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "idle", snapshot.Phase)
	assert.Len(t, snapshot.Angles, 8)

	t.Run("invalid ID", func(t *testing.T) {
		_, code := getSnapshot(t, router, "not-a-uuid")
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("unknown ID", func(t *testing.T) {
		_, code := getSnapshot(t, router, uuid.NewString())
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestHandleListSessions(t *testing.T) {
	router, _ := newTestRouter(t)
	first := createSession(t, router)
	second := createSession(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	listed := &ListSessionsResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), listed))
	assert.ElementsMatch(t, []string{first, second}, listed.Sessions)
}

func TestHandleShuffleSession(t *testing.T) {
	router, _ := newTestRouter(t)
	id := createSession(t, router)

	body, err := json.Marshal(map[string]interface{}{"count": 5, "seed": 9})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/shuffle", bytes.NewReader(body)))
	require.Equal(t, http.StatusAccepted, rec.Code)

	assert.Eventually(t, func() bool {
		snapshot, code := getSnapshot(t, router, id)
		return code == http.StatusOK && snapshot.Phase == "interactive"
	}, 2*time.Second, 5*time.Millisecond, "shuffle playback never finished")
}

func TestHandleSolveSession(t *testing.T) {
	router, _ := newTestRouter(t)
	id := createSession(t, router)

	body, err := json.Marshal(map[string]interface{}{"count": 5, "seed": 9})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/shuffle", bytes.NewReader(body)))
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Eventually(t, func() bool {
		snapshot, code := getSnapshot(t, router, id)
		return code == http.StatusOK && snapshot.Phase == "interactive"
	}, 2*time.Second, 5*time.Millisecond)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/solve", nil))
	require.Equal(t, http.StatusAccepted, rec.Code)

	assert.Eventually(t, func() bool {
		snapshot, code := getSnapshot(t, router, id)
		return code == http.StatusOK && snapshot.Won
	}, 5*time.Second, 10*time.Millisecond, "solver never won")
}

func TestHandleDeleteSession(t *testing.T) {
	router, sessionManager := newTestRouter(t)
	id := createSession(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/sessions/"+id, nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, sessionManager.HasSession(uuid.MustParse(id)))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/sessions/"+id, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
