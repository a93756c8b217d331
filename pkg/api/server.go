package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ringlock-game/ringlock/pkg/api/handlers"
	"github.com/ringlock-game/ringlock/pkg/log"
	"github.com/ringlock-game/ringlock/pkg/session"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port           int
	TLS            *TLSConfig
	SessionManager *session.SessionManager
	// SessionContext bounds the lifetime of sessions created over the API
	SessionContext context.Context
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	router := mux.NewRouter()
	router.HandleFunc("/sessions", handlers.HandleCreateSession(opts.SessionContext, opts.SessionManager)).Methods(http.MethodPost)
	router.HandleFunc("/sessions", handlers.HandleListSessions(opts.SessionManager)).Methods(http.MethodGet)
	router.HandleFunc("/sessions/{sessionID}", handlers.HandleGetSession(opts.SessionManager)).Methods(http.MethodGet)
	router.HandleFunc("/sessions/{sessionID}", handlers.HandleDeleteSession(opts.SessionManager)).Methods(http.MethodDelete)
	router.HandleFunc("/sessions/{sessionID}/shuffle", handlers.HandleShuffleSession(opts.SessionManager)).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{sessionID}/solve", handlers.HandleSolveSession(opts.SessionManager)).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{sessionID}/interrupt", handlers.HandleInterruptSession(opts.SessionManager)).Methods(http.MethodPost)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
