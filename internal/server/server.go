// Package server exposes the advisor as a JSON-over-websocket service.
// Each client connection gets its own deck, hand and advisor, so concurrent
// sessions never share state.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/flip7/internal/advisor"
	"github.com/lox/flip7/internal/session"
)

// Server accepts websocket clients and serves advisor sessions
type Server struct {
	cfg      *Config
	strategy advisor.Strategy
	upgrader websocket.Upgrader
	logger   *log.Logger
	clock    quartz.Clock

	mu          sync.Mutex
	connections map[*Connection]bool
	ctx         context.Context
	cancel      context.CancelFunc
}

// New creates a server with a real clock
func New(cfg *Config, strategy advisor.Strategy, logger *log.Logger) *Server {
	return NewWithClock(cfg, strategy, logger, quartz.NewReal())
}

// NewWithClock creates a server with an injectable clock for tests
func NewWithClock(cfg *Config, strategy advisor.Strategy, logger *log.Logger, clock quartz.Clock) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		cfg:      cfg,
		strategy: strategy,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:      logger.WithPrefix("server"),
		clock:       clock,
		connections: make(map[*Connection]bool),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Handler returns the HTTP handler serving /ws and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start listens on the configured address until the process exits
func (s *Server) Start() error {
	s.logger.Info("Starting advisor service", "addr", s.cfg.Server.Addr())
	return http.ListenAndServe(s.cfg.Server.Addr(), s.Handler())
}

// Stop closes all live connections
func (s *Server) Stop() {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.connections {
		_ = conn.Close()
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	sess := session.New(s.logger, s.strategy)
	conn := NewConnection(ws, sess, s.logger, s.clock, s.idleTimeout())

	s.mu.Lock()
	s.connections[conn] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "total", total)

	go func() {
		if err := conn.Run(); err != nil {
			s.logger.Debug("Connection ended", "error", err)
		}

		s.mu.Lock()
		delete(s.connections, conn)
		total := len(s.connections)
		s.mu.Unlock()
		s.logger.Info("Client disconnected", "total", total)
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) idleTimeout() time.Duration {
	return time.Duration(s.cfg.Server.IdleTimeoutSeconds) * time.Second
}
