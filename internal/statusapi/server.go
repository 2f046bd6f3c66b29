// Package statusapi exposes the agent's state on a small local HTTP
// surface: health, session and loading state, active notifications, and a
// websocket that pushes events to attached UIs.
package statusapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/farmasi-pusk-sanden/stok-obat/internal/config"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/session"
	"github.com/farmasi-pusk-sanden/stok-obat/internal/ui"
)

// Server represents the local status HTTP server
type Server struct {
	config   *config.Config
	sess     *session.Store
	notifier *ui.Notifier
	gauge    *ui.Gauge
	hub      *Hub
	mux      *http.ServeMux
}

var upgrader = websocket.Upgrader{
	// The server binds to loopback; local pages are fine
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewServer creates the local status server
func NewServer(cfg *config.Config, sess *session.Store, notifier *ui.Notifier, gauge *ui.Gauge, hub *Hub) *Server {
	s := &Server{
		config:   cfg,
		sess:     sess,
		notifier: notifier,
		gauge:    gauge,
		hub:      hub,
		mux:      http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
	s.mux.HandleFunc("GET /api/notifications", s.handleNotifications)
	s.mux.HandleFunc("POST /api/notifications/{id}/dismiss", s.handleDismiss)
	s.mux.HandleFunc("GET /ws", s.handleWS)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	return http.ListenAndServe(addr, s.mux)
}

// Handler exposes the mux for tests
func (s *Server) Handler() http.Handler {
	return s.mux
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	})
}

// handleStatus reports session and loading state
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	authenticated := s.sess.IsAuthenticated()
	userName := ""
	if cur := s.sess.Current(); cur != nil {
		userName = cur.User.Nama
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":        "running",
		"endpoint":      s.config.Backend.Endpoint,
		"authenticated": authenticated,
		"user":          userName,
		"loading":       s.gauge.Active(),
	})
}

// handleNotifications lists active banners, optionally filtered by kind
func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var kinds []string
	if q := r.URL.Query().Get("kind"); q != "" {
		kinds = strings.Split(q, ",")
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"notifications": s.notifier.Active(kinds),
	})
}

// handleDismiss removes one banner by ID
func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid notification id", http.StatusBadRequest)
		return
	}

	s.notifier.Dismiss(id)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// handleWS upgrades and keeps the connection registered until it drops
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.hub.register <- conn
	defer func() { s.hub.unregister <- conn }()

	for {
		// Keep alive loop
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
