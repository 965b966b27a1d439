package live

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub accepts live connections and tracks the open sessions.
type Hub struct {
	cfg      Config
	page     func() Page
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu       sync.Mutex
	active   int
	sessions map[string]*Session
	closed   bool
}

// NewHub returns a hub that builds each session's Page with page. page must
// produce the same regions as the HTML the client loaded.
func NewHub(cfg Config, page func() Page) *Hub {
	cfg = cfg.withDefaults()
	h := &Hub{
		cfg:      cfg,
		page:     page,
		logger:   cfg.Logger.With("component", "live"),
		sessions: make(map[string]*Session),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(cfg.AllowedOrigins),
	}
	return h
}

// ServeHTTP upgrades the request and serves a session until it closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.acquire(); err != nil {
		h.cfg.Recorder.SocketError("rejected")
		h.logger.Warn("rejecting live connection", "error", err)
		http.Error(w, "live sessions unavailable", http.StatusServiceUnavailable)
		return
	}
	defer h.release()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.cfg.Recorder.SocketError("upgrade")
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	s := newSession(conn, h.page(), h.cfg)
	if !h.track(s) {
		s.Close()
		return
	}
	defer h.untrack(s)

	h.cfg.Recorder.SessionOpened()
	defer h.cfg.Recorder.SessionClosed()

	s.logger.Info("session opened", "remote", r.RemoteAddr)
	if err := s.Run(); err != nil {
		s.logger.Warn("session ended", "error", err)
	}
}

func (h *Hub) acquire() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHubClosed
	}
	if h.cfg.MaxSessions > 0 && h.active >= h.cfg.MaxSessions {
		return ErrSessionLimit
	}
	h.active++
	return nil
}

func (h *Hub) release() {
	h.mu.Lock()
	h.active--
	h.mu.Unlock()
}

func (h *Hub) track(s *Session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.sessions[s.ID] = s
	return true
}

func (h *Hub) untrack(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s.ID)
	h.mu.Unlock()
}

// Count returns the number of open sessions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// CloseAll closes every session and rejects new connections.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	h.closed = true
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	h.logger.Info("live sessions closed", "count", len(sessions))
}

// originChecker allows same-origin requests, requests without an Origin
// header, and the listed origins.
func originChecker(allowed []string) func(*http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[strings.ToLower(strings.TrimRight(o, "/"))] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if set["*"] || set[strings.ToLower(origin)] {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Host, r.Host)
	}
}
