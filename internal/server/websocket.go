package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// hostHub pushes host-state snapshots to connected console sockets so the
// stage display updates without waiting for the next poll.
type hostHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newHostHub() *hostHub {
	return &hostHub{conns: make(map[*websocket.Conn]struct{})}
}

var hostUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

func (h *hostHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *hostHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

func (h *hostHub) broadcast(payload map[string]any) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()
	for _, conn := range conns {
		if err := conn.WriteJSON(payload); err != nil {
			h.remove(conn)
		}
	}
}

func (s *Server) handleHostWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := hostUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("host websocket upgrade failed: %v", err)
		return
	}
	s.hub.add(conn)
	s.broadcastHostState()

	// Drain control frames; the console only listens.
	go func() {
		defer s.hub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) broadcastHostState() {
	var payload map[string]any
	err := s.store.View(func(g *Session) error {
		payload = hostState(g)
		return nil
	})
	if err != nil {
		payload = map[string]any{"session": nil}
	}
	s.hub.broadcast(payload)
}
