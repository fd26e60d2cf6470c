package ws

import (
	"sync"

	"github.com/cardtable/boosterdraft/internal/models"
)

// Hub tracks every live Conn by UserID and implements models.Sink by
// routing each event to that user's connection, silently dropping events
// for users with no open socket (spec's "out of scope: the transport
// itself" keeps Session from ever knowing whether a Send succeeded).
type Hub struct {
	mu    sync.RWMutex
	conns map[models.UserID]*Conn
}

// NewHub builds an empty hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[models.UserID]*Conn)}
}

// Register records conn as the live connection for its UserID, replacing
// (and closing) any prior connection for the same user — a fresh socket
// always supersedes a stale one.
func (h *Hub) Register(conn *Conn) {
	h.mu.Lock()
	old := h.conns[conn.UserID]
	h.conns[conn.UserID] = conn
	h.mu.Unlock()
	if old != nil && old != conn {
		old.Close()
	}
}

// IsLive reports whether uid currently has an open connection. The
// handshake (spec §4.6/§6) uses this to decide whether a reconnect cookie
// names a genuinely stale identity (safe to reuse) or one that is still
// live elsewhere (must be supplanted with a freshly minted id).
func (h *Hub) IsLive(uid models.UserID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[uid]
	return ok
}

// Unregister drops conn if it is still the recorded connection for its
// user (a connection that was already superseded by Register must not
// remove the newer one).
func (h *Hub) Unregister(conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[conn.UserID] == conn {
		delete(h.conns, conn.UserID)
	}
}

// Send implements models.Sink.
func (h *Hub) Send(uid models.UserID, evt models.Event) {
	h.mu.RLock()
	conn, ok := h.conns[uid]
	h.mu.RUnlock()
	if !ok {
		return
	}
	conn.Send(evt)
}
