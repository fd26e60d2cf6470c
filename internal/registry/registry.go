// Package registry is the process-wide directory of live sessions and
// connected participants, generalizing the teacher's single GameDirector
// (one game, one process, one *Client map) into the spec's many-sessions-
// per-process model: one lightweight mailbox goroutine per session, found
// by ID, plus a single participant table shared across all of them so a
// reconnecting or session-hopping user is always resolved to the same
// identity.
package registry

import (
	"sync"

	"github.com/cardtable/boosterdraft/internal/catalog"
	"github.com/cardtable/boosterdraft/internal/logging"
	"github.com/cardtable/boosterdraft/internal/models"
	"github.com/cardtable/boosterdraft/internal/session"
)

// Registry owns every live Session and the process-wide participant table.
// All of its methods are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[models.SessionID]*session.Session
	byUser   map[models.UserID]models.SessionID

	cat    *catalog.Catalog
	sink   models.Sink
	logger *logging.Logger
}

// New builds an empty registry backed by cat for booster generation and
// sink for outbound event delivery.
func New(cat *catalog.Catalog, sink models.Sink) *Registry {
	return &Registry{
		sessions: make(map[models.SessionID]*session.Session),
		byUser:   make(map[models.UserID]models.SessionID),
		cat:      cat,
		sink:     sink,
		logger:   logging.Get(),
	}
}

// CreateSession allocates a new session owned by owner and starts its
// mailbox goroutine (spec's registry "create session" op).
func (r *Registry) CreateSession(owner models.UserID) *session.Session {
	id := models.NewSessionID()
	r.mu.RLock()
	for _, exists := r.sessions[id]; exists; {
		id = models.NewSessionID()
		_, exists = r.sessions[id]
	}
	r.mu.RUnlock()

	s := r.createSession(id, owner)
	r.mu.Lock()
	r.byUser[owner] = id
	r.mu.Unlock()
	return s
}

// Get returns the session with the given id, if any.
func (r *Registry) Get(id models.SessionID) (*session.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// SessionFor returns the session a user is currently recorded as sitting
// in, if any.
func (r *Registry) SessionFor(uid models.UserID) (*session.Session, bool) {
	r.mu.RLock()
	id, ok := r.byUser[uid]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return r.Get(id)
}

// Join moves uid into session id (spec's registry join op, inbound
// setSession). If uid is already recorded in a different session, they are
// first removed from it ("supplanted": a user can only ever be live in one
// session at a time). An unknown id is not an error: spec §3's "Session
// created on first join to an unknown sessionID; the creator becomes owner"
// means Join itself allocates the session rather than requiring a prior
// CreateSession call — this is also how a removed player's freshly-minted
// session id (session_membership.go's RemovePlayer) comes into existence.
func (r *Registry) Join(id models.SessionID, uid models.UserID, name string) error {
	s, ok := r.Get(id)
	if !ok {
		s = r.createSession(id, uid)
	}

	r.mu.Lock()
	if prevID, already := r.byUser[uid]; already && prevID != id {
		if prev, ok := r.sessions[prevID]; ok {
			prev.Leave(uid)
		}
	}
	r.byUser[uid] = id
	r.mu.Unlock()

	return s.Join(uid, name)
}

// createSession allocates and registers a session under the given id,
// shared by CreateSession's random-id path and Join's create-on-unknown
// path.
func (r *Registry) createSession(id models.SessionID, owner models.UserID) *session.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := session.New(id, owner, r.cat, r.sink)
	go s.Run()
	s.SetOnDestroy(r.destroy)
	s.SetOnPublicChange(func(*session.Session) { r.broadcastPublicSessions() })
	r.sessions[id] = s
	r.logger.Infow("session created", "sessionID", id, "owner", owner)
	return s
}

// Leave removes uid from whatever session they are currently in.
func (r *Registry) Leave(uid models.UserID) {
	r.mu.Lock()
	id, ok := r.byUser[uid]
	delete(r.byUser, uid)
	r.mu.Unlock()
	if !ok {
		return
	}
	if s, ok := r.Get(id); ok {
		s.Leave(uid)
	}
}

// PublicSessions lists sessions flagged public, for discovery (spec's
// "public session list" registry concern). Iteration order is
// unspecified; callers that need a stable order should sort by ID.
func (r *Registry) PublicSessions() []models.SessionID {
	r.mu.RLock()
	candidates := make([]*session.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		candidates = append(candidates, s)
	}
	r.mu.RUnlock()

	out := make([]models.SessionID, 0, len(candidates))
	for _, s := range candidates {
		if s.IsPublic() {
			out = append(out, s.ID)
		}
	}
	return out
}

// broadcastPublicSessions re-sends the public session list to every
// participant the registry currently knows about (spec §4.6: re-broadcast
// "whenever it changes"). r.byUser is the registry's best approximation of
// "every connected participant" — it never tracks raw sockets, only seated
// users, per spec's "transport itself is out of scope".
func (r *Registry) broadcastPublicSessions() {
	ids := r.PublicSessions()
	r.mu.RLock()
	recipients := make([]models.UserID, 0, len(r.byUser))
	for uid := range r.byUser {
		recipients = append(recipients, uid)
	}
	r.mu.RUnlock()

	models.Broadcast(r.sink, recipients, models.Event{Type: "publicSessions", Payload: ids})
}

// AllSessions lists every live session id regardless of visibility, for
// operator/debug inspection.
func (r *Registry) AllSessions() []models.SessionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.SessionID, 0, len(r.sessions))
	for id := range r.sessions {
		out = append(out, id)
	}
	return out
}

// destroy is the onDestroy hook wired into every session created here: it
// removes the session and drops any byUser entries still pointing at it
// (can happen if Leave raced session destruction).
func (r *Registry) destroy(s *session.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, s.ID)
	for uid, id := range r.byUser {
		if id == s.ID {
			delete(r.byUser, uid)
		}
	}
	s.Stop()
	r.logger.Infow("session destroyed", "sessionID", s.ID)
}
