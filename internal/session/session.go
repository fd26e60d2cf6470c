// Package session implements the Session subsystem (spec §4.5): membership,
// options, the active draft state machine, the disconnect table, the pick
// timer, and event fan-out, all serialized through a single per-session
// mailbox goroutine (spec §5's "one lightweight task per session with a
// per-session mailbox").
package session

import (
	"fmt"
	"math/rand"

	"github.com/cardtable/boosterdraft/internal/booster"
	"github.com/cardtable/boosterdraft/internal/catalog"
	"github.com/cardtable/boosterdraft/internal/draft"
	"github.com/cardtable/boosterdraft/internal/logging"
	"github.com/cardtable/boosterdraft/internal/models"
)

// DraftKind selects which state machine the session is running.
type DraftKind int

const (
	KindNone DraftKind = iota
	KindTraditional
	KindWinston
	KindSealed
)

type command struct {
	fn   func()
	done chan struct{}
}

// Session is one draft lobby/table. All mutating access goes through its
// mailbox; Session methods are safe to call concurrently from multiple
// goroutines precisely because they never touch state directly themselves.
type Session struct {
	ID            models.SessionID
	ownerID       models.UserID
	ownerIsPlayer bool
	users         map[models.UserID]struct{}
	userOrder     []models.UserID

	options           Options
	disconnectedUsers map[models.UserID]Snapshot
	participants      map[models.UserID]*Participant

	cat  *catalog.Catalog
	sink models.Sink
	rng  *rand.Rand

	draftKind   DraftKind
	drafting    bool
	traditional *draft.Traditional
	winston     *draft.Winston
	bots        map[models.UserID]struct{} // bot seats' synthetic user ids, when materialized for logging
	botSeatOf   map[int]models.UserID      // seat position -> synthetic bot UserID, traditional only
	draftLog    *DraftLog

	bracket *Bracket

	stopTimer func()

	cmdCh chan command
	stopCh chan struct{}

	onDestroy      func(s *Session)
	onPublicChange func(s *Session)

	logger *logging.Logger
}

// New builds a session owned by owner, backed by cat for booster generation
// and sink for event delivery. Call Run in its own goroutine before using
// the session.
// New builds a session owned by owner but does not yet seat them: the
// caller (registry.CreateSession, via the gateway's createSession handler)
// always follows up with Join(owner, name) to do that, so New leaves
// users/userOrder empty rather than seating owner twice.
func New(id models.SessionID, owner models.UserID, cat *catalog.Catalog, sink models.Sink) *Session {
	return &Session{
		ID:                id,
		ownerID:           owner,
		ownerIsPlayer:     true,
		users:             map[models.UserID]struct{}{},
		userOrder:         []models.UserID{},
		options:           DefaultOptions(),
		disconnectedUsers: map[models.UserID]Snapshot{},
		participants:      map[models.UserID]*Participant{},
		cat:               cat,
		sink:              sink,
		rng:               booster.NewCryptoRNG(),
		cmdCh:             make(chan command),
		stopCh:            make(chan struct{}),
		logger:            logging.Get(),
	}
}

// Run is the session's single logical executor. It must be started exactly
// once, typically via `go s.Run()`.
func (s *Session) Run() {
	for {
		select {
		case cmd := <-s.cmdCh:
			cmd.fn()
			close(cmd.done)
		case <-s.stopCh:
			if s.stopTimer != nil {
				s.stopTimer()
			}
			return
		}
	}
}

// Stop cancels the session's pending timer (if any) and terminates Run.
func (s *Session) Stop() {
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
}

// call serializes fn through the mailbox and blocks until it has run.
func (s *Session) call(fn func()) {
	done := make(chan struct{})
	select {
	case s.cmdCh <- command{fn: fn, done: done}:
		<-done
	case <-s.stopCh:
	}
}

// SetOnDestroy registers the registry's cleanup hook, invoked (outside the
// mailbox, to avoid deadlocking on a goroutine the registry itself owns)
// whenever this session becomes empty with no retained owner.
func (s *Session) SetOnDestroy(fn func(*Session)) {
	s.call(func() { s.onDestroy = fn })
}

// SetOnPublicChange registers the registry's re-broadcast hook, invoked
// (outside the mailbox, same reasoning as SetOnDestroy) whenever this
// session's isPublic option flips (spec §4.6: "re-broadcasts [the public
// session list] to every connected participant whenever it changes").
func (s *Session) SetOnPublicChange(fn func(*Session)) {
	s.call(func() { s.onPublicChange = fn })
}

// IsOwner reports whether uid is the current owner. Exported for gateway
// convenience checks; the owner id is read through call(), so the answer
// reflects the mailbox's state at that moment.
func (s *Session) IsOwner(uid models.UserID) bool {
	var ok bool
	s.call(func() { ok = s.ownerID == uid })
	return ok
}

func (s *Session) isOwner(uid models.UserID) bool { return s.ownerID == uid }

// IsPublic reports whether this session is currently flagged discoverable,
// for the registry's public session listing.
func (s *Session) IsPublic() bool {
	var public bool
	s.call(func() { public = s.options.IsPublic })
	return public
}

// UserCount reports the number of seated users, for the HTTP /getUsers
// endpoint.
func (s *Session) UserCount() int {
	var n int
	s.call(func() { n = len(s.users) })
	return n
}

// requireOwner is the spec §4.5 "no-op when caller != owner" guard. It
// returns true when the op should proceed.
func (s *Session) requireOwner(uid models.UserID) bool {
	return s.isOwner(uid)
}

func (s *Session) emit(uid models.UserID, event string, payload interface{}) {
	s.sink.Send(uid, models.Event{Type: event, Payload: payload})
}

// broadcast sends to every member of s.users, plus the non-playing owner if
// any, optionally excluding one UserID (spec §4.5: "not echoed to the owner
// who initiated it"). Delivery is concurrent and bounded (spec §5's
// toSession fan-out requirement), matching internal/registry's equivalent
// toAll fan-out for the public session list.
func (s *Session) broadcast(event string, payload interface{}, exclude models.UserID) {
	recipients := make([]models.UserID, 0, len(s.users)+1)
	for uid := range s.users {
		if uid != exclude {
			recipients = append(recipients, uid)
		}
	}
	if !s.ownerIsPlayer {
		if _, playing := s.users[s.ownerID]; !playing && s.ownerID != exclude {
			recipients = append(recipients, s.ownerID)
		}
	}
	models.Broadcast(s.sink, recipients, models.Event{Type: event, Payload: payload})
}

// Join adds uid to the session (spec §3 Lifecycles / §4.6 registry join).
// While drafting, joining is refused unless uid is already recorded as
// disconnected (a genuine reconnect).
func (s *Session) Join(uid models.UserID, name string) error {
	var err error
	s.call(func() {
		if snap, wasDisconnected := s.disconnectedUsers[uid]; wasDisconnected {
			delete(s.disconnectedUsers, uid)
			s.users[uid] = struct{}{}
			s.resumeParticipant(uid, snap)
			return
		}
		if s.drafting {
			err = fmt.Errorf("session: cannot join %s while drafting", s.ID)
			return
		}
		if s.options.MaxPlayers > 0 && len(s.users) >= s.options.MaxPlayers {
			err = fmt.Errorf("session: %s is full", s.ID)
			return
		}
		s.users[uid] = struct{}{}
		s.userOrder = append(s.userOrder, uid)
		s.participants[uid] = NewParticipant(uid, name)
		s.broadcast("sessionUsers", s.userInfoList(), "")
	})
	return err
}

// Leave removes uid from the session (spec §3 Lifecycles: destroy when
// empty and no retained non-playing owner; owner transfer to an arbitrary
// remaining member).
func (s *Session) Leave(uid models.UserID) {
	s.call(func() {
		if s.drafting {
			s.disconnectedUsers[uid] = s.snapshotOf(uid)
			s.pauseDraftTimer()
		} else {
			// userOrder is frozen for the life of a draft (spec §3 seating
			// invariant); only shrink it outside one, so snapshotOf's
			// SeatIndex and a reconnect's seat restore stay meaningful.
			s.removeFromOrder(uid)
		}
		delete(s.users, uid)
		delete(s.participants, uid)

		if uid == s.ownerID && len(s.users) > 0 {
			for next := range s.users {
				s.ownerID = next
				s.ownerIsPlayer = true
				s.emit(next, "sessionOwner", next)
				break
			}
		}
		if len(s.users) > 0 {
			s.broadcast("sessionUsers", s.userInfoList(), "")
			return
		}
		// users empty: destroy unless a non-playing owner is retained.
		if s.ownerIsPlayer {
			wasPublic := s.options.IsPublic
			if s.onDestroy != nil {
				go s.onDestroy(s)
			}
			if wasPublic && s.onPublicChange != nil {
				go s.onPublicChange(s)
			}
		}
	})
}

func (s *Session) removeFromOrder(uid models.UserID) {
	for i, id := range s.userOrder {
		if id == uid {
			s.userOrder = append(s.userOrder[:i], s.userOrder[i+1:]...)
			return
		}
	}
}

type userInfo struct {
	UserID   models.UserID `json:"userID"`
	UserName string        `json:"userName"`
}

func (s *Session) userInfoList() []userInfo {
	out := make([]userInfo, 0, len(s.userOrder))
	for _, uid := range s.userOrder {
		name := ""
		if p, ok := s.participants[uid]; ok {
			name = p.UserName
		}
		out = append(out, userInfo{UserID: uid, UserName: name})
	}
	return out
}

func (s *Session) snapshotOf(uid models.UserID) Snapshot {
	seat := -1
	for i, id := range s.userOrder {
		if id == uid {
			seat = i
			break
		}
	}
	var picked []models.CardID
	if s.traditional != nil {
		picked = s.traditional.PickedCards(uid)
	} else if s.winston != nil {
		picked = s.winston.PickedCards(uid)
	}
	name := ""
	if p, ok := s.participants[uid]; ok {
		name = p.UserName
	}
	return Snapshot{UserName: name, SeatIndex: seat, PickedCards: picked}
}

func (s *Session) pauseDraftTimer() {
	if s.stopTimer != nil {
		s.stopTimer()
		s.stopTimer = nil
	}
	if s.traditional != nil {
		s.traditional.Pause()
	}
}

// resumeParticipant re-admits a reconnecting uid: restores them to
// s.users/userOrder at their prior seat if the draft is still live, resumes
// the timer, and notifies the session (spec §8 scenario 4: "owner receives a
// Player reconnected message and both participants receive the current
// pack again").
func (s *Session) resumeParticipant(uid models.UserID, snap Snapshot) {
	if snap.SeatIndex >= 0 && snap.SeatIndex < len(s.userOrder) {
		// userOrder is frozen while drafting (seating invariant); the seat
		// slot already exists, we just mark membership live again.
	} else {
		s.userOrder = append(s.userOrder, uid)
	}
	if _, ok := s.participants[uid]; !ok {
		s.participants[uid] = &Participant{UserID: uid, UserName: snap.UserName}
	}

	s.broadcast("message", messagePayload("Player reconnected", fmt.Sprintf("%s reconnected", snap.UserName), false, 0), uid)

	if s.drafting && s.traditional != nil {
		s.resumeDraftTimer()
		s.traditional.Resume()
		view := s.traditional.CurrentView(uid)
		s.emit(uid, "rejoinDraft", view)
		// spec §8 scenario 4: "both participants receive the current pack
		// again" — not just the one reconnecting.
		for _, vp := range s.traditional.VirtualPlayers() {
			if vp.Kind != draft.Human || vp.UserID == uid {
				continue
			}
			if _, connected := s.users[vp.UserID]; !connected {
				continue
			}
			s.emit(vp.UserID, "nextBooster", s.traditional.CurrentView(vp.UserID))
		}
	} else if s.drafting && s.winston != nil {
		s.emit(uid, "rejoinWinstonDraft", s.winstonSyncPayload())
		for other := range s.users {
			if other != uid {
				s.emit(other, "winstonDraftSync", s.winstonSyncPayload())
			}
		}
	}
}

type messageEvent struct {
	Title             string `json:"title"`
	Text              string `json:"text"`
	ShowConfirmButton bool   `json:"showConfirmButton"`
	Timer             int    `json:"timer"`
}

func messagePayload(title, text string, showConfirm bool, timer int) messageEvent {
	return messageEvent{Title: title, Text: text, ShowConfirmButton: showConfirm, Timer: timer}
}

func (s *Session) resumeDraftTimer() {
	s.startPickTimerForCurrentState()
}

func (s *Session) startPickTimerForCurrentState() {
	if s.stopTimer != nil {
		s.stopTimer()
		s.stopTimer = nil
	}
	if s.traditional == nil {
		return
	}
	d, ok := pickDuration(s.options.PickTimer, s.traditional.PickNumber())
	if !ok {
		return
	}
	s.stopTimer = startTimer(d,
		func(remaining int) {
			s.call(func() { s.broadcast("timer", map[string]int{"countdown": remaining}, "") })
		},
		func() {
			s.call(func() { s.broadcast("disableTimer", nil, "") })
		},
	)
}
