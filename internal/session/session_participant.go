package session

import (
	"github.com/cardtable/boosterdraft/internal/direrr"
	"github.com/cardtable/boosterdraft/internal/models"
)

// chatTextLimit is the spec §6 chatMessage truncation length.
const chatTextLimit = 255

// requireParticipant is the unseated-caller guard for the per-participant
// setters below, mirroring requireOwner's no-op-unless-authorized shape but
// keyed on seating rather than ownership.
func (s *Session) requireParticipant(uid models.UserID) bool {
	_, ok := s.participants[uid]
	return ok
}

type updatedUserEvent struct {
	UserID            models.UserID `json:"userID"`
	UpdatedProperties interface{}   `json:"updatedProperties"`
}

// SetUserName updates a participant's display name (spec §6 setUserName),
// echoed to everyone else via updateUser so seat lists stay in sync.
func (s *Session) SetUserName(uid models.UserID, name string) error {
	var err error
	s.call(func() {
		if !s.requireParticipant(uid) {
			err = direrr.New(direrr.Permission, "session: %s is not seated in %s", uid, s.ID)
			return
		}
		p := s.participants[uid]
		if p.UserName == name {
			return
		}
		p.UserName = name
		s.broadcast("updateUser", updatedUserEvent{UserID: uid, UpdatedProperties: map[string]interface{}{"userName": name}}, uid)
	})
	return err
}

// SetCollection records uid's owned-card counts (spec §3 Participant.collection,
// consumed by booster.effectiveCollection via participantCollections).
func (s *Session) SetCollection(uid models.UserID, collection map[models.CardID]int) error {
	var err error
	s.call(func() {
		if !s.requireParticipant(uid) {
			err = direrr.New(direrr.Permission, "session: %s is not seated in %s", uid, s.ID)
			return
		}
		cp := make(map[models.CardID]int, len(collection))
		for k, v := range collection {
			cp[k] = v
		}
		s.participants[uid].Collection = cp
	})
	return err
}

// SetUseCollection toggles whether uid's collection participates in the
// effective-collection intersection (spec §3 Participant.useCollection).
func (s *Session) SetUseCollection(uid models.UserID, use bool) error {
	var err error
	s.call(func() {
		if !s.requireParticipant(uid) {
			err = direrr.New(direrr.Permission, "session: %s is not seated in %s", uid, s.ID)
			return
		}
		s.participants[uid].UseCollection = use
	})
	return err
}

type chatMessageEvent struct {
	UserID   models.UserID `json:"userID"`
	UserName string        `json:"userName"`
	Text     string        `json:"text"`
}

// ChatMessage rebroadcasts a truncated chat line to every other participant
// (spec §6 chatMessage, 255-char truncation), matching the teacher's
// handleClientMessage ChatMessage case (an unconditional SendAll with no
// further validation).
func (s *Session) ChatMessage(uid models.UserID, text string) error {
	var err error
	s.call(func() {
		if !s.requireParticipant(uid) {
			err = direrr.New(direrr.Permission, "session: %s is not seated in %s", uid, s.ID)
			return
		}
		if len(text) > chatTextLimit {
			text = text[:chatTextLimit]
		}
		name := s.participants[uid].UserName
		s.broadcast("chatMessage", chatMessageEvent{UserID: uid, UserName: name, Text: text}, uid)
	})
	return err
}
