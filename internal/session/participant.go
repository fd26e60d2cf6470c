package session

import "github.com/cardtable/boosterdraft/internal/models"

// Participant is one connected client's record inside a Session (spec §3
// "Participant"). Session.Join creates it and Leave or RemovePlayer drops
// it, so it does not outlive the Session it was created in. SessionID is
// not set anywhere in this package and stays empty.
type Participant struct {
	UserID        models.UserID
	UserName      string
	Collection    map[models.CardID]int
	UseCollection bool
	SessionID     models.SessionID
}

// NewParticipant builds a fresh, sessionless participant.
func NewParticipant(id models.UserID, name string) *Participant {
	return &Participant{
		UserID:     id,
		UserName:   name,
		Collection: map[models.CardID]int{},
	}
}
