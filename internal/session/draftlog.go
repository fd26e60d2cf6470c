package session

import (
	"time"

	"github.com/cardtable/boosterdraft/internal/draft"
	"github.com/cardtable/boosterdraft/internal/models"
)

// DraftLog is the in-memory object dispatched per draftLogRecipients (spec
// §6). It is never persisted to disk; the core only builds and emits it.
type DraftLog struct {
	SessionID      models.SessionID
	Time           time.Time
	SetRestriction []string
	Boosters       [][]models.CardID // deep copy at draft start
	Users          map[models.UserID]DraftLogUser
}

// DraftLogUser is one participant's (or bot's) entry in a DraftLog.
type DraftLogUser struct {
	UserName string
	UserID   models.UserID
	IsBot    bool
	Picks    []draft.PickLogEntry
	Cards    []models.CardID
}
