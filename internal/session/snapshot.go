package session

import "github.com/cardtable/boosterdraft/internal/models"

// Snapshot is what gets stashed in disconnectedUsers when a drafting
// participant disconnects (spec §3 Lifecycles). It carries just enough to
// restore the participant on reconnect or to hand off to a bot substitute.
type Snapshot struct {
	UserName    string
	SeatIndex   int
	PickedCards []models.CardID
}
