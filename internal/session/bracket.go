package session

import "github.com/cardtable/boosterdraft/internal/models"

// Bracket is a minimal single-elimination bracket, supplementing the core
// draft flow for tables that want to pair off post-draft matches (spec's
// owner-gated op list names generateBracket/updateBracket without
// specifying their shape; this is the smallest structure that satisfies
// both operations).
type Bracket struct {
	Matches []Match
}

// Match is one bracket matchup. Round 0 is the first round; Slot orders
// matches within a round for seeding display.
type Match struct {
	Round  int
	Slot   int
	A      models.UserID
	B      models.UserID
	Winner models.UserID
}

// generateBracket seeds a single-elimination bracket from seeding in order.
// Byes (an odd seed count) are represented by an empty B with Winner
// pre-filled to A.
func generateBracket(seeding []models.UserID) *Bracket {
	b := &Bracket{}
	for i := 0; i < len(seeding); i += 2 {
		m := Match{Round: 0, Slot: i / 2, A: seeding[i]}
		if i+1 < len(seeding) {
			m.B = seeding[i+1]
		} else {
			m.Winner = m.A
		}
		b.Matches = append(b.Matches, m)
	}
	return b
}

// updateBracket records a winner for the named match and, once every match
// in the round has a winner, appends the next round's pairings.
func (b *Bracket) update(round, slot int, winner models.UserID) bool {
	found := false
	for i := range b.Matches {
		if b.Matches[i].Round == round && b.Matches[i].Slot == slot {
			b.Matches[i].Winner = winner
			found = true
			break
		}
	}
	if !found {
		return false
	}

	var roundWinners []models.UserID
	for _, m := range b.Matches {
		if m.Round == round {
			if m.Winner == "" {
				return true // round incomplete, nothing more to do yet
			}
			roundWinners = append(roundWinners, m.Winner)
		}
	}
	if len(roundWinners) <= 1 {
		return true
	}
	nextRound := round + 1
	for _, m := range b.Matches {
		if m.Round == nextRound {
			return true // next round already generated
		}
	}
	for i := 0; i < len(roundWinners); i += 2 {
		m := Match{Round: nextRound, Slot: i / 2, A: roundWinners[i]}
		if i+1 < len(roundWinners) {
			m.B = roundWinners[i+1]
		} else {
			m.Winner = m.A
		}
		b.Matches = append(b.Matches, m)
	}
	return true
}
