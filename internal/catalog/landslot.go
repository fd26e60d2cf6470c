package catalog

import (
	"math/rand"

	"github.com/cardtable/boosterdraft/internal/models"
)

// LandSlot is a per-set component that may consume basic/dual/etc. land
// cards out of the common pool before booster generation starts, and hands
// back one card per pack on demand.
type LandSlot interface {
	// Setup removes this slot's cards from commonsPool (by CardID) so they
	// are never drawn into a regular common slot, and records them for
	// Pick.
	Setup(commonsPool map[models.CardID]int)
	// Pick returns one card for the land slot of a single pack. Called once
	// per generated pack. Returns false if the slot has nothing left.
	Pick(rng *rand.Rand) (models.CardID, bool)
}

// staticLandSlot cycles uniformly at random through a fixed list of land
// cards, never exhausting (lands are assumed to have supply far in excess of
// anything a draft needs).
type staticLandSlot struct {
	lands []models.CardID
}

// NewStaticLandSlot builds a LandSlot over a fixed list of land CardIDs,
// removing them from the common pool they'd otherwise be drawn from.
func NewStaticLandSlot(lands []models.CardID) LandSlot {
	return &staticLandSlot{lands: append([]models.CardID(nil), lands...)}
}

func (s *staticLandSlot) Setup(commonsPool map[models.CardID]int) {
	for _, id := range s.lands {
		delete(commonsPool, id)
	}
}

func (s *staticLandSlot) Pick(rng *rand.Rand) (models.CardID, bool) {
	if len(s.lands) == 0 {
		return "", false
	}
	return s.lands[rng.Intn(len(s.lands))], true
}
