package draft

import "github.com/cardtable/boosterdraft/internal/models"

// SealedPool is the set of cards handed to one participant by a single-shot
// distribution (sealed or Jumpstart). There are no rounds and no timer.
type SealedPool struct {
	UserID models.UserID
	Cards  []models.CardID
}

// BuildSealedPools flattens N generated packs per participant into one flat
// card selection per participant, for the setCardSelection event.
func BuildSealedPools(boostersByUser map[models.UserID][][]models.CardID) []SealedPool {
	out := make([]SealedPool, 0, len(boostersByUser))
	for uid, packs := range boostersByUser {
		cards := make([]models.CardID, 0)
		for _, p := range packs {
			cards = append(cards, p...)
		}
		out = append(out, SealedPool{UserID: uid, Cards: cards})
	}
	return out
}
