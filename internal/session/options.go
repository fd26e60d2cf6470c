package session

import (
	"github.com/cardtable/boosterdraft/internal/booster"
	"github.com/cardtable/boosterdraft/internal/models"
)

// Options is the closed set of per-session configuration (spec §3
// "Configuration options"). There is no open/dynamic bag: every field is
// explicit so a changed-keys delta can be computed by plain struct
// comparison instead of dynamic diffing.
type Options struct {
	SetRestriction      []string
	IsPublic            bool
	IgnoreCollections   bool
	BoostersPerPlayer   int
	Bots                int
	MaxPlayers          int
	MaxRarity           models.Rarity
	ColorBalance        bool
	MaxDuplicates       map[models.Rarity]int
	Foil                bool
	UseCustomCardList   bool
	CustomCardList      *booster.CustomCardList
	BurnedCardsPerRound int
	CustomBoosters      []string
	DistributionMode    models.DistributionMode
	DraftLogRecipients  models.DraftLogRecipients
	PickTimer           int
}

// DefaultOptions matches the spec's invariant minimums (boostersPerPlayer
// >= 1, bots >= 0, maxPlayers >= 0, burnedCardsPerRound >= 0) with
// reasonable production defaults.
func DefaultOptions() Options {
	return Options{
		BoostersPerPlayer: 3,
		MaxRarity:         models.Mythic,
		MaxDuplicates: map[models.Rarity]int{
			models.Common:   4,
			models.Uncommon: 4,
			models.Rare:     4,
			models.Mythic:   4,
		},
		DistributionMode:   models.DistributionRegular,
		DraftLogRecipients: models.LogOwner,
	}
}

// stringSlicesEqual and maxDuplicatesEqual back the
// idempotent set-option semantics (spec §4.5): "if the new value equals the
// current value, do nothing."
func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func maxDuplicatesEqual(a, b map[models.Rarity]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
