package booster

import "github.com/cardtable/boosterdraft/internal/models"

// Booster is one ordered pack of cards as handed to a single participant.
type Booster []models.CardID

// ParticipantCollection is the subset of a participant's state the
// generator needs to compute the effective collection.
type ParticipantCollection struct {
	Owned         map[models.CardID]int
	UseCollection bool
}

// CustomCardList is either a flat cube (Cards non-empty, Sheets empty) or a
// sheet-based custom list (Sheets non-empty; CardsPerBooster gives the draw
// count per sheet per pack).
type CustomCardList struct {
	// Cards is the flat cube list: 15 are drawn per pack, color-balanced.
	Cards map[models.CardID]int
	// Sheets, when non-nil, names each sheet's bag of cards.
	Sheets map[string]map[models.CardID]int
	// CardsPerBooster gives the per-pack draw count for each sheet. Only
	// meaningful when Sheets is non-nil.
	CardsPerBooster map[string]int
}

func (l *CustomCardList) isSheetBased() bool {
	return l != nil && len(l.Sheets) > 0
}

// Options mirrors the subset of session configuration the generator needs.
// SetRestriction, when non-empty, is already resolved to the single
// restriction in effect for the round being generated (the per-round
// customBoosters override is applied by the caller before invoking
// Generate).
type Options struct {
	SetRestriction    []string
	IgnoreCollections bool
	MaxRarity         models.Rarity
	ColorBalance      bool
	MaxDuplicates     map[models.Rarity]int
	Foil              bool
	UseCustomCardList bool
	CustomCardList    *CustomCardList
}

// Targets is the per-pack count of rare-or-mythic, uncommon, and common
// slots, before foil substitution.
type Targets struct {
	Rare     int
	Uncommon int
	Common   int
}

func targetsFor(maxRarity models.Rarity) Targets {
	switch maxRarity {
	case models.Mythic, models.Rare:
		return Targets{Rare: 1, Uncommon: 3, Common: 10}
	case models.Uncommon:
		return Targets{Rare: 0, Uncommon: 3, Common: 11}
	case models.Common:
		return Targets{Rare: 0, Uncommon: 0, Common: 14}
	default:
		return Targets{Rare: 1, Uncommon: 3, Common: 10}
	}
}
