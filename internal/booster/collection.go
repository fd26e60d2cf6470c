package booster

import (
	"github.com/cardtable/boosterdraft/internal/catalog"
	"github.com/cardtable/boosterdraft/internal/models"
)

// effectiveCollection implements spec §4.2 "Effective collection": the
// intersection of every collection-using participant's owned counts,
// restricted to in-booster cards, or (absent any such participant, or when
// ignoreCollections is set) every in-booster card at maxDuplicates[rarity]
// copies.
func effectiveCollection(cat *catalog.Catalog, participants []ParticipantCollection, maxDup map[models.Rarity]int, ignoreCollections bool) map[models.CardID]int {
	contributors := make([]ParticipantCollection, 0, len(participants))
	if !ignoreCollections {
		for _, p := range participants {
			if p.UseCollection && len(p.Owned) > 0 {
				contributors = append(contributors, p)
			}
		}
	}

	if len(contributors) == 0 {
		out := make(map[models.CardID]int)
		for id, facts := range cat.Cards() {
			if !facts.InBooster {
				continue
			}
			out[id] = maxDup[facts.Rarity]
		}
		return out
	}

	out := make(map[models.CardID]int)
	for id, facts := range cat.Cards() {
		if !facts.InBooster {
			continue
		}
		min := -1
		for _, p := range contributors {
			n := p.Owned[id]
			if min == -1 || n < min {
				min = n
			}
		}
		if min > 0 {
			out[id] = min
		}
	}
	return out
}

// restrictedByRarity buckets an effective collection into the four rarity
// buckets, dropping cards whose set is not in setRestriction (when
// setRestriction is non-empty).
func restrictedByRarity(cat *catalog.Catalog, collection map[models.CardID]int, setRestriction []string) map[models.Rarity]map[models.CardID]int {
	allowed := func(set string) bool {
		if len(setRestriction) == 0 {
			return true
		}
		for _, s := range setRestriction {
			if s == set {
				return true
			}
		}
		return false
	}

	buckets := map[models.Rarity]map[models.CardID]int{
		models.Common:   {},
		models.Uncommon: {},
		models.Rare:     {},
		models.Mythic:   {},
	}
	for id, count := range collection {
		facts, ok := cat.Card(id)
		if !ok || !allowed(facts.Set) {
			continue
		}
		buckets[facts.Rarity][id] = count
	}
	return buckets
}
