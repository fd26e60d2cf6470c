package booster

import (
	"math/rand"

	"github.com/cardtable/boosterdraft/internal/catalog"
	"github.com/cardtable/boosterdraft/internal/models"
)

// foilChance is the probability a pack's foil slot is populated at all
// (spec §4.2).
const foilChance = 15.0 / 63.0

// mythicPromotionChance is the probability a rare slot is promoted to
// mythic when maxRarity allows mythics and the mythic pool is non-empty.
const mythicPromotionChance = 1.0 / 8.0

// Generate produces quantity boosters from collection under opts. It is a
// pure function of its inputs and rng: same seed, same inputs, same output
// (spec §8).
func Generate(cat *catalog.Catalog, participants []ParticipantCollection, opts Options, quantity int, rng *rand.Rand) ([]Booster, error) {
	if opts.UseCustomCardList && opts.CustomCardList != nil {
		if opts.CustomCardList.isSheetBased() {
			return generateFromSheets(cat, opts.CustomCardList, opts, quantity, rng)
		}
		return generateFromCube(cat, opts.CustomCardList, opts, quantity, rng)
	}
	return generateRegular(cat, participants, opts, quantity, rng)
}

func generateRegular(cat *catalog.Catalog, participants []ParticipantCollection, opts Options, quantity int, rng *rand.Rand) ([]Booster, error) {
	maxDup := opts.MaxDuplicates
	if maxDup == nil {
		maxDup = map[models.Rarity]int{models.Common: 4, models.Uncommon: 4, models.Rare: 4, models.Mythic: 4}
	}
	collection := effectiveCollection(cat, participants, maxDup, opts.IgnoreCollections)
	buckets := restrictedByRarity(cat, collection, opts.SetRestriction)
	targets := targetsFor(opts.MaxRarity)

	commonBag := newBag(buckets[models.Common])
	uncommonBag := newBag(buckets[models.Uncommon])
	rareBag := newBag(buckets[models.Rare])
	mythicBag := newBag(buckets[models.Mythic])

	allowMythic := (opts.MaxRarity == models.Mythic) && mythicBag.size() > 0

	if err := checkSupply(quantity, targets, commonBag.size(), uncommonBag.size(), rareBag.size(), mythicBag.size(), allowMythic); err != nil {
		return nil, err
	}

	var landSlot catalog.LandSlot
	if len(opts.SetRestriction) == 1 {
		if slot, ok := cat.LandSlotFor(opts.SetRestriction[0]); ok {
			slot.Setup(buckets[models.Common])
			commonBag = newBag(buckets[models.Common])
			landSlot = slot
		}
	}

	colorOf := func(id models.CardID) models.Color {
		f, _ := cat.Card(id)
		return f.ColorIdentity
	}

	packs := make([]Booster, 0, quantity)
	for p := 0; p < quantity; p++ {
		pack := make([]models.CardID, 0, targets.Rare+targets.Uncommon+targets.Common+2)

		foilsAdded := 0
		var foilCard models.CardID
		var foilOK bool
		if opts.Foil && rng.Float64() < foilChance {
			foilCard, foilOK = drawFoil(rng, mythicBag, rareBag, uncommonBag, commonBag)
			if foilOK {
				foilsAdded = 1
			}
		}

		for i := 0; i < targets.Rare; i++ {
			if allowMythic && rng.Float64() < mythicPromotionChance && mythicBag.size() > 0 {
				pack = append(pack, mythicBag.draw(rng))
			} else if rareBag.size() > 0 {
				pack = append(pack, rareBag.draw(rng))
			} else if mythicBag.size() > 0 {
				pack = append(pack, mythicBag.draw(rng))
			}
		}

		pack = append(pack, uncommonBag.drawN(targets.Uncommon, rng)...)

		commonTarget := targets.Common - foilsAdded
		if commonTarget < 0 {
			commonTarget = 0
		}
		commons := drawCommons(commonBag, colorOf, opts.ColorBalance, commonTarget, rng)
		pack = append(pack, commons...)

		if foilOK {
			pack = append(pack, foilCard)
		}

		if landSlot != nil {
			if id, ok := landSlot.Pick(rng); ok {
				pack = append(pack, id)
			}
		}

		packs = append(packs, pack)
	}
	return packs, nil
}

// drawFoil rolls the foil rarity per spec §4.2's cumulative-weight table
// and draws one card of that rarity, falling through to the next rarity
// down if the chosen pool is empty.
func drawFoil(rng *rand.Rand, mythicBag, rareBag, uncommonBag, commonBag *bag) (models.CardID, bool) {
	r := rng.Float64()
	switch {
	case r < 1.0/128.0 && mythicBag.size() > 0:
		return mythicBag.draw(rng), true
	case r < 8.0/128.0 && rareBag.size() > 0:
		return rareBag.draw(rng), true
	case r < 4.0/16.0 && uncommonBag.size() > 0:
		return uncommonBag.draw(rng), true
	case commonBag.size() > 0:
		return commonBag.draw(rng), true
	}
	return "", false
}

// drawCommons implements the color-balance pass: one of each WUBRG color
// first (if the pool has one), then fill to target, then shuffle the block
// so pick order doesn't leak which slots were color-balanced.
func drawCommons(commonBag *bag, colorOf func(models.CardID) models.Color, colorBalance bool, target int, rng *rand.Rand) []models.CardID {
	if target <= 0 {
		return nil
	}
	out := make([]models.CardID, 0, target)

	if colorBalance {
		remaining := make(map[models.CardID]int, commonBag.size())
		for _, id := range commonBag.slots {
			remaining[id]++
		}
		byColor, rest := partitionByColor(remaining, colorOf)
		for _, c := range models.WUBRG {
			if len(out) >= target {
				break
			}
			if byColor[c].size() > 0 {
				out = append(out, byColor[c].draw(rng))
			}
		}
		// rebuild commonBag from whatever is left across the partitions so
		// the fill-rest pass below draws from the true remaining pool.
		merged := map[models.CardID]int{}
		for _, b := range byColor {
			for _, id := range b.slots {
				merged[id]++
			}
		}
		for _, id := range rest.slots {
			merged[id]++
		}
		*commonBag = *newBag(merged)
	}

	remainingNeeded := target - len(out)
	out = append(out, commonBag.drawN(remainingNeeded, rng)...)

	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func checkSupply(quantity int, targets Targets, commonN, uncommonN, rareN, mythicN int, allowMythic bool) error {
	if commonN < quantity*targets.Common {
		return shortage("need %d commons, have %d", quantity*targets.Common, commonN)
	}
	if uncommonN < quantity*targets.Uncommon {
		return shortage("need %d uncommons, have %d", quantity*targets.Uncommon, uncommonN)
	}
	rareSupply := rareN
	if allowMythic {
		rareSupply += mythicN
	}
	if rareSupply < quantity*targets.Rare {
		return shortage("need %d rares/mythics, have %d", quantity*targets.Rare, rareSupply)
	}
	return nil
}
