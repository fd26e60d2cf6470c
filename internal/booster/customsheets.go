package booster

import (
	"math/rand"
	"sort"

	"github.com/cardtable/boosterdraft/internal/catalog"
	"github.com/cardtable/boosterdraft/internal/models"
)

// generateFromSheets implements the custom-sheet path (spec §4.2): each
// named sheet contributes a fixed per-pack count; the largest sheet is
// color-balanced if it is at least five cards wide.
func generateFromSheets(cat *catalog.Catalog, list *CustomCardList, opts Options, quantity int, rng *rand.Rand) ([]Booster, error) {
	names := make([]string, 0, len(list.Sheets))
	for name := range list.Sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	bags := make(map[string]*bag, len(names))
	for _, name := range names {
		bags[name] = newBag(list.Sheets[name])
	}

	for _, name := range names {
		need := list.CardsPerBooster[name] * quantity
		if bags[name].size() < need {
			return nil, shortage("sheet %q needs %d cards, has %d", name, need, bags[name].size())
		}
	}

	largest := largestSheet(list.Sheets)

	colorOf := func(id models.CardID) models.Color {
		f, _ := cat.Card(id)
		return f.ColorIdentity
	}

	packs := make([]Booster, 0, quantity)
	for p := 0; p < quantity; p++ {
		pack := make([]models.CardID, 0)
		for _, name := range names {
			count := list.CardsPerBooster[name]
			if name == largest && len(list.Sheets[name]) >= 5 {
				pack = append(pack, drawCommons(bags[name], colorOf, true, count, rng)...)
				continue
			}
			pack = append(pack, bags[name].drawN(count, rng)...)
		}
		packs = append(packs, pack)
	}
	return packs, nil
}

// generateFromCube implements the custom-cube path: 15 cards per pack from
// a flat custom list, color-balanced identically to the regular path.
func generateFromCube(cat *catalog.Catalog, list *CustomCardList, opts Options, quantity int, rng *rand.Rand) ([]Booster, error) {
	const cubePackSize = 15
	b := newBag(list.Cards)
	if b.size() < quantity*cubePackSize {
		return nil, shortage("custom cube needs %d cards, has %d", quantity*cubePackSize, b.size())
	}

	colorOf := func(id models.CardID) models.Color {
		f, _ := cat.Card(id)
		return f.ColorIdentity
	}

	packs := make([]Booster, 0, quantity)
	for p := 0; p < quantity; p++ {
		packs = append(packs, drawCommons(b, colorOf, opts.ColorBalance, cubePackSize, rng))
	}
	return packs, nil
}

func largestSheet(sheets map[string]map[models.CardID]int) string {
	var best string
	bestN := -1
	names := make([]string, 0, len(sheets))
	for name := range sheets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		n := len(sheets[name])
		if n > bestN {
			bestN = n
			best = name
		}
	}
	return best
}
