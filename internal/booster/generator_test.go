package booster

import (
	"fmt"
	"testing"

	"github.com/cardtable/boosterdraft/internal/catalog"
	"github.com/cardtable/boosterdraft/internal/models"
	"github.com/stretchr/testify/require"
)

// buildCatalog lays out a single-set catalog with enough supply to clear
// every rarity target at the given quantity: 5 colors x commons/uncommons,
// plus a handful of rares and mythics.
func buildCatalog(t *testing.T, set string) *catalog.Catalog {
	t.Helper()
	cards := make(map[models.CardID]catalog.CardFacts)
	id := 0
	next := func(rarity models.Rarity, color models.Color) models.CardID {
		id++
		cid := models.CardID(fmt.Sprintf("%s-%03d", set, id))
		cards[cid] = catalog.CardFacts{Set: set, Rarity: rarity, ColorIdentity: color, InBooster: true}
		return cid
	}
	for _, c := range models.WUBRG {
		for i := 0; i < 6; i++ {
			next(models.Common, c)
		}
		next(models.Uncommon, c)
	}
	for i := 0; i < 6; i++ {
		next(models.Rare, models.Multi)
	}
	for i := 0; i < 3; i++ {
		next(models.Mythic, models.Multi)
	}
	return catalog.New(cards, []string{set}, nil, nil)
}

func TestGenerate_RarityTargets(t *testing.T) {
	cat := buildCatalog(t, "ABC")
	opts := Options{SetRestriction: []string{"ABC"}, MaxRarity: models.Mythic}
	packs, err := Generate(cat, nil, opts, 4, NewSeededRNG(1))
	require.NoError(t, err)
	require.Len(t, packs, 4)
	for _, pack := range packs {
		require.Len(t, pack, 14)
		var rareOrMythic, uncommon, common int
		for _, id := range pack {
			f, ok := cat.Card(id)
			require.True(t, ok)
			switch f.Rarity {
			case models.Rare, models.Mythic:
				rareOrMythic++
			case models.Uncommon:
				uncommon++
			case models.Common:
				common++
			}
		}
		require.Equal(t, 1, rareOrMythic)
		require.Equal(t, 3, uncommon)
		require.Equal(t, 10, common)
	}
}

func TestGenerate_SetRestriction(t *testing.T) {
	cat := buildCatalog(t, "ABC")
	abc := cat.Cards()
	xyzCards := make(map[models.CardID]catalog.CardFacts, len(abc))
	for id, f := range abc {
		xyzCards[models.CardID("xyz-"+string(id))] = catalog.CardFacts{Set: "XYZ", Rarity: f.Rarity, ColorIdentity: f.ColorIdentity, InBooster: true}
	}
	merged := make(map[models.CardID]catalog.CardFacts, len(abc)+len(xyzCards))
	for id, f := range abc {
		merged[id] = f
	}
	for id, f := range xyzCards {
		merged[id] = f
	}
	cat = catalog.New(merged, []string{"ABC", "XYZ"}, nil, nil)

	packs, err := Generate(cat, nil, Options{SetRestriction: []string{"ABC"}, MaxRarity: models.Mythic}, 3, NewSeededRNG(2))
	require.NoError(t, err)
	for _, pack := range packs {
		for _, id := range pack {
			f, _ := cat.Card(id)
			require.Equal(t, "ABC", f.Set)
		}
	}
}

func TestGenerate_ColorBalance(t *testing.T) {
	cat := buildCatalog(t, "ABC")
	opts := Options{SetRestriction: []string{"ABC"}, MaxRarity: models.Mythic, ColorBalance: true}
	packs, err := Generate(cat, nil, opts, 1, NewSeededRNG(3))
	require.NoError(t, err)
	require.Len(t, packs, 1)
	seen := map[models.Color]bool{}
	for _, id := range packs[0] {
		f, _ := cat.Card(id)
		if f.Rarity == models.Common {
			seen[f.ColorIdentity] = true
		}
	}
	for _, c := range models.WUBRG {
		require.True(t, seen[c], "expected at least one %s common", c)
	}
}

func TestGenerate_ReproducibleWithSameSeed(t *testing.T) {
	cat := buildCatalog(t, "ABC")
	opts := Options{SetRestriction: []string{"ABC"}, MaxRarity: models.Mythic, ColorBalance: true, Foil: true}
	a, err := Generate(cat, nil, opts, 5, NewSeededRNG(42))
	require.NoError(t, err)
	b, err := Generate(cat, nil, opts, 5, NewSeededRNG(42))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestGenerate_ShortageWhenSupplyInsufficient(t *testing.T) {
	cat := buildCatalog(t, "ABC")
	opts := Options{SetRestriction: []string{"ABC"}, MaxRarity: models.Mythic}
	_, err := Generate(cat, nil, opts, 1000, NewSeededRNG(4))
	require.Error(t, err)
	var be *Error
	require.ErrorAs(t, err, &be)
}

func TestGenerate_MaxRarityCommonOnly(t *testing.T) {
	cat := buildCatalog(t, "ABC")
	opts := Options{SetRestriction: []string{"ABC"}, MaxRarity: models.Common}
	packs, err := Generate(cat, nil, opts, 2, NewSeededRNG(5))
	require.NoError(t, err)
	for _, pack := range packs {
		require.Len(t, pack, 14)
		for _, id := range pack {
			f, _ := cat.Card(id)
			require.Equal(t, models.Common, f.Rarity)
		}
	}
}
