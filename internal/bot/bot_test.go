package bot

import (
	"testing"

	"github.com/cardtable/boosterdraft/internal/booster"
	"github.com/cardtable/boosterdraft/internal/catalog"
	"github.com/cardtable/boosterdraft/internal/models"
	"github.com/stretchr/testify/require"
)

func testCatalog() *catalog.Catalog {
	cards := map[models.CardID]catalog.CardFacts{
		"w1": {Set: "ABC", Rarity: models.Common, ColorIdentity: models.White, InBooster: true},
		"u1": {Set: "ABC", Rarity: models.Common, ColorIdentity: models.Blue, InBooster: true},
		"b1": {Set: "ABC", Rarity: models.Rare, ColorIdentity: models.Black, InBooster: true},
		"r1": {Set: "ABC", Rarity: models.Common, ColorIdentity: models.Red, InBooster: true},
	}
	return catalog.New(cards, []string{"ABC"}, nil, nil)
}

func TestBot_PickIsDeterministicPerSeed(t *testing.T) {
	cat := testCatalog()
	pack := booster.Booster{"w1", "u1", "b1", "r1"}

	b1 := New(cat, "same-id", 0)
	b2 := New(cat, "same-id", 0)

	idx1 := b1.Pick(append(booster.Booster(nil), pack...))
	idx2 := b2.Pick(append(booster.Booster(nil), pack...))
	require.Equal(t, idx1, idx2)
	require.Equal(t, b1.Cards(), b2.Cards())
}

func TestBot_DifferentSeatIndexChangesSeed(t *testing.T) {
	cat := testCatalog()
	a := New(cat, "same-id", 0)
	b := New(cat, "same-id", 1)
	// The seat index offsets the fnv seed, so the two bots neither share
	// state nor draw the same first value.
	require.NotSame(t, a, b)
	require.NotEqual(t, a.rng.Int63(), b.rng.Int63())
}

func TestBot_PickPrefersCommittedColor(t *testing.T) {
	cat := testCatalog()
	b := New(cat, "seed", 0)
	for i := 0; i < 10; i++ {
		b.FeedPriorPick("w1") // commit heavily to white; dwarfs the pick-noise term
	}
	pack := booster.Booster{"w1", "u1"}
	idx := b.Pick(pack)
	require.Equal(t, "w1", string(pack[idx]))
}

func TestBot_BurnAvoidsCommittedColor(t *testing.T) {
	cat := testCatalog()
	b := New(cat, "seed", 0)
	b.FeedPriorPick("w1") // commit heavily to white
	b.FeedPriorPick("w1")
	b.FeedPriorPick("w1")

	pack := booster.Booster{"w1", "u1"}
	idx := b.Burn(pack)
	require.Equal(t, "u1", string(pack[idx]), "bot should burn the card farthest from its committed color")
}

func TestBot_PickOnEmptyPackReturnsSentinel(t *testing.T) {
	cat := testCatalog()
	b := New(cat, "seed", 0)
	require.Equal(t, -1, b.Pick(nil))
	require.Equal(t, -1, b.Burn(nil))
}
