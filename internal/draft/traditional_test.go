package draft

import (
	"fmt"
	"testing"

	"github.com/cardtable/boosterdraft/internal/booster"
	"github.com/cardtable/boosterdraft/internal/bot"
	"github.com/cardtable/boosterdraft/internal/catalog"
	"github.com/cardtable/boosterdraft/internal/models"
	"github.com/stretchr/testify/require"
)

func threeHumanSeats() []VirtualPlayer {
	return []VirtualPlayer{
		{Kind: Human, UserID: "p1"},
		{Kind: Human, UserID: "p2"},
		{Kind: Human, UserID: "p3"},
	}
}

// tinyRounds builds boostersPerPlayer rounds of 3-card boosters, one per
// seat, with globally unique card ids so a pack's provenance is traceable.
func tinyRounds(boostersPerPlayer, seats, cardsPerPack int) [][]booster.Booster {
	rounds := make([][]booster.Booster, boostersPerPlayer)
	n := 0
	for r := 0; r < boostersPerPlayer; r++ {
		round := make([]booster.Booster, seats)
		for s := 0; s < seats; s++ {
			pack := make(booster.Booster, cardsPerPack)
			for c := 0; c < cardsPerPack; c++ {
				pack[c] = models.CardID(fmt.Sprintf("r%d-s%d-c%d-%d", r, s, c, n))
				n++
			}
			round[s] = pack
		}
		rounds[r] = round
	}
	return rounds
}

func TestTraditional_StartDealsEverySeatItsOwnOpeningPack(t *testing.T) {
	vps := threeHumanSeats()
	rounds := tinyRounds(1, 3, 3)
	d := NewTraditional(vps, rounds, 0)
	assignments, err := d.Start()
	require.NoError(t, err)
	require.Len(t, assignments, 3)
	for pos, vp := range vps {
		require.Equal(t, rounds[0][pos], []models.CardID(assignments[vp.UserID].Booster))
	}
}

func TestTraditional_PassDirectionAlternatesByRound(t *testing.T) {
	vps := threeHumanSeats()
	rounds := tinyRounds(2, 3, 2) // two packs of two cards per seat: one pass in each direction
	d := NewTraditional(vps, rounds, 0)
	_, err := d.Start()
	require.NoError(t, err)

	// Each seat picks one card from its own opening pack; on boosterNumber 0
	// (even) the pack then passes to the seat on its left.
	_, _, next, err := d.PickCard("p1", rounds[0][0][0], nil)
	require.NoError(t, err)
	require.Nil(t, next) // cycle not complete yet

	_, _, next, err = d.PickCard("p2", rounds[0][1][0], nil)
	require.NoError(t, err)
	require.Nil(t, next)

	_, ended, next, err := d.PickCard("p3", rounds[0][2][0], nil)
	require.NoError(t, err)
	require.False(t, ended)
	require.NotNil(t, next)

	// p2 now holds what remains of p1's opening pack (one card, since p1
	// already took one).
	require.Equal(t, []models.CardID{rounds[0][0][1]}, []models.CardID(next["p2"].Booster))
	require.Equal(t, []models.CardID{rounds[0][1][1]}, []models.CardID(next["p3"].Booster))
	require.Equal(t, []models.CardID{rounds[0][2][1]}, []models.CardID(next["p1"].Booster))

	// Draining pack 0 deals pack 1, each seat again starting from its own.
	_, _, _, err = d.PickCard("p1", rounds[0][2][1], nil)
	require.NoError(t, err)
	_, _, _, err = d.PickCard("p2", rounds[0][0][1], nil)
	require.NoError(t, err)
	_, ended, next, err = d.PickCard("p3", rounds[0][1][1], nil)
	require.NoError(t, err)
	require.False(t, ended)
	require.Equal(t, []models.CardID(rounds[1][0]), []models.CardID(next["p1"].Booster))

	// On boosterNumber 1 (odd) the pack passes the other way: to the right.
	_, _, _, err = d.PickCard("p1", rounds[1][0][0], nil)
	require.NoError(t, err)
	_, _, _, err = d.PickCard("p2", rounds[1][1][0], nil)
	require.NoError(t, err)
	_, ended, next, err = d.PickCard("p3", rounds[1][2][0], nil)
	require.NoError(t, err)
	require.False(t, ended)
	require.Equal(t, []models.CardID{rounds[1][0][1]}, []models.CardID(next["p3"].Booster))
	require.Equal(t, []models.CardID{rounds[1][1][1]}, []models.CardID(next["p1"].Booster))
	require.Equal(t, []models.CardID{rounds[1][2][1]}, []models.CardID(next["p2"].Booster))
}

func TestTraditional_RejectsDoublePick(t *testing.T) {
	vps := threeHumanSeats()
	rounds := tinyRounds(1, 3, 3)
	d := NewTraditional(vps, rounds, 0)
	_, err := d.Start()
	require.NoError(t, err)

	_, _, _, err = d.PickCard("p1", rounds[0][0][0], nil)
	require.NoError(t, err)

	_, _, _, err = d.PickCard("p1", rounds[0][0][1], nil)
	require.Error(t, err)
}

func TestTraditional_RejectsCardNotInBooster(t *testing.T) {
	vps := threeHumanSeats()
	rounds := tinyRounds(1, 3, 3)
	d := NewTraditional(vps, rounds, 0)
	_, err := d.Start()
	require.NoError(t, err)

	_, _, _, err = d.PickCard("p1", "not-a-real-card", nil)
	require.Error(t, err)
}

func TestTraditional_RequiresExactBurnCount(t *testing.T) {
	vps := threeHumanSeats()
	rounds := tinyRounds(1, 3, 3)
	d := NewTraditional(vps, rounds, 1)
	_, err := d.Start()
	require.NoError(t, err)

	_, _, _, err = d.PickCard("p1", rounds[0][0][0], nil)
	require.Error(t, err, "must burn exactly 1 card while 3 remain")

	_, _, _, err = d.PickCard("p1", rounds[0][0][0], []models.CardID{rounds[0][0][1]})
	require.NoError(t, err)
}

func TestTraditional_EndsAfterFinalRound(t *testing.T) {
	vps := threeHumanSeats()
	rounds := tinyRounds(1, 3, 1) // one card each, one round: drains immediately
	d := NewTraditional(vps, rounds, 0)
	_, err := d.Start()
	require.NoError(t, err)

	_, _, _, err = d.PickCard("p1", rounds[0][0][0], nil)
	require.NoError(t, err)
	_, _, _, err = d.PickCard("p2", rounds[0][1][0], nil)
	require.NoError(t, err)
	_, ended, next, err := d.PickCard("p3", rounds[0][2][0], nil)
	require.NoError(t, err)
	require.True(t, ended)
	require.Nil(t, next)
	require.Equal(t, Ended, d.State())
}

// TestTraditional_BotSeatPicksAreRecorded guards against a bot seat's picks
// vanishing from the draft log: PickedCards/PickLog must grow for a bot seat
// just like they do for a human one, so the sum of every seat's pickedCards
// equals packs x packSize once the draft ends.
func TestTraditional_BotSeatPicksAreRecorded(t *testing.T) {
	cat := catalog.New(map[models.CardID]catalog.CardFacts{}, []string{"ABC"}, nil, nil)
	botID := models.UserID("bot1")
	vps := []VirtualPlayer{
		{Kind: Human, UserID: "p1"},
		{Kind: BotSeat, UserID: botID, Bot: bot.New(cat, botID, 1)},
	}
	rounds := tinyRounds(1, 2, 1) // one card each, one round
	d := NewTraditional(vps, rounds, 0)
	_, err := d.Start()
	require.NoError(t, err)

	_, ended, _, err := d.PickCard("p1", rounds[0][0][0], nil)
	require.NoError(t, err)
	require.True(t, ended)

	require.Equal(t, []models.CardID{rounds[0][0][0]}, d.PickedCards("p1"))
	require.Equal(t, []models.CardID{rounds[0][1][0]}, d.PickedCards(botID))
	require.Len(t, d.PickLog(botID), 1)
}
