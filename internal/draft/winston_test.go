package draft

import (
	"testing"

	"github.com/cardtable/boosterdraft/internal/booster"
	"github.com/cardtable/boosterdraft/internal/models"
	"github.com/stretchr/testify/require"
)

func cardPool(n int) []models.CardID {
	out := make([]models.CardID, n)
	for i := range out {
		out[i] = models.CardID(string(rune('A' + i)))
	}
	return out
}

func TestWinston_RequiresAtLeastThreeCards(t *testing.T) {
	_, err := NewWinston([2]models.UserID{"a", "b"}, cardPool(2), booster.NewSeededRNG(1))
	require.Error(t, err)
}

func TestWinston_TakeAdvancesTurnAndReplenishesPile(t *testing.T) {
	w, err := NewWinston([2]models.UserID{"a", "b"}, cardPool(6), booster.NewSeededRNG(1))
	require.NoError(t, err)
	require.Equal(t, models.UserID("a"), w.CurrentPlayer())

	before := w.Pile(0)
	require.NoError(t, w.Take("a"))
	require.Equal(t, before, w.PickedCards("a"))
	require.Equal(t, models.UserID("b"), w.CurrentPlayer())
	require.Equal(t, 0, w.CurrentPileIndex())
	require.Len(t, w.Pile(0), 1)
	require.NotEqual(t, before, w.Pile(0))
}

func TestWinston_RejectsOutOfTurnAction(t *testing.T) {
	w, err := NewWinston([2]models.UserID{"a", "b"}, cardPool(6), booster.NewSeededRNG(1))
	require.NoError(t, err)
	require.Error(t, w.Take("b"))
	require.Error(t, w.Skip("b"))
}

func TestWinston_SkipAdvancesThroughPilesThenWraps(t *testing.T) {
	w, err := NewWinston([2]models.UserID{"a", "b"}, cardPool(6), booster.NewSeededRNG(1))
	require.NoError(t, err)

	require.NoError(t, w.Skip("a")) // pile 0 -> 1
	require.Equal(t, 1, w.CurrentPileIndex())
	require.Equal(t, models.UserID("a"), w.CurrentPlayer()) // still a's turn

	require.NoError(t, w.Skip("a")) // pile 1 -> 2
	require.Equal(t, 2, w.CurrentPileIndex())

	require.NoError(t, w.Skip("a")) // skip pile 2: takes top of pool, advances turn
	require.Equal(t, models.UserID("b"), w.CurrentPlayer())
	require.Equal(t, 0, w.CurrentPileIndex())
	require.Len(t, w.PickedCards("a"), 1)
}

func TestWinston_SkippingFinalPileWithEmptyPoolIsRejected(t *testing.T) {
	w, err := NewWinston([2]models.UserID{"a", "b"}, cardPool(3), booster.NewSeededRNG(1))
	require.NoError(t, err)
	require.NoError(t, w.Skip("a")) // pile 0 -> 1, pool already empty but pile 1 is non-empty
	require.NoError(t, w.Skip("a")) // pile 1 -> 2
	require.Error(t, w.Skip("a"))   // pile 2 with an empty pool: nothing to hand over
}

func TestWinston_EndsWhenAllPilesAndPoolExhausted(t *testing.T) {
	w, err := NewWinston([2]models.UserID{"a", "b"}, cardPool(3), booster.NewSeededRNG(1))
	require.NoError(t, err)
	require.False(t, w.Ended())

	require.NoError(t, w.Take("a")) // pile 0; pool is already empty, so it empties for good
	require.NoError(t, w.Skip("b")) // pile 0 (empty) auto-skips to pile 1
	require.NoError(t, w.Take("b")) // pile 1 empties too
	require.NoError(t, w.Skip("a")) // pile 0, 1 both empty: cascades straight to pile 2
	require.NoError(t, w.Take("a")) // last pile taken: every pile and the pool are now empty
	require.True(t, w.Ended())
	require.ElementsMatch(t, []models.CardID{"A", "B"}, w.PickedCards("a"))
	require.ElementsMatch(t, []models.CardID{"C"}, w.PickedCards("b"))
}
