package draft

import (
	"fmt"
	"math/rand"

	"github.com/cardtable/boosterdraft/internal/models"
)

// Winston is the two-player pile draft (spec §4.4 "Winston"). currentPile
// is always one of 0,1,2; round alternates 0/1 between the two UserIDs in
// players.
type Winston struct {
	players     [2]models.UserID
	piles       [3][]models.CardID
	cardPool    []models.CardID
	currentPile int
	round       int
	pickedCards map[models.UserID][]models.CardID
	ended       bool
}

// NewWinston shuffles a copy of cardPool (the concatenation of every
// generated pack) with rng and seeds the three piles (one card each) from it.
func NewWinston(players [2]models.UserID, cardPool []models.CardID, rng *rand.Rand) (*Winston, error) {
	pool := append([]models.CardID(nil), cardPool...)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	if len(pool) < 3 {
		return nil, fmt.Errorf("draft: winston needs at least 3 cards, have %d", len(pool))
	}

	w := &Winston{
		players: players,
		pickedCards: map[models.UserID][]models.CardID{
			players[0]: nil,
			players[1]: nil,
		},
	}
	for i := 0; i < 3; i++ {
		w.piles[i] = []models.CardID{pool[i]}
	}
	w.cardPool = pool[3:]
	return w, nil
}

func (w *Winston) currentPlayer() models.UserID { return w.players[w.round] }

func (w *Winston) Ended() bool { return w.ended }

func (w *Winston) CurrentPlayer() models.UserID { return w.currentPlayer() }

func (w *Winston) CurrentPileIndex() int { return w.currentPile }

func (w *Winston) Pile(i int) []models.CardID {
	return append([]models.CardID(nil), w.piles[i]...)
}

// Take implements the "take pile" operation: the current player keeps the
// pile, it is replenished with one card (if any remain), and the turn
// advances.
func (w *Winston) Take(userID models.UserID) error {
	if w.ended {
		return fmt.Errorf("draft: winston draft already ended")
	}
	if userID != w.currentPlayer() {
		return fmt.Errorf("draft: not %s's turn", userID)
	}
	pile := w.piles[w.currentPile]
	w.pickedCards[userID] = append(w.pickedCards[userID], pile...)
	if len(w.cardPool) > 0 {
		w.piles[w.currentPile] = []models.CardID{w.cardPool[0]}
		w.cardPool = w.cardPool[1:]
	} else {
		w.piles[w.currentPile] = nil
	}
	w.advanceRound()
	return nil
}

// Skip implements the "skip pile" operation: one card moves from the pool
// onto the current pile (unless the pool is empty, in which case the final
// pile's skip is handled below); on pile 0/1, skipping moves to the next
// pile (auto-skipping empty piles); on pile 2, skipping hands the current
// player the top card of the pool directly and advances the round.
func (w *Winston) Skip(userID models.UserID) error {
	if w.ended {
		return fmt.Errorf("draft: winston draft already ended")
	}
	if userID != w.currentPlayer() {
		return fmt.Errorf("draft: not %s's turn", userID)
	}
	return w.skipPile(userID)
}

func (w *Winston) skipPile(userID models.UserID) error {
	if w.currentPile < 2 {
		if len(w.cardPool) > 0 {
			w.piles[w.currentPile] = append(w.piles[w.currentPile], w.cardPool[0])
			w.cardPool = w.cardPool[1:]
		}
		w.currentPile++
		if len(w.piles[w.currentPile]) == 0 && w.currentPile < 2 {
			return w.skipPile(userID)
		}
		return nil
	}

	// currentPile == 2: give the top of cardPool directly, then advance.
	// Guarded: skipping the final pile is only meaningful while the pool
	// still has a card to hand over; with an empty pool, take is the only
	// legal action.
	if len(w.cardPool) == 0 {
		return fmt.Errorf("draft: cannot skip the final pile with an empty card pool")
	}
	top := w.cardPool[0]
	w.cardPool = w.cardPool[1:]
	w.pickedCards[userID] = append(w.pickedCards[userID], top)
	w.advanceRound()
	return nil
}

func (w *Winston) advanceRound() {
	w.currentPile = 0
	w.round = 1 - w.round
	if w.piles[0] == nil && w.piles[1] == nil && w.piles[2] == nil {
		w.ended = true
	}
}

// PickedCards returns a player's accumulated picks.
func (w *Winston) PickedCards(userID models.UserID) []models.CardID {
	return append([]models.CardID(nil), w.pickedCards[userID]...)
}
