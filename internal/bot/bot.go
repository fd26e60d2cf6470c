// Package bot implements the deterministic-per-instance pick/burn policy a
// bot applies to a booster (spec §4.3).
package bot

import (
	"hash/fnv"
	"math/rand"

	"github.com/cardtable/boosterdraft/internal/booster"
	"github.com/cardtable/boosterdraft/internal/catalog"
	"github.com/cardtable/boosterdraft/internal/models"
)

// Bot is one bot seat. Its rng is seeded from its UserID and seat index so
// replaying the same draft with the same bot ids is reproducible.
type Bot struct {
	ID    models.UserID
	cards []models.CardID
	// colorWeight accumulates committed color preference: each pick
	// increments its color's weight, biasing future picks toward it.
	colorWeight map[models.Color]int
	rng         *rand.Rand
	cat         *catalog.Catalog
}

// New builds a bot seeded deterministically from id and index.
func New(cat *catalog.Catalog, id models.UserID, index int) *Bot {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	seed := int64(h.Sum64()) + int64(index)
	return &Bot{
		ID:          id,
		colorWeight: make(map[models.Color]int, 5),
		rng:         rand.New(rand.NewSource(seed)),
		cat:         cat,
	}
}

// Cards returns the bot's picks so far, in pick order.
func (b *Bot) Cards() []models.CardID {
	return append([]models.CardID(nil), b.cards...)
}

// Pick returns the index of the card the bot takes from booster; removing
// it from the booster is left to the caller. Picking a card records it and
// reinforces the bot's color commitment.
func (b *Bot) Pick(pack booster.Booster) int {
	if len(pack) == 0 {
		return -1
	}
	idx := b.bestIndex(pack)
	b.recordPick(pack[idx])
	return idx
}

// Burn returns the index of a card to discard, guaranteed different from
// whatever index a concurrent Pick call on the same booster would choose
// (the caller must call Pick first and remove that card before calling
// Burn, so this simply avoids re-picking the bot's own best card twice by
// operating on the post-pick pack).
func (b *Bot) Burn(pack booster.Booster) int {
	if len(pack) == 0 {
		return -1
	}
	// Burn the card the bot values least by colorScore (rarity rank plus
	// twice its committed-color weight plus small noise); on equal scores
	// the earliest card is burned.
	worst := 0
	worstScore := b.colorScore(pack[0])
	for i := 1; i < len(pack); i++ {
		if s := b.colorScore(pack[i]); s < worstScore {
			worstScore = s
			worst = i
		}
	}
	return worst
}

// FeedPriorPick feeds a single card (from a disconnected participant's prior
// picks) into the bot's color commitment without recording it into Cards,
// so a bot substitute approximates the human's established colors.
func (b *Bot) FeedPriorPick(card models.CardID) {
	b.reinforce(card)
}

func (b *Bot) bestIndex(pack booster.Booster) int {
	best := 0
	bestScore := b.colorScore(pack[0])
	for i := 1; i < len(pack); i++ {
		s := b.colorScore(pack[i])
		if s > bestScore {
			bestScore = s
			best = i
		} else if s == bestScore && b.rng.Intn(2) == 0 {
			best = i
		}
	}
	return best
}

func (b *Bot) colorScore(id models.CardID) int {
	facts, ok := b.cat.Card(id)
	if !ok {
		return 0
	}
	base := facts.Rarity.Rank()
	if w, ok := b.colorWeight[facts.ColorIdentity]; ok {
		base += w * 2
	}
	// small noise keeps bots from being perfectly predictable across
	// otherwise-tied slots.
	return base + b.rng.Intn(3)
}

func (b *Bot) recordPick(id models.CardID) {
	b.cards = append(b.cards, id)
	b.reinforce(id)
}

func (b *Bot) reinforce(id models.CardID) {
	facts, ok := b.cat.Card(id)
	if !ok {
		return
	}
	b.colorWeight[facts.ColorIdentity]++
}
