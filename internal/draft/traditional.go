package draft

import (
	"fmt"

	"github.com/cardtable/boosterdraft/internal/booster"
	"github.com/cardtable/boosterdraft/internal/bot"
	"github.com/cardtable/boosterdraft/internal/models"
)

// VirtualPlayer is one seat at the table: a human (by UserID) or a bot
// instance. Session mutates Kind/Bot in place when a disconnected human is
// replaced, which is why Substitute takes the seat position rather than
// relying on Session to rebuild the whole slice.
type VirtualPlayer struct {
	Kind   VirtualPlayerKind
	UserID models.UserID
	Bot    *bot.Bot
}

// Traditional is the rotation draft state machine (spec §4.4). rounds[i] is
// the set of boosters dealt at booster number i, indexed by original seat
// position (position 0's opening pack is rounds[i][0], etc). It is supplied
// fully pre-generated; Traditional never calls into package booster itself,
// keeping generation (with its per-round customBoosters/shuffle modes)
// entirely the session's concern.
type Traditional struct {
	virtualPlayers []VirtualPlayer
	rounds         [][]booster.Booster
	currentRound   []booster.Booster

	boosterNumber       int
	pickNumber          int
	pickedThisRound      []bool
	pickedCards          map[models.UserID][]models.CardID
	pickLogs             map[models.UserID][]PickLogEntry
	burnedCardsPerRound  int
	state                State
	preservedState       State
}

// NewTraditional builds a draft over virtualPlayers (seating order is
// positional and frozen for the life of the draft) and rounds (length
// boostersPerPlayer, each of length len(virtualPlayers)).
func NewTraditional(virtualPlayers []VirtualPlayer, rounds [][]booster.Booster, burnedCardsPerRound int) *Traditional {
	pickedCards := make(map[models.UserID][]models.CardID)
	for _, vp := range virtualPlayers {
		if vp.Kind == Human {
			pickedCards[vp.UserID] = nil
		}
	}
	return &Traditional{
		virtualPlayers:      append([]VirtualPlayer(nil), virtualPlayers...),
		rounds:              rounds,
		pickedCards:         pickedCards,
		pickLogs:            make(map[models.UserID][]PickLogEntry),
		burnedCardsPerRound: burnedCardsPerRound,
		state:               Idle,
	}
}

func (d *Traditional) State() State { return d.state }

func (d *Traditional) VirtualPlayerCount() int { return len(d.virtualPlayers) }

// Start transitions Idle -> InRound, deals the first round, and
// runs every bot seat's opening pick synchronously. It returns the set of
// human seats that need a nextBooster event.
func (d *Traditional) Start() (map[models.UserID]BoosterView, error) {
	if d.state != Idle {
		return nil, fmt.Errorf("draft: Start called in state %s", d.state)
	}
	if len(d.rounds) == 0 {
		return nil, fmt.Errorf("draft: Start called with no rounds")
	}
	d.state = InRound
	d.boosterNumber = 0
	d.pickNumber = 0
	d.dealCurrentRound()
	d.runBotSeats()
	return d.humanAssignments(), nil
}

func (d *Traditional) dealCurrentRound() {
	d.currentRound = append([]booster.Booster(nil), d.rounds[d.boosterNumber]...)
	d.pickedThisRound = make([]bool, len(d.virtualPlayers))
}

// boosterIndexFor computes the spec §4.4 rotation: position p's current
// booster is the one originally dealt to negMod(boosterOffset+p, V), with
// boosterOffset = -pickNumber on even packs (0-indexed), +pickNumber on odd
// ones, implementing alternating pass direction.
func (d *Traditional) boosterIndexFor(position int) int {
	V := len(d.virtualPlayers)
	offset := d.pickNumber
	if d.boosterNumber%2 == 0 {
		offset = -d.pickNumber
	}
	return negMod(offset+position, V)
}

func (d *Traditional) humanAssignments() map[models.UserID]BoosterView {
	out := make(map[models.UserID]BoosterView)
	for pos, vp := range d.virtualPlayers {
		if vp.Kind != Human {
			continue
		}
		idx := d.boosterIndexFor(pos)
		out[vp.UserID] = BoosterView{
			Booster:       append([]models.CardID(nil), d.currentRound[idx]...),
			BoosterNumber: d.boosterNumber,
			PickNumber:    d.pickNumber,
		}
	}
	return out
}

// runBotSeats performs a synchronous pick (and burn(s)) for every bot seat
// that has not yet picked this round.
func (d *Traditional) runBotSeats() {
	for pos, vp := range d.virtualPlayers {
		if vp.Kind != BotSeat || d.pickedThisRound[pos] {
			continue
		}
		d.doBotPick(pos)
	}
}

// doBotPick records a bot seat's pick-and-burn the same way PickCard does for
// a human, keyed by the seat's UserID so a substituted human's later bot
// picks accrue onto its existing log rather than vanishing (spec §8's "sum
// of pickedCards across participants equals packs x packSize").
func (d *Traditional) doBotPick(pos int) {
	vp := d.virtualPlayers[pos]
	idx := d.boosterIndexFor(pos)
	pack := d.currentRound[idx]
	if len(pack) == 0 {
		d.pickedThisRound[pos] = true
		return
	}
	snapshot := append([]models.CardID(nil), pack...)
	pickIdx := vp.Bot.Pick(pack)
	picked := pack[pickIdx]
	pack = removeAt(pack, pickIdx)
	var burned []models.CardID
	for i := 0; i < d.burnedCardsPerRound && len(pack) > 0; i++ {
		burnIdx := vp.Bot.Burn(pack)
		burned = append(burned, pack[burnIdx])
		pack = removeAt(pack, burnIdx)
	}
	d.currentRound[idx] = pack
	d.pickedCards[vp.UserID] = append(d.pickedCards[vp.UserID], picked)
	d.pickLogs[vp.UserID] = append(d.pickLogs[vp.UserID], PickLogEntry{
		Pick:                         picked,
		Burn:                         burned,
		BoosterSnapshotBeforeRemoval: snapshot,
	})
	d.pickedThisRound[pos] = true
}

func removeAt(pack booster.Booster, idx int) booster.Booster {
	if idx < 0 || idx >= len(pack) {
		return pack
	}
	out := append(booster.Booster(nil), pack[:idx]...)
	return append(out, pack[idx+1:]...)
}

// positionOf returns the seat index for a human userID, or -1.
func (d *Traditional) positionOf(userID models.UserID) int {
	for pos, vp := range d.virtualPlayers {
		if vp.Kind == Human && vp.UserID == userID {
			return pos
		}
	}
	return -1
}

// allPicked reports whether every seat has picked this round.
func (d *Traditional) allPicked() bool {
	for _, picked := range d.pickedThisRound {
		if !picked {
			return false
		}
	}
	return true
}

// PickCard validates and applies a human pick-and-burn (spec §4.4). It
// returns the next round's human assignments when the round (and possibly
// the pack) advances, and reports whether the draft ended.
func (d *Traditional) PickCard(userID models.UserID, cardID models.CardID, burnedCards []models.CardID) (advanced bool, ended bool, next map[models.UserID]BoosterView, err error) {
	if d.state != InRound {
		return false, false, nil, fmt.Errorf("draft: not in round (state=%s)", d.state)
	}
	pos := d.positionOf(userID)
	if pos < 0 {
		return false, false, nil, fmt.Errorf("draft: user %s is not a human seat", userID)
	}
	if d.pickedThisRound[pos] {
		return false, false, nil, fmt.Errorf("draft: user %s already picked this round", userID)
	}

	idx := d.boosterIndexFor(pos)
	pack := d.currentRound[idx]
	if !contains(pack, cardID) {
		return false, false, nil, fmt.Errorf("draft: card %s not in user %s's booster", cardID, userID)
	}
	if len(burnedCards) > d.burnedCardsPerRound {
		return false, false, nil, fmt.Errorf("draft: burned %d cards, max is %d", len(burnedCards), d.burnedCardsPerRound)
	}
	if len(burnedCards) != d.burnedCardsPerRound && len(pack) >= 1+d.burnedCardsPerRound {
		return false, false, nil, fmt.Errorf("draft: must burn exactly %d cards while %d remain", d.burnedCardsPerRound, len(pack))
	}
	for _, b := range burnedCards {
		if !contains(pack, b) {
			return false, false, nil, fmt.Errorf("draft: burned card %s not in booster", b)
		}
	}

	snapshot := append([]models.CardID(nil), pack...)
	pack = removeFirst(pack, cardID)
	for _, b := range burnedCards {
		pack = removeFirst(pack, b)
	}
	d.currentRound[idx] = pack

	d.pickedCards[userID] = append(d.pickedCards[userID], cardID)
	d.pickLogs[userID] = append(d.pickLogs[userID], PickLogEntry{
		Pick:                         cardID,
		Burn:                         append([]models.CardID(nil), burnedCards...),
		BoosterSnapshotBeforeRemoval: snapshot,
	})
	d.pickedThisRound[pos] = true

	if !d.allPicked() {
		return false, false, nil, nil
	}

	ended = d.advance()
	if ended {
		return true, true, nil, nil
	}
	return true, false, d.humanAssignments(), nil
}

// SubstituteBot swaps seat pos from Human to a bot instance (spec's
// replaceDisconnectedPlayers) and immediately performs that seat's pick for
// the current round, potentially completing it.
func (d *Traditional) SubstituteBot(pos int, b *bot.Bot) (advanced bool, ended bool, next map[models.UserID]BoosterView) {
	if pos < 0 || pos >= len(d.virtualPlayers) {
		return false, false, nil
	}
	d.virtualPlayers[pos].Kind = BotSeat
	d.virtualPlayers[pos].Bot = b
	if d.pickedThisRound[pos] {
		return false, false, nil
	}
	d.doBotPick(pos)
	if !d.allPicked() {
		return false, false, nil
	}
	ended = d.advance()
	if ended {
		return true, true, nil
	}
	return true, false, d.humanAssignments()
}

// advance implements the post-round bookkeeping: increment pickNumber;
// drain to the next booster number when the round's packs are empty;
// transition to Ended when no rounds remain. Returns true iff the draft
// ended.
func (d *Traditional) advance() bool {
	d.pickNumber++
	if len(d.currentRound[0]) == 0 {
		d.boosterNumber++
		d.pickNumber = 0
		if d.boosterNumber >= len(d.rounds) {
			d.state = Ended
			return true
		}
		d.dealCurrentRound()
	} else {
		d.pickedThisRound = make([]bool, len(d.virtualPlayers))
	}
	d.runBotSeats()
	return false
}

// Pause freezes the draft (e.g. on disconnect); Resume restores it.
func (d *Traditional) Pause() {
	if d.state == Paused {
		return
	}
	d.preservedState = d.state
	d.state = Paused
}

func (d *Traditional) Resume() {
	if d.state != Paused {
		return
	}
	d.state = d.preservedState
}

// PickedCards returns a seat's picks in order (bot seats included).
func (d *Traditional) PickedCards(userID models.UserID) []models.CardID {
	return append([]models.CardID(nil), d.pickedCards[userID]...)
}

// PickLog returns a seat's recorded pick/burn history (bot seats included).
func (d *Traditional) PickLog(userID models.UserID) []PickLogEntry {
	return append([]PickLogEntry(nil), d.pickLogs[userID]...)
}

// VirtualPlayers exposes the frozen seating, for session bookkeeping
// (logging, bot lookups) without allowing mutation of the backing slice.
func (d *Traditional) VirtualPlayers() []VirtualPlayer {
	return append([]VirtualPlayer(nil), d.virtualPlayers...)
}

func (d *Traditional) BoosterNumber() int { return d.boosterNumber }
func (d *Traditional) PickNumber() int    { return d.pickNumber }

// CurrentView returns userID's current BoosterView, used to replay the
// current pack on reconnect (spec's rejoinDraft payload).
func (d *Traditional) CurrentView(userID models.UserID) BoosterView {
	pos := d.positionOf(userID)
	if pos < 0 {
		return BoosterView{}
	}
	idx := d.boosterIndexFor(pos)
	return BoosterView{
		Booster:       append([]models.CardID(nil), d.currentRound[idx]...),
		BoosterNumber: d.boosterNumber,
		PickNumber:    d.pickNumber,
	}
}
