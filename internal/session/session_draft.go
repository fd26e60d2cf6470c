package session

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/cardtable/boosterdraft/internal/booster"
	"github.com/cardtable/boosterdraft/internal/bot"
	"github.com/cardtable/boosterdraft/internal/direrr"
	"github.com/cardtable/boosterdraft/internal/draft"
	"github.com/cardtable/boosterdraft/internal/models"
)

// classifyGenErr translates a booster generation failure into the spec's
// Shortage error kind (spec §7: "cannot satisfy targets — reported to
// owner via message, draft not started"), leaving anything else (a
// programmer-error path, not a supply problem) untouched.
func classifyGenErr(err error) error {
	if err == nil {
		return nil
	}
	var be *booster.Error
	if errors.As(err, &be) {
		return direrr.Wrap(direrr.Shortage, be, "booster: %s", be.Detail)
	}
	return err
}

// StartDraft begins a traditional rotation draft (spec §4.4/§4.5
// startDraft): owner-gated, builds one bot per configured bot seat, generates
// every round's boosters up front (honoring per-round customBoosters and the
// configured distribution mode), and deals the opening packs.
func (s *Session) StartDraft(uid models.UserID) error {
	var err error
	s.call(func() {
		if !s.requireOwner(uid) {
			err = direrr.New(direrr.Permission, "session: %s is not the owner", uid)
			return
		}
		if s.drafting {
			err = fmt.Errorf("session: %s is already drafting", s.ID)
			return
		}
		virtualPlayers, genErr := s.buildVirtualPlayers()
		if genErr != nil {
			err = genErr
			return
		}
		rounds, genErr := s.generateRounds(len(virtualPlayers))
		if genErr != nil {
			err = classifyGenErr(genErr)
			return
		}

		s.traditional = draft.NewTraditional(virtualPlayers, rounds, s.options.BurnedCardsPerRound)
		s.draftKind = KindTraditional
		s.drafting = true
		s.draftLog = s.newDraftLog(rounds)

		assignments, startErr := s.traditional.Start()
		if startErr != nil {
			err = startErr
			s.drafting = false
			return
		}
		s.broadcast("startDraft", nil, "")
		for u, view := range assignments {
			s.emit(u, "nextBooster", view)
		}
		s.startPickTimerForCurrentState()
	})
	return err
}

// buildVirtualPlayers lays out human seats (in join order) followed by bot
// seats (spec §4.4: "bot seats occupy the remaining positions").
func (s *Session) buildVirtualPlayers() ([]draft.VirtualPlayer, error) {
	if len(s.userOrder)+s.options.Bots < 2 {
		return nil, fmt.Errorf("session: traditional draft requires at least 2 seats (users+bots), have %d", len(s.userOrder)+s.options.Bots)
	}
	vps := make([]draft.VirtualPlayer, 0, len(s.userOrder)+s.options.Bots)
	for _, uid := range s.userOrder {
		vps = append(vps, draft.VirtualPlayer{Kind: draft.Human, UserID: uid})
	}
	s.botSeatOf = map[int]models.UserID{}
	s.bots = map[models.UserID]struct{}{}
	for i := 0; i < s.options.Bots; i++ {
		botID := models.NewUserID()
		pos := len(vps)
		b := bot.New(s.cat, botID, pos)
		vps = append(vps, draft.VirtualPlayer{Kind: draft.BotSeat, UserID: botID, Bot: b})
		s.botSeatOf[pos] = botID
		s.bots[botID] = struct{}{}
	}
	return vps, nil
}

// generateRounds produces boostersPerPlayer rounds of seatCount boosters
// each. Each round's set restriction is taken from options.CustomBoosters
// when it covers that round index, otherwise options.SetRestriction.
func (s *Session) generateRounds(seatCount int) ([][]booster.Booster, error) {
	participants := s.participantCollections(seatCount)
	rounds := make([][]booster.Booster, s.options.BoostersPerPlayer)
	for r := 0; r < s.options.BoostersPerPlayer; r++ {
		opts := s.boosterOptionsForRound(r)
		packs, err := booster.Generate(s.cat, participants, opts, seatCount, s.rng)
		if err != nil {
			return nil, fmt.Errorf("session: generating round %d: %w", r, err)
		}
		applyDistributionMode(packs, s.options.DistributionMode, s.rng)
		rounds[r] = packs
	}
	return rounds, nil
}

func (s *Session) boosterOptionsForRound(round int) booster.Options {
	setRestriction := s.options.SetRestriction
	if round < len(s.options.CustomBoosters) && s.options.CustomBoosters[round] != "" {
		setRestriction = []string{s.options.CustomBoosters[round]}
	}
	return booster.Options{
		SetRestriction:    setRestriction,
		IgnoreCollections: s.options.IgnoreCollections,
		MaxRarity:         s.options.MaxRarity,
		ColorBalance:      s.options.ColorBalance,
		MaxDuplicates:     s.options.MaxDuplicates,
		Foil:              s.options.Foil,
		UseCustomCardList: s.options.UseCustomCardList,
		CustomCardList:    s.options.CustomCardList,
	}
}

// participantCollections builds one ParticipantCollection per seat; bot
// seats never contribute a collection (they always draw from the full set).
func (s *Session) participantCollections(seatCount int) []booster.ParticipantCollection {
	out := make([]booster.ParticipantCollection, 0, len(s.userOrder))
	for _, uid := range s.userOrder {
		p, ok := s.participants[uid]
		if !ok {
			continue
		}
		out = append(out, booster.ParticipantCollection{Owned: p.Collection, UseCollection: p.UseCollection})
	}
	return out
}

// applyDistributionMode reshuffles the generated packs in place per spec
// §3's distributionMode: Regular leaves each player's own pack untouched;
// ShufflePlayerBoosters reassigns whole packs between seats; ShuffleBoosterPool
// pools every card across the round's packs and redeals flat shares.
func applyDistributionMode(packs []booster.Booster, mode models.DistributionMode, rng *rand.Rand) {
	switch mode {
	case models.DistributionShufflePlayerBoosters:
		rng.Shuffle(len(packs), func(i, j int) { packs[i], packs[j] = packs[j], packs[i] })
	case models.DistributionShuffleBoosterPool:
		pool := make([]models.CardID, 0)
		sizes := make([]int, len(packs))
		for i, p := range packs {
			sizes[i] = len(p)
			pool = append(pool, p...)
		}
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		offset := 0
		for i, n := range sizes {
			packs[i] = append(booster.Booster(nil), pool[offset:offset+n]...)
			offset += n
		}
	}
}

func (s *Session) newDraftLog(rounds [][]booster.Booster) *DraftLog {
	boosters := make([][]models.CardID, 0)
	for _, round := range rounds {
		for _, pack := range round {
			boosters = append(boosters, append([]models.CardID(nil), pack...))
		}
	}
	return &DraftLog{
		SessionID:      s.ID,
		SetRestriction: s.options.SetRestriction,
		Boosters:       boosters,
		Users:          map[models.UserID]DraftLogUser{},
	}
}

// PickCard applies a human pick-and-burn, advances the round machinery, and
// fans out the resulting events (spec §4.4/§4.5 pickCard).
func (s *Session) PickCard(uid models.UserID, cardID models.CardID, burned []models.CardID) error {
	var err error
	s.call(func() {
		if s.traditional == nil {
			err = fmt.Errorf("session: no traditional draft in progress")
			return
		}
		_, ended, next, pickErr := s.traditional.PickCard(uid, cardID, burned)
		if pickErr != nil {
			err = pickErr
			return
		}
		s.broadcast("updateUser", updatedUserEvent{UserID: uid, UpdatedProperties: map[string]interface{}{"pickedThisRound": true}}, "")
		s.afterPick(ended, next)
	})
	return err
}

func (s *Session) afterPick(ended bool, next map[models.UserID]draft.BoosterView) {
	if ended {
		s.finishTraditionalDraft()
		return
	}
	for u, view := range next {
		s.emit(u, "nextBooster", view)
	}
	if next != nil {
		s.startPickTimerForCurrentState()
	}
}

func (s *Session) finishTraditionalDraft() {
	s.drafting = false
	if s.stopTimer != nil {
		s.stopTimer()
		s.stopTimer = nil
	}
	for pos, vp := range s.traditional.VirtualPlayers() {
		_ = pos
		entry := DraftLogUser{
			UserID: vp.UserID,
			IsBot:  vp.Kind == draft.BotSeat,
		}
		if p, ok := s.participants[vp.UserID]; ok {
			entry.UserName = p.UserName
		}
		entry.Cards = s.traditional.PickedCards(vp.UserID)
		entry.Picks = s.traditional.PickLog(vp.UserID)
		s.draftLog.Users[vp.UserID] = entry
	}
	s.dispatchDraftLog()
	s.broadcast("endDraft", nil, "")
}

// dispatchDraftLog fans the completed DraftLog out per
// options.DraftLogRecipients (spec §4.5/§6).
func (s *Session) dispatchDraftLog() {
	switch s.options.DraftLogRecipients {
	case models.LogNone:
		return
	case models.LogOwner:
		s.emit(s.ownerID, "draftLog", s.draftLog)
	case models.LogEveryone, models.LogDelayed:
		for uid := range s.users {
			s.emit(uid, "draftLog", s.draftLog)
		}
		if !s.ownerIsPlayer {
			s.emit(s.ownerID, "draftLog", s.draftLog)
		}
	}
}
