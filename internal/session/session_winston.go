package session

import (
	"fmt"

	"github.com/cardtable/boosterdraft/internal/booster"
	"github.com/cardtable/boosterdraft/internal/direrr"
	"github.com/cardtable/boosterdraft/internal/draft"
	"github.com/cardtable/boosterdraft/internal/models"
)

// winstonSyncEvent is the full state the client needs to render a Winston
// draft: both players, the three piles, whose turn it is, and the pile
// currently under consideration (spec's winstonDraftSync event).
type winstonSyncEvent struct {
	Players       [2]models.UserID   `json:"players"`
	Piles         [3][]models.CardID `json:"piles"`
	CurrentPlayer models.UserID      `json:"currentPlayer"`
	CurrentPile   int                `json:"currentPile"`
	CardPoolSize  int                `json:"cardPoolSize"`
	Ended         bool               `json:"ended"`
}

func (s *Session) winstonSyncPayload() winstonSyncEvent {
	return winstonSyncEvent{
		Players:       [2]models.UserID{s.userOrder[0], s.userOrder[1]},
		Piles:         [3][]models.CardID{s.winston.Pile(0), s.winston.Pile(1), s.winston.Pile(2)},
		CurrentPlayer: s.winston.CurrentPlayer(),
		CurrentPile:   s.winston.CurrentPileIndex(),
		Ended:         s.winston.Ended(),
	}
}

// StartWinstonDraft begins the two-player pile draft (spec §4.4 Winston):
// owner-gated, requires exactly two seated players, pools every generated
// card into one shuffled pile source.
func (s *Session) StartWinstonDraft(uid models.UserID) error {
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
		if len(s.userOrder) != 2 {
			err = fmt.Errorf("session: winston draft requires exactly 2 players, have %d", len(s.userOrder))
			return
		}
		participants := s.participantCollections(2)
		opts := s.boosterOptionsForRound(0)
		packs, genErr := booster.Generate(s.cat, participants, opts, s.options.BoostersPerPlayer*2, s.rng)
		if genErr != nil {
			err = classifyGenErr(genErr)
			return
		}
		pool := make([]models.CardID, 0)
		for _, p := range packs {
			pool = append(pool, p...)
		}

		var players [2]models.UserID
		copy(players[:], s.userOrder)
		w, wErr := draft.NewWinston(players, pool, s.rng)
		if wErr != nil {
			err = wErr
			return
		}
		s.winston = w
		s.draftKind = KindWinston
		s.drafting = true
		s.draftLog = &DraftLog{SessionID: s.ID, SetRestriction: s.options.SetRestriction, Boosters: [][]models.CardID{pool}, Users: map[models.UserID]DraftLogUser{}}

		s.broadcast("startWinstonDraft", s.winstonSyncPayload(), "")
	})
	return err
}

// WinstonDraftTakePile applies a take-pile action and fans out the resulting
// state (spec's winstonDraftTakePile).
func (s *Session) WinstonDraftTakePile(uid models.UserID) error {
	var err error
	s.call(func() {
		if s.winston == nil {
			err = fmt.Errorf("session: no winston draft in progress")
			return
		}
		if takeErr := s.winston.Take(uid); takeErr != nil {
			err = takeErr
			return
		}
		s.afterWinstonMove()
	})
	return err
}

// WinstonDraftSkipPile applies a skip-pile action (spec's
// winstonDraftSkipPile).
func (s *Session) WinstonDraftSkipPile(uid models.UserID) error {
	var err error
	s.call(func() {
		if s.winston == nil {
			err = fmt.Errorf("session: no winston draft in progress")
			return
		}
		if skipErr := s.winston.Skip(uid); skipErr != nil {
			err = skipErr
			return
		}
		s.afterWinstonMove()
	})
	return err
}

func (s *Session) afterWinstonMove() {
	if s.winston.Ended() {
		s.finishWinstonDraft()
		return
	}
	s.broadcast("winstonDraftSync", s.winstonSyncPayload(), "")
}

func (s *Session) finishWinstonDraft() {
	s.drafting = false
	for _, uid := range s.userOrder {
		entry := DraftLogUser{UserID: uid, Cards: s.winston.PickedCards(uid)}
		if p, ok := s.participants[uid]; ok {
			entry.UserName = p.UserName
		}
		s.draftLog.Users[uid] = entry
	}
	s.dispatchDraftLog()
	s.broadcast("winstonDraftEnd", nil, "")
}
