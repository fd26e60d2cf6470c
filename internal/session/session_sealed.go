package session

import (
	"fmt"

	"github.com/cardtable/boosterdraft/internal/booster"
	"github.com/cardtable/boosterdraft/internal/direrr"
	"github.com/cardtable/boosterdraft/internal/draft"
	"github.com/cardtable/boosterdraft/internal/models"
)

// DistributeSealed builds n packs per seated participant and hands each
// participant their flattened pool in one shot (spec's distributeSealed).
// There is no round structure and no timer.
func (s *Session) DistributeSealed(uid models.UserID, n int) error {
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
		if n <= 0 {
			err = fmt.Errorf("session: sealed pack count must be positive, got %d", n)
			return
		}

		byUser := make(map[models.UserID][][]models.CardID, len(s.userOrder))
		participants := s.participantCollections(len(s.userOrder))
		for i, seatUID := range s.userOrder {
			opts := s.boosterOptionsForRound(0)
			packs, genErr := booster.Generate(s.cat, []booster.ParticipantCollection{participants[i]}, opts, n, s.rng)
			if genErr != nil {
				err = classifyGenErr(fmt.Errorf("session: generating sealed pool for %s: %w", seatUID, genErr))
				return
			}
			plain := make([][]models.CardID, len(packs))
			for j, p := range packs {
				plain[j] = append([]models.CardID(nil), p...)
			}
			byUser[seatUID] = plain
		}

		pools := draft.BuildSealedPools(byUser)
		s.draftKind = KindSealed
		s.draftLog = &DraftLog{SessionID: s.ID, SetRestriction: s.options.SetRestriction, Users: map[models.UserID]DraftLogUser{}}
		for _, pool := range pools {
			s.emit(pool.UserID, "setCardSelection", pool.Cards)
			entry := DraftLogUser{UserID: pool.UserID, Cards: pool.Cards}
			if p, ok := s.participants[pool.UserID]; ok {
				entry.UserName = p.UserName
			}
			s.draftLog.Users[pool.UserID] = entry
		}
		s.dispatchDraftLog()
	})
	return err
}

// DistributeJumpstart hands every seated participant two random themed packs
// from the static theme table (spec's distributeJumpstart supplement).
func (s *Session) DistributeJumpstart(uid models.UserID) error {
	var err error
	s.call(func() {
		if !s.requireOwner(uid) {
			err = direrr.New(direrr.Permission, "session: %s is not the owner", uid)
			return
		}
		themes := s.cat.JumpstartThemes()
		if len(themes) < 2 {
			err = fmt.Errorf("session: jumpstart theme table is unavailable")
			return
		}

		s.draftKind = KindSealed
		s.draftLog = &DraftLog{SessionID: s.ID, Users: map[models.UserID]DraftLogUser{}}
		for _, seatUID := range s.userOrder {
			idxA := s.rng.Intn(len(themes))
			idxB := s.rng.Intn(len(themes))
			cards := append([]models.CardID(nil), themes[idxA].Cards...)
			cards = append(cards, themes[idxB].Cards...)
			s.emit(seatUID, "setCardSelection", cards)
			entry := DraftLogUser{UserID: seatUID, Cards: cards}
			if p, ok := s.participants[seatUID]; ok {
				entry.UserName = p.UserName
			}
			s.draftLog.Users[seatUID] = entry
		}
		s.dispatchDraftLog()
	})
	return err
}
