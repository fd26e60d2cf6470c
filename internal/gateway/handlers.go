package gateway

import (
	"github.com/cardtable/boosterdraft/internal/booster"
	"github.com/cardtable/boosterdraft/internal/models"
	"github.com/cardtable/boosterdraft/internal/session"
)

// handlers is the event-name -> handler table (spec §4.7). Every owner-gated
// setter already no-ops for a non-owner caller, so handlers here never need
// to duplicate that check.
var handlers = map[string]handlerFunc{
	"leaveSession": func(s *session.Session, uid models.UserID, _ interface{}) error {
		s.Leave(uid)
		return nil
	},
	"startDraft": func(s *session.Session, uid models.UserID, _ interface{}) error {
		return s.StartDraft(uid)
	},
	"pickCard": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var p struct {
			Card   models.CardID   `json:"card"`
			Burned []models.CardID `json:"burned"`
		}
		if err := decode(payload, &p); err != nil {
			return err
		}
		return s.PickCard(uid, p.Card, p.Burned)
	},
	"startWinstonDraft": func(s *session.Session, uid models.UserID, _ interface{}) error {
		return s.StartWinstonDraft(uid)
	},
	"winstonDraftTakePile": func(s *session.Session, uid models.UserID, _ interface{}) error {
		return s.WinstonDraftTakePile(uid)
	},
	"winstonDraftSkipPile": func(s *session.Session, uid models.UserID, _ interface{}) error {
		return s.WinstonDraftSkipPile(uid)
	},
	"distributeSealed": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var p struct {
			PacksPerPlayer int `json:"packsPerPlayer"`
		}
		if err := decode(payload, &p); err != nil {
			return err
		}
		return s.DistributeSealed(uid, p.PacksPerPlayer)
	},
	"distributeJumpstart": func(s *session.Session, uid models.UserID, _ interface{}) error {
		return s.DistributeJumpstart(uid)
	},
	"replaceDisconnectedPlayers": func(s *session.Session, uid models.UserID, _ interface{}) error {
		return s.ReplaceDisconnectedPlayers(uid)
	},
	"removePlayer": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var p struct {
			Target models.UserID `json:"target"`
		}
		if err := decode(payload, &p); err != nil {
			return err
		}
		_, err := s.RemovePlayer(uid, p.Target)
		return err
	},
	"setSessionOwner": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var p struct {
			NewOwner models.UserID `json:"newOwner"`
		}
		if err := decode(payload, &p); err != nil {
			return err
		}
		return s.SetSessionOwner(uid, p.NewOwner)
	},
	"setSeating": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var seating []models.UserID
		if err := decode(payload, &seating); err != nil {
			return err
		}
		return s.SetSeating(uid, seating)
	},
	"randomizeSeating": func(s *session.Session, uid models.UserID, _ interface{}) error {
		return s.RandomizeSeating(uid)
	},
	"generateBracket": func(s *session.Session, uid models.UserID, _ interface{}) error {
		return s.GenerateBracket(uid)
	},
	"updateBracket": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var p struct {
			Round  int           `json:"round"`
			Slot   int           `json:"slot"`
			Winner models.UserID `json:"winner"`
		}
		if err := decode(payload, &p); err != nil {
			return err
		}
		return s.UpdateBracket(uid, p.Round, p.Slot, p.Winner)
	},

	"setUserName": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var name string
		if err := decode(payload, &name); err != nil {
			return err
		}
		return s.SetUserName(uid, name)
	},
	"setCollection": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v map[models.CardID]int
		if err := decode(payload, &v); err != nil {
			return err
		}
		return s.SetCollection(uid, v)
	},
	"useCollection": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v bool
		if err := decode(payload, &v); err != nil {
			return err
		}
		return s.SetUseCollection(uid, v)
	},
	"chatMessage": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var p struct {
			Text string `json:"text"`
		}
		if err := decode(payload, &p); err != nil {
			return err
		}
		return s.ChatMessage(uid, p.Text)
	},

	"setSetRestriction": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var sets []string
		if err := decode(payload, &sets); err != nil {
			return err
		}
		s.SetSetRestriction(uid, sets)
		return nil
	},
	"setIsPublic": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v bool
		if err := decode(payload, &v); err != nil {
			return err
		}
		s.SetIsPublic(uid, v)
		return nil
	},
	"setIgnoreCollections": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v bool
		if err := decode(payload, &v); err != nil {
			return err
		}
		s.SetIgnoreCollections(uid, v)
		return nil
	},
	"setBoostersPerPlayer": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v int
		if err := decode(payload, &v); err != nil {
			return err
		}
		s.SetBoostersPerPlayer(uid, v)
		return nil
	},
	"setBots": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v int
		if err := decode(payload, &v); err != nil {
			return err
		}
		s.SetBots(uid, v)
		return nil
	},
	"setMaxPlayers": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v int
		if err := decode(payload, &v); err != nil {
			return err
		}
		s.SetMaxPlayers(uid, v)
		return nil
	},
	"setMaxRarity": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v models.Rarity
		if err := decode(payload, &v); err != nil {
			return err
		}
		s.SetMaxRarity(uid, v)
		return nil
	},
	"setColorBalance": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v bool
		if err := decode(payload, &v); err != nil {
			return err
		}
		s.SetColorBalance(uid, v)
		return nil
	},
	"setMaxDuplicates": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v map[models.Rarity]int
		if err := decode(payload, &v); err != nil {
			return err
		}
		s.SetMaxDuplicates(uid, v)
		return nil
	},
	"setFoil": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v bool
		if err := decode(payload, &v); err != nil {
			return err
		}
		s.SetFoil(uid, v)
		return nil
	},
	"setUseCustomCardList": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v bool
		if err := decode(payload, &v); err != nil {
			return err
		}
		s.SetUseCustomCardList(uid, v)
		return nil
	},
	"setCustomCardList": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v booster.CustomCardList
		if err := decode(payload, &v); err != nil {
			return err
		}
		s.SetCustomCardList(uid, &v)
		return nil
	},
	"setBurnedCardsPerRound": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v int
		if err := decode(payload, &v); err != nil {
			return err
		}
		s.SetBurnedCardsPerRound(uid, v)
		return nil
	},
	"setCustomBoosters": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v []string
		if err := decode(payload, &v); err != nil {
			return err
		}
		s.SetCustomBoosters(uid, v)
		return nil
	},
	"setDistributionMode": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v models.DistributionMode
		if err := decode(payload, &v); err != nil {
			return err
		}
		s.SetDistributionMode(uid, v)
		return nil
	},
	"setDraftLogRecipients": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v models.DraftLogRecipients
		if err := decode(payload, &v); err != nil {
			return err
		}
		s.SetDraftLogRecipients(uid, v)
		return nil
	},
	"setPickTimer": func(s *session.Session, uid models.UserID, payload interface{}) error {
		var v int
		if err := decode(payload, &v); err != nil {
			return err
		}
		s.SetPickTimer(uid, v)
		return nil
	},
}
