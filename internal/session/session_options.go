package session

import (
	"reflect"

	"github.com/cardtable/boosterdraft/internal/booster"
	"github.com/cardtable/boosterdraft/internal/models"
)

// Every setter below implements spec §4.5's owner-gated, idempotent option
// mutation: a no-op (no broadcast) when called by a non-owner or with the
// value already in effect, otherwise an update plus either a coalesced
// "sessionOptions" broadcast or, for the eight options the spec calls out
// by name, a dedicated event. Either way the broadcast excludes the owner
// who initiated the change (spec §4.5: "not echoed to the owner who
// initiated it").

func (s *Session) broadcastOptions(exclude models.UserID) {
	s.broadcast("sessionOptions", s.options, exclude)
}

func (s *Session) SetSetRestriction(uid models.UserID, sets []string) {
	s.call(func() {
		if !s.requireOwner(uid) || stringSlicesEqual(s.options.SetRestriction, sets) {
			return
		}
		s.options.SetRestriction = append([]string(nil), sets...)
		s.broadcast("setRestriction", s.options.SetRestriction, uid)
	})
}

func (s *Session) SetIsPublic(uid models.UserID, public bool) {
	s.call(func() {
		if !s.requireOwner(uid) || s.options.IsPublic == public {
			return
		}
		s.options.IsPublic = public
		s.broadcast("setPublic", public, uid)
		if s.onPublicChange != nil {
			go s.onPublicChange(s)
		}
	})
}

func (s *Session) SetIgnoreCollections(uid models.UserID, ignore bool) {
	s.call(func() {
		if !s.requireOwner(uid) || s.options.IgnoreCollections == ignore {
			return
		}
		s.options.IgnoreCollections = ignore
		s.broadcast("ignoreCollections", ignore, uid)
	})
}

func (s *Session) SetBoostersPerPlayer(uid models.UserID, n int) {
	s.call(func() {
		if !s.requireOwner(uid) || n < 1 || s.options.BoostersPerPlayer == n {
			return
		}
		s.options.BoostersPerPlayer = n
		s.broadcast("boostersPerPlayer", n, uid)
	})
}

func (s *Session) SetBots(uid models.UserID, n int) {
	s.call(func() {
		if !s.requireOwner(uid) || n < 0 || s.options.Bots == n {
			return
		}
		s.options.Bots = n
		s.broadcast("bots", n, uid)
	})
}

func (s *Session) SetMaxPlayers(uid models.UserID, n int) {
	s.call(func() {
		if !s.requireOwner(uid) || n < 0 || s.options.MaxPlayers == n {
			return
		}
		s.options.MaxPlayers = n
		s.broadcast("setMaxPlayers", n, uid)
	})
}

func (s *Session) SetMaxRarity(uid models.UserID, r models.Rarity) {
	s.call(func() {
		if !s.requireOwner(uid) || s.options.MaxRarity == r {
			return
		}
		s.options.MaxRarity = r
		s.broadcast("setMaxRarity", r, uid)
	})
}

func (s *Session) SetColorBalance(uid models.UserID, on bool) {
	s.call(func() {
		if !s.requireOwner(uid) || s.options.ColorBalance == on {
			return
		}
		s.options.ColorBalance = on
		s.broadcastOptions(uid)
	})
}

func (s *Session) SetMaxDuplicates(uid models.UserID, m map[models.Rarity]int) {
	s.call(func() {
		if !s.requireOwner(uid) || maxDuplicatesEqual(s.options.MaxDuplicates, m) {
			return
		}
		cp := make(map[models.Rarity]int, len(m))
		for k, v := range m {
			cp[k] = v
		}
		s.options.MaxDuplicates = cp
		s.broadcastOptions(uid)
	})
}

func (s *Session) SetFoil(uid models.UserID, on bool) {
	s.call(func() {
		if !s.requireOwner(uid) || s.options.Foil == on {
			return
		}
		s.options.Foil = on
		s.broadcastOptions(uid)
	})
}

func (s *Session) SetUseCustomCardList(uid models.UserID, on bool) {
	s.call(func() {
		if !s.requireOwner(uid) || s.options.UseCustomCardList == on {
			return
		}
		s.options.UseCustomCardList = on
		s.broadcastOptions(uid)
	})
}

func (s *Session) SetCustomCardList(uid models.UserID, list *booster.CustomCardList) {
	s.call(func() {
		if !s.requireOwner(uid) || reflect.DeepEqual(s.options.CustomCardList, list) {
			return
		}
		s.options.CustomCardList = list
		s.broadcastOptions(uid)
	})
}

func (s *Session) SetBurnedCardsPerRound(uid models.UserID, n int) {
	s.call(func() {
		if !s.requireOwner(uid) || n < 0 || s.options.BurnedCardsPerRound == n {
			return
		}
		s.options.BurnedCardsPerRound = n
		s.broadcastOptions(uid)
	})
}

func (s *Session) SetCustomBoosters(uid models.UserID, perRound []string) {
	s.call(func() {
		if !s.requireOwner(uid) || stringSlicesEqual(s.options.CustomBoosters, perRound) {
			return
		}
		s.options.CustomBoosters = append([]string(nil), perRound...)
		s.broadcastOptions(uid)
	})
}

func (s *Session) SetDistributionMode(uid models.UserID, mode models.DistributionMode) {
	s.call(func() {
		if !s.requireOwner(uid) || s.options.DistributionMode == mode {
			return
		}
		s.options.DistributionMode = mode
		s.broadcastOptions(uid)
	})
}

func (s *Session) SetDraftLogRecipients(uid models.UserID, r models.DraftLogRecipients) {
	s.call(func() {
		if !s.requireOwner(uid) || s.options.DraftLogRecipients == r {
			return
		}
		s.options.DraftLogRecipients = r
		s.broadcastOptions(uid)
	})
}

func (s *Session) SetPickTimer(uid models.UserID, seconds int) {
	s.call(func() {
		if !s.requireOwner(uid) || seconds < 0 || s.options.PickTimer == seconds {
			return
		}
		s.options.PickTimer = seconds
		s.broadcast("setPickTimer", seconds, uid)
	})
}
