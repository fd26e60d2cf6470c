package session

import (
	"fmt"

	"github.com/cardtable/boosterdraft/internal/bot"
	"github.com/cardtable/boosterdraft/internal/direrr"
	"github.com/cardtable/boosterdraft/internal/models"
)

// ReplaceDisconnectedPlayers substitutes a bot for every seat currently
// recorded as disconnected (spec's owner-gated replaceDisconnectedPlayers),
// feeding each bot the departed human's prior picks so it approximates their
// established colors, then resuming the round if that unblocks it.
func (s *Session) ReplaceDisconnectedPlayers(uid models.UserID) error {
	var err error
	s.call(func() {
		if !s.requireOwner(uid) {
			err = direrr.New(direrr.Permission, "session: %s is not the owner", uid)
			return
		}
		if s.traditional == nil {
			err = fmt.Errorf("session: replaceDisconnectedPlayers requires an active traditional draft")
			return
		}
		for disconnectedUID, snap := range s.disconnectedUsers {
			pos := snap.SeatIndex
			if pos < 0 {
				continue
			}
			b := bot.New(s.cat, disconnectedUID, pos)
			for _, card := range snap.PickedCards {
				b.FeedPriorPick(card)
			}
			_, ended, next := s.traditional.SubstituteBot(pos, b)
			if s.bots == nil {
				s.bots = map[models.UserID]struct{}{}
			}
			s.bots[disconnectedUID] = struct{}{}
			delete(s.disconnectedUsers, disconnectedUID)
			s.afterPick(ended, next)
		}
		s.traditional.Resume()
	})
	return err
}

// RemovePlayer ejects uid from the session and relocates them to a brand new
// solo session (spec's owner-gated removePlayer: "removed players are never
// simply disconnected, they are handed a fresh session of their own"). The
// returned id is not yet backed by a registered Session: the target's client
// is expected to follow the setSession notice with its own join, at which
// point registry.Join's create-on-unknown path (spec §3) allocates it.
// Join itself sends no such redirect: joining a drafting session returns an
// error and no setSession notice.
func (s *Session) RemovePlayer(owner, target models.UserID) (models.SessionID, error) {
	var newID models.SessionID
	var err error
	s.call(func() {
		if !s.requireOwner(owner) {
			err = direrr.New(direrr.Permission, "session: %s is not the owner", owner)
			return
		}
		if target == owner {
			err = fmt.Errorf("session: owner cannot remove themself, use setSessionOwner first")
			return
		}
		if _, ok := s.users[target]; !ok {
			err = fmt.Errorf("session: %s is not seated in %s", target, s.ID)
			return
		}
		delete(s.users, target)
		s.removeFromOrder(target)
		delete(s.participants, target)
		newID = models.NewSessionID()
		s.broadcast("sessionUsers", s.userInfoList(), "")
		s.emit(target, "setSession", newID)
		s.emit(target, "message", messagePayload("Removed", "you have been removed from the session", true, 0))
	})
	return newID, err
}

// SetSessionOwner transfers ownership to newOwner (spec's owner-gated
// setSessionOwner). newOwner need not be a seated player; when they are not,
// ownerIsPlayer flips to false so the session is retained even if every
// seated player later leaves.
func (s *Session) SetSessionOwner(uid, newOwner models.UserID) error {
	var err error
	s.call(func() {
		if !s.requireOwner(uid) {
			err = direrr.New(direrr.Permission, "session: %s is not the owner", uid)
			return
		}
		if s.ownerID == newOwner {
			return
		}
		_, playing := s.users[newOwner]
		s.ownerID = newOwner
		s.ownerIsPlayer = playing
		s.emit(newOwner, "sessionOwner", newOwner)
		s.broadcast("sessionUsers", s.userInfoList(), uid)
	})
	return err
}

// SetSeating reorders userOrder to match seating exactly (spec's owner-gated
// setSeating). seating must be a permutation of the currently seated users;
// otherwise the call is a no-op.
func (s *Session) SetSeating(uid models.UserID, seating []models.UserID) error {
	var err error
	s.call(func() {
		if !s.requireOwner(uid) {
			err = direrr.New(direrr.Permission, "session: %s is not the owner", uid)
			return
		}
		if s.drafting {
			err = fmt.Errorf("session: cannot reseat while drafting")
			return
		}
		if len(seating) != len(s.userOrder) {
			err = fmt.Errorf("session: seating must list every seated user exactly once")
			return
		}
		seen := make(map[models.UserID]bool, len(seating))
		for _, seatUID := range seating {
			if _, ok := s.users[seatUID]; !ok || seen[seatUID] {
				err = fmt.Errorf("session: seating must list every seated user exactly once")
				return
			}
			seen[seatUID] = true
		}
		s.userOrder = append([]models.UserID(nil), seating...)
		s.broadcast("sessionUsers", s.userInfoList(), "")
	})
	return err
}

// RandomizeSeating shuffles userOrder (spec's owner-gated randomizeSeating).
func (s *Session) RandomizeSeating(uid models.UserID) error {
	var err error
	s.call(func() {
		if !s.requireOwner(uid) {
			err = direrr.New(direrr.Permission, "session: %s is not the owner", uid)
			return
		}
		if s.drafting {
			err = fmt.Errorf("session: cannot reseat while drafting")
			return
		}
		s.rng.Shuffle(len(s.userOrder), func(i, j int) {
			s.userOrder[i], s.userOrder[j] = s.userOrder[j], s.userOrder[i]
		})
		s.broadcast("sessionUsers", s.userInfoList(), "")
	})
	return err
}

// GenerateBracket seeds a single-elimination bracket from the current
// seating order (spec's owner-gated generateBracket).
func (s *Session) GenerateBracket(uid models.UserID) error {
	var err error
	s.call(func() {
		if !s.requireOwner(uid) {
			err = direrr.New(direrr.Permission, "session: %s is not the owner", uid)
			return
		}
		s.bracket = generateBracket(s.userOrder)
		s.broadcast("bracket", s.bracket, "")
	})
	return err
}

// UpdateBracket records a match result and advances the bracket if that
// completes its round (spec's owner-gated updateBracket).
func (s *Session) UpdateBracket(uid models.UserID, round, slot int, winner models.UserID) error {
	var err error
	s.call(func() {
		if !s.requireOwner(uid) {
			err = direrr.New(direrr.Permission, "session: %s is not the owner", uid)
			return
		}
		if s.bracket == nil {
			err = fmt.Errorf("session: no bracket has been generated")
			return
		}
		if !s.bracket.update(round, slot, winner) {
			err = fmt.Errorf("session: no match at round %d slot %d", round, slot)
			return
		}
		s.broadcast("bracket", s.bracket, "")
	})
	return err
}
