// Package gateway is the inbound event dispatch table (spec §4.7): it maps
// each named client event to the Session (or registry) method that handles
// it, unmarshals the event payload into that handler's expected shape, and
// silently drops anything malformed or unrecognized rather than disconnect
// the client over it.
package gateway

import (
	"encoding/json"

	"github.com/cardtable/boosterdraft/internal/direrr"
	"github.com/cardtable/boosterdraft/internal/logging"
	"github.com/cardtable/boosterdraft/internal/models"
	"github.com/cardtable/boosterdraft/internal/registry"
	"github.com/cardtable/boosterdraft/internal/session"
)

// Gateway routes inbound events from connected users to the session they
// are currently seated in.
type Gateway struct {
	registry *registry.Registry
	sink     models.Sink
	logger   *logging.Logger
}

// New builds a Gateway over reg, delivering pick acks (and any other
// gateway-originated replies) through sink.
func New(reg *registry.Registry, sink models.Sink) *Gateway {
	return &Gateway{registry: reg, sink: sink, logger: logging.Get()}
}

// Dispatch handles one inbound event from uid. It never returns an error
// to the caller: failures (unknown event, bad payload, rejected op) are
// logged and otherwise swallowed, matching the teacher's director.Error
// best-effort handling of malformed client frames.
func (g *Gateway) Dispatch(uid models.UserID, evt models.Event) {
	if evt.Type == "createSession" || evt.Type == "joinSession" {
		if err := g.handleLobbyEvent(uid, evt); err != nil {
			g.logger.Debugw("lobby event failed", "userID", uid, "event", evt.Type, "error", err)
		}
		return
	}

	s, ok := g.registry.SessionFor(uid)
	if !ok {
		g.logger.Debugw("dropping event for user with no session", "userID", uid, "event", evt.Type)
		return
	}

	handler, ok := handlers[evt.Type]
	if !ok {
		g.logger.Debugw("dropping unrecognized event", "userID", uid, "event", evt.Type)
		return
	}
	err := handler(s, uid, evt.Payload)
	if err != nil {
		g.logger.Debugw("event handler returned error", "userID", uid, "event", evt.Type, "error", err)
	}
	if evt.Type == "pickCard" {
		ToUser(g.sink, uid, pickAckEvent(err))
	}
	if err != nil && direrr.KindOf(err) == direrr.Shortage {
		// Shortage is the one BoosterError the spec wants surfaced to the
		// owner rather than silently dropped (spec §7): booster generation
		// couldn't satisfy targets, so drafting never started.
		ToUser(g.sink, uid, models.Event{Type: "message", Payload: map[string]interface{}{
			"title":             "Not enough cards",
			"text":              err.Error(),
			"showConfirmButton": true,
		}})
	}
}

// pickAckEvent builds the spec §6 pick acknowledgement: {code:0} on
// success, {code:1, error} on any validation failure.
func pickAckEvent(err error) models.Event {
	if err == nil {
		return models.Event{Type: "pickCardAck", Payload: map[string]interface{}{"code": 0}}
	}
	return models.Event{Type: "pickCardAck", Payload: map[string]interface{}{"code": 1, "error": err.Error()}}
}

func (g *Gateway) handleLobbyEvent(uid models.UserID, evt models.Event) error {
	switch evt.Type {
	case "createSession":
		var p struct {
			UserName string `json:"userName"`
		}
		if err := decode(evt.Payload, &p); err != nil {
			return err
		}
		s := g.registry.CreateSession(uid)
		return s.Join(uid, p.UserName)
	case "joinSession":
		var p struct {
			SessionID models.SessionID `json:"sessionID"`
			UserName  string           `json:"userName"`
		}
		if err := decode(evt.Payload, &p); err != nil {
			return err
		}
		return g.registry.Join(p.SessionID, uid, p.UserName)
	}
	return nil
}

// handlerFunc is the shape every registered event handler satisfies.
type handlerFunc func(s *session.Session, uid models.UserID, payload interface{}) error

func decode(payload interface{}, out interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
