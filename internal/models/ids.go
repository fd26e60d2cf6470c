package models

import "github.com/google/uuid"

// CardID identifies a card in the Catalog. The catalog loader is the only
// producer of these; everything downstream treats them as opaque keys.
type CardID string

// UserID identifies a participant's connection. Minted by the websocket
// transport's Handler for a fresh connection and on supplant.
type UserID string

// SessionID identifies a draft session.
type SessionID string

// NewUserID mints a fresh opaque participant id.
func NewUserID() UserID {
	return UserID(uuid.NewString())
}

// NewSessionID mints a fresh session id. Source sessions use a short
// human-typeable id; orphan sessions created by RemovePlayer reuse the same
// scheme so they look indistinguishable from a normal join.
func NewSessionID() SessionID {
	return SessionID(uuid.New().String()[:8])
}
