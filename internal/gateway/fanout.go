package gateway

import (
	"github.com/cardtable/boosterdraft/internal/models"
)

// ToUser delivers evt to exactly one user — used for gateway-originated
// replies, like the pick acknowledgement, that never go through a Session's
// own (bounded, concurrent) broadcast.
func ToUser(sink models.Sink, uid models.UserID, evt models.Event) {
	sink.Send(uid, evt)
}
