package ws

import (
	"net/http"
	"time"

	"github.com/cardtable/boosterdraft/internal/models"
)

// reconnectCookieName is generalized from the teacher's single hardcoded
// "pwr9_draft" cookie (internal/director/utils/cookie.go) to carry just the
// UserID, letting the gateway resolve reconnects for any session rather
// than one baked-in game.
const reconnectCookieName = "boosterdraft_uid"

// SetReconnectCookieHeader returns a Set-Cookie header that will let a
// future request be resolved back to uid via UserIDFromRequest.
func SetReconnectCookieHeader(uid models.UserID) http.Header {
	h := http.Header{}
	cookie := &http.Cookie{
		Name:    reconnectCookieName,
		Value:   string(uid),
		Path:    "/",
		Expires: time.Now().Add(30 * time.Minute),
	}
	h.Add("Set-Cookie", cookie.String())
	return h
}

// UserIDFromRequest reads the reconnect cookie, if present.
func UserIDFromRequest(r *http.Request) (models.UserID, bool) {
	for _, c := range r.Cookies() {
		if c.Name == reconnectCookieName {
			return models.UserID(c.Value), true
		}
	}
	return "", false
}
