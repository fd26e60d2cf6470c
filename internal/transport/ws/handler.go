package ws

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/cardtable/boosterdraft/internal/logging"
	"github.com/cardtable/boosterdraft/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler builds the /ws upgrade endpoint. A reconnect cookie resolves the
// connection to an existing UserID; otherwise a fresh one is minted and the
// cookie is set on the upgrade response (generalized from the teacher's
// internal/director/director.go newClient, which keys purely off a fresh
// per-connection client id with no reconnect path).
//
// If the cookie names a UserID that already has a live connection, that
// identity is "supplanted" per spec §4.6/§6: this new connection is minted
// a fresh UserID and told alreadyConnected{newID} so the client can adopt
// it, rather than silently stealing the existing session's socket.
func Handler(hub *Hub, dispatch Dispatcher) http.HandlerFunc {
	logger := logging.Get()
	return func(w http.ResponseWriter, r *http.Request) {
		uid, existing := UserIDFromRequest(r)
		supplanted := false
		if !existing {
			uid = models.NewUserID()
		} else if hub.IsLive(uid) {
			uid = models.NewUserID()
			supplanted = true
		}

		header := http.Header{}
		if !existing || supplanted {
			header = SetReconnectCookieHeader(uid)
		}

		conn, err := upgrader.Upgrade(w, r, header)
		if err != nil {
			logger.Debugw("websocket upgrade failed", "error", err)
			return
		}

		var c *Conn
		c = NewConn(uid, conn, func(closedUID models.UserID) {
			// The registry owns session membership; connection loss alone
			// does not remove a drafting participant (spec's disconnect vs.
			// leave distinction), so unregistering here only stops future
			// sends, it never calls Session.Leave.
			hub.Unregister(c)
		})
		hub.Register(c)
		if supplanted {
			c.Send(models.Event{Type: "alreadyConnected", Payload: uid})
		}
		c.Listen(dispatch)
	}
}
