// Package ws is the gorilla/websocket transport adapter: one Conn per
// socket, generalizing the teacher's director/Client read/write-pump pair
// (internal/director/client.go) from a single hardcoded game message shape
// to the generic models.Event envelope, and routing inbound frames through
// a caller-supplied dispatcher instead of a single GameDirector.
package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cardtable/boosterdraft/internal/logging"
	"github.com/cardtable/boosterdraft/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendBufSize    = 100
)

// Dispatcher handles one inbound event from a connected user. Implemented
// by the gateway package; kept as a function type here to avoid an import
// cycle (gateway depends on registry/session, which must not depend back
// on transport).
type Dispatcher func(uid models.UserID, evt models.Event)

// Conn wraps one client websocket connection and its outbound buffer. It
// sends only to its own UserID and is not itself a models.Sink; the Hub is
// what implements Sink across every connected user.
type Conn struct {
	UserID models.UserID
	conn   *websocket.Conn
	send   chan models.Event
	done   chan struct{}

	onClose func(models.UserID)
	logger  *logging.Logger
}

// NewConn wraps an already-upgraded websocket connection for uid. Call
// Listen in its own goroutine to start the read/write pumps.
func NewConn(uid models.UserID, conn *websocket.Conn, onClose func(models.UserID)) *Conn {
	return &Conn{
		UserID:  uid,
		conn:    conn,
		send:    make(chan models.Event, sendBufSize),
		done:    make(chan struct{}),
		onClose: onClose,
		logger:  logging.Get(),
	}
}

// Send enqueues evt for delivery, dropping the connection if its outbound
// buffer is already full (a slow/dead reader should not block the sender,
// mirroring the teacher's Client.Write default-case Done()).
func (c *Conn) Send(evt models.Event) {
	select {
	case c.send <- evt:
	default:
		c.Close()
	}
}

// Listen runs the write pump on the calling goroutine after starting the
// read pump in a new one; it returns once the connection closes.
func (c *Conn) Listen(dispatch Dispatcher) {
	go c.readPump(dispatch)
	c.writePump()
}

func (c *Conn) readPump(dispatch Dispatcher) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.Close()
			return
		}
		var evt models.Event
		if err := json.Unmarshal(raw, &evt); err != nil {
			c.logger.Debugw("dropping malformed inbound frame", "userID", c.UserID, "error", err)
			continue
		}
		dispatch(c.UserID, evt)
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case evt, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(evt); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// Close tears the connection down exactly once, notifying onClose.
func (c *Conn) Close() {
	select {
	case <-c.done:
		return
	default:
		close(c.done)
	}
	if c.onClose != nil {
		c.onClose(c.UserID)
	}
}
