package models

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// broadcastConcurrency bounds how many per-socket writes run at once during
// a multi-recipient broadcast, so one slow or dead connection's write
// doesn't serialize behind (or starve) the others, while still capping the
// number of goroutines a single broadcast can spin up.
const broadcastConcurrency = 32

// Broadcast delivers evt to every uid in recipients concurrently, bounded
// by broadcastConcurrency. Sink.Send is expected to be non-blocking (the ws
// transport's Conn.Send enqueues into a buffered channel and drops the
// connection rather than block), so this never waits on a slow reader; the
// bound exists purely to cap concurrent goroutines for very large fan-outs
// (spec §5: toSession/toAll fan-out must not let one slow consumer stall
// the rest).
func Broadcast(sink Sink, recipients []UserID, evt Event) {
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(broadcastConcurrency)
	for _, uid := range recipients {
		uid := uid
		g.Go(func() error {
			sink.Send(uid, evt)
			return nil
		})
	}
	_ = g.Wait()
}
