package session

import "time"

// pickDuration implements spec §5: "maxTimer seconds per pick, minus
// floor(maxTimer/15) per pick within the same pack (later picks are
// faster)." 0 disables the timer. pickNumber is 0-indexed within the
// current pack.
func pickDuration(maxTimer, pickNumber int) (time.Duration, bool) {
	if maxTimer <= 0 {
		return 0, false
	}
	decay := maxTimer / 15
	remaining := maxTimer - decay*pickNumber
	if remaining < 1 {
		remaining = 1
	}
	return time.Duration(remaining) * time.Second, true
}

// Named presets kept for parity with the teacher's vocabulary
// (leisurely/slow/moderate/fast); owners are not limited to these, any
// maxTimer >= 0 is legal per spec.
const (
	TimerLeisurely = 90
	TimerSlow      = 75
	TimerModerate  = 55
	TimerFast      = 40
)

// timer is a per-session pick countdown. It ticks once per second (spec's
// suspension point (b)) and is cancelled on every state transition that the
// session cares about: pause, resume, reset on nextBooster, and session
// destruction.
type timer struct {
	ticker *time.Ticker
	stopCh chan struct{}
}

// startTimer runs for duration d, invoking onTick once per second with the
// seconds remaining, and onExpire when it reaches zero. It returns a stop
// function that is safe to call more than once.
func startTimer(d time.Duration, onTick func(secondsRemaining int), onExpire func()) func() {
	stopCh := make(chan struct{})
	total := int(d / time.Second)
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		remaining := total
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				remaining--
				if remaining <= 0 {
					onExpire()
					return
				}
				onTick(remaining)
			}
		}
	}()
	var stopped bool
	return func() {
		if stopped {
			return
		}
		stopped = true
		close(stopCh)
	}
}
