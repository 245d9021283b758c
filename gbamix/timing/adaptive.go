package timing

import (
	"log/slog"
	"time"

	"github.com/gbamix/go-gbamix/gbamix/mixer"
)

// AdaptiveLimiter uses precise timing with drift compensation.
// Combines sleep for efficiency with busy-waiting for accuracy, which
// matters here because a late buffer is an audible gap.
type AdaptiveLimiter struct {
	target  time.Duration
	next    time.Time
	started time.Time
	frames  int64
}

func NewAdaptiveLimiter(f mixer.Frequency) *AdaptiveLimiter {
	now := time.Now()
	return &AdaptiveLimiter{
		target:  FrameDuration(f),
		next:    now,
		started: now,
	}
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	now := time.Now()
	sleepTime := a.next.Sub(now)

	if sleepTime > 0 {
		if sleepTime < 2*time.Millisecond {
			for time.Now().Before(a.next) {
				// busy-wait for times under 2ms, higher accuracy.
			}
		} else {
			time.Sleep(sleepTime - time.Millisecond)
			for time.Now().Before(a.next) {
			}
		}
	} else if sleepTime < -5*time.Millisecond {
		// Too far behind to catch up frame by frame, rebase.
		a.next = now
	}

	a.next = a.next.Add(a.target)
	a.frames++

	if a.frames%60 == 0 {
		drift := time.Since(a.next.Add(-a.target))

		if drift.Abs() > 10*time.Millisecond {
			a.next = a.next.Add(drift / 10)
			slog.Debug("Service timing drift correction",
				"drift_ms", drift.Milliseconds(),
				"rate_hz", float64(a.frames)/time.Since(a.started).Seconds())
		}
	}
}

func (a *AdaptiveLimiter) Reset() {
	now := time.Now()
	a.next = now
	a.started = now
	a.frames = 0
}
