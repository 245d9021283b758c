package timing

import (
	"time"

	"github.com/gbamix/go-gbamix/gbamix/mixer"
)

// TickerLimiter uses time.Ticker for simple, consistent service timing.
// Less accurate than AdaptiveLimiter but simpler and good enough when
// the backend buffers a few frames of slack.
type TickerLimiter struct {
	target time.Duration
	ticker *time.Ticker
	ch     <-chan time.Time
}

func NewTickerLimiter(f mixer.Frequency) *TickerLimiter {
	target := FrameDuration(f)
	ticker := time.NewTicker(target)
	return &TickerLimiter{
		target: target,
		ticker: ticker,
		ch:     ticker.C,
	}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ch
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.target)
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
