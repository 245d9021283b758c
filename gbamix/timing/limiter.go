package timing

import (
	"time"

	"github.com/gbamix/go-gbamix/gbamix/mixer"
)

// Limiter paces the audio service loop.
type Limiter interface {
	// WaitForNextFrame blocks until it's time to mix the next buffer.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit, for offline
// rendering where the loop should run flat out.
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// ServiceRate returns how many buffers per second a mixer at f must
// produce to keep its output gapless.
func ServiceRate(f mixer.Frequency) float64 {
	return float64(f.Hz()) / float64(f.BufferSize())
}

// FrameDuration returns the playback time of one mixed buffer, which is
// the deadline for producing the next one.
func FrameDuration(f mixer.Frequency) time.Duration {
	return time.Duration(f.BufferSize()) * time.Second / time.Duration(f.Hz())
}

// DisplayFrameDuration returns the duration of one display refresh on
// the target console. The two lower mixer rates are serviced on this
// cadence.
func DisplayFrameDuration() time.Duration {
	return time.Duration(mixer.CyclesPerDisplayFrame) * time.Second / time.Duration(mixer.ClockFrequency)
}
