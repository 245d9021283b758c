// Package mixer implements a software audio mixer in the style of a
// handheld console sound driver: a fixed pool of eight playback channels,
// fixed-point resampling with no interpolation, gain-weighted
// accumulation into a wide working buffer, and a collapse to signed 8-bit
// stereo handed off through a double buffer. Everything is allocated at
// construction; the per-frame path allocates nothing and returns no
// errors.
package mixer

import (
	"sync/atomic"

	"github.com/gbamix/go-gbamix/gbamix/fixed"
)

// ChannelID is an opaque handle for a claimed channel. It stays valid
// until the slot is stopped, evicted or finishes playback; after that
// Mixer.Channel rejects it, even if the slot has been reused since.
type ChannelID struct {
	slot       int
	generation uint32
}

// Mixer owns the channel pool and the double-buffered output.
//
// All mixing runs on whatever goroutine calls Frame; channel calls are
// only legal from that same goroutine between Frame calls. The one value
// shared with the consumer side is the live buffer index, read and
// written atomically.
type Mixer struct {
	frequency Frequency
	channels  [NumChannels]Channel

	// work accumulates gain-weighted samples with 8 fractional bits and
	// enough integer headroom that all eight channels cannot wrap it.
	work    []int32
	buffers [2][]int8
	live    atomic.Uint32

	frameCount uint64
}

// New creates a Mixer producing audio at the given frequency. Both output
// buffers and the working buffer are allocated here, once.
func New(frequency Frequency) *Mixer {
	b := frequency.BufferSize()
	m := &Mixer{frequency: frequency}
	m.work = make([]int32, 2*b)
	m.buffers[0] = make([]int8, 2*b)
	m.buffers[1] = make([]int8, 2*b)
	return m
}

// Frequency returns the fixed output rate.
func (m *Mixer) Frequency() Frequency {
	return m.frequency
}

// BufferSize returns the per-side sample count of one frame.
func (m *Mixer) BufferSize() int {
	return m.frequency.BufferSize()
}

// PlaySound claims a channel for the configured sound and starts it from
// the beginning of its data.
//
// The returned bool is false when the request was dropped: a Low priority
// request that found no free slot. That is an expected outcome, not an
// error. A High priority request evicts a Low channel instead; if every
// slot is already High priority it panics, since the caller asked for a
// guarantee the pool cannot give.
func (m *Mixer) PlaySound(cfg SoundConfig) (ChannelID, bool) {
	if cfg.Sound == nil {
		panic("mixer: PlaySound with nil sound")
	}
	if cfg.Speed <= 0 {
		panic("mixer: speed must be positive")
	}

	slot := -1
	for i := range m.channels {
		if m.channels[i].state == stateFree {
			slot = i
			break
		}
	}

	if slot < 0 {
		if cfg.Priority == PriorityLow {
			return ChannelID{}, false
		}
		for i := range m.channels {
			if m.channels[i].priority == PriorityLow {
				slot = i
				break
			}
		}
		if slot < 0 {
			panic("mixer: all channels busy with high priority sounds")
		}
		// Evict: the remaining playback is discarded.
		m.channels[slot].free()
	}

	ch := &m.channels[slot]
	ch.claim(cfg, m.frequency)
	return ChannelID{slot: slot, generation: ch.generation}, true
}

// Channel returns the live accessor for id. The bool is false when the
// handle is stale: the slot was freed or reclaimed since PlaySound
// returned it, so there is no such channel anymore.
func (m *Mixer) Channel(id ChannelID) (*Channel, bool) {
	ch := &m.channels[id.slot]
	if ch.state == stateFree || ch.generation != id.generation {
		return nil, false
	}
	return ch, true
}

// ActiveChannels counts the slots currently holding a sound, paused ones
// included.
func (m *Mixer) ActiveChannels() int {
	n := 0
	for i := range m.channels {
		if m.channels[i].state != stateFree {
			n++
		}
	}
	return n
}

// Frame services the mixer once. It must be called at the cadence the
// frequency implies (see the timing package). In order: retire channels
// whose cursor passed the end of a finite sound, mix every playing
// channel into the buffer the hardware is not draining, then flip the
// live index.
//
// The returned slice is the newly live buffer, B left samples followed by
// B right samples, ready to hand to the sink. Missing a call is audible
// (the old buffer repeats) but corrupts nothing.
func (m *Mixer) Frame() []int8 {
	m.retireChannels()

	back := 1 - m.live.Load()
	m.mixInto(m.buffers[back])

	// The consumer reads the index asynchronously; this single atomic
	// store is the whole critical section.
	m.live.Store(back)
	m.frameCount++

	return m.buffers[back]
}

// retireChannels frees finite channels that consumed their last sample
// during an earlier frame.
func (m *Mixer) retireChannels() {
	for i := range m.channels {
		ch := &m.channels[i]
		if ch.state == stateFree {
			continue
		}
		if _, loops := ch.sound.Loop(); !loops && ch.cursor.Floor() >= ch.sound.Len() {
			ch.free()
		}
	}
}

func (m *Mixer) mixInto(out []int8) {
	clear(m.work)
	for i := range m.channels {
		if m.channels[i].state != statePlaying {
			continue
		}
		m.accumulate(&m.channels[i])
	}
	collapse(m.work, out)
}

// LiveIndex returns which of the two buffers the hardware side should be
// draining. Safe to call from the consumer side.
func (m *Mixer) LiveIndex() int {
	return int(m.live.Load())
}

// Buffers returns the live buffer and the alternate that the next Frame
// call will fill.
func (m *Mixer) Buffers() (live, back []int8) {
	i := m.live.Load()
	return m.buffers[i], m.buffers[1-i]
}

// FrameCount returns how many Frame calls have completed.
func (m *Mixer) FrameCount() uint64 {
	return m.frameCount
}

// ChannelInfo is a point-in-time view of one slot for monitors and debug
// overlays. ID is the handle of the current occupant, usable with
// Channel like a handle returned by PlaySound.
type ChannelInfo struct {
	ID       ChannelID
	Active   bool
	Paused   bool
	Priority Priority
	Position int
	Length   int
	Volume   fixed.Num
	Panning  fixed.Num
	Stereo   bool
}

// Snapshot copies the state of all slots. Not meant for the hot path.
func (m *Mixer) Snapshot() [NumChannels]ChannelInfo {
	var out [NumChannels]ChannelInfo
	for i := range m.channels {
		ch := &m.channels[i]
		if ch.state == stateFree {
			continue
		}
		out[i] = ChannelInfo{
			ID:       ChannelID{slot: i, generation: ch.generation},
			Active:   true,
			Paused:   ch.state == statePaused,
			Priority: ch.priority,
			Position: ch.cursor.Floor(),
			Length:   ch.sound.Len(),
			Volume:   ch.volume,
			Panning:  ch.panning,
			Stereo:   ch.sound.stereo,
		}
	}
	return out
}
