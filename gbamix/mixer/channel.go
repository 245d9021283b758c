package mixer

import "github.com/gbamix/go-gbamix/gbamix/fixed"

// Priority controls what happens when a play request finds no free slot:
// Low requests are dropped, High requests evict a Low channel.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityHigh
)

func (p Priority) String() string {
	if p == PriorityHigh {
		return "high"
	}
	return "low"
}

type channelState int

const (
	stateFree channelState = iota
	statePlaying
	statePaused
)

// SoundConfig describes one play request.
type SoundConfig struct {
	Sound    *SoundData
	Volume   fixed.Num // overall gain, fixed.One is unity
	Panning  fixed.Num // -One full left, 0 centered, +One full right; ignored for stereo sounds
	Speed    fixed.Num // playback rate multiplier, must be positive
	Priority Priority
}

// NewSoundConfig returns a config that plays sound at unit speed and full
// volume, centered, with Low priority.
func NewSoundConfig(sound *SoundData) SoundConfig {
	return SoundConfig{Sound: sound, Volume: fixed.One, Speed: fixed.One}
}

// Channel is one playback slot: the read cursor into its SoundData, the
// precomputed per-sample increment, and the per-side gains. Accessors
// returned by Mixer.Channel stay valid until the next PlaySound or Frame
// call on the owning mixer.
type Channel struct {
	state      channelState
	generation uint32
	priority   Priority

	sound *SoundData

	// cursor indexes the source in frames; its integer part is the frame
	// fetched, the fraction only tracks sub-sample advance. increment is
	// rateRatio * speed, recomputed on claim and SetSpeed only.
	cursor    fixed.Num
	increment fixed.Num
	rateRatio fixed.Num
	speed     fixed.Num

	volume  fixed.Num
	panning fixed.Num
	left    fixed.Num
	right   fixed.Num
}

func (c *Channel) claim(cfg SoundConfig, frequency Frequency) {
	c.generation++
	c.state = statePlaying
	c.priority = cfg.Priority
	c.sound = cfg.Sound
	c.cursor = 0
	c.rateRatio = fixed.Ratio(cfg.Sound.rate, frequency.Hz())
	c.speed = cfg.Speed
	c.increment = c.rateRatio.Mul(cfg.Speed)
	c.volume = cfg.Volume
	c.panning = cfg.Panning
	c.updateGains()
}

// free releases the slot. A free slot holds no asset reference.
func (c *Channel) free() {
	c.state = stateFree
	c.sound = nil
	c.cursor = 0
	c.increment = 0
}

// updateGains derives the per-side gains from volume and panning.
// Stereo sounds carry their own left/right samples, so panning is
// bypassed and volume applies to both sides as-is.
func (c *Channel) updateGains() {
	if c.sound != nil && c.sound.stereo {
		c.left = c.volume
		c.right = c.volume
		return
	}
	c.left = c.volume.Mul((fixed.One - c.panning) / 2)
	c.right = c.volume.Mul((fixed.One + c.panning) / 2)
}

// SetVolume changes the channel volume and rederives both side gains.
func (c *Channel) SetVolume(volume fixed.Num) {
	c.volume = volume
	c.updateGains()
}

// SetPanning moves the sound between the sides, -One (left) to +One
// (right). Stereo sounds ignore it.
func (c *Channel) SetPanning(panning fixed.Num) {
	c.panning = panning
	c.updateGains()
}

// SetSpeed changes the playback rate multiplier, which must be positive.
// The cursor increment is recomputed here, once, never per sample.
func (c *Channel) SetSpeed(speed fixed.Num) {
	if speed <= 0 {
		panic("mixer: speed must be positive")
	}
	c.speed = speed
	c.increment = c.rateRatio.Mul(speed)
}

// Stop frees the slot immediately, discarding the remaining playback.
func (c *Channel) Stop() {
	c.free()
}

// Pause keeps the slot and cursor but contributes silence until Resume.
func (c *Channel) Pause() {
	if c.state == statePlaying {
		c.state = statePaused
	}
}

// Resume continues playback of a paused channel.
func (c *Channel) Resume() {
	if c.state == statePaused {
		c.state = statePlaying
	}
}

// Position returns the source frame the cursor currently points at.
func (c *Channel) Position() int {
	return c.cursor.Floor()
}

func (c *Channel) Playing() bool {
	return c.state == statePlaying
}

func (c *Channel) Paused() bool {
	return c.state == statePaused
}
