package mixer

import "github.com/gbamix/go-gbamix/gbamix/fixed"

// SoundData is an immutable PCM asset: signed 8-bit samples at a fixed
// rate, mono or pre-interleaved stereo (left, right, left, ...). Assets
// are created once, typically by the gbamix convert tool, and shared; any
// number of channels may play the same SoundData at the same time.
type SoundData struct {
	samples   []int8
	rate      int
	stereo    bool
	loopStart int // frame index; negative when the asset is finite
}

// NewSoundData returns a finite mono asset.
func NewSoundData(samples []int8, rate int) *SoundData {
	checkRate(rate)
	checkLen(len(samples))
	return &SoundData{samples: samples, rate: rate, loopStart: -1}
}

// NewLoopingSoundData returns a mono asset that wraps back to the
// loopStart frame once playback passes the end.
func NewLoopingSoundData(samples []int8, rate int, loopStart int) *SoundData {
	checkRate(rate)
	checkLen(len(samples))
	if loopStart < 0 || loopStart >= len(samples) {
		panic("mixer: loop start out of range")
	}
	return &SoundData{samples: samples, rate: rate, loopStart: loopStart}
}

// NewStereoSoundData returns a finite stereo asset. Samples must be
// interleaved left/right pairs, so the length must be even.
func NewStereoSoundData(samples []int8, rate int) *SoundData {
	checkRate(rate)
	checkLen(len(samples) / 2)
	if len(samples)%2 != 0 {
		panic("mixer: stereo sample data must be interleaved pairs")
	}
	return &SoundData{samples: samples, rate: rate, stereo: true, loopStart: -1}
}

// NewLoopingStereoSoundData returns a looping stereo asset. The loop
// start is a frame index, not a raw sample index.
func NewLoopingStereoSoundData(samples []int8, rate int, loopStart int) *SoundData {
	checkRate(rate)
	checkLen(len(samples) / 2)
	if len(samples)%2 != 0 {
		panic("mixer: stereo sample data must be interleaved pairs")
	}
	if loopStart < 0 || loopStart >= len(samples)/2 {
		panic("mixer: loop start out of range")
	}
	return &SoundData{samples: samples, rate: rate, stereo: true, loopStart: loopStart}
}

func checkRate(rate int) {
	if rate <= 0 {
		panic("mixer: sample rate must be positive")
	}
}

// maxFrames is the largest frame index the 24.8 fixed-point cursor can
// address without overflowing its integer part.
const maxFrames = 1 << (31 - fixed.Shift)

func checkLen(frames int) {
	if frames > maxFrames {
		panic("mixer: sound data too long for fixed-point cursor")
	}
}

// Len returns the length in frames. A stereo pair counts as one frame.
func (s *SoundData) Len() int {
	if s.stereo {
		return len(s.samples) / 2
	}
	return len(s.samples)
}

// Rate returns the sample rate the asset was converted for.
func (s *SoundData) Rate() int {
	return s.rate
}

// Stereo reports whether the samples are interleaved stereo pairs.
func (s *SoundData) Stereo() bool {
	return s.stereo
}

// Loop returns the loop start frame and whether the asset loops at all.
func (s *SoundData) Loop() (int, bool) {
	return s.loopStart, s.loopStart >= 0
}
