package mixer

import (
	"math/bits"

	"github.com/gbamix/go-gbamix/gbamix/fixed"
)

// accumulate mixes one playing channel into the working buffer. Dispatch
// over the source shapes is a plain branch over a closed set; these loops
// are the hottest code in the package and stay free of indirect calls.
func (m *Mixer) accumulate(ch *Channel) {
	if ch.sound.stereo {
		m.accumulateStereo(ch)
		return
	}
	m.accumulateMono(ch)
}

// accumulateMono advances the cursor by the channel increment once per
// output sample and adds the fetched sample, scaled by the side gains,
// into both halves of the working buffer. The integer cursor part indexes
// the source directly; adjacent samples are never interpolated.
//
// Reaching the end of the source wraps looping channels back into
// [loopStart, end) by modulo arithmetic. Finite channels free themselves
// and leave the rest of the buffer untouched.
func (m *Mixer) accumulateMono(ch *Channel) {
	b := m.frequency.BufferSize()
	src := ch.sound.samples
	end := fixed.FromInt(len(src))
	loopFrame, loops := ch.sound.Loop()
	loopStart := fixed.FromInt(loopFrame)

	left := int32(ch.left)
	right := int32(ch.right)
	pos := ch.cursor
	step := ch.increment

	switch {
	case left == right && isPow2(left):
		// Equal power-of-two gains: one shift feeds both sides.
		shift := uint(bits.TrailingZeros32(uint32(left)))
		for i := 0; i < b; i++ {
			idx := pos.Floor()
			if idx >= len(src) {
				if !loops {
					ch.free()
					return
				}
				pos = loopStart + (pos-loopStart)%(end-loopStart)
				idx = pos.Floor()
			}
			v := int32(src[idx]) << shift
			m.work[i] += v
			m.work[b+i] += v
			pos += step
		}
	case left == right:
		// Equal gains: one multiply feeds both sides.
		for i := 0; i < b; i++ {
			idx := pos.Floor()
			if idx >= len(src) {
				if !loops {
					ch.free()
					return
				}
				pos = loopStart + (pos-loopStart)%(end-loopStart)
				idx = pos.Floor()
			}
			v := int32(src[idx]) * left
			m.work[i] += v
			m.work[b+i] += v
			pos += step
		}
	default:
		for i := 0; i < b; i++ {
			idx := pos.Floor()
			if idx >= len(src) {
				if !loops {
					ch.free()
					return
				}
				pos = loopStart + (pos-loopStart)%(end-loopStart)
				idx = pos.Floor()
			}
			s := int32(src[idx])
			m.work[i] += s * left
			m.work[b+i] += s * right
			pos += step
		}
	}

	ch.cursor = pos
}

// accumulateStereo adds interleaved source pairs to their own sides.
// Panning is bypassed; volume scales both sides equally.
func (m *Mixer) accumulateStereo(ch *Channel) {
	b := m.frequency.BufferSize()
	src := ch.sound.samples
	frames := len(src) / 2
	end := fixed.FromInt(frames)
	loopFrame, loops := ch.sound.Loop()
	loopStart := fixed.FromInt(loopFrame)

	vol := int32(ch.left)
	pos := ch.cursor
	step := ch.increment

	for i := 0; i < b; i++ {
		idx := pos.Floor()
		if idx >= frames {
			if !loops {
				ch.free()
				return
			}
			pos = loopStart + (pos-loopStart)%(end-loopStart)
			idx = pos.Floor()
		}
		m.work[i] += int32(src[2*idx]) * vol
		m.work[b+i] += int32(src[2*idx+1]) * vol
		pos += step
	}

	ch.cursor = pos
}

// collapse folds the wide working buffer into the hardware format: drop
// the 8 fractional gain bits, clamp, narrow to int8.
func collapse(work []int32, out []int8) {
	for i, v := range work {
		v >>= fixed.Shift
		if v > outputMax {
			v = outputMax
		} else if v < outputMin {
			v = outputMin
		}
		out[i] = int8(v)
	}
}

// isPow2 reports whether a raw gain has exactly one bit set, in which
// case the hot loop multiply can become a shift.
func isPow2(g int32) bool {
	return g > 0 && g&(g-1) == 0
}
