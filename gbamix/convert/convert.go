package convert

import (
	"fmt"
	"log/slog"
	"math"
	"os"
)

// Options configures a conversion.
type Options struct {
	Rate      int    // target sample rate, normally one of the mixer frequencies
	Stereo    bool   // emit interleaved stereo instead of a mono downmix
	LoopStart int    // loop start frame, negative for a one-shot asset
	GoPackage string // when set, File emits Go source instead of raw PCM
	GoName    string // exported identifier for the generated asset, derived from the input name when empty
}

// Convert runs the full pipeline on a decoded clip: rate conversion,
// channel shaping, quantization.
func Convert(c *Clip, opts Options) ([]int8, error) {
	if c.Channels < 1 || c.Channels > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrBadSource, c.Channels)
	}
	if opts.Rate <= 0 {
		return nil, fmt.Errorf("target rate must be positive, got %d", opts.Rate)
	}

	c = Resample(c, opts.Rate)
	if opts.Stereo {
		c = ToStereo(c)
	} else {
		c = Downmix(c)
	}
	samples := Quantize(c)

	if opts.LoopStart >= 0 {
		frames := len(samples)
		if opts.Stereo {
			frames /= 2
		}
		if opts.LoopStart >= frames {
			return nil, fmt.Errorf("loop start %d outside the %d converted frames", opts.LoopStart, frames)
		}
	}
	return samples, nil
}

// Resample converts the clip to targetRate using linear interpolation.
// This runs at build time on the host; the playback engine itself never
// interpolates.
func Resample(c *Clip, targetRate int) *Clip {
	if c.Rate == targetRate {
		return c
	}

	frames := c.Frames()
	outFrames := int(float64(frames) * float64(targetRate) / float64(c.Rate))
	ratio := float64(c.Rate) / float64(targetRate)

	out := make([]float32, 0, outFrames*c.Channels)
	for i := 0; i < outFrames; i++ {
		pos := float64(i) * ratio
		i0 := int(pos)
		i1 := i0 + 1
		if i1 >= frames {
			i1 = frames - 1
		}
		frac := float32(pos - float64(i0))
		for ch := 0; ch < c.Channels; ch++ {
			a := c.Samples[i0*c.Channels+ch]
			b := c.Samples[i1*c.Channels+ch]
			out = append(out, a+(b-a)*frac)
		}
	}
	return &Clip{Samples: out, Rate: targetRate, Channels: c.Channels}
}

// Downmix averages stereo pairs into mono. Mono clips pass through.
func Downmix(c *Clip) *Clip {
	if c.Channels == 1 {
		return c
	}

	frames := c.Frames()
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		sum := float32(0)
		for ch := 0; ch < c.Channels; ch++ {
			sum += c.Samples[i*c.Channels+ch]
		}
		out[i] = sum / float32(c.Channels)
	}
	return &Clip{Samples: out, Rate: c.Rate, Channels: 1}
}

// ToStereo interleaves a mono clip into identical left/right pairs.
// Stereo clips pass through.
func ToStereo(c *Clip) *Clip {
	if c.Channels == 2 {
		return c
	}

	out := make([]float32, 2*len(c.Samples))
	for i, s := range c.Samples {
		out[2*i] = s
		out[2*i+1] = s
	}
	return &Clip{Samples: out, Rate: c.Rate, Channels: 2}
}

// Quantize converts normalized samples to the signed 8-bit format the
// mixer plays, clamping anything outside [-1, 1].
func Quantize(c *Clip) []int8 {
	out := make([]int8, len(c.Samples))
	for i, s := range c.Samples {
		v := int(math.Round(float64(s) * 128))
		if v > 127 {
			v = 127
		} else if v < -128 {
			v = -128
		}
		out[i] = int8(v)
	}
	return out
}

// File decodes in, converts it per opts, and writes the result to out:
// raw signed 8-bit PCM by default, generated Go source when GoPackage is
// set.
func File(in, out string, opts Options) error {
	clip, err := Decode(in)
	if err != nil {
		return err
	}
	samples, err := Convert(clip, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}

	if opts.GoPackage != "" {
		name := opts.GoName
		if name == "" {
			name = identFromPath(in)
		}
		err = EmitGo(f, opts.GoPackage, name, samples, opts)
	} else {
		err = WriteRaw(f, samples)
	}
	if err != nil {
		f.Close()
		return err
	}

	slog.Info("Converted audio asset",
		"in", in,
		"out", out,
		"rate", opts.Rate,
		"stereo", opts.Stereo,
		"samples", len(samples))
	return f.Close()
}
