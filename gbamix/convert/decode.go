package convert

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// Clip is decoded audio in normalized float32 form, interleaved when
// stereo. Values are in [-1, 1].
type Clip struct {
	Samples  []float32
	Rate     int
	Channels int
}

// Frames returns the clip length in frames.
func (c *Clip) Frames() int {
	return len(c.Samples) / c.Channels
}

// Decode reads an audio file, dispatching on its extension. Supported:
// .wav, .aiff/.aif, .mp3, .ogg/.oga.
func Decode(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return decodeWAV(f)
	case ".aiff", ".aif":
		return decodeAIFF(f)
	case ".mp3":
		return decodeMP3(f)
	case ".ogg", ".oga":
		return decodeOgg(f)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

func decodeWAV(f io.ReadSeeker) (*Clip, error) {
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%w: not a wav file", ErrBadSource)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}
	return clipFromInts(buf), nil
}

func decodeAIFF(f io.ReadSeeker) (*Clip, error) {
	d := aiff.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%w: not an aiff file", ErrBadSource)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}
	return clipFromInts(buf), nil
}

// decodeMP3 drains the go-mp3 decoder, which always yields 16-bit little
// endian stereo regardless of the source layout.
func decodeMP3(r io.Reader) (*Clip, error) {
	d, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSource, err)
	}

	raw, err := io.ReadAll(d)
	if err != nil {
		return nil, fmt.Errorf("reading mp3 data: %w", err)
	}

	samples := make([]float32, len(raw)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		samples[i] = float32(v) / 32768
	}
	return &Clip{Samples: samples, Rate: d.SampleRate(), Channels: 2}, nil
}

func decodeOgg(r io.Reader) (*Clip, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSource, err)
	}
	return &Clip{Samples: data, Rate: format.SampleRate, Channels: format.Channels}, nil
}

// clipFromInts normalizes a go-audio integer buffer by its source bit
// depth.
func clipFromInts(buf *goaudio.IntBuffer) *Clip {
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}
	scale := float32(int(1) << (depth - 1))

	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(v) / scale
	}
	return &Clip{
		Samples:  samples,
		Rate:     buf.Format.SampleRate,
		Channels: buf.Format.NumChannels,
	}
}
