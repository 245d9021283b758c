package backend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbamix/go-gbamix/gbamix/mixer"
)

func TestWAVSink_CapturesMixerOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	m := mixer.New(mixer.Freq10512)
	samples := make([]int8, 100)
	for i := range samples {
		samples[i] = int8(i - 50)
	}
	snd := mixer.NewSoundData(samples, mixer.Freq10512.Hz())
	_, ok := m.PlaySound(mixer.NewSoundConfig(snd))
	require.True(t, ok)

	sink, err := NewWAVSink(Config{
		SampleRate:   mixer.Freq10512.Hz(),
		FrameSamples: m.BufferSize(),
		WAVPath:      path,
	})
	require.NoError(t, err)
	require.NoError(t, sink.Start())

	frame := m.Frame()
	require.NoError(t, sink.Queue(frame))
	require.NoError(t, sink.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	d := wav.NewDecoder(f)
	require.True(t, d.IsValidFile(), "sink should produce a readable wav file")
	buf, err := d.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, 2, buf.Format.NumChannels)
	assert.Equal(t, mixer.Freq10512.Hz(), buf.Format.SampleRate)
	require.Len(t, buf.Data, 2*m.BufferSize(), "one frame of interleaved pairs")

	b := m.BufferSize()
	for i := 0; i < b; i++ {
		assert.Equal(t, int(frame[i])<<8, buf.Data[2*i], "left sample %d", i)
		assert.Equal(t, int(frame[b+i])<<8, buf.Data[2*i+1], "right sample %d", i)
	}
}

func TestWAVSink_RequiresPath(t *testing.T) {
	_, err := NewWAVSink(Config{SampleRate: 10512})
	assert.Error(t, err)
}

func TestHeadlessSink_CountsFrames(t *testing.T) {
	sink := NewHeadlessSink(Config{SampleRate: 10512, FrameSamples: 176})
	require.NoError(t, sink.Start())

	frame := make([]int8, 2*176)
	for range 3 {
		require.NoError(t, sink.Queue(frame))
	}
	assert.Equal(t, 3, sink.Frames())
	require.NoError(t, sink.Close())
}

func TestNew_KnownAndUnknownNames(t *testing.T) {
	sink, err := New("headless", Config{SampleRate: 10512, FrameSamples: 176})
	require.NoError(t, err)
	assert.IsType(t, &HeadlessSink{}, sink)

	_, err = New("fancy", Config{})
	assert.ErrorContains(t, err, "unknown backend")
}
