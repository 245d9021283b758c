package convert

import (
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestWAV synthesizes a 16-bit PCM wav file for decoder tests.
func writeTestWAV(t *testing.T, path string, rate, channels int, data []int) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	err = enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	})
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func TestDecode_WAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeTestWAV(t, path, 32768, 1, []int{0, 16384, -16384, 32767})

	clip, err := Decode(path)
	require.NoError(t, err)

	assert.Equal(t, 32768, clip.Rate)
	assert.Equal(t, 1, clip.Channels)
	require.Len(t, clip.Samples, 4)
	assert.InDelta(t, 0.0, clip.Samples[0], 1e-6)
	assert.InDelta(t, 0.5, clip.Samples[1], 1e-6)
	assert.InDelta(t, -0.5, clip.Samples[2], 1e-6)
	assert.InDelta(t, 1.0, clip.Samples[3], 1e-3)
}

func TestDecode_StereoWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pair.wav")
	writeTestWAV(t, path, 18157, 2, []int{16384, -16384, 8192, -8192})

	clip, err := Decode(path)
	require.NoError(t, err)

	assert.Equal(t, 2, clip.Channels)
	assert.Equal(t, 2, clip.Frames())
	assert.InDelta(t, 0.5, clip.Samples[0], 1e-6)
	assert.InDelta(t, -0.5, clip.Samples[1], 1e-6)
}

func TestDecode_UnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drums.xm")
	require.NoError(t, os.WriteFile(path, []byte("not audio"), 0o644))

	_, err := Decode(path)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecode_MissingFile(t *testing.T) {
	_, err := Decode(filepath.Join(t.TempDir(), "nope.wav"))
	assert.Error(t, err)
}

func TestDecode_RejectsGarbage(t *testing.T) {
	for _, ext := range []string{".wav", ".aiff", ".mp3", ".ogg"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "broken"+ext)
			require.NoError(t, os.WriteFile(path, []byte("definitely not audio data"), 0o644))

			_, err := Decode(path)
			assert.ErrorIs(t, err, ErrBadSource)
		})
	}
}
