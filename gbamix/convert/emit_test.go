package convert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRaw(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteRaw(&b, []int8{0, 1, -1, 127, -128}))

	assert.Equal(t, []byte{0, 1, 255, 127, 128}, []byte(b.String()))
}

func TestEmitGo(t *testing.T) {
	var b strings.Builder
	err := EmitGo(&b, "assets", "Jump", []int8{1, -2, 3}, Options{Rate: 18157, LoopStart: -1})
	require.NoError(t, err)

	src := b.String()
	assert.Contains(t, src, "// Code generated by gbamix convert. DO NOT EDIT.")
	assert.Contains(t, src, "package assets")
	assert.Contains(t, src, `import "github.com/gbamix/go-gbamix/gbamix/mixer"`)
	assert.Contains(t, src, "var Jump = mixer.NewSoundData(JumpData[:], 18157)")
	assert.Contains(t, src, "var JumpData = [...]int8{")
	assert.Contains(t, src, "1, -2, 3,")
}

func TestEmitGo_ConstructorSelection(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"one shot mono", Options{Rate: 32768, LoopStart: -1}, "mixer.NewSoundData(BeepData[:], 32768)"},
		{"looping mono", Options{Rate: 32768, LoopStart: 4}, "mixer.NewLoopingSoundData(BeepData[:], 32768, 4)"},
		{"one shot stereo", Options{Rate: 32768, Stereo: true, LoopStart: -1}, "mixer.NewStereoSoundData(BeepData[:], 32768)"},
		{"looping stereo", Options{Rate: 32768, Stereo: true, LoopStart: 0}, "mixer.NewLoopingStereoSoundData(BeepData[:], 32768, 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			require.NoError(t, EmitGo(&b, "assets", "Beep", []int8{0, 0}, tt.opts))
			assert.Contains(t, b.String(), tt.want)
		})
	}
}

func TestIdentFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"boss-theme.ogg", "BossTheme"},
		{"sfx/jump_01.wav", "Jump01"},
		{"8bit.wav", "Sound8bit"},
		{"---.wav", "Sound"},
		{"TitleTheme.mp3", "TitleTheme"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, identFromPath(tt.path), tt.path)
	}
}
