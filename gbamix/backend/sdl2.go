//go:build sdl2

package backend

import (
	"fmt"
	"log/slog"

	"github.com/veandco/go-sdl2/sdl"
)

// SDL2Sink queues mixer frames straight to an SDL audio device in its
// native signed 8-bit format.
// Note: building this requires SDL2 development libraries installed.
// Default builds use a stubbed sink instead, see build tags (sdl2).
type SDL2Sink struct {
	cfg     Config
	dev     sdl.AudioDeviceID
	opened  bool
	scratch []byte
}

func NewSDL2Sink(cfg Config) (*SDL2Sink, error) {
	return &SDL2Sink{cfg: cfg}, nil
}

func (s *SDL2Sink) Start() error {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("initializing SDL audio: %w", err)
	}

	want := &sdl.AudioSpec{
		Freq:     int32(s.cfg.SampleRate),
		Format:   sdl.AUDIO_S8,
		Channels: 2,
		Samples:  uint16(s.cfg.FrameSamples),
	}
	var have sdl.AudioSpec
	dev, err := sdl.OpenAudioDevice("", false, want, &have, 0)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return fmt.Errorf("opening SDL audio device: %w", err)
	}

	s.dev = dev
	s.opened = true
	sdl.PauseAudioDevice(dev, false)
	slog.Debug("SDL audio device opened", "freq", have.Freq, "buffer_samples", have.Samples)
	return nil
}

func (s *SDL2Sink) Queue(frame []int8) error {
	b := len(frame) / 2
	if cap(s.scratch) < 2*b {
		s.scratch = make([]byte, 2*b)
	}
	buf := s.scratch[:2*b]
	for i := 0; i < b; i++ {
		buf[2*i] = byte(frame[i])
		buf[2*i+1] = byte(frame[b+i])
	}
	return sdl.QueueAudio(s.dev, buf)
}

func (s *SDL2Sink) Close() error {
	if s.opened {
		sdl.CloseAudioDevice(s.dev)
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		s.opened = false
	}
	return nil
}
