//go:build !sdl2

package backend

import "fmt"

// SDL2Sink stub for when SDL2 is not available
type SDL2Sink struct{}

func NewSDL2Sink(cfg Config) (*SDL2Sink, error) {
	return &SDL2Sink{}, nil
}

func (s *SDL2Sink) Start() error {
	return fmt.Errorf("%w: SDL2 sink - compile with -tags sdl2 and install SDL2 development libraries", ErrUnavailable)
}

func (s *SDL2Sink) Queue(frame []int8) error {
	return fmt.Errorf("%w: SDL2 sink", ErrUnavailable)
}

func (s *SDL2Sink) Close() error {
	return nil
}
