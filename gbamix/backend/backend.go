package backend

import "fmt"

// Sink consumes the mixer's finished buffers on a host machine, standing
// in for the console's timer/DMA pipeline. Sinks are responsible for:
// - converting the mixer's two block layout to their native sample format
// - pacing themselves off the bytes they are handed (the caller services
//   the mixer at the console cadence, sinks never pull from the mixer)
type Sink interface {
	// Start prepares the sink for playback.
	Start() error

	// Queue hands over one finished frame in the mixer's layout: B left
	// samples followed by B right samples.
	Queue(frame []int8) error

	// Close flushes and releases the sink.
	Close() error
}

// Config holds configuration shared by all sinks.
type Config struct {
	SampleRate   int    // output samples per second per side
	FrameSamples int    // samples per side in one Queue call
	WAVPath      string // destination file, wav sink only
}

// New creates a sink by name: "oto", "sdl2", "headless" or "wav".
func New(name string, cfg Config) (Sink, error) {
	switch name {
	case "oto":
		return NewOtoSink(cfg)
	case "sdl2":
		return NewSDL2Sink(cfg)
	case "headless":
		return NewHeadlessSink(cfg), nil
	case "wav":
		return NewWAVSink(cfg)
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}
