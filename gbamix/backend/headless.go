package backend

import "log/slog"

// HeadlessSink counts and discards frames, for tests and batch runs.
type HeadlessSink struct {
	cfg    Config
	frames int
}

func NewHeadlessSink(cfg Config) *HeadlessSink {
	return &HeadlessSink{cfg: cfg}
}

func (h *HeadlessSink) Start() error {
	slog.Info("Running headless audio sink",
		"sample_rate", h.cfg.SampleRate,
		"frame_samples", h.cfg.FrameSamples)
	return nil
}

func (h *HeadlessSink) Queue(frame []int8) error {
	h.frames++
	if h.frames%600 == 0 {
		slog.Debug("Frame progress", "frames", h.frames)
	}
	return nil
}

// Frames returns how many frames have been queued so far.
func (h *HeadlessSink) Frames() int {
	return h.frames
}

func (h *HeadlessSink) Close() error {
	slog.Info("Headless sink done", "frames", h.frames)
	return nil
}
