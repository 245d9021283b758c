package backend

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVSink captures the session to a RIFF/WAVE file instead of playing it.
// Samples are widened to 16 bit so common players handle the result.
type WAVSink struct {
	cfg  Config
	file *os.File
	enc  *wav.Encoder
	buf  *audio.IntBuffer
}

func NewWAVSink(cfg Config) (*WAVSink, error) {
	if cfg.WAVPath == "" {
		return nil, fmt.Errorf("wav sink needs an output path")
	}
	f, err := os.Create(cfg.WAVPath)
	if err != nil {
		return nil, fmt.Errorf("creating wav file: %w", err)
	}

	return &WAVSink{
		cfg:  cfg,
		file: f,
		enc:  wav.NewEncoder(f, cfg.SampleRate, 16, 2, 1),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 2, SampleRate: cfg.SampleRate},
			SourceBitDepth: 16,
		},
	}, nil
}

func (w *WAVSink) Start() error {
	return nil
}

func (w *WAVSink) Queue(frame []int8) error {
	b := len(frame) / 2
	if cap(w.buf.Data) < 2*b {
		w.buf.Data = make([]int, 2*b)
	}
	w.buf.Data = w.buf.Data[:2*b]
	for i := 0; i < b; i++ {
		w.buf.Data[2*i] = int(frame[i]) << 8
		w.buf.Data[2*i+1] = int(frame[b+i]) << 8
	}
	return w.enc.Write(w.buf)
}

func (w *WAVSink) Close() error {
	if err := w.enc.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("finalizing wav file: %w", err)
	}
	return w.file.Close()
}
