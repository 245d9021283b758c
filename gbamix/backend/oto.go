package backend

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// maxPendingFrames bounds how far the device may fall behind before the
// oldest queued audio is dropped.
const maxPendingFrames = 8

// OtoSink plays mixer output through the operating system audio device
// using oto. Queue converts each frame to float32 and appends it to a
// pending buffer; the device pulls from that buffer on its own schedule
// via Read.
type OtoSink struct {
	cfg    Config
	ctx    *oto.Context
	player *oto.Player

	mu      sync.Mutex
	pending []byte
	scratch []byte
}

// NewOtoSink opens the system audio device and waits for it to be ready.
func NewOtoSink(cfg Config) (*OtoSink, error) {
	op := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio context: %w", err)
	}
	<-ready

	s := &OtoSink{cfg: cfg, ctx: ctx}
	s.player = ctx.NewPlayer(s)
	return s, nil
}

func (s *OtoSink) Start() error {
	s.player.Play()
	return nil
}

// Queue converts one frame to interleaved float32 little endian and
// appends it to the pending buffer.
func (s *OtoSink) Queue(frame []int8) error {
	b := len(frame) / 2
	if cap(s.scratch) < 8*b {
		s.scratch = make([]byte, 8*b)
	}
	buf := s.scratch[:8*b]
	for i := 0; i < b; i++ {
		l := float32(frame[i]) / 128
		r := float32(frame[b+i]) / 128
		binary.LittleEndian.PutUint32(buf[8*i:], math.Float32bits(l))
		binary.LittleEndian.PutUint32(buf[8*i+4:], math.Float32bits(r))
	}

	s.mu.Lock()
	s.pending = append(s.pending, buf...)
	if limit := 8 * b * maxPendingFrames; len(s.pending) > limit {
		s.pending = s.pending[len(s.pending)-limit:]
	}
	s.mu.Unlock()
	return nil
}

// Read feeds the audio device. An underrun produces silence, like a
// missed service call on the console.
func (s *OtoSink) Read(p []byte) (int, error) {
	s.mu.Lock()
	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	s.mu.Unlock()

	for i := n; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

func (s *OtoSink) Close() error {
	if s.player != nil {
		return s.player.Close()
	}
	return nil
}
