// Package seq is a small pattern sequencer driven by the mixer service
// loop. A pattern is a grid of rows, each row holding one step per
// track; the sequencer fires the steps of a row into the mixer and
// advances after a fixed number of service frames.
package seq

import (
	"log/slog"

	"github.com/gbamix/go-gbamix/gbamix/fixed"
	"github.com/gbamix/go-gbamix/gbamix/mixer"
)

// Step is one cell of a pattern. A nil Sound is a rest. Zero Volume and
// Speed mean full volume and original pitch, so literal patterns only
// spell out what they change.
type Step struct {
	Sound    *mixer.SoundData
	Volume   fixed.Num
	Panning  fixed.Num
	Speed    fixed.Num
	Priority mixer.Priority
}

// Pattern is a sequence of rows played top to bottom. FramesPerRow sets
// the tempo: at the display locked rates one row per 6 frames is about
// 150 BPM of sixteenth notes.
type Pattern struct {
	Rows         [][]Step
	FramesPerRow int
}

// Sequencer steps a Pattern through a Mixer. It is driven by Tick, which
// the owner of the service loop calls once per frame, before Frame.
type Sequencer struct {
	mixer   *mixer.Mixer
	pattern *Pattern
	loop    bool

	row     int
	frames  int
	playing bool
}

// New creates a sequencer for pattern. It panics if the pattern has no
// rows or a non-positive tempo, both always programming errors.
func New(m *mixer.Mixer, pattern *Pattern, loop bool) *Sequencer {
	if len(pattern.Rows) == 0 {
		panic("seq: pattern has no rows")
	}
	if pattern.FramesPerRow < 1 {
		panic("seq: frames per row must be at least 1")
	}
	return &Sequencer{mixer: m, pattern: pattern, loop: loop}
}

// Play starts or resumes stepping from the current row.
func (s *Sequencer) Play() {
	s.playing = true
}

// Stop halts stepping. Sounds already fired keep playing.
func (s *Sequencer) Stop() {
	s.playing = false
}

// Playing reports whether the sequencer advances on Tick.
func (s *Sequencer) Playing() bool {
	return s.playing
}

// Row returns the current row index.
func (s *Sequencer) Row() int {
	return s.row
}

// Jump moves to row and restarts its frame countdown. The row fires on
// the next Tick.
func (s *Sequencer) Jump(row int) {
	if row < 0 || row >= len(s.pattern.Rows) {
		panic("seq: jump target outside pattern")
	}
	s.row = row
	s.frames = 0
}

// Tick advances the sequencer by one service frame, firing the current
// row's steps when the row begins. A finished non-looping sequencer
// stops itself.
func (s *Sequencer) Tick() {
	if !s.playing {
		return
	}

	if s.frames == 0 {
		s.fireRow()
	}

	s.frames++
	if s.frames >= s.pattern.FramesPerRow {
		s.frames = 0
		s.row++
		if s.row >= len(s.pattern.Rows) {
			s.row = 0
			if !s.loop {
				s.playing = false
			}
		}
	}
}

func (s *Sequencer) fireRow() {
	for _, step := range s.pattern.Rows[s.row] {
		if step.Sound == nil {
			continue
		}

		cfg := mixer.NewSoundConfig(step.Sound)
		cfg.Priority = step.Priority
		cfg.Panning = step.Panning
		if step.Volume != 0 {
			cfg.Volume = step.Volume
		}
		if step.Speed != 0 {
			cfg.Speed = step.Speed
		}

		if _, ok := s.mixer.PlaySound(cfg); !ok {
			slog.Debug("Sequencer step dropped, no free channel", "row", s.row)
		}
	}
}
