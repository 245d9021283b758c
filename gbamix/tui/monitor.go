// Package tui renders a live terminal view of the mixer channel pool
// and maps a few keys onto it, for poking at the engine without
// writing a game loop around it.
package tui

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/gbamix/go-gbamix/gbamix/mixer"
)

const (
	minTermWidth  = 64
	minTermHeight = 14
	barWidth      = 24
)

// Monitor draws one row per channel slot and handles the monitor keys.
// Update must run on the goroutine that owns the mixer.
type Monitor struct {
	screen  tcell.Screen
	mixer   *mixer.Mixer
	running atomic.Bool
	paused  bool
	sigs    chan os.Signal
}

func New(m *mixer.Mixer) *Monitor {
	return &Monitor{mixer: m}
}

// Init takes over the terminal. Call Cleanup before exiting or the
// shell is left in raw mode.
func (t *Monitor) Init() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	t.screen = screen
	t.running.Store(true)

	t.sigs = make(chan os.Signal, 1)
	signal.Notify(t.sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-t.sigs
		t.running.Store(false)
	}()

	slog.Info("Channel monitor initialized")
	return nil
}

// Running reports whether the monitor wants the service loop to keep
// going. It flips on q, ESC, Ctrl-C or a termination signal.
func (t *Monitor) Running() bool {
	return t.running.Load()
}

// Update polls pending input, applies it, and redraws. Call once per
// service frame, after mixing.
func (t *Monitor) Update() {
	for t.screen.HasPendingEvent() {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			t.handleKey(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	if !t.Running() {
		return
	}

	t.draw()
	t.screen.Show()
}

// Cleanup restores the terminal.
func (t *Monitor) Cleanup() error {
	if t.screen != nil {
		slog.Info("Cleaning up channel monitor")
		t.screen.Fini()
	}
	if t.sigs != nil {
		signal.Stop(t.sigs)
	}
	return nil
}

func (t *Monitor) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.running.Store(false)
		return
	case tcell.KeyRune:
	default:
		return
	}

	r := ev.Rune()
	switch {
	case r == 'q':
		t.running.Store(false)
	case r == ' ':
		t.togglePause()
	case r >= '1' && r <= '8':
		t.stopSlot(int(r - '1'))
	}
}

func (t *Monitor) togglePause() {
	t.paused = !t.paused
	for _, info := range t.mixer.Snapshot() {
		if !info.Active {
			continue
		}
		ch, ok := t.mixer.Channel(info.ID)
		if !ok {
			continue
		}
		if t.paused {
			ch.Pause()
		} else {
			ch.Resume()
		}
	}
	slog.Debug("Monitor pause toggled", "paused", t.paused)
}

func (t *Monitor) stopSlot(slot int) {
	info := t.mixer.Snapshot()[slot]
	if !info.Active {
		return
	}
	if ch, ok := t.mixer.Channel(info.ID); ok {
		ch.Stop()
		slog.Debug("Channel stopped from monitor", "slot", slot+1)
	}
}

func (t *Monitor) draw() {
	w, h := t.screen.Size()
	t.screen.Clear()

	if w < minTermWidth || h < minTermHeight {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		for i, ch := range msg {
			t.screen.SetContent(i, h/2, ch, nil, style)
		}
		return
	}

	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	t.drawText(1, 0, titleStyle, headerLine(t.mixer.Frequency(), t.mixer.FrameCount(), t.mixer.ActiveChannels()))

	for i, info := range t.mixer.Snapshot() {
		style := tcell.StyleDefault.Foreground(tcell.ColorGray)
		switch {
		case info.Paused:
			style = tcell.StyleDefault.Foreground(tcell.ColorYellow)
		case info.Active:
			style = tcell.StyleDefault.Foreground(tcell.ColorGreen)
		}
		t.drawText(1, 2+i, style, slotLine(i, info))
	}

	t.drawText(0, h-1, tcell.StyleDefault.Foreground(tcell.ColorWhite),
		" q=quit SPACE=pause/resume 1-8=stop slot ")
}

func (t *Monitor) drawText(x, y int, style tcell.Style, s string) {
	for i, ch := range s {
		t.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// headerLine formats the summary line above the slot rows.
func headerLine(f mixer.Frequency, frames uint64, active int) string {
	return fmt.Sprintf(" gbamix %s  frame %d  channels %d/%d ", f, frames, active, mixer.NumChannels)
}

// slotLine formats one channel row: state glyph, priority, layout, a
// progress bar and the gain settings.
func slotLine(slot int, info mixer.ChannelInfo) string {
	if !info.Active {
		return fmt.Sprintf("%d  .  free", slot+1)
	}

	glyph := ">"
	if info.Paused {
		glyph = "="
	}
	pri := "L"
	if info.Priority == mixer.PriorityHigh {
		pri = "H"
	}
	mode := "mono"
	if info.Stereo {
		mode = "ster"
	}

	return fmt.Sprintf("%d  %s  %s %s  [%s] %6d/%-6d vol %s pan %s",
		slot+1, glyph, pri, mode,
		progressBar(info.Position, info.Length, barWidth),
		info.Position, info.Length, info.Volume, info.Panning)
}

// progressBar renders pos within length as a fixed width bar. A looping
// channel keeps sweeping it.
func progressBar(pos, length, width int) string {
	if length <= 0 {
		return strings.Repeat(" ", width)
	}
	filled := pos * width / length
	if filled > width {
		filled = width
	}
	return strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
}
