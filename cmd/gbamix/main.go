package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/gbamix/go-gbamix/gbamix/backend"
	"github.com/gbamix/go-gbamix/gbamix/convert"
	"github.com/gbamix/go-gbamix/gbamix/fixed"
	"github.com/gbamix/go-gbamix/gbamix/mixer"
	"github.com/gbamix/go-gbamix/gbamix/seq"
	"github.com/gbamix/go-gbamix/gbamix/timing"
	"github.com/gbamix/go-gbamix/gbamix/tui"
)

func main() {
	app := cli.NewApp()
	app.Name = "gbamix"
	app.Description = "A software audio mixer in the style of a handheld console sound driver"
	app.Usage = "gbamix <command> [options]"
	app.Version = "1.0.0"
	app.Commands = []cli.Command{
		playCommand(),
		demoCommand(),
		convertCommand(),
	}

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running mixer", "error", err)
		os.Exit(1)
	}
}

func playCommand() cli.Command {
	return cli.Command{
		Name:      "play",
		Usage:     "Mix the given sound files and play them through a backend",
		ArgsUsage: "<sound file>...",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "frequency",
				Usage: "Output frequency: 10512, 18157 or 32768",
				Value: "18157",
			},
			cli.StringFlag{
				Name:  "backend",
				Usage: "Output backend: oto, sdl2, headless or wav",
				Value: "oto",
			},
			cli.Float64Flag{
				Name:  "volume",
				Usage: "Playback volume (1.0 = as recorded)",
				Value: 1.0,
			},
			cli.Float64Flag{
				Name:  "pan",
				Usage: "Stereo position from -1 (left) to 1 (right)",
				Value: 0,
			},
			cli.Float64Flag{
				Name:  "speed",
				Usage: "Playback rate (1.0 = original pitch)",
				Value: 1.0,
			},
			cli.BoolFlag{
				Name:  "loop",
				Usage: "Loop each sound from its start",
			},
			cli.BoolFlag{
				Name:  "stereo",
				Usage: "Treat the sources as interleaved stereo",
			},
			cli.BoolFlag{
				Name:  "tui",
				Usage: "Show the interactive channel monitor",
			},
			cli.StringFlag{
				Name:  "wav",
				Usage: "Output path for the wav backend",
			},
			cli.IntFlag{
				Name:  "frames",
				Usage: "Stop after this many service frames (0 = when sounds finish)",
				Value: 0,
			},
			cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: runPlay,
	}
}

func runPlay(c *cli.Context) error {
	setupLogging(c.Bool("debug"))

	if c.NArg() < 1 {
		cli.ShowCommandHelp(c, "play")
		return errors.New("no sound files provided")
	}

	freq, err := parseFrequency(c.String("frequency"))
	if err != nil {
		return err
	}

	m := mixer.New(freq)

	loop := c.Bool("loop")
	for _, path := range c.Args() {
		sound, err := loadSound(path, freq, loop, c.Bool("stereo"))
		if err != nil {
			return err
		}

		cfg := mixer.NewSoundConfig(sound)
		cfg.Volume = fixed.FromFloat(c.Float64("volume"))
		cfg.Panning = fixed.FromFloat(c.Float64("pan"))
		cfg.Speed = fixed.FromFloat(c.Float64("speed"))
		if _, ok := m.PlaySound(cfg); !ok {
			slog.Warn("No free channel, sound dropped", "path", path)
		}
	}

	return runLoop(c, m, nil, loop)
}

func demoCommand() cli.Command {
	return cli.Command{
		Name:      "demo",
		Usage:     "Loop the given sounds as a simple pattern",
		ArgsUsage: "<sound file>...",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "frequency",
				Usage: "Output frequency: 10512, 18157 or 32768",
				Value: "18157",
			},
			cli.StringFlag{
				Name:  "backend",
				Usage: "Output backend: oto, sdl2, headless or wav",
				Value: "oto",
			},
			cli.IntFlag{
				Name:  "frames-per-row",
				Usage: "Service frames between pattern rows",
				Value: 8,
			},
			cli.BoolFlag{
				Name:  "tui",
				Usage: "Show the interactive channel monitor",
			},
			cli.StringFlag{
				Name:  "wav",
				Usage: "Output path for the wav backend",
			},
			cli.IntFlag{
				Name:  "frames",
				Usage: "Stop after this many service frames (0 = run until quit)",
				Value: 0,
			},
			cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: runDemo,
	}
}

func runDemo(c *cli.Context) error {
	setupLogging(c.Bool("debug"))

	if c.NArg() < 1 {
		cli.ShowCommandHelp(c, "demo")
		return errors.New("no sound files provided")
	}
	if c.Int("frames-per-row") < 1 {
		return errors.New("frames-per-row must be at least 1")
	}

	freq, err := parseFrequency(c.String("frequency"))
	if err != nil {
		return err
	}

	m := mixer.New(freq)

	var rows [][]seq.Step
	for _, path := range c.Args() {
		sound, err := loadSound(path, freq, false, false)
		if err != nil {
			return err
		}

		// Alternate sides so the pattern shows off panning.
		pan := fixed.One / 2
		if len(rows)%2 == 1 {
			pan = -pan
		}
		rows = append(rows, []seq.Step{{Sound: sound, Panning: pan}})
	}

	sq := seq.New(m, &seq.Pattern{Rows: rows, FramesPerRow: c.Int("frames-per-row")}, true)
	sq.Play()

	return runLoop(c, m, sq, true)
}

func convertCommand() cli.Command {
	return cli.Command{
		Name:      "convert",
		Usage:     "Convert an audio file into mixer ready signed 8-bit PCM",
		ArgsUsage: "<input file>",
		Flags: []cli.Flag{
			cli.IntFlag{
				Name:  "rate",
				Usage: "Target sample rate",
				Value: 18157,
			},
			cli.BoolFlag{
				Name:  "stereo",
				Usage: "Keep stereo instead of downmixing to mono",
			},
			cli.IntFlag{
				Name:  "loop",
				Usage: "Loop start frame (-1 = one-shot)",
				Value: -1,
			},
			cli.StringFlag{
				Name:  "go-package",
				Usage: "Emit Go source declaring the asset in this package",
			},
			cli.StringFlag{
				Name:  "go-name",
				Usage: "Identifier for the generated asset (default: derived from the file name)",
			},
			cli.StringFlag{
				Name:  "o, output",
				Usage: "Output path (default: input with a .pcm8 or .go extension)",
			},
			cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: runConvert,
	}
}

func runConvert(c *cli.Context) error {
	setupLogging(c.Bool("debug"))

	if c.NArg() < 1 {
		cli.ShowCommandHelp(c, "convert")
		return errors.New("no input file provided")
	}
	in := c.Args().Get(0)

	out := c.String("output")
	if out == "" {
		base := strings.TrimSuffix(in, filepath.Ext(in))
		if c.String("go-package") != "" {
			out = base + ".go"
		} else {
			out = base + ".pcm8"
		}
	}

	return convert.File(in, out, convert.Options{
		Rate:      c.Int("rate"),
		Stereo:    c.Bool("stereo"),
		LoopStart: c.Int("loop"),
		GoPackage: c.String("go-package"),
		GoName:    c.String("go-name"),
	})
}

// runLoop drives the service loop shared by play and demo: tick the
// sequencer if there is one, mix a frame, hand it to the sink, then
// wait out the frame deadline.
func runLoop(c *cli.Context, m *mixer.Mixer, sq *seq.Sequencer, looping bool) error {
	freq := m.Frequency()
	name := c.String("backend")
	offline := name == "headless" || name == "wav"
	maxFrames := c.Int("frames")

	if offline && looping && maxFrames <= 0 {
		return fmt.Errorf("looping playback with the %s backend requires --frames", name)
	}

	sink, err := backend.New(name, backend.Config{
		SampleRate:   freq.Hz(),
		FrameSamples: freq.BufferSize(),
		WAVPath:      c.String("wav"),
	})
	if err != nil {
		return err
	}
	if err := sink.Start(); err != nil {
		return err
	}
	defer sink.Close()

	var limiter timing.Limiter
	if offline {
		limiter = timing.NewNoOpLimiter()
	} else {
		limiter = timing.NewAdaptiveLimiter(freq)
	}

	var mon *tui.Monitor
	if c.Bool("tui") {
		mon = tui.New(m)
		if err := mon.Init(); err != nil {
			return err
		}
		defer mon.Cleanup()
	}

	slog.Info("Mixing",
		"frequency", freq.String(),
		"backend", name,
		"channels", m.ActiveChannels())

	// Real time sinks buffer a few frames; keep feeding silence after the
	// last channel retires so the tail is not cut off.
	tail := 30
	if offline {
		tail = 1
	}

	frames := 0
	for {
		if sq != nil {
			sq.Tick()
		}

		frame := m.Frame()
		if err := sink.Queue(frame); err != nil {
			return err
		}

		if mon != nil {
			mon.Update()
			if !mon.Running() {
				break
			}
		}

		frames++
		if maxFrames > 0 && frames >= maxFrames {
			break
		}
		if m.ActiveChannels() == 0 && (sq == nil || !sq.Playing()) {
			tail--
			if tail <= 0 {
				break
			}
		}

		limiter.WaitForNextFrame()
	}

	slog.Info("Playback finished", "frames", frames)
	return nil
}

// loadSound reads path into mixer ready sample data, converting through
// the asset pipeline unless it is already raw signed 8-bit PCM.
func loadSound(path string, freq mixer.Frequency, loop, stereo bool) (*mixer.SoundData, error) {
	var samples []int8

	if strings.ToLower(filepath.Ext(path)) == ".pcm8" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		samples = make([]int8, len(raw))
		for i, b := range raw {
			samples[i] = int8(b)
		}
	} else {
		clip, err := convert.Decode(path)
		if err != nil {
			return nil, err
		}
		loopStart := -1
		if loop {
			loopStart = 0
		}
		samples, err = convert.Convert(clip, convert.Options{
			Rate:      freq.Hz(),
			Stereo:    stereo,
			LoopStart: loopStart,
		})
		if err != nil {
			return nil, err
		}
	}

	// The SoundData constructors treat bad shapes as programming errors;
	// here they come from user files, so reject them as input errors.
	if len(samples) == 0 {
		return nil, fmt.Errorf("%s holds no samples", path)
	}
	if stereo && len(samples)%2 != 0 {
		return nil, fmt.Errorf("%s has an odd sample count, not interleaved stereo", path)
	}

	switch {
	case stereo && loop:
		return mixer.NewLoopingStereoSoundData(samples, freq.Hz(), 0), nil
	case stereo:
		return mixer.NewStereoSoundData(samples, freq.Hz()), nil
	case loop:
		return mixer.NewLoopingSoundData(samples, freq.Hz(), 0), nil
	default:
		return mixer.NewSoundData(samples, freq.Hz()), nil
	}
}

func parseFrequency(s string) (mixer.Frequency, error) {
	switch s {
	case "10512":
		return mixer.Freq10512, nil
	case "18157":
		return mixer.Freq18157, nil
	case "32768":
		return mixer.Freq32768, nil
	}
	return 0, fmt.Errorf("unknown frequency %q (want 10512, 18157 or 32768)", s)
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
