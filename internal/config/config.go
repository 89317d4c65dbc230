// Package config handles command line options and logger setup
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// Frontends that can present the VM
const (
	FrontendSDL      = "sdl"
	FrontendTTY      = "tty"
	FrontendHeadless = "headless"
)

// Defaults used by the frame pacer and the SDL window
const (
	DefaultInstructionsPerFrame = 11
	DefaultFrameRate            = 60
	DefaultScale                = 20

	DefaultBackground = 0x1A237E
	DefaultForeground = 0x9FA8DA
)

// Options contains everything read from the command line
type Options struct {
	ROM      string
	Frontend string

	Scale      int
	Background uint32
	Foreground uint32

	InstructionsPerFrame int
	FrameRate            int
	Frames               int
	Seed                 int64

	WavFile    string
	MemvizFile string
	Statsview  bool

	Trace bool
	Debug bool
	Quiet bool
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage line and the flag defaults
func (e *UsageError) ShowUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "usage: chopper8 [options] <CHIP-8 program>\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	_, _ = fmt.Fprintln(w)
}

// ParseFlags parses the command line arguments, without the program name
func ParseFlags(args []string) (Options, error) {
	flags := flag.NewFlagSet("chopper8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	opts := Options{}
	var bg, fg string
	flags.StringVar(&opts.Frontend, "frontend", FrontendSDL, "frontend to use: sdl, tty or headless")
	flags.IntVar(&opts.Scale, "scale", DefaultScale, "size of a CHIP-8 pixel in window pixels")
	flags.StringVar(&bg, "bg", fmt.Sprintf("%06X", DefaultBackground), "background color as RRGGBB")
	flags.StringVar(&fg, "fg", fmt.Sprintf("%06X", DefaultForeground), "foreground color as RRGGBB")
	flags.IntVar(&opts.InstructionsPerFrame, "ipf", DefaultInstructionsPerFrame, "instructions executed per frame")
	flags.IntVar(&opts.FrameRate, "hz", DefaultFrameRate, "frames per second, timers decrement once per frame")
	flags.IntVar(&opts.Frames, "frames", 0, "stop after this many frames, 0 runs until quit")
	flags.Int64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 picks a time based seed")
	flags.StringVar(&opts.WavFile, "wav", "", "record the sound timer tone to this WAV file")
	flags.StringVar(&opts.MemvizFile, "memviz", "", "write a graphviz dot file of the registers on exit")
	flags.BoolVar(&opts.Statsview, "statsview", false, "launch the runtime stats server")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, &UsageError{flags: flags}
		}
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	if flags.NArg() != 1 {
		return opts, &UsageError{flags: flags, msg: "expected exactly one CHIP-8 program"}
	}
	opts.ROM = flags.Arg(0)

	var err error
	if opts.Background, err = ParseColor(bg); err != nil {
		return opts, fmt.Errorf("parsing background color: %w", err)
	}
	if opts.Foreground, err = ParseColor(fg); err != nil {
		return opts, fmt.Errorf("parsing foreground color: %w", err)
	}
	if opts.Trace {
		opts.Debug = true
	}
	if err := opts.validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

func (o Options) validate() error {
	switch o.Frontend {
	case FrontendSDL, FrontendTTY, FrontendHeadless:
	default:
		return fmt.Errorf("unsupported frontend '%s'", o.Frontend)
	}
	if o.Scale <= 0 {
		return fmt.Errorf("invalid scale %d", o.Scale)
	}
	if o.InstructionsPerFrame <= 0 {
		return fmt.Errorf("invalid instructions per frame %d", o.InstructionsPerFrame)
	}
	if o.FrameRate <= 0 {
		return fmt.Errorf("invalid frame rate %d", o.FrameRate)
	}
	if o.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", o.Frames)
	}
	if o.Frontend == FrontendHeadless && o.Frames == 0 {
		return errors.New("headless frontend needs a frame count")
	}
	return nil
}

// ParseColor parses a RRGGBB hex string, an optional leading '#' or "0x" is
// accepted.
func ParseColor(s string) (uint32, error) {
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	if len(s) != 6 {
		return 0, fmt.Errorf("invalid color '%s'", s)
	}
	c, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color '%s': %w", s, err)
	}
	return uint32(c), nil
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
