// Package main implements the command line entry point of the CHIP-8 interpreter
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/faiface/mainthread"
	"github.com/mnafees/chopper8/internal"
	"github.com/mnafees/chopper8/internal/config"
	"github.com/mnafees/chopper8/pkg/headless"
	"github.com/mnafees/chopper8/pkg/runner"
	"github.com/mnafees/chopper8/pkg/sdl"
	"github.com/mnafees/chopper8/pkg/statsview"
	"github.com/mnafees/chopper8/pkg/tty"
	"github.com/mnafees/chopper8/pkg/wavwriter"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

const windowTitle = "Chopper | CHIP-8 Emulator"

func main() {
	opts, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			if msg := usageErr.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			usageErr.ShowUsage(os.Stderr)
		} else {
			logger := config.CreateLogger(opts.Debug, opts.Quiet)
			logger.Error("Invalid options", log.Err(err))
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)

	// SDL has to be driven from the main thread, everything else runs in
	// the function passed to mainthread.Run.
	code := 0
	mainthread.Run(func() {
		if err := run(app.Context(), logger, opts); err != nil {
			logger.Error("Emulation failed", log.Err(err))
			code = 1
		}
	})
	os.Exit(code)
}

func run(ctx context.Context, logger *log.Logger, opts config.Options) error {
	var rnd internal.Random
	if opts.Seed != 0 {
		rnd = internal.NewSeededRandom(opts.Seed)
	}
	vm := internal.NewC8VM(rnd)
	if err := vm.LoadProgramFile(opts.ROM); err != nil {
		return err
	}
	logger.Debug("Program loaded", log.String("file", opts.ROM))

	if opts.Statsview {
		statsview.Launch(logger)
	}

	var sinks []runner.AudioSink
	if opts.WavFile != "" {
		wav := wavwriter.New(opts.WavFile, logger)
		defer func() {
			if err := wav.Close(); err != nil {
				logger.Error("Writing WAV file failed", log.Err(err))
			}
		}()
		sinks = append(sinks, wav)
	}

	cfg := runner.Config{
		InstructionsPerFrame: opts.InstructionsPerFrame,
		FrameRate:            opts.FrameRate,
		MaxFrames:            opts.Frames,
		Trace:                opts.Trace,
	}

	var frontend runner.Frontend
	var dump *headless.Headless
	switch opts.Frontend {
	case config.FrontendSDL:
		io, err := sdl.NewIO(sdl.Config{
			Title:      windowTitle,
			Scale:      opts.Scale,
			Background: opts.Background,
			Foreground: opts.Foreground,
			Audio:      true,
		}, logger)
		if err != nil {
			return err
		}
		defer io.Destroy()
		frontend = io
		sinks = append(sinks, io)

	case config.FrontendTTY:
		t, err := tty.NewStdout()
		if err != nil {
			return err
		}
		defer func() {
			if err := t.Close(); err != nil {
				logger.Error("Restoring terminal failed", log.Err(err))
			}
		}()
		frontend = t

	case config.FrontendHeadless:
		dump = headless.New(os.Stdout)
		frontend = dump
		cfg.Unpaced = true
	}

	r := runner.New(vm, frontend, logger, cfg, sinks...)
	err := r.Run(ctx)
	logger.Debug("Emulation stopped", log.Int("frames", r.Frames()))

	if opts.MemvizFile != "" {
		if err := writeMemviz(opts.MemvizFile, vm); err != nil {
			logger.Error("Writing register snapshot failed", log.Err(err))
		}
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation cancelled")
			return nil
		}
		return err
	}

	if dump != nil {
		return dump.Dump(vm)
	}
	return nil
}

// writeMemviz writes a graphviz dot file of the register state of vm
func writeMemviz(filename string, vm *internal.C8VM) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating memviz file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("closing memviz file: %w", err)
		}
	}()

	regs := vm.Registers()
	memviz.Map(f, &regs)
	return nil
}
