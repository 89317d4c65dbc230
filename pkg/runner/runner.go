// Package runner drives the VM: it batches instructions into frames, paces
// the frames, decrements the timers once per frame and feeds the frontend
// and the audio sinks.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/mnafees/chopper8/internal"
	"github.com/mnafees/chopper8/pkg/beep"
	"github.com/retroenv/retrogolib/log"
)

// Frontend presents the VM and translates host input. All calls happen on
// the goroutine running the Runner.
type Frontend interface {
	// Poll services pending host input. It returns false when the user asked
	// to quit.
	Poll(vm *internal.C8VM) bool

	// Present draws the display. Implementations usually only redraw when
	// the draw flag is set.
	Present(vm *internal.C8VM) error
}

// AudioSink receives one frame of tone samples
type AudioSink interface {
	Play(samples []int16) error
}

// Config controls the pacing of a Runner
type Config struct {
	InstructionsPerFrame int
	FrameRate            int

	// MaxFrames stops the run after that many frames, 0 runs until quit.
	MaxFrames int

	// Unpaced runs frames back to back instead of at FrameRate.
	Unpaced bool

	// Trace logs every executed instruction at debug level.
	Trace bool
}

// Runner is the step driver of a single VM
type Runner struct {
	vm       *internal.C8VM
	frontend Frontend
	sinks    []AudioSink
	logger   *log.Logger
	cfg      Config

	tone    *beep.Tone
	samples []int16
	frames  int
}

// New returns a Runner for vm. The VM must already have its program loaded.
func New(vm *internal.C8VM, frontend Frontend, logger *log.Logger, cfg Config, sinks ...AudioSink) *Runner {
	tone := beep.New()
	return &Runner{
		vm:       vm,
		frontend: frontend,
		sinks:    sinks,
		logger:   logger,
		cfg:      cfg,
		tone:     tone,
		samples:  make([]int16, tone.SamplesPerFrame(cfg.FrameRate)),
	}
}

// Frames returns the number of frames run so far
func (r *Runner) Frames() int {
	return r.frames
}

// Run executes frames until the frontend asks to quit, the frame budget is
// used up, ctx is done or an instruction fails to decode.
func (r *Runner) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if !r.cfg.Unpaced {
		ticker := time.NewTicker(time.Second / time.Duration(r.cfg.FrameRate))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}

		if !r.frontend.Poll(r.vm) {
			r.logger.Debug("Quit requested", log.Int("frames", r.frames))
			return nil
		}
		if err := r.Frame(); err != nil {
			return err
		}
		if err := r.frontend.Present(r.vm); err != nil {
			return fmt.Errorf("presenting frame %d: %w", r.frames, err)
		}

		if r.cfg.MaxFrames > 0 && r.frames >= r.cfg.MaxFrames {
			r.logger.Debug("Frame budget reached", log.Int("frames", r.frames))
			return nil
		}
	}
}

// Frame executes one batch of instructions, plays one frame of audio and
// decrements the timers.
func (r *Runner) Frame() error {
	for i := 0; i < r.cfg.InstructionsPerFrame; i++ {
		if err := r.step(); err != nil {
			return err
		}
	}

	if len(r.sinks) > 0 {
		r.tone.Frame(r.samples, r.vm.SoundTimer() > 0)
		for _, sink := range r.sinks {
			if err := sink.Play(r.samples); err != nil {
				return fmt.Errorf("playing audio: %w", err)
			}
		}
	}

	r.vm.DecrementTimers()
	r.frames++
	return nil
}

func (r *Runner) step() error {
	addr := r.vm.PC()
	opcode := r.vm.Fetch()
	ins, err := internal.Decode(opcode)
	if err != nil {
		return fmt.Errorf("decoding at 0x%03X: %w", addr, err)
	}

	if r.cfg.Trace {
		r.logger.Debug("exec",
			log.Hex("pc", addr),
			log.Hex("opcode", opcode),
			log.String("instr", ins.String()))
	}

	r.vm.Execute(ins)
	return nil
}
