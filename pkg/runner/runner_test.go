package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/mnafees/chopper8/internal"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// counting loop that starts the sound timer
var testROM = []byte{
	0x60, 0x05, // LD V0, 5
	0xF0, 0x18, // LD ST, V0
	0x71, 0x01, // ADD V1, 1
	0x12, 0x04, // JP 204
}

type fakeFrontend struct {
	polls     int
	quitAfter int
	presented int
}

func (f *fakeFrontend) Poll(_ *internal.C8VM) bool {
	f.polls++
	return f.quitAfter == 0 || f.polls <= f.quitAfter
}

func (f *fakeFrontend) Present(vm *internal.C8VM) error {
	f.presented++
	vm.UnsetDrawFlag()
	return nil
}

type fakeSink struct {
	frames [][]int16
}

func (s *fakeSink) Play(samples []int16) error {
	s.frames = append(s.frames, append([]int16(nil), samples...))
	return nil
}

func newTestRunner(t *testing.T, rom []byte, frontend Frontend, cfg Config, sinks ...AudioSink) (*Runner, *internal.C8VM) {
	t.Helper()
	vm := internal.NewC8VM(internal.NewSeededRandom(1))
	assert.NoError(t, vm.LoadProgram(rom))
	if cfg.InstructionsPerFrame == 0 {
		cfg.InstructionsPerFrame = 4
	}
	if cfg.FrameRate == 0 {
		cfg.FrameRate = 60
	}
	cfg.Unpaced = true
	return New(vm, frontend, log.NewTestLogger(t), cfg, sinks...), vm
}

func TestFrame(t *testing.T) {
	sink := &fakeSink{}
	r, vm := newTestRunner(t, testROM, &fakeFrontend{}, Config{}, sink)

	assert.NoError(t, r.Frame())
	regs := vm.Registers()
	assert.Equal(t, uint8(5), regs.V[0])
	assert.Equal(t, uint8(1), regs.V[1])
	assert.Equal(t, uint8(4), regs.ST)
	assert.Equal(t, uint16(0x204), regs.PC)
	assert.Equal(t, 1, r.Frames())

	assert.Equal(t, 1, len(sink.frames))
	assert.Equal(t, 735, len(sink.frames[0]))
	assert.True(t, sink.frames[0][0] != 0)
}

func TestFrameToneStopsWithSoundTimer(t *testing.T) {
	sink := &fakeSink{}
	r, vm := newTestRunner(t, testROM, &fakeFrontend{}, Config{}, sink)

	for i := 0; i < 6; i++ {
		assert.NoError(t, r.Frame())
	}
	assert.Equal(t, uint8(0), vm.SoundTimer())
	assert.Equal(t, 6, len(sink.frames))
	for _, s := range sink.frames[5] {
		assert.Equal(t, int16(0), s)
	}
}

func TestRunFrameBudget(t *testing.T) {
	frontend := &fakeFrontend{}
	r, vm := newTestRunner(t, testROM, frontend, Config{MaxFrames: 10, Trace: true})

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 10, r.Frames())
	assert.Equal(t, 10, frontend.presented)
	// 2 setup instructions, then one ADD per JP+ADD pair
	assert.Equal(t, uint8(19), vm.Registers().V[1])
}

func TestRunQuit(t *testing.T) {
	frontend := &fakeFrontend{quitAfter: 2}
	r, _ := newTestRunner(t, testROM, frontend, Config{})

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 2, r.Frames())
}

func TestRunCancelled(t *testing.T) {
	r, _ := newTestRunner(t, testROM, &fakeFrontend{}, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, r.Frames())
}

func TestRunPaced(t *testing.T) {
	vm := internal.NewC8VM(internal.NewSeededRandom(1))
	assert.NoError(t, vm.LoadProgram(testROM))
	cfg := Config{InstructionsPerFrame: 4, FrameRate: 240, MaxFrames: 3}
	r := New(vm, &fakeFrontend{}, log.NewTestLogger(t), cfg)

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 3, r.Frames())
}

func TestRunDecodeError(t *testing.T) {
	r, _ := newTestRunner(t, []byte{0x00, 0x00}, &fakeFrontend{}, Config{})

	err := r.Run(context.Background())
	assert.Error(t, err)
	var decodeErr *internal.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, uint16(0x0000), decodeErr.Opcode)
}
