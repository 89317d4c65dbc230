package sdl

import (
	"encoding/binary"
	"fmt"

	"github.com/faiface/mainthread"
	"github.com/mnafees/chopper8/internal"
	"github.com/mnafees/chopper8/pkg/beep"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

// Queued audio above this many bytes is not topped up, it keeps the tone in
// step with the sound timer.
const maxQueuedAudio = 4 * 1024

// Config holds the window settings
type Config struct {
	Title      string
	Scale      int
	Background uint32 // RRGGBB
	Foreground uint32 // RRGGBB
	Audio      bool
}

// IO is the input/output abstraction layer for the VM. It implements the
// runner.Frontend and runner.AudioSink interfaces. Every SDL call is made on
// the main thread, so the program has to be started with mainthread.Run.
type IO struct {
	cfg    Config
	logger *log.Logger

	window  *sdl.Window
	surface *sdl.Surface
	bg, fg  uint32

	audio    sdl.AudioDeviceID
	audioBuf []byte
}

// NewIO initialises SDL, opens the window and, if enabled, the audio device
func NewIO(cfg Config, logger *log.Logger) (*IO, error) {
	io := &IO{
		cfg:    cfg,
		logger: logger,
	}

	err := mainthread.CallErr(func() error {
		var flags uint32 = sdl.INIT_VIDEO
		if cfg.Audio {
			flags |= sdl.INIT_AUDIO
		}
		if err := sdl.Init(flags); err != nil {
			return fmt.Errorf("initialising SDL: %w", err)
		}
		if err := io.setupWindow(); err != nil {
			sdl.Quit()
			return err
		}
		if cfg.Audio {
			if err := io.setupAudio(); err != nil {
				io.window.Destroy()
				sdl.Quit()
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return io, nil
}

func (io *IO) setupWindow() error {
	scale := int32(io.cfg.Scale)
	window, err := sdl.CreateWindow(io.cfg.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		internal.ScreenWidth*scale, internal.ScreenHeight*scale, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	surface, err := window.GetSurface()
	if err != nil {
		window.Destroy()
		return fmt.Errorf("getting window surface: %w", err)
	}

	io.window = window
	io.surface = surface
	io.bg = mapColor(surface, io.cfg.Background)
	io.fg = mapColor(surface, io.cfg.Foreground)

	if err := io.surface.FillRect(nil, io.bg); err != nil {
		return fmt.Errorf("clearing window: %w", err)
	}
	return io.window.UpdateSurface()
}

func (io *IO) setupAudio() error {
	desired := sdl.AudioSpec{
		Freq:     beep.SampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  1024,
	}
	dev, err := sdl.OpenAudioDevice("", false, &desired, nil, 0)
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	io.audio = dev
	sdl.PauseAudioDevice(dev, false)

	io.logger.Debug("Audio device opened",
		log.Int("frequency", int(desired.Freq)),
		log.Int("samples", int(desired.Samples)))
	return nil
}

func mapColor(surface *sdl.Surface, rgb uint32) uint32 {
	return sdl.MapRGB(surface.Format, uint8(rgb>>16), uint8(rgb>>8), uint8(rgb))
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	mainthread.Call(func() {
		if io.audio != 0 {
			sdl.CloseAudioDevice(io.audio)
		}
		_ = io.window.Destroy()
		sdl.Quit()
	})
}

// Poll implements the runner.Frontend interface
func (io *IO) Poll(vm *internal.C8VM) bool {
	running := true
	mainthread.Call(func() {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch t := event.(type) {
			case *sdl.KeyboardEvent:
				code, ok := keymap(t.Keysym.Scancode)
				if !ok {
					continue
				}
				switch t.GetType() {
				case sdl.KEYDOWN:
					vm.SetKeyDown(code)
				case sdl.KEYUP:
					vm.SetKeyUp(code)
				}
			case *sdl.QuitEvent:
				running = false
			}
		}
	})
	return running
}

// Present implements the runner.Frontend interface. The window is only
// redrawn when the display changed.
func (io *IO) Present(vm *internal.C8VM) error {
	if !vm.IsDrawFlagSet() {
		return nil
	}
	vm.UnsetDrawFlag()

	return mainthread.CallErr(func() error {
		if err := io.surface.FillRect(nil, io.bg); err != nil {
			return err
		}
		scale := int32(io.cfg.Scale)
		for y := 0; y < internal.ScreenHeight; y++ {
			for x := 0; x < internal.ScreenWidth; x++ {
				if !vm.Pixel(x, y) {
					continue
				}
				rect := &sdl.Rect{X: int32(x) * scale, Y: int32(y) * scale, W: scale, H: scale}
				if err := io.surface.FillRect(rect, io.fg); err != nil {
					return err
				}
			}
		}
		return io.window.UpdateSurface()
	})
}

// Play implements the runner.AudioSink interface
func (io *IO) Play(samples []int16) error {
	if io.audio == 0 {
		return nil
	}

	if cap(io.audioBuf) < 2*len(samples) {
		io.audioBuf = make([]byte, 2*len(samples))
	}
	buf := io.audioBuf[:2*len(samples)]
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
	}

	return mainthread.CallErr(func() error {
		if sdl.GetQueuedAudioSize(io.audio) > maxQueuedAudio {
			return nil
		}
		return sdl.QueueAudio(io.audio, buf)
	})
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// Below we have a mapping QWERTY keyboard to the CHIP-8 keypad
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
func keymap(code sdl.Scancode) (uint8, bool) {
	switch code {
	case sdl.SCANCODE_1:
		return 0x1, true
	case sdl.SCANCODE_2:
		return 0x2, true
	case sdl.SCANCODE_3:
		return 0x3, true
	case sdl.SCANCODE_4:
		return 0xC, true
	case sdl.SCANCODE_Q:
		return 0x4, true
	case sdl.SCANCODE_W:
		return 0x5, true
	case sdl.SCANCODE_E:
		return 0x6, true
	case sdl.SCANCODE_R:
		return 0xD, true
	case sdl.SCANCODE_A:
		return 0x7, true
	case sdl.SCANCODE_S:
		return 0x8, true
	case sdl.SCANCODE_D:
		return 0x9, true
	case sdl.SCANCODE_F:
		return 0xE, true
	case sdl.SCANCODE_Z:
		return 0xA, true
	case sdl.SCANCODE_X:
		return 0x0, true
	case sdl.SCANCODE_C:
		return 0xB, true
	case sdl.SCANCODE_V:
		return 0xF, true
	default:
		return 0, false
	}
}
