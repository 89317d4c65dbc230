// Package tty is a terminal frontend. The display is drawn with half block
// characters, two CHIP-8 rows per terminal line, and keys are read from the
// terminal in raw mode.
//
// Terminals do not report key releases, so a key counts as held for a few
// frames after each press.
package tty

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mnafees/chopper8/internal"
	"github.com/pkg/term"
)

const (
	device      = "/dev/tty"
	holdFrames  = 6
	readTimeout = 100 * time.Millisecond

	keyCtrlC  = 0x03
	keyEscape = 0x1B
)

// TTY implements the runner.Frontend interface
type TTY struct {
	term *term.Term
	out  *bufio.Writer

	events chan byte
	done   chan struct{}
	closed chan struct{}

	held [internal.NumKeys]int
}

// New puts the controlling terminal into raw mode and starts reading keys
func New(out io.Writer) (*TTY, error) {
	t, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	if err := t.SetReadTimeout(readTimeout); err != nil {
		_ = t.Restore()
		_ = t.Close()
		return nil, fmt.Errorf("setting terminal read timeout: %w", err)
	}

	tty := &TTY{
		term:   t,
		out:    bufio.NewWriter(out),
		events: make(chan byte, 64),
		done:   make(chan struct{}),
		closed: make(chan struct{}),
	}
	go tty.readLoop()

	// clear screen, hide cursor
	_, _ = tty.out.WriteString("\x1b[2J\x1b[?25l")
	return tty, tty.out.Flush()
}

// NewStdout is New writing to standard output
func NewStdout() (*TTY, error) {
	return New(os.Stdout)
}

func (tty *TTY) readLoop() {
	defer close(tty.closed)

	buf := make([]byte, 16)
	for {
		select {
		case <-tty.done:
			return
		default:
		}

		n, err := tty.term.Read(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return
		}
		for _, b := range buf[:n] {
			select {
			case tty.events <- b:
			default:
				// runner is not keeping up, drop the key
			}
		}
	}
}

// Poll implements the runner.Frontend interface
func (tty *TTY) Poll(vm *internal.C8VM) bool {
	for k := range tty.held {
		if tty.held[k] == 0 {
			continue
		}
		tty.held[k]--
		if tty.held[k] == 0 {
			vm.SetKeyUp(uint8(k))
		}
	}

	for {
		select {
		case b := <-tty.events:
			if b == keyCtrlC || b == keyEscape {
				return false
			}
			if k, ok := keymap(b); ok {
				tty.held[k] = holdFrames
				vm.SetKeyDown(k)
			}
		default:
			return true
		}
	}
}

// Present implements the runner.Frontend interface
func (tty *TTY) Present(vm *internal.C8VM) error {
	if !vm.IsDrawFlagSet() {
		return nil
	}
	vm.UnsetDrawFlag()

	_, _ = tty.out.WriteString("\x1b[H")
	for y := 0; y < internal.ScreenHeight; y += 2 {
		for x := 0; x < internal.ScreenWidth; x++ {
			_, _ = tty.out.WriteString(halfBlock(vm.Pixel(x, y), vm.Pixel(x, y+1)))
		}
		_, _ = tty.out.WriteString("\r\n")
	}
	return tty.out.Flush()
}

// Close restores the terminal
func (tty *TTY) Close() error {
	close(tty.done)
	<-tty.closed

	_, _ = tty.out.WriteString("\x1b[?25h\r\n")
	_ = tty.out.Flush()

	if err := tty.term.Restore(); err != nil {
		_ = tty.term.Close()
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return tty.term.Close()
}

func halfBlock(top, bottom bool) string {
	switch {
	case top && bottom:
		return "█"
	case top:
		return "▀"
	case bottom:
		return "▄"
	default:
		return " "
	}
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
func keymap(b byte) (uint8, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	switch b {
	case '1':
		return 0x1, true
	case '2':
		return 0x2, true
	case '3':
		return 0x3, true
	case '4':
		return 0xC, true
	case 'q':
		return 0x4, true
	case 'w':
		return 0x5, true
	case 'e':
		return 0x6, true
	case 'r':
		return 0xD, true
	case 'a':
		return 0x7, true
	case 's':
		return 0x8, true
	case 'd':
		return 0x9, true
	case 'f':
		return 0xE, true
	case 'z':
		return 0xA, true
	case 'x':
		return 0x0, true
	case 'c':
		return 0xB, true
	case 'v':
		return 0xF, true
	default:
		return 0, false
	}
}
