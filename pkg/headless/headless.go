// Package headless is a frontend without a window or input. It is used to
// run a program for a fixed number of frames and inspect the display as
// text afterwards.
package headless

import (
	"fmt"
	"io"

	"github.com/mnafees/chopper8/internal"
)

// Headless implements the runner.Frontend interface
type Headless struct {
	out     io.Writer
	redraws int
}

// New returns a headless frontend writing its final dump to out
func New(out io.Writer) *Headless {
	return &Headless{out: out}
}

// Poll implements the runner.Frontend interface. There is no input, so it
// never asks to quit.
func (h *Headless) Poll(_ *internal.C8VM) bool {
	return true
}

// Present implements the runner.Frontend interface. It only counts the
// frames in which the display changed.
func (h *Headless) Present(vm *internal.C8VM) error {
	if vm.IsDrawFlagSet() {
		h.redraws++
		vm.UnsetDrawFlag()
	}
	return nil
}

// Redraws returns the number of frames in which the display changed
func (h *Headless) Redraws() int {
	return h.redraws
}

// Dump writes the display of vm as text, followed by the register state
func (h *Headless) Dump(vm *internal.C8VM) error {
	if err := vm.DumpDisplay(h.out); err != nil {
		return fmt.Errorf("dumping display: %w", err)
	}

	regs := vm.Registers()
	for i, v := range regs.V {
		if _, err := fmt.Fprintf(h.out, "V%X=%02X ", i, v); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(h.out, "\nI=%03X PC=%03X SP=%X DT=%02X ST=%02X\n",
		regs.I, regs.PC, regs.SP, regs.DT, regs.ST)
	return err
}
