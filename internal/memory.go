package internal

import (
	"errors"
	"fmt"
	"os"
)

// ErrProgramTooLarge is returned when data does not fit in memory at the
// requested address.
var ErrProgramTooLarge = errors.New("program size exceeds the maximum size")

// LoadBytes copies data verbatim into memory starting at addr. The bytes are
// not validated in any way.
func (vm *C8VM) LoadBytes(addr uint16, data []byte) error {
	if int(addr)+len(data) > TotalMemory {
		return fmt.Errorf("%w: %d bytes at 0x%03X", ErrProgramTooLarge, len(data), addr)
	}
	copy(vm.memory[addr:], data)
	return nil
}

// LoadProgram loads a ROM image at ProgramStart and points the program
// counter at it.
func (vm *C8VM) LoadProgram(data []byte) error {
	if err := vm.LoadBytes(ProgramStart, data); err != nil {
		return err
	}
	vm.pc = ProgramStart
	return nil
}

// LoadProgramFile reads a flat ROM image from disk and loads it with
// LoadProgram.
func (vm *C8VM) LoadProgramFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	if err := vm.LoadProgram(data); err != nil {
		return fmt.Errorf("loading program '%s': %w", filename, err)
	}
	return nil
}

// ReadMemory returns the byte at addr
func (vm *C8VM) ReadMemory(addr uint16) uint8 {
	return vm.memory[addr]
}
