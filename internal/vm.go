package internal

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"math/rand"
	"time"
)

// CHIP-8 VM constants
const (
	TotalMemory    = 0x1000
	ProgramStart   = 0x200
	MaxProgramSize = TotalMemory - ProgramStart

	StackSize    = 16
	NumRegisters = 16
	NumKeys      = 16

	ScreenWidth  = 64
	ScreenHeight = 32

	flagRegister = 0xF
)

// Random is the source of the RND instruction. *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
}

// C8VM is an emulated CHIP-8 VM
//
// A C8VM has a single writer. Hosts that read input on other goroutines must
// hand the events over to the goroutine stepping the VM.
type C8VM struct {
	regV       [NumRegisters]uint8 // 16 general purpose 8-bit registers, VF doubles as flag
	regI       uint16              // 16-bit register that is generally used to store memory addresses
	delayTimer uint8               // Delay timer
	soundTimer uint8               // Sound timer
	pc         uint16              // Program counter
	sp         uint8               // Stack pointer
	stack      [StackSize]uint16   // A stack of 16 16-bit values
	memory     [TotalMemory]uint8  // 4 KB global memory

	// 64 px x 32 px display, row major
	pixels [ScreenWidth * ScreenHeight]uint8

	// One flag per logical key 0x0-0xF
	keys [NumKeys]bool

	drawFlag bool // Display changed since the last UnsetDrawFlag

	rnd Random
}

// NewC8VM creates a new instance of an emulated CHIP-8 VM. All state is zero
// apart from the font, which is loaded at address 0. A nil rnd is replaced by
// a time seeded generator.
func NewC8VM(rnd Random) *C8VM {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	vm := &C8VM{
		rnd: rnd,
	}
	vm.LoadFont()
	return vm
}

// NewSeededRandom returns a deterministic generator for the RND instruction.
func NewSeededRandom(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Registers is a copy of the scalar registers and the stack
type Registers struct {
	V     [NumRegisters]uint8
	I     uint16
	PC    uint16
	SP    uint8
	DT    uint8
	ST    uint8
	Stack [StackSize]uint16
}

// Registers returns a snapshot of the register file
func (vm *C8VM) Registers() Registers {
	return Registers{
		V:     vm.regV,
		I:     vm.regI,
		PC:    vm.pc,
		SP:    vm.sp,
		DT:    vm.delayTimer,
		ST:    vm.soundTimer,
		Stack: vm.stack,
	}
}

// PC returns the program counter
func (vm *C8VM) PC() uint16 {
	return vm.pc
}

// SetPC sets the program counter
func (vm *C8VM) SetPC(addr uint16) {
	vm.pc = addr
}

// DelayTimer returns the value of DT
func (vm *C8VM) DelayTimer() uint8 {
	return vm.delayTimer
}

// SoundTimer returns the value of ST
func (vm *C8VM) SoundTimer() uint8 {
	return vm.soundTimer
}

// DecrementTimers decrements DT and ST, neither goes below zero. Called by
// the frame pacer, not by any instruction.
func (vm *C8VM) DecrementTimers() {
	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
	if vm.soundTimer > 0 {
		vm.soundTimer--
	}
}

// SetKeyDown marks a logical key as pressed
func (vm *C8VM) SetKeyDown(code uint8) {
	vm.keys[code] = true
}

// SetKeyUp marks a logical key as released
func (vm *C8VM) SetKeyUp(code uint8) {
	vm.keys[code] = false
}

// IsKeyDown returns whether a logical key is pressed
func (vm *C8VM) IsKeyDown(code uint8) bool {
	return vm.keys[code]
}
