package internal

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies one member of the closed CHIP-8 instruction set
type Op uint8

// The 34 documented CHIP-8 instructions. Comments give the opcode pattern.
const (
	OpInvalid         Op = iota
	OpClear              // 00E0
	OpReturn             // 00EE
	OpJump               // 1nnn
	OpCall               // 2nnn
	OpSkipEqual          // 3xkk
	OpSkipNotEqual       // 4xkk
	OpSkipEqualReg       // 5xy0
	OpLoad               // 6xkk
	OpAdd                // 7xkk
	OpLoadReg            // 8xy0
	OpOr                 // 8xy1
	OpAnd                // 8xy2
	OpXor                // 8xy3
	OpAddReg             // 8xy4
	OpSub                // 8xy5
	OpShiftRight         // 8xy6
	OpSubN               // 8xy7
	OpShiftLeft          // 8xyE
	OpSkipNotEqualReg    // 9xy0
	OpLoadIndex          // Annn
	OpJumpOffset         // Bnnn
	OpRandom             // Cxkk
	OpDraw               // Dxyn
	OpSkipKey            // Ex9E
	OpSkipNotKey         // ExA1
	OpLoadDelay          // Fx07
	OpWaitKey            // Fx0A
	OpSetDelay           // Fx15
	OpSetSound           // Fx18
	OpAddIndex           // Fx1E
	OpLoadFont           // Fx29
	OpStoreBCD           // Fx33
	OpStoreRegs          // Fx55
	OpLoadRegs           // Fx65
)

// Instruction is a decoded instruction word. Only the operand fields used by
// Op are set, the others stay zero, so decoding the same word always gives
// an equal value.
type Instruction struct {
	Op  Op
	X   uint8  // first register operand, nibble 2
	Y   uint8  // second register operand, nibble 1
	N   uint8  // 4-bit immediate, nibble 0
	KK  uint8  // 8-bit immediate, low byte
	NNN uint16 // 12-bit address
}

// String returns the instruction in the usual CHIP-8 assembler notation,
// used by the instruction trace.
func (ins Instruction) String() string {
	switch ins.Op {
	case OpClear:
		return chip8.Cls.Name
	case OpReturn:
		return chip8.Ret.Name
	case OpJump:
		return fmt.Sprintf("%s $%03X", chip8.Jp.Name, ins.NNN)
	case OpCall:
		return fmt.Sprintf("%s $%03X", chip8.Call.Name, ins.NNN)
	case OpSkipEqual:
		return fmt.Sprintf("%s V%X, $%02X", chip8.Se.Name, ins.X, ins.KK)
	case OpSkipNotEqual:
		return fmt.Sprintf("%s V%X, $%02X", chip8.Sne.Name, ins.X, ins.KK)
	case OpSkipEqualReg:
		return fmt.Sprintf("%s V%X, V%X", chip8.Se.Name, ins.X, ins.Y)
	case OpLoad:
		return fmt.Sprintf("%s V%X, $%02X", chip8.Ld.Name, ins.X, ins.KK)
	case OpAdd:
		return fmt.Sprintf("%s V%X, $%02X", chip8.Add.Name, ins.X, ins.KK)
	case OpLoadReg:
		return fmt.Sprintf("%s V%X, V%X", chip8.Ld.Name, ins.X, ins.Y)
	case OpOr:
		return fmt.Sprintf("%s V%X, V%X", chip8.Or.Name, ins.X, ins.Y)
	case OpAnd:
		return fmt.Sprintf("%s V%X, V%X", chip8.And.Name, ins.X, ins.Y)
	case OpXor:
		return fmt.Sprintf("%s V%X, V%X", chip8.Xor.Name, ins.X, ins.Y)
	case OpAddReg:
		return fmt.Sprintf("%s V%X, V%X", chip8.Add.Name, ins.X, ins.Y)
	case OpSub:
		return fmt.Sprintf("%s V%X, V%X", chip8.Sub.Name, ins.X, ins.Y)
	case OpShiftRight:
		return fmt.Sprintf("%s V%X", chip8.Shr.Name, ins.X)
	case OpSubN:
		return fmt.Sprintf("%s V%X, V%X", chip8.Subn.Name, ins.X, ins.Y)
	case OpShiftLeft:
		return fmt.Sprintf("%s V%X", chip8.Shl.Name, ins.X)
	case OpSkipNotEqualReg:
		return fmt.Sprintf("%s V%X, V%X", chip8.Sne.Name, ins.X, ins.Y)
	case OpLoadIndex:
		return fmt.Sprintf("%s I, $%03X", chip8.Ld.Name, ins.NNN)
	case OpJumpOffset:
		return fmt.Sprintf("%s V0, $%03X", chip8.Jp.Name, ins.NNN)
	case OpRandom:
		return fmt.Sprintf("%s V%X, $%02X", chip8.Rnd.Name, ins.X, ins.KK)
	case OpDraw:
		return fmt.Sprintf("%s V%X, V%X, $%X", chip8.Drw.Name, ins.X, ins.Y, ins.N)
	case OpSkipKey:
		return fmt.Sprintf("%s V%X", chip8.Skp.Name, ins.X)
	case OpSkipNotKey:
		return fmt.Sprintf("%s V%X", chip8.Sknp.Name, ins.X)
	case OpLoadDelay:
		return fmt.Sprintf("%s V%X, DT", chip8.Ld.Name, ins.X)
	case OpWaitKey:
		return fmt.Sprintf("%s V%X, K", chip8.Ld.Name, ins.X)
	case OpSetDelay:
		return fmt.Sprintf("%s DT, V%X", chip8.Ld.Name, ins.X)
	case OpSetSound:
		return fmt.Sprintf("%s ST, V%X", chip8.Ld.Name, ins.X)
	case OpAddIndex:
		return fmt.Sprintf("%s I, V%X", chip8.Add.Name, ins.X)
	case OpLoadFont:
		return fmt.Sprintf("%s F, V%X", chip8.Ld.Name, ins.X)
	case OpStoreBCD:
		return fmt.Sprintf("%s B, V%X", chip8.Ld.Name, ins.X)
	case OpStoreRegs:
		return fmt.Sprintf("%s [I], V%X", chip8.Ld.Name, ins.X)
	case OpLoadRegs:
		return fmt.Sprintf("%s V%X, [I]", chip8.Ld.Name, ins.X)
	default:
		return "???"
	}
}
