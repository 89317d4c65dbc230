package internal

import "fmt"

// DecodeError is returned for an instruction word outside the documented
// opcode table. It is fatal to the run.
type DecodeError struct {
	Opcode uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown opcode: %04X", e.Opcode)
}

// nibble returns the i-th nibble of word, nibble 0 being the least
// significant.
func nibble(word uint16, i uint) uint8 {
	return uint8((word >> (i * 4)) & 0xF)
}

// Decode maps an instruction word to its Instruction. It has no side effects.
func Decode(opcode uint16) (Instruction, error) {
	x := nibble(opcode, 2)
	y := nibble(opcode, 1)
	n := nibble(opcode, 0)
	kk := uint8(opcode & 0x00FF)
	nnn := opcode & 0x0FFF

	switch nibble(opcode, 3) {
	case 0x0:
		switch opcode {
		case 0x00E0:
			return Instruction{Op: OpClear}, nil
		case 0x00EE:
			return Instruction{Op: OpReturn}, nil
		}
	case 0x1:
		return Instruction{Op: OpJump, NNN: nnn}, nil
	case 0x2:
		return Instruction{Op: OpCall, NNN: nnn}, nil
	case 0x3:
		return Instruction{Op: OpSkipEqual, X: x, KK: kk}, nil
	case 0x4:
		return Instruction{Op: OpSkipNotEqual, X: x, KK: kk}, nil
	case 0x5:
		if n == 0x0 {
			return Instruction{Op: OpSkipEqualReg, X: x, Y: y}, nil
		}
	case 0x6:
		return Instruction{Op: OpLoad, X: x, KK: kk}, nil
	case 0x7:
		return Instruction{Op: OpAdd, X: x, KK: kk}, nil
	case 0x8:
		if op, ok := aluOps[n]; ok {
			return Instruction{Op: op, X: x, Y: y}, nil
		}
	case 0x9:
		if n == 0x0 {
			return Instruction{Op: OpSkipNotEqualReg, X: x, Y: y}, nil
		}
	case 0xA:
		return Instruction{Op: OpLoadIndex, NNN: nnn}, nil
	case 0xB:
		return Instruction{Op: OpJumpOffset, NNN: nnn}, nil
	case 0xC:
		return Instruction{Op: OpRandom, X: x, KK: kk}, nil
	case 0xD:
		return Instruction{Op: OpDraw, X: x, Y: y, N: n}, nil
	case 0xE:
		switch kk {
		case 0x9E:
			return Instruction{Op: OpSkipKey, X: x}, nil
		case 0xA1:
			return Instruction{Op: OpSkipNotKey, X: x}, nil
		}
	case 0xF:
		if op, ok := miscOps[kk]; ok {
			return Instruction{Op: op, X: x}, nil
		}
	}
	return Instruction{}, &DecodeError{Opcode: opcode}
}

// 8xyN family, selected by nibble 0
var aluOps = map[uint8]Op{
	0x0: OpLoadReg,
	0x1: OpOr,
	0x2: OpAnd,
	0x3: OpXor,
	0x4: OpAddReg,
	0x5: OpSub,
	0x6: OpShiftRight,
	0x7: OpSubN,
	0xE: OpShiftLeft,
}

// FxKK family, selected by the low byte
var miscOps = map[uint8]Op{
	0x07: OpLoadDelay,
	0x0A: OpWaitKey,
	0x15: OpSetDelay,
	0x18: OpSetSound,
	0x1E: OpAddIndex,
	0x29: OpLoadFont,
	0x33: OpStoreBCD,
	0x55: OpStoreRegs,
	0x65: OpLoadRegs,
}
