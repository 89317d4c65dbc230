package internal

import (
	"errors"
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected Instruction
	}{
		{0x00E0, Instruction{Op: OpClear}},
		{0x00EE, Instruction{Op: OpReturn}},
		{0x1ABC, Instruction{Op: OpJump, NNN: 0xABC}},
		{0x2123, Instruction{Op: OpCall, NNN: 0x123}},
		{0x3A42, Instruction{Op: OpSkipEqual, X: 0xA, KK: 0x42}},
		{0x4B17, Instruction{Op: OpSkipNotEqual, X: 0xB, KK: 0x17}},
		{0x5AB0, Instruction{Op: OpSkipEqualReg, X: 0xA, Y: 0xB}},
		{0x6CFF, Instruction{Op: OpLoad, X: 0xC, KK: 0xFF}},
		{0x7D01, Instruction{Op: OpAdd, X: 0xD, KK: 0x01}},
		{0x8AB0, Instruction{Op: OpLoadReg, X: 0xA, Y: 0xB}},
		{0x8AB1, Instruction{Op: OpOr, X: 0xA, Y: 0xB}},
		{0x8AB2, Instruction{Op: OpAnd, X: 0xA, Y: 0xB}},
		{0x8AB3, Instruction{Op: OpXor, X: 0xA, Y: 0xB}},
		{0x8AB4, Instruction{Op: OpAddReg, X: 0xA, Y: 0xB}},
		{0x8AB5, Instruction{Op: OpSub, X: 0xA, Y: 0xB}},
		{0x8AB6, Instruction{Op: OpShiftRight, X: 0xA, Y: 0xB}},
		{0x8AB7, Instruction{Op: OpSubN, X: 0xA, Y: 0xB}},
		{0x8ABE, Instruction{Op: OpShiftLeft, X: 0xA, Y: 0xB}},
		{0x9AB0, Instruction{Op: OpSkipNotEqualReg, X: 0xA, Y: 0xB}},
		{0xA123, Instruction{Op: OpLoadIndex, NNN: 0x123}},
		{0xB456, Instruction{Op: OpJumpOffset, NNN: 0x456}},
		{0xC30F, Instruction{Op: OpRandom, X: 0x3, KK: 0x0F}},
		{0xD125, Instruction{Op: OpDraw, X: 0x1, Y: 0x2, N: 0x5}},
		{0xE59E, Instruction{Op: OpSkipKey, X: 0x5}},
		{0xE6A1, Instruction{Op: OpSkipNotKey, X: 0x6}},
		{0xF107, Instruction{Op: OpLoadDelay, X: 0x1}},
		{0xF20A, Instruction{Op: OpWaitKey, X: 0x2}},
		{0xF315, Instruction{Op: OpSetDelay, X: 0x3}},
		{0xF418, Instruction{Op: OpSetSound, X: 0x4}},
		{0xF51E, Instruction{Op: OpAddIndex, X: 0x5}},
		{0xF629, Instruction{Op: OpLoadFont, X: 0x6}},
		{0xF733, Instruction{Op: OpStoreBCD, X: 0x7}},
		{0xF855, Instruction{Op: OpStoreRegs, X: 0x8}},
		{0xF165, Instruction{Op: OpLoadRegs, X: 0x1}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%04X", tt.opcode), func(t *testing.T) {
			ins, err := Decode(tt.opcode)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, ins)

			again, err := Decode(tt.opcode)
			assert.NoError(t, err)
			assert.Equal(t, ins, again)
		})
	}
}

func TestDecodeUnknown(t *testing.T) {
	tests := []uint16{
		0x0000, // SYS 000 is not supported
		0x0123,
		0x00E1,
		0x00FF, // SUPER-CHIP high resolution
		0x5AB1,
		0x8AB8,
		0x8ABF,
		0x9AB1,
		0xE59F,
		0xF100,
		0xF130, // SUPER-CHIP large font
		0xF175,
	}

	for _, opcode := range tests {
		t.Run(fmt.Sprintf("%04X", opcode), func(t *testing.T) {
			ins, err := Decode(opcode)
			assert.Error(t, err)
			assert.Equal(t, Instruction{}, ins)

			var decodeErr *DecodeError
			assert.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, opcode, decodeErr.Opcode)
		})
	}
}

func TestNibble(t *testing.T) {
	assert.Equal(t, uint8(0xD), nibble(0xABCD, 0))
	assert.Equal(t, uint8(0xC), nibble(0xABCD, 1))
	assert.Equal(t, uint8(0xB), nibble(0xABCD, 2))
	assert.Equal(t, uint8(0xA), nibble(0xABCD, 3))
}
