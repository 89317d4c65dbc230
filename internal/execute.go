package internal

import "fmt"

// Step runs one fetch, decode and execute cycle. A decode error leaves the
// program counter pointing past the offending word.
func (vm *C8VM) Step() error {
	addr := vm.pc
	opcode := vm.Fetch()
	ins, err := Decode(opcode)
	if err != nil {
		return fmt.Errorf("decoding at 0x%03X: %w", addr, err)
	}
	vm.Execute(ins)
	return nil
}

// Execute applies a decoded instruction to the machine. The program counter
// is expected to already point at the next instruction, as left by Fetch.
//
// Shifts follow the original CHIP-8 and operate on Vx alone.
func (vm *C8VM) Execute(ins Instruction) {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpClear: // CLS
		vm.clearPixels()

	case OpReturn: // RET
		vm.pc = vm.stack[vm.sp]
		if vm.sp > 0 {
			vm.sp--
		}

	case OpJump: // JP nnn
		vm.pc = ins.NNN

	case OpCall: // CALL nnn
		if int(vm.sp)+1 >= StackSize {
			panic(fmt.Sprintf("stack overflow calling 0x%03X from 0x%03X", ins.NNN, vm.pc))
		}
		vm.sp++
		vm.stack[vm.sp] = vm.pc
		vm.pc = ins.NNN

	case OpSkipEqual: // SE Vx, kk
		vm.skipIf(vm.regV[x] == ins.KK)

	case OpSkipNotEqual: // SNE Vx, kk
		vm.skipIf(vm.regV[x] != ins.KK)

	case OpSkipEqualReg: // SE Vx, Vy
		vm.skipIf(vm.regV[x] == vm.regV[y])

	case OpLoad: // LD Vx, kk
		vm.regV[x] = ins.KK

	case OpAdd: // ADD Vx, kk
		vm.regV[x] += ins.KK

	case OpLoadReg: // LD Vx, Vy
		vm.regV[x] = vm.regV[y]

	case OpOr: // OR Vx, Vy
		vm.regV[x] |= vm.regV[y]

	case OpAnd: // AND Vx, Vy
		vm.regV[x] &= vm.regV[y]

	case OpXor: // XOR Vx, Vy
		vm.regV[x] ^= vm.regV[y]

	case OpAddReg: // ADD Vx, Vy
		sum := uint16(vm.regV[x]) + uint16(vm.regV[y])
		vm.regV[x] = uint8(sum)
		vm.regV[flagRegister] = boolToFlag(sum > 0xFF)

	case OpSub: // SUB Vx, Vy
		vx, vy := vm.regV[x], vm.regV[y]
		vm.regV[x] = vx - vy
		vm.regV[flagRegister] = boolToFlag(vx > vy)

	case OpShiftRight: // SHR Vx {, Vy}
		vx := vm.regV[x]
		vm.regV[x] = vx / 2
		vm.regV[flagRegister] = vx & 0x01

	case OpSubN: // SUBN Vx, Vy
		vx, vy := vm.regV[x], vm.regV[y]
		vm.regV[x] = vy - vx
		vm.regV[flagRegister] = boolToFlag(vy > vx)

	case OpShiftLeft: // SHL Vx {, Vy}
		vx := vm.regV[x]
		vm.regV[x] = vx << 1
		vm.regV[flagRegister] = boolToFlag(vx&0x80 == 0x80)

	case OpSkipNotEqualReg: // SNE Vx, Vy
		vm.skipIf(vm.regV[x] != vm.regV[y])

	case OpLoadIndex: // LD I, nnn
		vm.regI = ins.NNN

	case OpJumpOffset: // JP V0, nnn
		vm.pc = (uint16(vm.regV[0]) + ins.NNN) & 0x0FFF

	case OpRandom: // RND Vx, kk
		vm.regV[x] = uint8(vm.rnd.Intn(256)) & ins.KK

	case OpDraw: // DRW Vx, Vy, n
		vm.drawSprite(vm.regV[x], vm.regV[y], ins.N)

	case OpSkipKey: // SKP Vx
		vm.skipIf(vm.keys[vm.regV[x]])

	case OpSkipNotKey: // SKNP Vx
		vm.skipIf(!vm.keys[vm.regV[x]])

	case OpLoadDelay: // LD Vx, DT
		vm.regV[x] = vm.delayTimer

	case OpWaitKey: // LD Vx, K
		// no key down: rewind so the same instruction runs on the next step
		for k, down := range vm.keys {
			if down {
				vm.regV[x] = uint8(k)
				return
			}
		}
		vm.pc -= 2

	case OpSetDelay: // LD DT, Vx
		vm.delayTimer = vm.regV[x]

	case OpSetSound: // LD ST, Vx
		vm.soundTimer = vm.regV[x]

	case OpAddIndex: // ADD I, Vx
		vm.regI += uint16(vm.regV[x])

	case OpLoadFont: // LD F, Vx
		vm.regI = FontAddr + uint16(vm.regV[x])*FontGlyphSize

	case OpStoreBCD: // LD B, Vx
		v := vm.regV[x]
		vm.memory[vm.regI] = v / 100
		vm.memory[vm.regI+1] = (v / 10) % 10
		vm.memory[vm.regI+2] = v % 10

	case OpStoreRegs: // LD [I], Vx
		for i := uint16(0); i <= uint16(x); i++ {
			vm.memory[vm.regI+i] = vm.regV[i]
		}

	case OpLoadRegs: // LD Vx, [I]
		for i := uint16(0); i <= uint16(x); i++ {
			vm.regV[i] = vm.memory[vm.regI+i]
		}

	default:
		panic(fmt.Sprintf("execute: invalid instruction %#v", ins))
	}
}

// skipIf skips the next instruction, on top of the advance done by Fetch
func (vm *C8VM) skipIf(cond bool) {
	if cond {
		vm.pc += 2
	}
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
