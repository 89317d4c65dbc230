package internal

import "fmt"

// Fetch reads the big-endian instruction word at the program counter and
// advances the program counter by 2.
//
// Keeping pc inside memory is the caller's job; fetching past the end of
// memory panics.
func (vm *C8VM) Fetch() uint16 {
	if int(vm.pc)+1 >= TotalMemory {
		panic(fmt.Sprintf("fetch past end of memory at 0x%04X", vm.pc))
	}
	opcode := uint16(vm.memory[vm.pc])<<8 | uint16(vm.memory[vm.pc+1])
	vm.pc += 2
	return opcode
}
