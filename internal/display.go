package internal

import (
	"bufio"
	"io"
)

// Pixel reports whether the pixel at (x, y) is lit. x must be below
// ScreenWidth and y below ScreenHeight.
func (vm *C8VM) Pixel(x, y int) bool {
	return vm.pixels[y*ScreenWidth+x] != 0
}

// IsDrawFlagSet returns whether the display changed since the flag was last
// unset
func (vm *C8VM) IsDrawFlagSet() bool {
	return vm.drawFlag
}

// UnsetDrawFlag unsets the draw flag
func (vm *C8VM) UnsetDrawFlag() {
	vm.drawFlag = false
}

func (vm *C8VM) clearPixels() {
	for i := range vm.pixels {
		vm.pixels[i] = 0
	}
	vm.drawFlag = true
}

// drawSprite XORs n rows of 8 pixels from memory at I onto the display. The
// origin wraps around the screen, pixels running off the right or bottom
// edge are dropped. VF is set when a lit pixel is cleared.
func (vm *C8VM) drawSprite(x, y, n uint8) {
	originX := int(x) % ScreenWidth
	originY := int(y) % ScreenHeight
	vm.regV[flagRegister] = 0

	for row := 0; row < int(n); row++ {
		py := originY + row
		if py >= ScreenHeight {
			break
		}
		spriteByte := vm.memory[int(vm.regI)+row]
		for bit := 0; bit < 8; bit++ {
			px := originX + bit
			if px >= ScreenWidth {
				break
			}
			if spriteByte&(0x80>>bit) == 0 {
				continue
			}
			idx := py*ScreenWidth + px
			if vm.pixels[idx] != 0 {
				vm.regV[flagRegister] = 1
			}
			vm.pixels[idx] ^= 1
		}
	}
	vm.drawFlag = true
}

// DumpDisplay writes the display as text, one line per row, "O" for a lit
// pixel and "." for an unlit one.
func (vm *C8VM) DumpDisplay(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			if vm.Pixel(x, y) {
				_ = bw.WriteByte('O')
			} else {
				_ = bw.WriteByte('.')
			}
		}
		_ = bw.WriteByte('\n')
	}
	return bw.Flush()
}
