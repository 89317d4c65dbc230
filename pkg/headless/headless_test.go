package headless

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mnafees/chopper8/internal"
	"github.com/mnafees/chopper8/pkg/runner"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// draws the glyph for 0xA at (8, 4), then loops forever
var glyphROM = []byte{
	0x60, 0x0A, // LD V0, A
	0xF0, 0x29, // LD F, V0
	0x61, 0x08, // LD V1, 8
	0x62, 0x04, // LD V2, 4
	0xD1, 0x25, // DRW V1, V2, 5
	0x12, 0x0A, // JP 20A
}

func TestHeadlessRun(t *testing.T) {
	vm := internal.NewC8VM(internal.NewSeededRandom(1))
	assert.NoError(t, vm.LoadProgram(glyphROM))

	var out bytes.Buffer
	h := New(&out)
	cfg := runner.Config{InstructionsPerFrame: 11, FrameRate: 60, MaxFrames: 5, Unpaced: true}
	r := runner.New(vm, h, log.NewTestLogger(t), cfg)

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 1, h.Redraws())

	assert.NoError(t, h.Dump(vm))
	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "OOOO", lines[4][8:12])
	assert.Equal(t, "O..O", lines[5][8:12])
	assert.Equal(t, "OOOO", lines[6][8:12])
	assert.Equal(t, "O..O", lines[8][8:12])
	assert.Equal(t, strings.Repeat(".", internal.ScreenWidth), lines[9])
	assert.Contains(t, out.String(), "V0=0A V1=08 V2=04")
	assert.Contains(t, out.String(), "PC=20A")
}
