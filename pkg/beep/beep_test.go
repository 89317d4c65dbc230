package beep

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestToneSilence(t *testing.T) {
	tone := New()
	buf := []int16{1, 2, 3}
	tone.Frame(buf, false)
	assert.Equal(t, []int16{0, 0, 0}, buf)
}

func TestToneSquareWave(t *testing.T) {
	tone := &Tone{SampleRate: 8, Frequency: 2, Amplitude: 10}
	buf := make([]int16, 6)

	tone.Frame(buf, true)
	assert.Equal(t, []int16{10, 10, -10, -10, 10, 10}, buf)

	// phase carries over to the next frame
	tone.Frame(buf[:2], true)
	assert.Equal(t, []int16{-10, -10}, buf[:2])
}

func TestSamplesPerFrame(t *testing.T) {
	assert.Equal(t, 735, New().SamplesPerFrame(60))
}
