// Package beep generates the square wave tone played while the CHIP-8 sound
// timer is running.
package beep

// Defaults for the tone
const (
	SampleRate = 44100
	Frequency  = 440
	Amplitude  = 3000
)

// Tone is a square wave generator that keeps its phase between frames, so
// consecutive frames join up without clicks.
type Tone struct {
	SampleRate int
	Frequency  int
	Amplitude  int16

	phase int
}

// New returns a Tone with the default settings
func New() *Tone {
	return &Tone{
		SampleRate: SampleRate,
		Frequency:  Frequency,
		Amplitude:  Amplitude,
	}
}

// SamplesPerFrame returns the number of samples that cover one frame at hz
// frames per second.
func (t *Tone) SamplesPerFrame(hz int) int {
	return t.SampleRate / hz
}

// Frame fills buf with the next samples of the tone, or with silence when
// on is false. Silence resets the phase.
func (t *Tone) Frame(buf []int16, on bool) {
	if !on {
		for i := range buf {
			buf[i] = 0
		}
		t.phase = 0
		return
	}

	period := t.SampleRate / t.Frequency
	half := period / 2
	for i := range buf {
		if t.phase < half {
			buf[i] = t.Amplitude
		} else {
			buf[i] = -t.Amplitude
		}
		t.phase++
		if t.phase >= period {
			t.phase = 0
		}
	}
}
