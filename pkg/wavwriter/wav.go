// Package wavwriter records the sound timer tone as a WAV file. Audio data is
// buffered in memory in its entirety and written to disk when the writer is
// closed, so it is meant for short recordings and testing.
package wavwriter

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mnafees/chopper8/pkg/beep"
	"github.com/retroenv/retrogolib/log"
)

const (
	bitDepth = 16
	channels = 1

	// WAVE_FORMAT_PCM
	pcmFormat = 1
)

// WavWriter implements the runner.AudioSink interface
type WavWriter struct {
	filename string
	logger   *log.Logger
	buffer   []int
}

// New is the preferred method of initialisation for the WavWriter type
func New(filename string, logger *log.Logger) *WavWriter {
	return &WavWriter{
		filename: filename,
		logger:   logger,
	}
}

// Play implements the runner.AudioSink interface
func (aw *WavWriter) Play(samples []int16) error {
	for _, s := range samples {
		aw.buffer = append(aw.buffer, int(s))
	}
	return nil
}

// Close writes the buffered samples to disk
func (aw *WavWriter) Close() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wavwriter: %w", err)
		}
	}()

	enc := wav.NewEncoder(f, beep.SampleRate, bitDepth, channels, pcmFormat)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  beep.SampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: bitDepth,
	}

	aw.logger.Info("Writing audio",
		log.String("file", aw.filename),
		log.Int("samples", len(aw.buffer)))

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	return nil
}
