package config

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := ParseFlags([]string{"pong.ch8"})
	assert.NoError(t, err)

	assert.Equal(t, "pong.ch8", opts.ROM)
	assert.Equal(t, FrontendSDL, opts.Frontend)
	assert.Equal(t, DefaultScale, opts.Scale)
	assert.Equal(t, DefaultInstructionsPerFrame, opts.InstructionsPerFrame)
	assert.Equal(t, DefaultFrameRate, opts.FrameRate)
	assert.Equal(t, uint32(DefaultBackground), opts.Background)
	assert.Equal(t, uint32(DefaultForeground), opts.Foreground)
	assert.False(t, opts.Debug)
}

func TestParseFlags(t *testing.T) {
	opts, err := ParseFlags([]string{
		"-frontend", "headless", "-frames", "120", "-ipf", "20",
		"-seed", "99", "-fg", "#00ff00", "-trace", "maze.ch8",
	})
	assert.NoError(t, err)

	assert.Equal(t, "maze.ch8", opts.ROM)
	assert.Equal(t, FrontendHeadless, opts.Frontend)
	assert.Equal(t, 120, opts.Frames)
	assert.Equal(t, 20, opts.InstructionsPerFrame)
	assert.Equal(t, int64(99), opts.Seed)
	assert.Equal(t, uint32(0x00FF00), opts.Foreground)
	assert.True(t, opts.Trace)
	assert.True(t, opts.Debug)
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{"no rom", []string{}, true},
		{"two roms", []string{"a.ch8", "b.ch8"}, true},
		{"unknown flag", []string{"-nope", "a.ch8"}, true},
		{"help", []string{"-h"}, true},
		{"bad frontend", []string{"-frontend", "gl", "a.ch8"}, false},
		{"bad ipf", []string{"-ipf", "0", "a.ch8"}, false},
		{"bad color", []string{"-bg", "12345", "a.ch8"}, false},
		{"headless without frames", []string{"-frontend", "headless", "a.ch8"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}

func TestUsageErrorShowUsage(t *testing.T) {
	_, err := ParseFlags(nil)
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))

	var buf bytes.Buffer
	usageErr.ShowUsage(&buf)
	assert.Contains(t, buf.String(), "usage: chopper8")
	assert.Contains(t, buf.String(), "-frontend")
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected uint32
		wantErr  bool
	}{
		{"1A237E", 0x1A237E, false},
		{"#9fa8da", 0x9FA8DA, false},
		{"0xFFFFFF", 0xFFFFFF, false},
		{"FFF", 0, true},
		{"GGGGGG", 0, true},
	}

	for _, tt := range tests {
		c, err := ParseColor(tt.input)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, c)
	}
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}
