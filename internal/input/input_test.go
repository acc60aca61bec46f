package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Input
	}{
		{name: "quit", raw: "q", expected: Input{Quit: true}},
		{name: "ctrl-c", raw: "\x03", expected: Input{Quit: true}},
		{name: "lone escape", raw: "\x1b", expected: Input{Quit: true}},
		{name: "pause", raw: " ", expected: Input{Pause: true}},
		{name: "step and restart", raw: "nR", expected: Input{Step: true, Restart: true}},
		{name: "arrow key is ignored", raw: "\x1b[A", expected: Input{}},
		{name: "csi with params then key", raw: "\x1b[1;5Cr", expected: Input{Restart: true}},
		{name: "unknown keys", raw: "xyz", expected: Input{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse([]byte(tt.raw))
			tt.expected.Pressed = []byte(tt.raw)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestReadInputFromStream(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader(" q")))

	var seen Input
	assert.Eventually(t, func() bool {
		in := ReadInput(s)
		seen.Quit = seen.Quit || in.Quit
		seen.Pause = seen.Pause || in.Pause
		return seen.Quit && in.Closed
	}, time.Second, time.Millisecond)
	assert.True(t, seen.Pause)
}

func TestReadInputEmpty(t *testing.T) {
	s := &Stream{ch: make(chan byte, 1)}
	in := ReadInput(s)
	assert.False(t, in.Quit)
	assert.False(t, in.Closed)
	assert.Empty(t, in.Pressed)
}
