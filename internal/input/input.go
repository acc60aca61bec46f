// Package input reads raw terminal bytes and turns them into simulator commands.
package input

import (
	"bufio"
)

// Input represents the keys pressed since the previous frame.
type Input struct {
	Quit    bool // q, Q, Ctrl-C, or a lone Esc
	Pause   bool // Space toggles pause
	Step    bool // n advances one tick while paused
	Restart bool // r re-seeds the population
	Closed  bool // The underlying reader hit EOF or an error
	Pressed []byte
}

// Stream delivers input bytes via a channel filled by a reader goroutine.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream without blocking.
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := Parse(buf)
	in.Closed = s.closed
	return in
}

// Parse interprets a batch of raw bytes. Escape sequences (arrow keys and
// the like) are skipped so their trailing bytes don't trigger commands.
func Parse(buf []byte) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			// CSI sequence: ESC [ <params> <final>
			if i+1 < len(buf) && buf[i+1] == '[' {
				i += 2
				for i < len(buf) && (buf[i] < 0x40 || buf[i] > 0x7e) {
					i++
				}
				continue
			}
			in.Quit = true
			continue
		}

		applyByte(&in, b)
	}

	return in
}

// applyByte maps a single key press onto the input.
func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case ' ':
		in.Pause = true
	case 'n', 'N':
		in.Step = true
	case 'r', 'R':
		in.Restart = true
	}
}
