package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// NonBlockingReader provides context-aware line reading. A single pump
// goroutine owns the underlying reader, so a read abandoned by cancellation
// leaves its line for the next caller instead of dropping it.
type NonBlockingReader struct {
	reader *bufio.Reader
	lines  chan string
	done   chan struct{}
	err    error
	once   sync.Once
}

// NewNonBlockingReader creates a new non-blocking reader.
func NewNonBlockingReader(reader io.Reader) *NonBlockingReader {
	if reader == nil {
		panic("reader cannot be nil")
	}

	return &NonBlockingReader{
		reader: bufio.NewReader(reader),
		lines:  make(chan string),
		done:   make(chan struct{}),
	}
}

func (r *NonBlockingReader) start() {
	r.once.Do(func() {
		go r.pump()
	})
}

// pump exits at the first read error. err is written before done is closed,
// so every later ReadLine sees it.
func (r *NonBlockingReader) pump() {
	for {
		line, err := r.reader.ReadString('\n')
		if line != "" || err == nil {
			r.lines <- line
		}
		if err != nil {
			r.err = err
			close(r.done)
			return
		}
	}
}

// ReadLine reads a trimmed line, respecting context cancellation.
func (r *NonBlockingReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}
	r.start()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case line := <-r.lines:
		return strings.TrimSpace(line), nil
	case <-r.done:
		return "", r.err
	}
}
