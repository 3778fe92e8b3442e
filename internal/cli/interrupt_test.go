package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandler(t *testing.T) {
	tests := []struct {
		writer io.Writer
		name   string
	}{
		{
			name:   "with custom writer",
			writer: &bytes.Buffer{},
		},
		{
			name:   "with nil writer",
			writer: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInterruptHandler(tt.writer)
			assert.NotNil(t, handler)
			assert.NotNil(t, handler.writer)
			assert.False(t, handler.WasInterrupted())
		})
	}
}

func TestHandleInterrupts_StopCancels(t *testing.T) {
	handler := NewInterruptHandler(&syncBuffer{})

	ctx, stop := handler.HandleInterrupts(context.Background())
	select {
	case <-ctx.Done():
		t.Fatal("context should not be canceled initially")
	default:
	}

	stop()
	<-ctx.Done()
	assert.False(t, handler.WasInterrupted())
}

func TestInterrupt_MessageShownOnce(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	handler.Interrupt()
	handler.Interrupt()

	assert.True(t, handler.WasInterrupted())
	outputStr := output.String()
	assert.Equal(t, 1, strings.Count(outputStr, "Capture interrupted!"))
	assert.Contains(t, outputStr, "Pending records are flushed")
}
