// Package testutil holds shared helpers for the engine's tests: a
// thread-safe log capture buffer, logger construction and a ready-made demo
// song covering the expansion features end to end.
package testutil

import (
	"bytes"
	"io"
	"log/slog"
	"sync"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// NewLogger builds an isolated slog.Logger writing to w. It never touches
// the global default logger, so parallel tests cannot bleed into each other.
func NewLogger(level slog.Level, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewBufferLogger builds a debug-level logger together with the buffer
// capturing its output.
func NewBufferLogger() (*slog.Logger, *SafeBuffer) {
	buf := &SafeBuffer{}
	return NewLogger(slog.LevelDebug, buf), buf
}
