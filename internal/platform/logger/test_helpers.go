package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// TestLogBuffer collects JSON log lines. It is safe for concurrent writers.
type TestLogBuffer struct {
	mu   sync.Mutex
	data bytes.Buffer
}

func (b *TestLogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data.Write(p)
}

func (b *TestLogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data.String()
}

// GetLogEntries decodes every captured line into a map.
func (b *TestLogBuffer) GetLogEntries() ([]map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(b.String()))

	var entries []map[string]any
	for {
		var entry map[string]any
		err := dec.Decode(&entry)
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
}

// SetupTestLogger returns a debug-level logger writing into a fresh buffer.
// The logger is also the slog default until t finishes, so tests using it
// must not run in parallel.
func SetupTestLogger(t *testing.T) (*TestLogBuffer, *slog.Logger) {
	t.Helper()

	buf := &TestLogBuffer{}
	log := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	previous := slog.Default()
	slog.SetDefault(log)
	t.Cleanup(func() { slog.SetDefault(previous) })

	return buf, log
}

// AssertLogContains fails t unless content appears somewhere in the logs.
func AssertLogContains(t *testing.T, buf *TestLogBuffer, content string) {
	t.Helper()
	assertLog(t, buf, content, true)
}

// AssertLogNotContains fails t if content appears anywhere in the logs.
func AssertLogNotContains(t *testing.T, buf *TestLogBuffer, content string) {
	t.Helper()
	assertLog(t, buf, content, false)
}

func assertLog(t *testing.T, buf *TestLogBuffer, content string, want bool) {
	t.Helper()

	logs := buf.String()
	if strings.Contains(logs, content) != want {
		t.Errorf("log contains %q = %v, want %v\nlogs:\n%s", content, !want, want, logs)
	}
}
