package mocks

import (
	"fmt"
	"sync"
)

// MockLogger is a hand-rolled fake of election.Logger that records every
// formatted line instead of printing it, so tests can assert a warning
// was (or wasn't) emitted without scraping stdout.
type MockLogger struct {
	mu sync.Mutex

	Debugs []string
	Infos  []string
	Warns  []string
}

// NewMockLogger creates an empty fake logger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (l *MockLogger) Debugf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, fmt.Sprintf(format, args...))
}

func (l *MockLogger) Infof(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, fmt.Sprintf(format, args...))
}

func (l *MockLogger) Warnf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, fmt.Sprintf(format, args...))
}

// FixedRandom is a deterministic election.RandomSource stand-in for the
// NOMINATE backoff jitter: it always returns the configured value,
// capped to stay within [0, n).
type FixedRandom struct {
	Value int64
}

func (r FixedRandom) Int63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	if r.Value >= n {
		return n - 1
	}
	return r.Value
}
