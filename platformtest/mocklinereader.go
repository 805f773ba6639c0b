// Package platformtest provides testing utilities for the platform package.
package platformtest

import (
	"errors"
	"io"
	"sync"
)

// ErrMockRead is the default error returned by a MockLineReader set up to fail.
var ErrMockRead = errors.New("mock read failure")

// MockLineReader is a line source that returns a fixed list of lines followed
// by io.EOF. It records how many times it was read so tests can check that
// the input was drained.
type MockLineReader struct {
	mu     sync.Mutex
	lines  []string
	pos    int
	reads  int
	failAt int
	err    error
}

// NewMockLineReader returns a MockLineReader yielding lines.
func NewMockLineReader(lines ...string) *MockLineReader {
	return &MockLineReader{lines: lines, failAt: -1}
}

// FailAt makes the n:th (zero based) read return err instead of a line. A nil
// err uses ErrMockRead.
func (m *MockLineReader) FailAt(n int, err error) *MockLineReader {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		err = ErrMockRead
	}
	m.failAt = n
	m.err = err
	return m
}

// ReadLine returns the next line or io.EOF.
func (m *MockLineReader) ReadLine() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.reads
	m.reads++
	if n == m.failAt {
		return "", m.err
	}
	if m.pos >= len(m.lines) {
		return "", io.EOF
	}
	line := m.lines[m.pos]
	m.pos++
	return line, nil
}

// Reads returns the number of ReadLine calls made so far.
func (m *MockLineReader) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Drained returns true when every line was consumed and io.EOF was returned at least once.
func (m *MockLineReader) Drained() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pos >= len(m.lines) && m.reads > len(m.lines)
}
