package platform

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// LineReader is a source of text lines. ReadLine returns io.EOF once the input
// is exhausted. Any other error is a read failure.
type LineReader interface {
	ReadLine() (string, error)
}

type bufferedLineReader struct {
	r *bufio.Reader
}

// NewLineReader returns a LineReader reading newline separated lines from r.
// The line terminator ("\n" or "\r\n") is not included in the returned lines.
func NewLineReader(r io.Reader) LineReader {
	if br, ok := r.(*bufio.Reader); ok {
		return &bufferedLineReader{r: br}
	}
	return &bufferedLineReader{r: bufio.NewReader(r)}
}

func (b *bufferedLineReader) ReadLine() (string, error) {
	line, err := b.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			// last line without a terminator
			return trimEOL(line), nil
		}
		return "", err
	}
	return trimEOL(line), nil
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

type sliceLineReader struct {
	lines []string
}

// Lines returns a LineReader that yields the given lines.
func Lines(lines ...string) LineReader {
	return &sliceLineReader{lines: lines}
}

func (s *sliceLineReader) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}
