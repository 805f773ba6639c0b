package platform_test

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/k0sproject/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingReader returns data and then err.
type failingReader struct {
	data string
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.data == "" {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func readAll(t *testing.T, r platform.LineReader) []string {
	t.Helper()
	var lines []string
	for {
		line, err := r.ReadLine()
		if errors.Is(err, io.EOF) {
			return lines
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}
}

func TestNewLineReader(t *testing.T) {
	t.Run("terminated", func(t *testing.T) {
		r := platform.NewLineReader(strings.NewReader("one\ntwo\n"))
		assert.Equal(t, []string{"one", "two"}, readAll(t, r))
	})

	t.Run("unterminated last line", func(t *testing.T) {
		r := platform.NewLineReader(strings.NewReader("one\ntwo"))
		assert.Equal(t, []string{"one", "two"}, readAll(t, r))
	})

	t.Run("crlf", func(t *testing.T) {
		r := platform.NewLineReader(strings.NewReader("one\r\ntwo\r\n"))
		assert.Equal(t, []string{"one", "two"}, readAll(t, r))
	})

	t.Run("empty lines are kept", func(t *testing.T) {
		r := platform.NewLineReader(strings.NewReader("\none\n\n"))
		assert.Equal(t, []string{"", "one", ""}, readAll(t, r))
	})

	t.Run("empty input", func(t *testing.T) {
		r := platform.NewLineReader(strings.NewReader(""))
		assert.Empty(t, readAll(t, r))
	})

	t.Run("bufio reader", func(t *testing.T) {
		r := platform.NewLineReader(bufio.NewReader(strings.NewReader("one")))
		assert.Equal(t, []string{"one"}, readAll(t, r))
	})

	t.Run("read error", func(t *testing.T) {
		readErr := errors.New("input/output error")
		r := platform.NewLineReader(&failingReader{data: "one\ntw", err: readErr})
		line, err := r.ReadLine()
		require.NoError(t, err)
		assert.Equal(t, "one", line)
		_, err = r.ReadLine()
		require.ErrorIs(t, err, readErr)
	})

	t.Run("read error propagates through a strategy", func(t *testing.T) {
		readErr := errors.New("input/output error")
		r := platform.NewLineReader(&failingReader{data: "NAME=Fedora\n", err: readErr})
		_, err := platform.ReadPlatformNameFromOSRelease("Linux", "6.1", "amd64", r)
		require.ErrorIs(t, err, readErr)
	})
}

func TestLines(t *testing.T) {
	r := platform.Lines("a", "", "b")
	assert.Equal(t, []string{"a", "", "b"}, readAll(t, r))
	_, err := r.ReadLine()
	require.ErrorIs(t, err, io.EOF)
}
