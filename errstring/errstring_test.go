package errstring_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/k0sproject/platform/errstring"
	"github.com/stretchr/testify/require"
)

var (
	errA = errstring.New("error a")
	errB = errstring.New("error b")
)

func TestError(t *testing.T) {
	type testCase struct {
		name     string
		err      error
		expected string
	}

	for _, scenario := range []testCase{
		{
			name:     "non-wrapped error",
			err:      errA,
			expected: "error a",
		},
		{
			name:     "error wrapped in error",
			err:      errA.Wrap(fs.ErrPermission),
			expected: "error a: permission denied",
		},
		{
			name:     "string wrapped error",
			err:      errA.Wrapf("test"),
			expected: "error a: test",
		},
		{
			name:     "double wrapped string error",
			err:      errA.Wrapf("open %s: %w", "etc/issue", fs.ErrNotExist),
			expected: "error a: open etc/issue: file does not exist",
		},
	} {
		t.Run(scenario.name, func(t *testing.T) {
			require.Error(t, scenario.err)
			require.Equal(t, scenario.expected, scenario.err.Error())
			require.ErrorIs(t, scenario.err, errA)
			require.False(t, errors.Is(scenario.err, errB))
		})
	}

	t.Run("cause is reachable", func(t *testing.T) {
		err := errA.Wrapf("open %s: %w", "etc/issue", fs.ErrNotExist)
		require.ErrorIs(t, err, fs.ErrNotExist)
	})
}
