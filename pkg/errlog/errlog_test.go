package errlog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terrariactl/terrariactl/pkg/errlog"
)

func Test_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "errors.log")
	l := errlog.New(path)

	err := l.Append("target not found under root 'C:\\games'")

	require.NoError(t, err)
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(contents), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], " - ERROR: target not found under root 'C:\\games'")
}

func Test_Append_keepsPreviousLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.log")
	l := errlog.New(path)

	require.NoError(t, l.Append("first"))
	require.NoError(t, l.Append("second"))
	require.NoError(t, errlog.New(path).Append("third"))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(contents), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "first")
	assert.Contains(t, lines[1], "second")
	assert.Contains(t, lines[2], "third")
}

func Test_Append_timestampsNonDecreasing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.log")
	l := errlog.New(path)

	for i := 0; i < 5; i++ {
		require.NoError(t, l.Append("attempt failed"))
	}

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(contents), "\n"), "\n")
	require.Len(t, lines, 5)

	previous := time.Time{}
	for _, line := range lines {
		stamp, _, found := strings.Cut(line, " - ERROR: ")
		require.True(t, found)

		parsed, err := time.Parse("2006-01-02 15:04:05", stamp)
		require.NoError(t, err)
		assert.False(t, parsed.Before(previous))
		previous = parsed
	}
}
