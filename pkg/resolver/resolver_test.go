package resolver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terrariactl/terrariactl/pkg/resolver"
)

const target = "TerrariaServer.exe"

type recordingSink struct {
	messages []string
}

func (s *recordingSink) Append(message string) error {
	s.messages = append(s.messages, message)

	return nil
}

func touch(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("binary"), 0644))
}

func newResolver(roots []string, sink *recordingSink, updated *[]string) *resolver.Resolver {
	prompts := 0

	return &resolver.Resolver{
		Target: target,
		Prompt: func(_ context.Context) (string, error) {
			root := roots[prompts]
			prompts++

			return root, nil
		},
		Search: resolver.SearchTree,
		Update: func(_ context.Context, installDir string) error {
			*updated = append(*updated, installDir)

			return nil
		},
		Log: sink,
	}
}

func Test_Run_findsTargetAtAnyDepth(t *testing.T) {
	tests := []struct {
		name string
		dir  string
	}{
		{
			name: "depth_0",
			dir:  "",
		},
		{
			name: "depth_1",
			dir:  "server",
		},
		{
			name: "depth_n",
			dir:  filepath.Join("build", "out", "bin"),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			root := t.TempDir()
			expectedDir := filepath.Join(root, test.dir)
			touch(t, filepath.Join(expectedDir, target))

			sink := &recordingSink{}
			updated := []string{}
			r := newResolver([]string{root}, sink, &updated)

			installDir, err := r.Run(context.Background())

			require.NoError(t, err)
			assert.Equal(t, expectedDir, installDir)
			assert.Equal(t, []string{expectedDir}, updated)
			assert.Empty(t, sink.messages)
		})
	}
}

func Test_Run_exhaustsAttemptsOnMiss(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "README.txt"))

	sink := &recordingSink{}
	updated := []string{}
	r := newResolver([]string{root, root, root, root}, sink, &updated)

	_, err := r.Run(context.Background())

	require.ErrorIs(t, err, resolver.ErrAttemptsExhausted)
	assert.Len(t, sink.messages, 3)
	for _, message := range sink.messages {
		assert.Contains(t, message, "target not found under root")
	}
	assert.Empty(t, updated)
}

func Test_Run_missThenHitStopsOnSecondAttempt(t *testing.T) {
	miss := t.TempDir()
	hit := t.TempDir()
	expectedDir := filepath.Join(hit, "server")
	touch(t, filepath.Join(expectedDir, target))

	sink := &recordingSink{}
	updated := []string{}
	r := newResolver([]string{miss, hit, miss}, sink, &updated)

	installDir, err := r.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, expectedDir, installDir)
	assert.Len(t, sink.messages, 1)
	assert.Equal(t, []string{expectedDir}, updated)
}

func Test_Run_nonexistentRootIsNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does", "not", "exist")

	sink := &recordingSink{}
	updated := []string{}
	r := newResolver([]string{missing, missing, missing}, sink, &updated)

	_, err := r.Run(context.Background())

	require.ErrorIs(t, err, resolver.ErrAttemptsExhausted)
	assert.Len(t, sink.messages, 3)
}

func Test_Run_multipleMatchesPickExactlyOne(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a", target))
	touch(t, filepath.Join(root, "b", target))
	touch(t, filepath.Join(root, "c", "nested", target))

	sink := &recordingSink{}
	updated := []string{}
	r := newResolver([]string{root}, sink, &updated)

	installDir, err := r.Run(context.Background())

	require.NoError(t, err)
	// Walk order is filesystem dependent, assert a single choice only.
	require.Len(t, updated, 1)
	assert.Equal(t, updated[0], installDir)
	assert.Empty(t, sink.messages)
}

func Test_SearchTree_parentDirDerivation(t *testing.T) {
	root := t.TempDir()
	expected := filepath.Join(root, "build", "out")
	touch(t, filepath.Join(expected, target))

	found, err := resolver.SearchTree(context.Background(), root, target)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(expected, target), found)
	assert.Equal(t, expected, filepath.Dir(found))
}
