package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var config = `worldname=MyWorld
port=7777
maxplayers=8
`

func Test_findLineAndReplace(t *testing.T) {
	r := strings.NewReader(config)
	w := bytes.NewBuffer([]byte{})

	err := findLineAndReplaceOrAdd(context.Background(), r, w, map[string]string{
		"port=":       "port=7878",
		"maxplayers=": "maxplayers=16",
	}, false)

	require.NoError(t, err)
	assert.Equal(
		t,
		"worldname=MyWorld\nport=7878\nmaxplayers=16\n",
		w.String(),
	)
}

var configWithSpaces = `worldname=MyWorld
    port=7777
	maxplayers=8
`

func Test_findLineAndReplace_withSpaces(t *testing.T) {
	r := strings.NewReader(configWithSpaces)
	w := bytes.NewBuffer([]byte{})

	err := findLineAndReplaceOrAdd(context.Background(), r, w, map[string]string{
		"port=":       "port=7878",
		"maxplayers=": "maxplayers=16",
	}, false)

	require.NoError(t, err)
	assert.Equal(
		t,
		"worldname=MyWorld\n    port=7878\n	maxplayers=16\n",
		w.String(),
	)
}

func Test_findLineAndReplaceOrAdd_addsMissingLines(t *testing.T) {
	r := strings.NewReader(config)
	w := bytes.NewBuffer([]byte{})

	err := findLineAndReplaceOrAdd(context.Background(), r, w, map[string]string{
		"port=":     "port=7878",
		"password=": "password=secret",
	}, true)

	require.NoError(t, err)
	assert.Contains(t, w.String(), "port=7878\n")
	assert.Contains(t, w.String(), "password=secret\n")
	assert.Contains(t, w.String(), "worldname=MyWorld\n")
}
