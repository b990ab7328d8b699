package serverconfig_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terrariactl/terrariactl/pkg/serverconfig"
)

func Test_Marshal(t *testing.T) {
	c := serverconfig.New().
		Set("world", "C:\\terraria\\worlds\\MyWorld.wld").
		Set("worldname", "MyWorld").
		Set("port", "7777").
		Set("maxplayers", "8")

	assert.Equal(
		t,
		"world=C:\\terraria\\worlds\\MyWorld.wld\nworldname=MyWorld\nport=7777\nmaxplayers=8\n",
		string(c.Marshal()),
	)
}

func Test_Set_overridesKeepOrder(t *testing.T) {
	c := serverconfig.New().
		Set("port", "7777").
		Set("maxplayers", "8").
		Set("port", "7878")

	assert.Equal(t, "port=7878\nmaxplayers=8\n", string(c.Marshal()))
}

func Test_UpdateFile_createsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serverconfig.txt")

	err := serverconfig.New().Set("port", "7777").UpdateFile(context.Background(), path)

	require.NoError(t, err)
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "port=7777\n", string(contents))
}

func Test_UpdateFile_keepsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serverconfig.txt")
	require.NoError(t, os.WriteFile(path, []byte("motd=Welcome\nport=7777\n"), 0644))

	err := serverconfig.New().
		Set("port", "7878").
		Set("password", "secret").
		UpdateFile(context.Background(), path)

	require.NoError(t, err)
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "motd=Welcome\n")
	assert.Contains(t, string(contents), "port=7878\n")
	assert.Contains(t, string(contents), "password=secret\n")
	assert.NotContains(t, string(contents), "port=7777")
}
