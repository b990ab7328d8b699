package serverbackup

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_compressDir(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "worlds"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "worlds", "MyWorld.wld"), []byte("world data"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "serverconfig.txt"), []byte("port=7777\n"), 0644))

	buf := &bytes.Buffer{}
	err := compressDir(src, buf)
	require.NoError(t, err)

	entries := map[string]string{}
	tr := tar.NewReader(lz4.NewReader(buf))
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		if header.Typeflag == tar.TypeDir {
			entries[header.Name] = ""

			continue
		}

		contents, err := io.ReadAll(tr)
		require.NoError(t, err)
		entries[header.Name] = string(contents)
	}

	assert.Contains(t, entries, "worlds")
	assert.Equal(t, "world data", entries["worlds/MyWorld.wld"])
	assert.Equal(t, "port=7777\n", entries["serverconfig.txt"])
}

func Test_createBackup(t *testing.T) {
	worldsPath := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(worldsPath, "MyWorld.wld"), []byte("world data"), 0644))

	configPath := filepath.Join(t.TempDir(), "serverconfig.txt")
	require.NoError(t, os.WriteFile(configPath, []byte("port=7777\n"), 0644))

	backupsPath := filepath.Join(t.TempDir(), "backups")

	archivePath, err := createBackup(worldsPath, configPath, backupsPath)

	require.NoError(t, err)
	assert.FileExists(t, archivePath)
	assert.Equal(t, backupsPath, filepath.Dir(archivePath))

	name := filepath.Base(archivePath)
	assert.True(t, strings.HasPrefix(name, backupPrefix))
	assert.True(t, strings.HasSuffix(name, backupExtension))

	// The finished archive is the only file left behind.
	entries, err := os.ReadDir(backupsPath)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	archive, err := os.Open(archivePath)
	require.NoError(t, err)
	defer func() {
		_ = archive.Close()
	}()

	archived := map[string]struct{}{}
	tr := tar.NewReader(lz4.NewReader(archive))
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		archived[header.Name] = struct{}{}
	}

	assert.Contains(t, archived, "worlds/MyWorld.wld")
	assert.Contains(t, archived, "serverconfig.txt")
}

func Test_pruneBackups(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"terraria-backup-2026-08-01_03-00-00.tar.lz4",
		"terraria-backup-2026-08-02_03-00-00.tar.lz4",
		"terraria-backup-2026-08-03_03-00-00.tar.lz4",
		"terraria-backup-2026-08-04_03-00-00.tar.lz4",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("archive"), 0644))
	}
	// Unrelated files are never pruned.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep me"), 0644))

	removed, err := pruneBackups(dir, 2)

	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.NoFileExists(t, filepath.Join(dir, names[0]))
	assert.NoFileExists(t, filepath.Join(dir, names[1]))
	assert.FileExists(t, filepath.Join(dir, names[2]))
	assert.FileExists(t, filepath.Join(dir, names[3]))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func Test_pruneBackups_underLimit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "terraria-backup-2026-08-01_03-00-00.tar.lz4"),
		[]byte("archive"),
		0644,
	))

	removed, err := pruneBackups(dir, 10)

	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}
