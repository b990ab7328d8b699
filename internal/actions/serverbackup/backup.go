package serverbackup

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/terrariactl/terrariactl/internal/pkg/terrariactl"
	"github.com/terrariactl/terrariactl/pkg/terraria"
	"github.com/terrariactl/terrariactl/pkg/utils"
	"github.com/urfave/cli/v2"
)

const (
	backupPrefix    = "terraria-backup-"
	backupExtension = ".tar.lz4"
)

// Handle archives the worlds directory and the server config into a
// timestamped .tar.lz4 file and prunes old archives.
func Handle(cliCtx *cli.Context) error {
	ctx := cliCtx.Context

	state, err := terrariactl.LoadServerInstallState(ctx)
	if err != nil {
		log.Println(errors.WithMessage(err, "failed to load install state, using defaults"))
	}

	worldsPath := lo.CoalesceOrEmpty(state.WorldsPath, terraria.DefaultWorldsPath)
	backupsPath := lo.CoalesceOrEmpty(state.BackupsPath, terraria.DefaultBackupsPath)
	configPath := lo.CoalesceOrEmpty(state.ConfigPath, terraria.DefaultConfigFilePath)

	if !utils.IsFileExists(worldsPath) {
		return errors.Errorf("worlds directory '%s' not found", worldsPath)
	}

	fmt.Println("Backing up", worldsPath, "...")

	archivePath, err := createBackup(worldsPath, configPath, backupsPath)
	if err != nil {
		return errors.WithMessage(err, "failed to create backup")
	}

	fmt.Println("Backup created:", archivePath)

	removed, err := pruneBackups(backupsPath, cliCtx.Int("keep"))
	if err != nil {
		return errors.WithMessage(err, "failed to prune old backups")
	}
	if removed > 0 {
		fmt.Println("Removed", removed, "old backups")
	}

	return nil
}

func createBackup(worldsPath string, configPath string, backupsPath string) (string, error) {
	staging, err := os.MkdirTemp("", "terraria-backup")
	if err != nil {
		return "", errors.WithMessage(err, "failed to create staging directory")
	}
	defer func() {
		err := os.RemoveAll(staging)
		if err != nil {
			log.Println(err)
		}
	}()

	err = utils.Copy(worldsPath, filepath.Join(staging, "worlds"))
	if err != nil {
		return "", errors.WithMessage(err, "failed to stage worlds")
	}

	if utils.IsFileExists(configPath) {
		err = utils.Copy(configPath, filepath.Join(staging, filepath.Base(configPath)))
		if err != nil {
			return "", errors.WithMessage(err, "failed to stage server config")
		}
	}

	err = os.MkdirAll(backupsPath, 0755)
	if err != nil {
		return "", errors.WithMessage(err, "failed to create backups directory")
	}

	// Compress into a temp name first so pruning never sees a
	// half-written archive.
	file, err := os.CreateTemp(backupsPath, ".terraria-backup-*.tmp")
	if err != nil {
		return "", errors.WithMessage(err, "failed to create archive file")
	}

	err = compressDir(staging, file)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())

		return "", err
	}

	err = file.Close()
	if err != nil {
		return "", err
	}

	name := backupPrefix + time.Now().Format("2006-01-02_15-04-05") + backupExtension
	archivePath := filepath.Join(backupsPath, name)

	err = utils.Move(file.Name(), archivePath)
	if err != nil {
		return "", errors.WithMessage(err, "failed to move archive into place")
	}

	return archivePath, nil
}

// pruneBackups keeps the newest keep archives. Archive names embed the
// creation time, lexicographic order is chronological.
func pruneBackups(backupsPath string, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}

	entries, err := os.ReadDir(backupsPath)
	if err != nil {
		return 0, err
	}

	names := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		name := e.Name()
		ok := !e.IsDir() &&
			len(name) > len(backupPrefix)+len(backupExtension) &&
			name[:len(backupPrefix)] == backupPrefix &&
			name[len(name)-len(backupExtension):] == backupExtension

		return name, ok
	})

	if len(names) <= keep {
		return 0, nil
	}

	sort.Strings(names)

	removed := 0
	for _, name := range names[:len(names)-keep] {
		err := os.Remove(filepath.Join(backupsPath, name))
		if err != nil {
			return removed, err
		}
		removed++
	}

	return removed, nil
}
