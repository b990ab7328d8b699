// Package steamcmd wraps the external SteamCMD tool. Only the invocation
// is handled here, SteamCMD's own behavior stays external.
package steamcmd

import (
	"context"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"github.com/terrariactl/terrariactl/pkg/utils"
)

const (
	windowsDownloadURL = "https://steamcdn-a.akamaihd.net/client/installer/steamcmd.zip"
	linuxDownloadURL   = "https://steamcdn-a.akamaihd.net/client/installer/steamcmd_linux.tar.gz"
)

type SteamCMD struct {
	path string
}

func BinaryName() string {
	if runtime.GOOS == "windows" {
		return "steamcmd.exe"
	}

	return "steamcmd.sh"
}

// Ensure returns a SteamCMD found in PATH or in installPath, downloading
// and unpacking it into installPath when absent.
func Ensure(ctx context.Context, installPath string) (*SteamCMD, error) {
	path, err := exec.LookPath(BinaryName())
	if err == nil {
		return &SteamCMD{path: path}, nil
	}

	path = filepath.Join(installPath, BinaryName())
	if utils.IsFileExists(path) {
		return &SteamCMD{path: path}, nil
	}

	log.Println("SteamCMD not found, downloading to", installPath)

	err = os.MkdirAll(installPath, 0755)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create steamcmd directory")
	}

	url := linuxDownloadURL
	if runtime.GOOS == "windows" {
		url = windowsDownloadURL
	}

	err = utils.Download(ctx, url, installPath)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to download steamcmd")
	}

	if !utils.IsFileExists(path) {
		return nil, errors.New("steamcmd binary not found after download")
	}

	if runtime.GOOS != "windows" {
		err = os.Chmod(path, 0755)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to chmod steamcmd")
		}
	}

	return &SteamCMD{path: path}, nil
}

func (s *SteamCMD) Path() string {
	return s.path
}

// AppUpdate installs or updates an application into installDir.
// SteamCMD exit codes are unreliable, a non-zero exit is logged and
// treated as success. Only a failure to launch the tool is an error.
func (s *SteamCMD) AppUpdate(ctx context.Context, installDir string, appID string) error {
	cmd := exec.CommandContext(ctx, s.path, appUpdateArgs(installDir, appID)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	log.Println('\n', cmd.String())

	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		log.Printf("steamcmd exited with code %d\n", exitErr.ExitCode())

		return nil
	}

	return err
}

func appUpdateArgs(installDir string, appID string) []string {
	return []string{
		"+force_install_dir", installDir,
		"+login", "anonymous",
		"+app_update", appID, "validate",
		"+quit",
	}
}
