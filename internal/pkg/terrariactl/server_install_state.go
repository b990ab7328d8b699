package terrariactl

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const serverInstallStateFile = "server_install_state.json"

// ServerInstallState records the outcome of the last `server install` run
// so later commands can find the installation without asking again.
type ServerInstallState struct {
	Version     string `json:"version"`
	InstallPath string `json:"installPath"`
	ConfigPath  string `json:"configPath"`
	WorldsPath  string `json:"worldsPath"`
	BackupsPath string `json:"backupsPath"`
	WorldName   string `json:"worldName"`
	Port        int    `json:"port"`
	MaxPlayers  int    `json:"maxPlayers"`
	Autostart   bool   `json:"autostart"`
	BackupTask  bool   `json:"backupTask"`
}

func SaveServerInstallState(_ context.Context, state ServerInstallState) error {
	b, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errors.WithMessage(err, "failed to marshal json")
	}

	dir, err := stateDirectory()
	if err != nil {
		return errors.WithMessage(err, "failed to get state directory")
	}

	err = os.WriteFile(filepath.Join(dir, serverInstallStateFile), b, 0600)
	if err != nil {
		return errors.WithMessage(err, "failed to write file")
	}

	return nil
}

func LoadServerInstallState(_ context.Context) (ServerInstallState, error) {
	var state ServerInstallState

	dir, err := stateDirectory()
	if err != nil {
		return state, errors.WithMessage(err, "failed to get state directory")
	}

	b, err := os.ReadFile(filepath.Join(dir, serverInstallStateFile))
	if err != nil {
		return state, errors.WithMessage(err, "failed to read file")
	}

	err = json.Unmarshal(b, &state)
	if err != nil {
		return state, errors.WithMessage(err, "failed to unmarshal json")
	}

	return state, nil
}

func stateDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WithMessage(err, "failed to get user home dir")
	}

	dir := filepath.Join(homeDir, ".terrariactl")
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		err = os.Mkdir(dir, 0700)
		if err != nil {
			return "", errors.WithMessage(err, "failed to create state directory")
		}
	}

	return dir, nil
}
