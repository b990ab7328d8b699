package service

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/terrariactl/terrariactl/pkg/utils"
)

// WinSWConfig is the WinSW service wrapper configuration.
type WinSWConfig struct {
	ID               string `yaml:"id"`
	Name             string `yaml:"name"`
	Description      string `yaml:"description,omitempty"`
	Executable       string `yaml:"executable"`
	Arguments        string `yaml:"arguments,omitempty"`
	WorkingDirectory string `yaml:"workingdirectory,omitempty"`

	StopExecutable string `yaml:"stopexecutable,omitempty"`
	StopArguments  string `yaml:"stoparguments,omitempty"`

	StartMode string `yaml:"startmode,omitempty"`
}

// InstallWinSW registers a Windows service wrapped by WinSW. The service
// config is written to configDir before `winsw install` is invoked.
// Registering an already installed service is not an error.
func InstallWinSW(ctx context.Context, configDir string, cfg WinSWConfig) error {
	if !utils.IsCommandAvailable("winsw") {
		return errors.New("winsw executable not found in PATH")
	}

	if IsExists(ctx, cfg.ID) {
		return nil
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WithMessage(err, "failed to marshal service config")
	}

	err = os.MkdirAll(configDir, 0755)
	if err != nil {
		return errors.WithMessage(err, "failed to create services config directory")
	}

	configPath := filepath.Join(configDir, cfg.ID+".yaml")

	err = utils.WriteContentsToFile(out, configPath)
	if err != nil {
		return errors.WithMessagef(err, "failed to save config for service '%s'", cfg.ID)
	}

	err = utils.ExecCommand("winsw", "install", configPath)
	if err != nil {
		return errors.WithMessagef(err, "failed to install service '%s'", cfg.ID)
	}

	return nil
}
