package packagemanager

import (
	"context"
	"log"
	"strings"

	"github.com/pkg/errors"
	"github.com/terrariactl/terrariactl/pkg/oscore"
	"github.com/terrariactl/terrariactl/pkg/utils"
)

const chocolateyInstallScript = `Set-ExecutionPolicy Bypass -Scope Process -Force; ` +
	`[System.Net.ServicePointManager]::SecurityProtocol = ` +
	`[System.Net.ServicePointManager]::SecurityProtocol -bor 3072; ` +
	`iex ((New-Object System.Net.WebClient).DownloadString('https://community.chocolatey.org/install.ps1'))`

// Chocolatey drives the choco CLI. Mapping from logical package names to
// choco package ids is 1:1 except for packages choco does not carry.
type Chocolatey struct{}

func NewChocolatey() *Chocolatey {
	return &Chocolatey{}
}

func (pm *Chocolatey) IsAvailable() bool {
	return utils.IsCommandAvailable("choco")
}

// Bootstrap installs Chocolatey itself through the official install script.
func (pm *Chocolatey) Bootstrap(ctx context.Context) error {
	if pm.IsAvailable() {
		return nil
	}

	err := oscore.ExecCommand(
		ctx,
		"powershell", "-NoProfile", "-ExecutionPolicy", "Bypass",
		"-Command", chocolateyInstallScript,
	)
	if err != nil {
		return errors.WithMessage(err, "failed to install chocolatey")
	}

	return nil
}

func (pm *Chocolatey) Search(ctx context.Context, name string) ([]PackageInfo, error) {
	out, err := oscore.ExecCommandWithOutput(ctx, "choco", "search", name, "--exact", "--limit-output")
	if err != nil {
		return nil, errors.WithMessage(err, "failed to search chocolatey packages")
	}

	result := make([]PackageInfo, 0)
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Split(strings.TrimSpace(line), "|")
		if len(parts) < 2 {
			continue
		}

		result = append(result, PackageInfo{
			Name:    parts[0],
			Version: parts[1],
		})
	}

	return result, nil
}

func (pm *Chocolatey) Install(ctx context.Context, packs ...string) error {
	if !pm.IsAvailable() {
		return errors.New("chocolatey is not available")
	}

	for _, pack := range packs {
		log.Println("Installing", pack, "package via chocolatey")

		args := append([]string{"install", "--yes", "--no-progress"}, pack)
		err := oscore.ExecCommand(ctx, "choco", args...)
		if err != nil {
			return errors.WithMessagef(err, "failed to install package '%s'", pack)
		}
	}

	return nil
}

func (pm *Chocolatey) CheckForUpdates(ctx context.Context) error {
	if !pm.IsAvailable() {
		return errors.New("chocolatey is not available")
	}

	err := oscore.ExecCommand(ctx, "choco", "outdated", "--limit-output")
	if err != nil {
		// choco outdated exits non-zero when packages are outdated,
		// that is not a failure of the check itself.
		log.Println(errors.WithMessage(err, "choco outdated finished with error"))
	}

	return nil
}

func (pm *Chocolatey) Remove(ctx context.Context, packs ...string) error {
	if !pm.IsAvailable() {
		return errors.New("chocolatey is not available")
	}

	args := append([]string{"uninstall", "--yes"}, packs...)

	return oscore.ExecCommand(ctx, "choco", args...)
}
