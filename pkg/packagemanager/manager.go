// Package packagemanager installs third-party tools and runtimes. On
// Windows it tries Chocolatey first and falls back to a built-in download
// repository. The package managers themselves stay external collaborators.
package packagemanager

import (
	"context"
	"sync"

	contextInternal "github.com/terrariactl/terrariactl/internal/context"
	"github.com/terrariactl/terrariactl/pkg/osinfo"
)

type PackageInfo struct {
	Name    string
	Version string
}

type PackageManager interface {
	Search(ctx context.Context, name string) ([]PackageInfo, error)
	Install(ctx context.Context, packs ...string) error
	CheckForUpdates(ctx context.Context) error
	Remove(ctx context.Context, packs ...string) error
}

var (
	once    = sync.Once{}
	manager PackageManager
	loadErr error
)

//nolint:ireturn,nolintlint
func Load(ctx context.Context) (PackageManager, error) {
	info := contextInternal.OSInfoFromContext(ctx)

	once.Do(func() {
		if info.Distribution != osinfo.DistributionWindows {
			loadErr = NewErrUnsupportedDistribution(info.Distribution)

			return
		}

		repo, err := NewWindowsRepository(info)
		if err != nil {
			loadErr = err

			return
		}

		manager = NewFallbackPackageManager(
			NewChocolatey(),
			repo,
		)
	})

	return manager, loadErr
}
