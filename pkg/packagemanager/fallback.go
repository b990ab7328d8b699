package packagemanager

import (
	"context"

	"go.uber.org/multierr"
)

// FallbackPackageManager tries managers in order and aggregates their
// failures. The first manager that succeeds wins.
type FallbackPackageManager struct {
	managers []PackageManager
}

func NewFallbackPackageManager(managers ...PackageManager) *FallbackPackageManager {
	return &FallbackPackageManager{managers: managers}
}

func (pm *FallbackPackageManager) Search(ctx context.Context, name string) ([]PackageInfo, error) {
	var err error

	for _, m := range pm.managers {
		result, serr := m.Search(ctx, name)
		if serr == nil && len(result) > 0 {
			return result, nil
		}

		err = multierr.Append(err, serr)
	}

	return nil, err
}

func (pm *FallbackPackageManager) Install(ctx context.Context, packs ...string) error {
	var err error

	for _, m := range pm.managers {
		ierr := m.Install(ctx, packs...)
		if ierr == nil {
			return nil
		}

		err = multierr.Append(err, ierr)
	}

	return err
}

func (pm *FallbackPackageManager) CheckForUpdates(ctx context.Context) error {
	var err error

	for _, m := range pm.managers {
		cerr := m.CheckForUpdates(ctx)
		if cerr == nil {
			return nil
		}

		err = multierr.Append(err, cerr)
	}

	return err
}

func (pm *FallbackPackageManager) Remove(ctx context.Context, packs ...string) error {
	var err error

	for _, m := range pm.managers {
		rerr := m.Remove(ctx, packs...)
		if rerr == nil {
			return nil
		}

		err = multierr.Append(err, rerr)
	}

	return err
}
