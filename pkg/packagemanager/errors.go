package packagemanager

import "fmt"

type ErrUnsupportedDistribution struct {
	distribution string
}

func NewErrUnsupportedDistribution(distribution string) ErrUnsupportedDistribution {
	return ErrUnsupportedDistribution{distribution: distribution}
}

func (e ErrUnsupportedDistribution) Error() string {
	return fmt.Sprintf("unsupported distribution '%s'", e.distribution)
}

type ErrPackageNotFound struct {
	pack string
}

func NewErrPackageNotFound(pack string) ErrPackageNotFound {
	return ErrPackageNotFound{pack: pack}
}

func (e ErrPackageNotFound) Error() string {
	return fmt.Sprintf("package '%s' not found", e.pack)
}
