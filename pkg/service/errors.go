package service

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrInactiveService = errors.New("service is inactive")

type NotFoundError struct {
	serviceName string
}

func NewNotFoundError(serviceName string) NotFoundError {
	return NotFoundError{serviceName: serviceName}
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("service '%s' not found", e.serviceName)
}

type ErrUnsupportedDistribution struct {
	distribution string
}

func NewErrUnsupportedDistribution(distribution string) ErrUnsupportedDistribution {
	return ErrUnsupportedDistribution{distribution: distribution}
}

func (e ErrUnsupportedDistribution) Error() string {
	return fmt.Sprintf("unsupported distribution '%s'", e.distribution)
}
