package service

import (
	"context"
	"log"
	"os/exec"
	"sync"

	contextInternal "github.com/terrariactl/terrariactl/internal/context"
	"github.com/terrariactl/terrariactl/pkg/osinfo"
)

var (
	once    = sync.Once{}
	service Service
)

type Service interface {
	Start(ctx context.Context, serviceName string) error
	Stop(ctx context.Context, serviceName string) error
	Restart(ctx context.Context, serviceName string) error
	Status(ctx context.Context, serviceName string) error
}

func Start(ctx context.Context, serviceName string) error {
	s, err := Load(ctx)
	if err != nil {
		return err
	}

	return s.Start(ctx, serviceName)
}

func Stop(ctx context.Context, serviceName string) error {
	s, err := Load(ctx)
	if err != nil {
		return err
	}

	return s.Stop(ctx, serviceName)
}

func Restart(ctx context.Context, serviceName string) error {
	s, err := Load(ctx)
	if err != nil {
		return err
	}

	return s.Restart(ctx, serviceName)
}

func Status(ctx context.Context, serviceName string) error {
	s, err := Load(ctx)
	if err != nil {
		return err
	}

	return s.Status(ctx, serviceName)
}

// Load picks the implementation for the OS recorded in the context.
// The Windows implementation deliberately carries no build tag: it is
// plain exec code, and keeping it untagged lets the sc output parser
// tests run on any OS.
//
//nolint:ireturn,nolintlint
func Load(ctx context.Context) (Service, error) {
	info := contextInternal.OSInfoFromContext(ctx)

	once.Do(func() {
		if info.Distribution == osinfo.DistributionWindows {
			service = NewWindows()

			return
		}

		if _, err := exec.LookPath("systemctl"); err == nil {
			service = NewSystemd()

			return
		}

		if _, err := exec.LookPath("service"); err == nil {
			service = NewBasic()

			return
		}
	})

	if service == nil {
		return nil, NewErrUnsupportedDistribution(info.Distribution)
	}

	return service, nil
}

type Systemd struct{}

func NewSystemd() *Systemd {
	return &Systemd{}
}

func (s *Systemd) Start(_ context.Context, serviceName string) error {
	return run("systemctl", "start", serviceName)
}

func (s *Systemd) Stop(_ context.Context, serviceName string) error {
	return run("systemctl", "stop", serviceName)
}

func (s *Systemd) Restart(_ context.Context, serviceName string) error {
	return run("systemctl", "restart", serviceName)
}

func (s *Systemd) Status(_ context.Context, serviceName string) error {
	return run("systemctl", "--no-pager", "status", serviceName)
}

type Basic struct{}

func NewBasic() *Basic {
	return &Basic{}
}

func (s *Basic) Start(_ context.Context, serviceName string) error {
	return run("service", serviceName, "start")
}

func (s *Basic) Stop(_ context.Context, serviceName string) error {
	return run("service", serviceName, "stop")
}

func (s *Basic) Restart(_ context.Context, serviceName string) error {
	return run("service", serviceName, "restart")
}

func (s *Basic) Status(_ context.Context, serviceName string) error {
	return run("service", serviceName, "status")
}

func run(command string, args ...string) error {
	cmd := exec.Command(command, args...)
	cmd.Stderr = log.Writer()
	cmd.Stdout = log.Writer()
	log.Println('\n', cmd.String())

	return cmd.Run()
}
