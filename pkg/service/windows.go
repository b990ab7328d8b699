package service

import (
	"bufio"
	"bytes"
	"context"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/terrariactl/terrariactl/pkg/oscore"
)

type Windows struct{}

func NewWindows() *Windows {
	return &Windows{}
}

func (s *Windows) Start(ctx context.Context, serviceName string) error {
	svc, err := findService(ctx, serviceName)
	if err != nil {
		return NewNotFoundError(serviceName)
	}

	switch svc.State {
	case windowsServiceStateRunning:
		log.Printf("Service '%s' is already running\n", serviceName)

		return nil
	case windowsServiceStateStartPending:
		log.Printf("Service '%s' is starting\n", serviceName)

		return s.waitStatus(ctx, serviceName, windowsServiceStateRunning)
	default:
		err = oscore.ExecCommand(ctx, "sc", "start", serviceName)
	}
	if err != nil {
		return err
	}

	return s.waitStatus(ctx, serviceName, windowsServiceStateRunning)
}

func (s *Windows) Stop(ctx context.Context, serviceName string) error {
	svc, err := findService(ctx, serviceName)
	if err != nil {
		return NewNotFoundError(serviceName)
	}

	switch svc.State {
	case windowsServiceStateStopped:
		log.Printf("Service '%s' is already stopped\n", serviceName)

		return nil
	case windowsServiceStateStopPending:
		log.Printf("Service '%s' is stopping\n", serviceName)

		return s.waitStatus(ctx, serviceName, windowsServiceStateStopped)
	default:
		err = oscore.ExecCommand(ctx, "sc", "stop", serviceName)
	}
	if err != nil {
		return err
	}

	return s.waitStatus(ctx, serviceName, windowsServiceStateStopped)
}

func (s *Windows) Restart(ctx context.Context, serviceName string) error {
	err := s.Stop(ctx, serviceName)
	if err != nil && !errors.Is(err, ErrInactiveService) {
		log.Println(errors.WithMessage(err, "failed to stop service"))
	}

	return s.Start(ctx, serviceName)
}

func (s *Windows) Status(ctx context.Context, serviceName string) error {
	svc, err := findService(ctx, serviceName)
	if err != nil {
		return NewNotFoundError(serviceName)
	}

	if svc.State != windowsServiceStateRunning && svc.State != windowsServiceStateStartPending {
		return ErrInactiveService
	}

	return nil
}

func (s *Windows) waitStatus(ctx context.Context, serviceName string, status windowsServiceState) error {
	log.Println("Waiting for service status")

	t := time.NewTicker(5 * time.Second) //nolint:mnd
	defer t.Stop()

	checksAvailable := 15

	for checksAvailable > 0 {
		select {
		case <-t.C:
		case <-ctx.Done():
			return ctx.Err()
		}

		svc, err := findService(ctx, serviceName)
		if err != nil {
			return NewNotFoundError(serviceName)
		}

		if svc.State == status {
			return nil
		}

		if svc.State != windowsServiceStateStartPending &&
			svc.State != windowsServiceStateStopPending &&
			svc.State != windowsServiceStateContinuePending &&
			svc.State != windowsServiceStatePausePending {
			return errors.Errorf("failed to wait service status, current service state: %d", svc.State)
		}

		checksAvailable--
	}

	return errors.New("failed to wait service status")
}

func IsExists(ctx context.Context, serviceName string) bool {
	_, err := findService(ctx, serviceName)

	return err == nil
}

func findService(_ context.Context, serviceName string) (*windowsService, error) {
	cmd := exec.Command("sc", "queryex", "type=service", "state=all")
	buf := &bytes.Buffer{}
	buf.Grow(10240) //nolint:mnd
	cmd.Stdout = buf
	cmd.Stderr = log.Writer()
	log.Println('\n', cmd.String())

	err := cmd.Run()
	if err != nil {
		return nil, errors.WithMessage(err, "service query command failed")
	}

	services := parseScQueryex(buf.Bytes())

	for i := range services {
		if strings.EqualFold(services[i].ServiceName, serviceName) {
			return &services[i], nil
		}
	}

	return nil, NewNotFoundError(serviceName)
}

type windowsServiceState int

const (
	windowsServiceStateUnknown         windowsServiceState = 0
	windowsServiceStateStopped         windowsServiceState = 1
	windowsServiceStateStartPending    windowsServiceState = 2
	windowsServiceStateStopPending     windowsServiceState = 3
	windowsServiceStateRunning         windowsServiceState = 4
	windowsServiceStateContinuePending windowsServiceState = 5
	windowsServiceStatePausePending    windowsServiceState = 6
	windowsServiceStatePaused          windowsServiceState = 7
)

func parseWindowsServiceState(s string) windowsServiceState {
	if s == "" {
		return windowsServiceStateUnknown
	}

	result, err := strconv.Atoi(string(s[0]))
	if err != nil {
		log.Println("Failed to parse windows service state:", err)

		return windowsServiceStateUnknown
	}

	return windowsServiceState(result)
}

type windowsService struct {
	ServiceName string
	DisplayName string
	Type        string
	State       windowsServiceState
	PID         string
}

func parseScQueryex(buf []byte) []windowsService {
	scanner := bufio.NewScanner(bytes.NewReader(buf))
	services := make([]windowsService, 0)
	var s windowsService

	for scanner.Scan() {
		parts := strings.SplitN(scanner.Text(), ":", 2)
		if len(parts) < 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "SERVICE_NAME":
			s.ServiceName = value
		case "DISPLAY_NAME":
			s.DisplayName = value
		case "TYPE":
			s.Type = value
		case "STATE":
			s.State = parseWindowsServiceState(value)
		case "PID":
			s.PID = value
		case "FLAGS":
			services = append(services, s)
			s = windowsService{}
		}
	}

	return services
}
