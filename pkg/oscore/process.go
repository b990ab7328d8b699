package oscore

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
)

const defaultTerminateWaitTimeout = 30 * time.Second

func FindProcessByName(ctx context.Context, processName string) (*process.Process, error) {
	processes, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to load all processes")
	}

	for _, p := range processes {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}

		if name == processName {
			return p, nil
		}
	}

	return nil, nil //nolint:nilnil
}

// TerminateAndKillProcess asks the process to terminate and kills it when
// it is still alive after the wait timeout.
func TerminateAndKillProcess(ctx context.Context, p *process.Process) error {
	err := p.TerminateWithContext(ctx)
	if err != nil {
		return errors.WithMessage(err, "failed to terminate process")
	}

	deadline := time.Now().Add(defaultTerminateWaitTimeout)
	for time.Now().Before(deadline) {
		running, err := p.IsRunningWithContext(ctx)
		if err != nil || !running {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}

	log.Println("Process did not stop in time, killing")

	return p.KillWithContext(ctx)
}
