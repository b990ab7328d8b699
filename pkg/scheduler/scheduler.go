// Package scheduler registers Windows scheduled tasks through schtasks.
package scheduler

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"github.com/terrariactl/terrariactl/pkg/oscore"
)

var ErrUnsupportedOS = errors.New("scheduled tasks are only managed on Windows")

type DailyTask struct {
	Name      string
	Command   string
	StartTime string // HH:MM
}

// EnsureDaily registers a daily task running as SYSTEM. An existing task
// with the same name is left untouched.
func EnsureDaily(ctx context.Context, task DailyTask) error {
	if runtime.GOOS != "windows" {
		return ErrUnsupportedOS
	}

	if Exists(ctx, task.Name) {
		return nil
	}

	err := oscore.ExecCommand(
		ctx,
		"schtasks", "/Create", "/F",
		"/SC", "DAILY",
		"/ST", task.StartTime,
		"/TN", task.Name,
		"/TR", task.Command,
		"/RU", "SYSTEM",
	)
	if err != nil {
		return errors.WithMessagef(err, "failed to create scheduled task %s", task.Name)
	}

	return nil
}

func Exists(ctx context.Context, name string) bool {
	_, err := oscore.ExecCommandWithOutput(ctx, "schtasks", "/Query", "/TN", name)

	return err == nil
}

func Delete(ctx context.Context, name string) error {
	if runtime.GOOS != "windows" {
		return ErrUnsupportedOS
	}

	err := oscore.ExecCommand(ctx, "schtasks", "/Delete", "/F", "/TN", name)
	if err != nil {
		return errors.WithMessagef(err, "failed to delete scheduled task %s", name)
	}

	return nil
}
