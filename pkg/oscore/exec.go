// Package oscore shells out to system tools (sc, netsh, schtasks, choco)
// with their output redirected into the log file, and looks up running
// processes.
package oscore

import (
	"bytes"
	"context"
	"log"
	"os/exec"

	"github.com/pkg/errors"
)

// ExecCommand runs command with stdout and stderr captured in the log.
func ExecCommand(ctx context.Context, command string, args ...string) error {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdout = log.Writer()
	cmd.Stderr = log.Writer()

	log.Println("running:", cmd.String())

	return cmd.Run()
}

// ExecCommandWithOutput runs command and returns its stdout for parsing.
// Stderr still goes to the log.
func ExecCommandWithOutput(ctx context.Context, command string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, command, args...)

	out := &bytes.Buffer{}
	cmd.Stdout = out
	cmd.Stderr = log.Writer()

	log.Println("running:", cmd.String())

	err := cmd.Run()
	if err != nil {
		return "", errors.Wrapf(err, "failed to run command %s", command)
	}

	return out.String(), nil
}
