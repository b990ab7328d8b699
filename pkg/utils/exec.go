package utils

import (
	"os"
	"os/exec"
)

// ExecCommand runs a command with output attached to the operator terminal.
func ExecCommand(command string, args ...string) error {
	cmd := exec.Command(command, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
