package oscore

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProcessByName(t *testing.T) {
	executable, err := os.Executable()
	require.NoError(t, err)

	p, err := FindProcessByName(context.Background(), filepath.Base(executable))

	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestFindProcessByName_absent(t *testing.T) {
	p, err := FindProcessByName(context.Background(), "no-such-process-name.exe")

	require.NoError(t, err)
	assert.Nil(t, p)
}

// TestSleeperProcess is not a test, it is the child process body for
// TestTerminateAndKillProcess.
func TestSleeperProcess(t *testing.T) {
	if os.Getenv("TERRARIACTL_TEST_SLEEPER") != "1" {
		t.Skip()
	}

	time.Sleep(time.Minute)
}

func TestTerminateAndKillProcess(t *testing.T) {
	executable, err := os.Executable()
	require.NoError(t, err)

	cmd := exec.Command(executable, "-test.run=^TestSleeperProcess$")
	cmd.Env = append(os.Environ(), "TERRARIACTL_TEST_SLEEPER=1")
	require.NoError(t, cmd.Start())

	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	p, err := process.NewProcess(int32(cmd.Process.Pid))
	require.NoError(t, err)

	err = TerminateAndKillProcess(context.Background(), p)
	require.NoError(t, err)

	select {
	case <-exited:
	case <-time.After(10 * time.Second):
		t.Fatal("child process did not exit")
	}
}
