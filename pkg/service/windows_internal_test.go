package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scQueryexOutput = `
SERVICE_NAME: terraria-server
DISPLAY_NAME: Terraria Dedicated Server
        TYPE               : 10  WIN32_OWN_PROCESS
        STATE              : 4  RUNNING
                                (STOPPABLE, NOT_PAUSABLE, ACCEPTS_SHUTDOWN)
        WIN32_EXIT_CODE    : 0  (0x0)
        SERVICE_EXIT_CODE  : 0  (0x0)
        CHECKPOINT         : 0x0
        WAIT_HINT          : 0x0
        PID                : 4092
        FLAGS              :

SERVICE_NAME: W32Time
DISPLAY_NAME: Windows Time
        TYPE               : 30  WIN32
        STATE              : 1  STOPPED
        WIN32_EXIT_CODE    : 1077  (0x435)
        SERVICE_EXIT_CODE  : 0  (0x0)
        CHECKPOINT         : 0x0
        WAIT_HINT          : 0x0
        PID                : 0
        FLAGS              :
`

func Test_parseScQueryex(t *testing.T) {
	services := parseScQueryex([]byte(scQueryexOutput))

	require.Len(t, services, 2)

	assert.Equal(t, "terraria-server", services[0].ServiceName)
	assert.Equal(t, "Terraria Dedicated Server", services[0].DisplayName)
	assert.Equal(t, windowsServiceStateRunning, services[0].State)
	assert.Equal(t, "4092", services[0].PID)

	assert.Equal(t, "W32Time", services[1].ServiceName)
	assert.Equal(t, windowsServiceStateStopped, services[1].State)
}

func Test_parseWindowsServiceState(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  windowsServiceState
	}{
		{
			name:  "running",
			value: "4  RUNNING",
			want:  windowsServiceStateRunning,
		},
		{
			name:  "stopped",
			value: "1  STOPPED",
			want:  windowsServiceStateStopped,
		},
		{
			name:  "empty",
			value: "",
			want:  windowsServiceStateUnknown,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, parseWindowsServiceState(test.value))
		})
	}
}
