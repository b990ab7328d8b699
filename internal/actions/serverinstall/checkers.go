package serverinstall

import (
	"context"
	"fmt"
	"strings"

	"github.com/terrariactl/terrariactl/pkg/osinfo"
	"github.com/terrariactl/terrariactl/pkg/utils"
)

func checkOS(ctx context.Context, state serverInstallState) (serverInstallState, error) {
	fmt.Println("Detected OS:", state.OSInfo.Distribution, state.OSInfo.DistributionVersion)

	if state.OSInfo.Distribution != osinfo.DistributionWindows {
		err := warning(ctx, state,
			"This server is usually provisioned on Windows Server. "+
				"Service registration, firewall rules and scheduled backups will be skipped on this OS.",
		)
		if err != nil {
			return state, err
		}
	}

	if state.Port != 0 && !utils.IsPortAvailable(state.Port) {
		err := warning(ctx, state,
			fmt.Sprintf("Port %d is already in use. The server may fail to start.", state.Port),
		)
		if err != nil {
			return state, err
		}
	}

	return state, nil
}

// isValidWorldName rejects names that would escape the worlds directory
// or break the generated config line.
func isValidWorldName(s string) bool {
	if s == "" {
		return false
	}

	return !strings.ContainsAny(s, `/\"'=`)
}
