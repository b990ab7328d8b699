package serverinstall

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/terrariactl/terrariactl/pkg/strings"
	"github.com/terrariactl/terrariactl/pkg/terraria"
	"github.com/terrariactl/terrariactl/pkg/utils"
)

const generatedPasswordLength = 16

//nolint:funlen,gocognit
func askParams(ctx context.Context, state serverInstallState) (serverInstallState, error) {
	var err error

	if state.NonInteractive {
		return applyDefaults(state)
	}

	if state.WorldName == "" {
		state.WorldName, err = utils.Ask(
			ctx,
			"Enter world name (Example: MyWorld): ",
			true,
			func(s string) (bool, string, error) {
				if !isValidWorldName(s) {
					return false, "World name must not contain path separators or quotes.", nil
				}

				return true, "", nil
			},
		)
		if err != nil {
			return state, err
		}
	}

	if state.Port == 0 {
		port := ""
		port, err = utils.Ask(
			ctx,
			fmt.Sprintf("Enter server port (default %d): ", terraria.DefaultPort),
			true,
			func(s string) (bool, string, error) {
				if !utils.IsValidPort(s) {
					return false, "Please enter a port number between 1 and 65535.", nil
				}

				return true, "", nil
			},
		)
		if err != nil {
			return state, err
		}
		if port != "" {
			state.Port, _ = strconv.Atoi(port)
		}
	}

	if state.MaxPlayers == 0 {
		maxPlayers := ""
		maxPlayers, err = utils.Ask(
			ctx,
			fmt.Sprintf("Enter max players (default %d): ", terraria.DefaultMaxPlayers),
			true,
			func(s string) (bool, string, error) {
				n, err := strconv.Atoi(s)
				if err != nil || n < 1 || n > 255 {
					return false, "Please enter a number between 1 and 255.", nil
				}

				return true, "", nil
			},
		)
		if err != nil {
			return state, err
		}
		if maxPlayers != "" {
			state.MaxPlayers, _ = strconv.Atoi(maxPlayers)
		}
	}

	if state.Password == "" {
		state.Password, err = utils.AskPassword(
			ctx,
			"Enter server password (empty to generate a random one): ",
		)
		if err != nil {
			return state, err
		}
	}

	state.Autostart, err = askYesNo(ctx, "Register the server as an auto-starting service? (Y/n): ")
	if err != nil {
		return state, err
	}

	state.BackupTask, err = askYesNo(ctx, "Register a daily backup task? (Y/n): ")
	if err != nil {
		return state, err
	}

	return applyDefaults(state)
}

func askYesNo(ctx context.Context, question string) (bool, error) {
	answer, err := utils.Ask(ctx, question, true, func(s string) (bool, string, error) {
		if s == "y" || s == "Y" || s == "n" || s == "N" {
			return true, "", nil
		}

		return false, "Please answer y or n.", nil
	})
	if err != nil {
		return false, err
	}

	return answer == "" || answer == "y" || answer == "Y", nil
}

func applyDefaults(state serverInstallState) (serverInstallState, error) {
	if state.WorldName == "" {
		state.WorldName = "World"
	}
	if state.Port == 0 {
		state.Port = terraria.DefaultPort
	}
	if state.MaxPlayers == 0 {
		state.MaxPlayers = terraria.DefaultMaxPlayers
	}
	if state.NonInteractive {
		state.Autostart = true
		state.BackupTask = true
	}

	if state.Password == "" {
		password, err := strings.GeneratePassword(generatedPasswordLength)
		if err != nil {
			return state, errors.WithMessage(err, "failed to generate password")
		}
		state.Password = password
	}

	return state, nil
}

func warning(ctx context.Context, state serverInstallState, text string) error {
	fmt.Println()
	fmt.Println(text)

	if state.SkipWarnings {
		return nil
	}

	if state.NonInteractive {
		return errors.New("The installation cannot be continued. Please fix it or set the --skip-warnings flag")
	}

	_, err := utils.Ask(ctx, "Are you want to continue? (Y/n): ", false, func(s string) (bool, string, error) {
		if s == "y" || s == "Y" {
			return true, "", nil
		}
		if s == "n" || s == "N" {
			return true, "", errors.New("installation aborted by user")
		}

		return false, "Please answer y or n.", nil
	})

	return err
}
