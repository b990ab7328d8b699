package serverupdate

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/terrariactl/terrariactl/internal/pkg/terrariactl"
	"github.com/terrariactl/terrariactl/pkg/errlog"
	"github.com/terrariactl/terrariactl/pkg/resolver"
	"github.com/terrariactl/terrariactl/pkg/steamcmd"
	"github.com/terrariactl/terrariactl/pkg/terraria"
	"github.com/terrariactl/terrariactl/pkg/utils"
	"github.com/urfave/cli/v2"
)

// Handle updates the server files. The installation is located by searching
// for the server executable under an operator-supplied directory, the
// directory containing it is passed to SteamCMD. The search is retried with
// a fresh prompt up to three times before giving up.
func Handle(cliCtx *cli.Context) error {
	ctx := cliCtx.Context

	fmt.Println("Update Terraria dedicated server")

	logPath, err := errlog.DefaultPath()
	if err != nil {
		return errors.WithMessage(err, "failed to resolve error log path")
	}

	scmd, err := steamcmd.Ensure(ctx, terraria.DefaultSteamCMDPath)
	if err != nil {
		return errors.WithMessage(err, "failed to ensure steamcmd")
	}

	r := &resolver.Resolver{
		Target: terraria.ServerExecutableName,
		Prompt: prompt(cliCtx),
		Search: resolver.SearchTree,
		Update: func(ctx context.Context, installDir string) error {
			fmt.Println("Updating server files in", installDir, "...")

			return scmd.AppUpdate(ctx, installDir, terraria.SteamAppID)
		},
		Log: errlog.New(logPath),
	}

	installDir, err := r.Run(ctx)
	if errors.Is(err, resolver.ErrAttemptsExhausted) {
		fmt.Println("Failed to locate", terraria.ServerExecutableName, "after", resolver.DefaultMaxAttempts, "attempts.")
		fmt.Println("See details in log file:", logPath)

		return err
	}
	if err != nil {
		return err
	}

	fmt.Println("Server in", installDir, "updated successfully")

	return nil
}

// prompt solicits a search root on every attempt. With --non-interactive
// the answer is pinned to the --path flag or the recorded install path.
func prompt(cliCtx *cli.Context) func(ctx context.Context) (string, error) {
	if cliCtx.Bool("non-interactive") || cliCtx.String("path") != "" {
		return func(ctx context.Context) (string, error) {
			state, _ := terrariactl.LoadServerInstallState(ctx)

			root := lo.CoalesceOrEmpty(
				cliCtx.String("path"),
				state.InstallPath,
				terraria.DefaultInstallPath,
			)

			return root, nil
		}
	}

	question := fmt.Sprintf("Enter the directory to search for %s in: ", terraria.ServerExecutableName)

	return func(ctx context.Context) (string, error) {
		return utils.Ask(ctx, question, false, nil)
	}
}
