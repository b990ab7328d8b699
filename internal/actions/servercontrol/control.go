package servercontrol

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/terrariactl/terrariactl/pkg/oscore"
	"github.com/terrariactl/terrariactl/pkg/service"
	"github.com/terrariactl/terrariactl/pkg/terraria"
	"github.com/urfave/cli/v2"
)

func Start(cliCtx *cli.Context) error {
	err := service.Start(cliCtx.Context, terraria.ServiceName)
	if err != nil {
		return errors.WithMessage(err, "failed to start server")
	}

	fmt.Println("Server started")

	return nil
}

func Stop(cliCtx *cli.Context) error {
	ctx := cliCtx.Context

	err := service.Stop(ctx, terraria.ServiceName)
	if err == nil {
		fmt.Println("Server stopped")

		return nil
	}

	// The service may not be registered, stop a bare server process instead.
	p, perr := oscore.FindProcessByName(ctx, terraria.ServerExecutableName)
	if perr == nil && p != nil {
		err := oscore.TerminateAndKillProcess(ctx, p)
		if err != nil {
			return errors.WithMessage(err, "failed to stop server process")
		}

		fmt.Println("Server process stopped (no service registered)")

		return nil
	}

	return errors.WithMessage(err, "failed to stop server")
}

func Restart(cliCtx *cli.Context) error {
	err := service.Restart(cliCtx.Context, terraria.ServiceName)
	if err != nil {
		return errors.WithMessage(err, "failed to restart server")
	}

	fmt.Println("Server restarted")

	return nil
}

func Status(cliCtx *cli.Context) error {
	ctx := cliCtx.Context

	err := service.Status(ctx, terraria.ServiceName)

	switch {
	case err == nil:
		fmt.Println("Server is running")

		return nil
	case errors.Is(err, service.ErrInactiveService):
		fmt.Println("Server is stopped")

		return nil
	}

	// The service may not be registered, fall back to a process lookup.
	p, perr := oscore.FindProcessByName(ctx, terraria.ServerExecutableName)
	if perr == nil && p != nil {
		fmt.Println("Server is running (no service registered)")

		return nil
	}

	return errors.WithMessage(err, "failed to get server status")
}
