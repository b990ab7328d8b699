package serverinstall

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	contextInternal "github.com/terrariactl/terrariactl/internal/context"
	"github.com/terrariactl/terrariactl/internal/pkg/terrariactl"
	"github.com/terrariactl/terrariactl/pkg/firewall"
	"github.com/terrariactl/terrariactl/pkg/osinfo"
	"github.com/terrariactl/terrariactl/pkg/packagemanager"
	"github.com/terrariactl/terrariactl/pkg/scheduler"
	"github.com/terrariactl/terrariactl/pkg/serverconfig"
	"github.com/terrariactl/terrariactl/pkg/service"
	"github.com/terrariactl/terrariactl/pkg/steamcmd"
	"github.com/terrariactl/terrariactl/pkg/terraria"
	"github.com/urfave/cli/v2"
)

type serverInstallState struct {
	OSInfo osinfo.Info

	InstallPath string
	WorldsPath  string
	BackupsPath string
	ConfigPath  string

	WorldName  string
	Port       int
	MaxPlayers int
	Password   string

	Autostart  bool
	BackupTask bool

	NonInteractive bool
	SkipWarnings   bool
}

//nolint:funlen
func Handle(cliCtx *cli.Context) error {
	ctx := cliCtx.Context

	fmt.Println("Install Terraria dedicated server")

	state := serverInstallState{
		OSInfo:         contextInternal.OSInfoFromContext(ctx),
		InstallPath:    lo.CoalesceOrEmpty(cliCtx.String("path"), terraria.DefaultInstallPath),
		WorldsPath:     terraria.DefaultWorldsPath,
		BackupsPath:    terraria.DefaultBackupsPath,
		WorldName:      cliCtx.String("world-name"),
		Port:           cliCtx.Int("port"),
		MaxPlayers:     cliCtx.Int("max-players"),
		NonInteractive: cliCtx.Bool("non-interactive"),
		SkipWarnings:   cliCtx.Bool("skip-warnings"),
	}
	state.ConfigPath = filepath.Join(state.InstallPath, "serverconfig.txt")

	state, err := checkOS(ctx, state)
	if err != nil {
		return err
	}

	state, err = installPrerequisites(ctx, state)
	if err != nil {
		return errors.WithMessage(err, "failed to install prerequisites")
	}

	fmt.Println("Installing server files ...")
	state, err = installServerFiles(ctx, state)
	if err != nil {
		return errors.WithMessage(err, "failed to install server files")
	}

	state, err = askParams(ctx, state)
	if err != nil {
		return err
	}

	fmt.Println("Writing server config ...")
	state, err = writeServerConfig(ctx, state)
	if err != nil {
		return errors.WithMessage(err, "failed to write server config")
	}

	fmt.Println("Configuring firewall ...")
	state, err = setFirewallRules(ctx, state)
	if err != nil {
		return errors.WithMessage(err, "failed to set firewall rules")
	}

	if state.Autostart {
		fmt.Println("Registering server service ...")
		state, err = registerService(ctx, state)
		if err != nil {
			return errors.WithMessage(err, "failed to register service")
		}
	}

	if state.BackupTask {
		fmt.Println("Registering backup task ...")
		state, err = registerBackupTask(ctx, state)
		if err != nil {
			return errors.WithMessage(err, "failed to register backup task")
		}
	} else {
		state, err = removeBackupTask(ctx, state)
		if err != nil {
			return errors.WithMessage(err, "failed to remove backup task")
		}
	}

	err = terrariactl.SaveServerInstallState(ctx, terrariactl.ServerInstallState{
		Version:     terraria.Version,
		InstallPath: state.InstallPath,
		ConfigPath:  state.ConfigPath,
		WorldsPath:  state.WorldsPath,
		BackupsPath: state.BackupsPath,
		WorldName:   state.WorldName,
		Port:        state.Port,
		MaxPlayers:  state.MaxPlayers,
		Autostart:   state.Autostart,
		BackupTask:  state.BackupTask,
	})
	if err != nil {
		return errors.WithMessage(err, "failed to save install state")
	}

	printSummary(state)

	return nil
}

func installPrerequisites(ctx context.Context, state serverInstallState) (serverInstallState, error) {
	if state.OSInfo.Distribution != osinfo.DistributionWindows {
		fmt.Println("Skipping package installation, unsupported package manager")

		return state, nil
	}

	fmt.Println("Checking for chocolatey ...")
	choco := packagemanager.NewChocolatey()
	if !choco.IsAvailable() {
		fmt.Println("Installing chocolatey ...")
		err := choco.Bootstrap(ctx)
		if err != nil {
			return state, errors.WithMessage(err, "failed to bootstrap chocolatey")
		}
	}

	pm, err := packagemanager.Load(ctx)
	if err != nil {
		return state, errors.WithMessage(err, "failed to load package manager")
	}

	fmt.Println("Checking for updates ...")
	if err = pm.CheckForUpdates(ctx); err != nil {
		return state, errors.WithMessage(err, "failed to check for updates")
	}

	fmt.Println("Installing runtimes ...")
	err = pm.Install(ctx, packagemanager.VCRedistPackage, packagemanager.DotNetPackage)
	if err != nil {
		return state, errors.WithMessage(err, "failed to install runtimes")
	}

	fmt.Println("Installing winsw and steamcmd ...")
	err = pm.Install(ctx, packagemanager.WinSWPackage, packagemanager.SteamCMDPackage)
	if err != nil {
		return state, errors.WithMessage(err, "failed to install winsw and steamcmd")
	}

	return state, nil
}

func installServerFiles(ctx context.Context, state serverInstallState) (serverInstallState, error) {
	fmt.Println("Checking for steamcmd ...")
	scmd, err := steamcmd.Ensure(ctx, terraria.DefaultSteamCMDPath)
	if err != nil {
		return state, errors.WithMessage(err, "failed to ensure steamcmd")
	}

	err = os.MkdirAll(state.InstallPath, 0755)
	if err != nil {
		return state, errors.WithMessage(err, "failed to create install directory")
	}

	err = scmd.AppUpdate(ctx, state.InstallPath, terraria.SteamAppID)
	if err != nil {
		return state, errors.WithMessage(err, "failed to run steamcmd")
	}

	return state, nil
}

func writeServerConfig(ctx context.Context, state serverInstallState) (serverInstallState, error) {
	err := os.MkdirAll(state.WorldsPath, 0755)
	if err != nil {
		return state, errors.WithMessage(err, "failed to create worlds directory")
	}

	cfg := serverconfig.New().
		Set("world", filepath.Join(state.WorldsPath, state.WorldName+".wld")).
		Set("autocreate", "2").
		Set("worldname", state.WorldName).
		Set("worldpath", state.WorldsPath).
		Set("port", strconv.Itoa(state.Port)).
		Set("maxplayers", strconv.Itoa(state.MaxPlayers)).
		Set("password", state.Password).
		Set("npcstream", "60").
		Set("priority", "1")

	err = cfg.UpdateFile(ctx, state.ConfigPath)
	if err != nil {
		return state, err
	}

	return state, nil
}

func setFirewallRules(ctx context.Context, state serverInstallState) (serverInstallState, error) {
	if state.OSInfo.Distribution != osinfo.DistributionWindows {
		fmt.Println("Skipping firewall configuration")

		return state, nil
	}

	err := firewall.EnsureRule(ctx, firewall.Rule{
		Name:     terraria.FirewallRuleName,
		Protocol: "TCP",
		Port:     state.Port,
	})
	if err != nil {
		return state, err
	}

	return state, nil
}

func registerService(ctx context.Context, state serverInstallState) (serverInstallState, error) {
	if state.OSInfo.Distribution != osinfo.DistributionWindows {
		fmt.Println("Skipping service registration")

		return state, nil
	}

	err := service.InstallWinSW(ctx, filepath.Join(terraria.DefaultToolsPath, "services"), service.WinSWConfig{
		ID:               terraria.ServiceName,
		Name:             "Terraria Dedicated Server",
		Description:      "Terraria dedicated server managed by terrariactl",
		Executable:       filepath.Join(state.InstallPath, terraria.ServerExecutableName),
		Arguments:        "-config " + state.ConfigPath,
		WorkingDirectory: state.InstallPath,
		StartMode:        "Automatic",
	})
	if err != nil {
		return state, err
	}

	err = service.Start(ctx, terraria.ServiceName)
	if err != nil {
		return state, errors.WithMessage(err, "failed to start service")
	}

	return state, nil
}

func registerBackupTask(ctx context.Context, state serverInstallState) (serverInstallState, error) {
	if state.OSInfo.Distribution != osinfo.DistributionWindows {
		fmt.Println("Skipping backup task registration")

		return state, nil
	}

	executable, err := os.Executable()
	if err != nil {
		return state, errors.WithMessage(err, "failed to get executable path")
	}

	err = scheduler.EnsureDaily(ctx, scheduler.DailyTask{
		Name:      terraria.BackupTaskName,
		Command:   executable + " server backup",
		StartTime: "03:00",
	})
	if err != nil {
		return state, err
	}

	return state, nil
}

// removeBackupTask drops a task left over from an earlier install when
// the operator declined scheduled backups this time.
func removeBackupTask(ctx context.Context, state serverInstallState) (serverInstallState, error) {
	if state.OSInfo.Distribution != osinfo.DistributionWindows {
		return state, nil
	}

	if !scheduler.Exists(ctx, terraria.BackupTaskName) {
		return state, nil
	}

	fmt.Println("Removing backup task ...")
	err := scheduler.Delete(ctx, terraria.BackupTaskName)
	if err != nil {
		return state, err
	}

	return state, nil
}

func printSummary(state serverInstallState) {
	fmt.Println()
	fmt.Println("---------------------------------")
	fmt.Println("Server installed successfully")
	fmt.Println("Install path:", state.InstallPath)
	fmt.Println("Config file:", state.ConfigPath)
	fmt.Println("World:", state.WorldName)
	fmt.Println("Port:", state.Port)
	fmt.Println("Max players:", state.MaxPlayers)
	if state.Password != "" {
		fmt.Println("Password:", state.Password)
	}
	fmt.Println("---------------------------------")
}
