package app

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/terrariactl/terrariactl/internal/actions/selfupdate"
	"github.com/terrariactl/terrariactl/internal/actions/serverbackup"
	"github.com/terrariactl/terrariactl/internal/actions/servercontrol"
	"github.com/terrariactl/terrariactl/internal/actions/serverinstall"
	"github.com/terrariactl/terrariactl/internal/actions/serverupdate"
	contextInternal "github.com/terrariactl/terrariactl/internal/context"
	"github.com/terrariactl/terrariactl/pkg/terraria"
	"github.com/urfave/cli/v2"
)

//nolint:funlen
func Run(args []string) {
	logpath, err := initLogFile()
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}

	app := &cli.App{
		Name:    "terrariactl",
		Usage:   "Terraria Dedicated Server Control",
		Version: terraria.Version,
		Before: func(context *cli.Context) error {
			var err error
			context.Context, err = contextInternal.SetOSContext(context.Context)
			if err != nil {
				return err
			}

			return nil
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "non-interactive",
				Value: false,
			},
		},
		Commands: []*cli.Command{
			{
				Name:        "server",
				Aliases:     []string{"s"},
				Description: "Server actions",
				Usage:       "Server actions",
				Subcommands: []*cli.Command{
					{
						Name:        "install",
						Aliases:     []string{"i"},
						Description: "Install Terraria dedicated server",
						Usage:       "Install Terraria dedicated server",
						Action:      serverinstall.Handle,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name: "path",
							},
							&cli.StringFlag{
								Name: "world-name",
							},
							&cli.IntFlag{
								Name: "port",
							},
							&cli.IntFlag{
								Name: "max-players",
							},
							&cli.BoolFlag{
								Name: "skip-warnings",
							},
						},
					},
					{
						Name:        "update",
						Aliases:     []string{"upgrade", "u"},
						Description: "Update server files to the latest version",
						Usage:       "Update server files to the latest version",
						Action:      serverupdate.Handle,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "path",
								Usage: "Directory to search for the server executable in",
							},
						},
					},
					{
						Name:        "start",
						Description: "Start server",
						Usage:       "Start server",
						Action:      servercontrol.Start,
					},
					{
						Name:        "stop",
						Description: "Stop server",
						Usage:       "Stop server",
						Action:      servercontrol.Stop,
					},
					{
						Name:        "restart",
						Aliases:     []string{"r"},
						Description: "Restart server",
						Usage:       "Restart server",
						Action:      servercontrol.Restart,
					},
					{
						Name:        "status",
						Description: "Server status",
						Usage:       "Server status",
						Action:      servercontrol.Status,
					},
					{
						Name:        "backup",
						Aliases:     []string{"b"},
						Description: "Backup worlds and server config",
						Usage:       "Backup worlds and server config",
						Action:      serverbackup.Handle,
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "keep",
								Usage: "Number of backups to keep",
								Value: 10,
							},
						},
					},
				},
			},
			{
				Name:        "self-update",
				Description: "Update terrariactl to new version",
				Usage:       "Update terrariactl to new version",
				Action:      selfupdate.Handle,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name: "force",
					},
				},
			},
		},
	}

	err = app.Run(args)
	if err != nil {
		fmt.Println(err)
		fmt.Println("See details in log file:", logpath)
		log.Fatal(err)
	}
}

func initLogFile() (string, error) {
	dir := logDir()

	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", errors.WithMessage(err, "failed to create log directory")
	}

	logname := fmt.Sprintf("%s.log", time.Now().Format("2006-01-02_15-04-05"))
	logpath := filepath.Join(dir, logname)

	logFile, err := os.OpenFile(logpath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return "", err
	}

	log.SetOutput(logFile)

	return logpath, nil
}

func logDir() string {
	if runtime.GOOS == "windows" {
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "terrariactl", "logs")
		}
	}

	return "/var/log/terrariactl"
}
