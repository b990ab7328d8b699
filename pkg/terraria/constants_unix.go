//go:build !windows
// +build !windows

package terraria

const ServerExecutableName = "TerrariaServer.bin.x86_64"

const DefaultWorkPath = "/srv/terraria"
const DefaultInstallPath = "/srv/terraria/server"
const DefaultSteamCMDPath = "/srv/terraria/steamcmd"
const DefaultToolsPath = "/srv/terraria/tools"
const DefaultWorldsPath = "/srv/terraria/worlds"
const DefaultBackupsPath = "/srv/terraria/backups"
const DefaultConfigFilePath = "/srv/terraria/server/serverconfig.txt"
