//go:build windows
// +build windows

package terraria

const ServerExecutableName = "TerrariaServer.exe"

const DefaultWorkPath = "C:\\terraria"
const DefaultInstallPath = "C:\\terraria\\server"
const DefaultSteamCMDPath = "C:\\terraria\\steamcmd"
const DefaultToolsPath = "C:\\terraria\\tools"
const DefaultWorldsPath = "C:\\terraria\\worlds"
const DefaultBackupsPath = "C:\\terraria\\backups"
const DefaultConfigFilePath = "C:\\terraria\\server\\serverconfig.txt"
