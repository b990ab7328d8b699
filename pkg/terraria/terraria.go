package terraria

// Version is set at build time via ldflags.
var Version = "develop"

const (
	// SteamAppID is the Steam application id of the Terraria dedicated server.
	SteamAppID = "105600"

	ServiceName = "terraria-server"

	FirewallRuleName = "Terraria_Server"

	BackupTaskName = "TerrariaServerBackup"

	DefaultPort = 7777

	DefaultMaxPlayers = 8
)
