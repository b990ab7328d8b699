package packagemanager

const (
	WinSWPackage    = "winsw"
	SteamCMDPackage = "steamcmd"
	VCRedistPackage = "vcredist-all"
	DotNetPackage   = "dotnet-runtime"
)
