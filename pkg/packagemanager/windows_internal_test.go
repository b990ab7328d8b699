package packagemanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terrariactl/terrariactl/pkg/osinfo"
)

func Test_loadRepositoryPackages(t *testing.T) {
	info := osinfo.Info{
		Distribution: osinfo.DistributionWindows,
		Platform:     "amd64",
	}

	packages, err := loadRepositoryPackages(info)

	require.NoError(t, err)
	require.Contains(t, packages, WinSWPackage)
	require.Contains(t, packages, SteamCMDPackage)
	require.Contains(t, packages, VCRedistPackage)
	require.Contains(t, packages, DotNetPackage)

	winsw := packages[WinSWPackage]
	assert.Equal(t, "C:\\terraria\\tools\\winsw", winsw.InstallPath)
	assert.NotEmpty(t, winsw.DownloadURLs)
	// {{package_install_path}} placeholders are resolved on load.
	assert.Equal(t, []string{"C:\\terraria\\tools\\winsw"}, winsw.PathEnv)
}

func Test_replaceValuesInPackage(t *testing.T) {
	pkg := repositoryPackage{
		Name:        "example",
		InstallPath: "C:\\tools\\example",
		DownloadURLs: []string{
			"https://example.com/download/{{architecture}}/example.zip",
		},
		PathEnv: []string{"{{package_install_path}}"},
	}

	result := replaceValuesInPackage(pkg, osinfo.Info{Platform: "amd64"})

	assert.Equal(t, []string{"https://example.com/download/amd64/example.zip"}, result.DownloadURLs)
	assert.Equal(t, []string{"C:\\tools\\example"}, result.PathEnv)
}
