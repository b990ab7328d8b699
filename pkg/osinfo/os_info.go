package osinfo

import (
	"os"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/matishsiao/goInfo"
	"github.com/pkg/errors"
)

const DistributionWindows = "windows"

type Info struct {
	Kernel              string
	Core                string
	Distribution        string
	DistributionVersion string
	Platform            string
	OS                  string
	Hostname            string
	CPUs                int
}

func (i Info) String() string {
	b := strings.Builder{}
	b.Grow(256) //nolint:mnd

	b.WriteString("Kernel: ")
	b.WriteString(i.Kernel)
	b.WriteString("\nCore: ")
	b.WriteString(i.Core)
	b.WriteString("\nDistribution: ")
	b.WriteString(i.Distribution)
	b.WriteString("\nDistributionVersion: ")
	b.WriteString(i.DistributionVersion)
	b.WriteString("\nPlatform: ")
	b.WriteString(i.Platform)
	b.WriteString("\nOS: ")
	b.WriteString(i.OS)
	b.WriteString("\nHostname: ")
	b.WriteString(i.Hostname)
	b.WriteString("\nCPUs: ")
	b.WriteString(strconv.Itoa(i.CPUs))

	return b.String()
}

func GetOSInfo() (Info, error) {
	gi, err := goInfo.GetInfo()
	if err != nil {
		return Info{}, err
	}

	result := Info{
		Kernel:   gi.Kernel,
		Core:     gi.Core,
		Platform: gi.Platform,
		OS:       gi.OS,
		Hostname: gi.Hostname,
		CPUs:     gi.CPUs,
	}

	if result.Platform == "" || result.Platform == "unknown" {
		result.Platform = runtime.GOARCH
	}

	switch result.Platform {
	case "x86_64":
		result.Platform = "amd64"
	case "i686", "i386":
		result.Platform = "386"
	case "aarch64":
		result.Platform = "arm64"
	}

	switch {
	case runtime.GOOS == "windows":
		result.Distribution = DistributionWindows
		result.DistributionVersion = windowsVersion(gi.Core)
	case gi.OS == "GNU/Linux":
		name, version, err := detectLinuxDist()
		if err != nil {
			return result, err
		}
		result.Distribution = name
		result.DistributionVersion = version
	default:
		result.Distribution = strings.ToLower(gi.OS)
		result.DistributionVersion = gi.Kernel
	}

	return result, nil
}

func detectLinuxDist() (string, string, error) {
	const etcOsRelease = "/etc/os-release"

	data, err := os.ReadFile(etcOsRelease)
	if err != nil {
		return "", "", errors.WithMessage(err, "failed to read os-release")
	}

	name := strings.Trim(extractField(data, "ID"), "\"")
	version := strings.Trim(extractField(data, "VERSION_ID"), "\"")

	if name == "" {
		return "", "", errors.New("unknown operating system")
	}

	return strings.ToLower(name), version, nil
}

func extractField(data []byte, key string) string {
	regex := regexp.MustCompile(`(?m)^` + key + `=([^\s]+)`)
	matches := regex.FindStringSubmatch(string(data))
	if len(matches) == 2 {
		return matches[1]
	}

	return ""
}
