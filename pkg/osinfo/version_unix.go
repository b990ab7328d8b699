//go:build !windows
// +build !windows

package osinfo

func windowsVersion(fallback string) string {
	return fallback
}
