//go:build windows
// +build windows

package osinfo

import (
	"log"

	"golang.org/x/sys/windows/registry"
)

// windowsVersion reads the marketing name and build from the registry.
// Falls back to the kernel version reported by the OS probe.
func windowsVersion(fallback string) string {
	key, err := registry.OpenKey(
		registry.LOCAL_MACHINE,
		`SOFTWARE\Microsoft\Windows NT\CurrentVersion`,
		registry.QUERY_VALUE,
	)
	if err != nil {
		log.Println("Failed to open CurrentVersion registry key:", err)

		return fallback
	}
	defer func() {
		err := key.Close()
		if err != nil {
			log.Println(err)
		}
	}()

	productName, _, err := key.GetStringValue("ProductName")
	if err != nil {
		return fallback
	}

	build, _, err := key.GetStringValue("CurrentBuildNumber")
	if err != nil {
		return productName
	}

	return productName + " (build " + build + ")"
}
