package utils

import (
	"context"

	"github.com/hashicorp/go-getter"
)

// Download fetches a file or archive. Archives are unpacked into dst.
func Download(ctx context.Context, source string, dst string) error {
	c := getter.Client{
		Ctx:  ctx,
		Src:  source,
		Dst:  dst,
		Mode: getter.ClientModeAny,
	}

	return c.Get()
}

// DownloadFile fetches a single file to dst without unpacking.
func DownloadFile(ctx context.Context, source string, dst string) error {
	c := getter.Client{
		Ctx:  ctx,
		Src:  source,
		Dst:  dst,
		Mode: getter.ClientModeFile,
	}

	return c.Get()
}
