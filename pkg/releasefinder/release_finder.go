package releasefinder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

type Release struct {
	URL string
	Tag string
}

type FailedToFindReleaseError struct {
	OS   string
	Arch string
}

func (e FailedToFindReleaseError) Error() string {
	return fmt.Sprintf("failed to find release for %s (arch: %s)", e.OS, e.Arch)
}

// Find returns the latest release asset matching "<tag>-<os>-<arch>" from a
// GitHub releases API endpoint.
func Find(ctx context.Context, api, goos, arch string) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, api, nil)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create request")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to get releases")
	}
	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			log.Println(err)
		}
	}(resp.Body)

	return findRelease(resp.Body, goos, arch)
}

type release struct {
	TagName string  `json:"tag_name"` //nolint:tagliatelle
	Assets  []asset `json:"assets"`
}

type asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"` //nolint:tagliatelle
}

func findRelease(reader io.Reader, goos string, arch string) (*Release, error) {
	r := []release{}
	err := json.NewDecoder(reader).Decode(&r)
	if err != nil {
		return nil, err
	}

	for _, rel := range r {
		for _, a := range rel.Assets {
			if strings.Contains(a.Name, rel.TagName+"-"+goos+"-"+arch) {
				return &Release{
					URL: a.BrowserDownloadURL,
					Tag: rel.TagName,
				}, nil
			}
		}
	}

	return nil, FailedToFindReleaseError{goos, arch}
}
