package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Zachdehooge/phenology-viewer/internal/metadata"
)

const userAgent = "phenology-viewer/1.0 (github.com/Zachdehooge/phenology-viewer)"

// MaxMetadataBytes caps how much of a metadata response is read.
var MaxMetadataBytes int64 = 32 << 20

// DefaultClient is used when FetchMetadata is given a nil client.
var DefaultClient = &http.Client{Timeout: 15 * time.Second}

// IsRemote reports whether a metadata source is an http(s) URL rather than a
// local path.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// FetchMetadata retrieves image_metadata.json from a forecast publishing host.
func FetchMetadata(ctx context.Context, client *http.Client, url string) (*metadata.ImageMetadata, error) {
	if client == nil {
		client = DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image metadata: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxMetadataBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > MaxMetadataBytes {
		return nil, fmt.Errorf("%s returned more than %d bytes of metadata", url, MaxMetadataBytes)
	}

	if resp.StatusCode != http.StatusOK {
		snip := body
		if len(snip) > 200 {
			snip = snip[:200]
		}
		return nil, fmt.Errorf("%s returned HTTP %d: %s", url, resp.StatusCode, string(snip))
	}

	return metadata.Decode(bytes.NewReader(body))
}

// LoadMetadata reads metadata from a path or URL.
func LoadMetadata(ctx context.Context, source string) (*metadata.ImageMetadata, error) {
	if IsRemote(source) {
		return FetchMetadata(ctx, nil, source)
	}
	return metadata.Load(source)
}
