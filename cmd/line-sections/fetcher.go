package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/theoremus-urban-solutions/line-sections/gtfsrt"
)

// fetcher reads GTFS-RT data from URLs or local files.
type fetcher struct {
	client *gtfsrt.Client
}

func newFetcher(client *gtfsrt.Client) *fetcher {
	return &fetcher{client: client}
}

// fetch returns raw protobuf bytes from a URL or a file path.
func (f *fetcher) fetch(ctx context.Context, urlOrPath string) ([]byte, error) {
	if urlOrPath == "" {
		return nil, nil
	}
	if !strings.HasPrefix(urlOrPath, "http://") && !strings.HasPrefix(urlOrPath, "https://") {
		b, err := os.ReadFile(urlOrPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", urlOrPath, err)
		}
		return b, nil
	}
	return f.client.Fetch(ctx, urlOrPath)
}
