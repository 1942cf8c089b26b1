package gtfsrt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrFeedUnavailable wraps transport failures and non-200 responses.
	ErrFeedUnavailable = errors.New("gtfsrt: feed unavailable")
	// ErrInvalidFeed wraps payloads that are not a FeedMessage.
	ErrInvalidFeed = errors.New("gtfsrt: invalid feed")
)

// Client is a simple HTTP client for fetching GTFS-RT protobuf data.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new GTFS-RT HTTP client. A non-positive timeout means
// no client-side deadline beyond the request context.
func NewClient(timeout time.Duration) *Client {
	c := &http.Client{}
	if timeout > 0 {
		c.Timeout = timeout
	}
	return &Client{httpClient: c}
}

// Fetch fetches a single GTFS-RT feed from a URL and returns raw protobuf bytes.
// Returns nil if url is empty (allows optional feeds).
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/x-protobuf")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch %s: %w", ErrFeedUnavailable, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d from %s", ErrFeedUnavailable, resp.StatusCode, url)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrFeedUnavailable, url, err)
	}
	return b, nil
}

// FetchVehicles fetches and decodes a vehicle positions feed.
func (c *Client) FetchVehicles(ctx context.Context, url string) ([]Vehicle, error) {
	raw, err := c.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("vehicle positions: %w", err)
	}
	return DecodeVehicles(raw)
}
