package gtfs

import (
	"encoding/gob"
	"fmt"
	"os"
)

// SaveFeed writes a parsed feed to path using gob encoding, so repeated
// imports from the same zip can skip CSV parsing.
//
// Example:
//
//	feed, _ := gtfs.LoadFromPath("gtfs.zip", "")
//	if err := gtfs.SaveFeed(feed, "/cache/gtfs-feed.gob"); err != nil {
//	    // handle error
//	}
func SaveFeed(feed *Feed, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(feed); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode feed: %w", err)
	}
	return f.Close()
}

// LoadFeed reads a feed written by SaveFeed.
func LoadFeed(path string) (*Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	defer f.Close()
	feed := newFeed("")
	if err := gob.NewDecoder(f).Decode(feed); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	return feed, nil
}
