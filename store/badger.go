package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/theoremus-urban-solutions/line-sections/line"
	"github.com/theoremus-urban-solutions/line-sections/section"
)

const (
	linePrefix    = "line/"
	stationPrefix = "station/"
)

// Options configures Open.
type Options struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path     string
	InMemory bool
}

// Badger implements line.Repository.
type Badger struct {
	db *badger.DB
}

var _ line.Repository = (*Badger)(nil)

// Open opens (or creates) the database described by opts.
func Open(opts Options) (*Badger, error) {
	var bo badger.Options
	if opts.InMemory {
		bo = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Path == "" {
			return nil, errors.New("store: path is required unless in-memory")
		}
		bo = badger.DefaultOptions(opts.Path)
	}
	db, err := badger.Open(bo.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", opts.Path, err)
	}
	return &Badger{db: db}, nil
}

// Close releases the database.
func (b *Badger) Close() error {
	return b.db.Close()
}

func (b *Badger) SaveLine(_ context.Context, l *line.Line) error {
	return b.put(linePrefix+l.ID, toLineRecord(l))
}

func (b *Badger) FindLine(_ context.Context, id string) (*line.Line, error) {
	var rec lineRecord
	if err := b.get(linePrefix+id, &rec); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", line.ErrLineNotFound, id)
		}
		return nil, err
	}
	return rec.toLine()
}

func (b *Badger) ListLines(_ context.Context) ([]*line.Line, error) {
	var lines []*line.Line
	err := b.scan(linePrefix, func(raw []byte) error {
		var rec lineRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		l, err := rec.toLine()
		if err != nil {
			return err
		}
		lines = append(lines, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Name < lines[j].Name })
	return lines, nil
}

func (b *Badger) DeleteLine(_ context.Context, id string) error {
	return b.del(linePrefix + id)
}

func (b *Badger) SaveStation(_ context.Context, st line.Station) error {
	return b.put(stationPrefix+string(st.ID), st)
}

func (b *Badger) FindStation(_ context.Context, id section.StationID) (line.Station, error) {
	var st line.Station
	if err := b.get(stationPrefix+string(id), &st); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return line.Station{}, fmt.Errorf("%w: %s", line.ErrStationNotFound, id)
		}
		return line.Station{}, err
	}
	return st, nil
}

func (b *Badger) ListStations(_ context.Context) ([]line.Station, error) {
	var stations []line.Station
	err := b.scan(stationPrefix, func(raw []byte) error {
		var st line.Station
		if err := json.Unmarshal(raw, &st); err != nil {
			return err
		}
		stations = append(stations, st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(stations, func(i, j int) bool { return stations[i].Name < stations[j].Name })
	return stations, nil
}

func (b *Badger) DeleteStation(_ context.Context, id section.StationID) error {
	return b.del(stationPrefix + string(id))
}

func (b *Badger) put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
}

func (b *Badger) get(key string, v any) error {
	return b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(raw []byte) error {
			if err := json.Unmarshal(raw, v); err != nil {
				return fmt.Errorf("failed to decode %s: %w", key, err)
			}
			return nil
		})
	})
}

func (b *Badger) del(key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (b *Badger) scan(prefix string, fn func(raw []byte) error) error {
	return b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := it.Item().Value(fn); err != nil {
				return fmt.Errorf("failed to read %s: %w", it.Item().Key(), err)
			}
		}
		return nil
	})
}
