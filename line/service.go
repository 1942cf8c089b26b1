package line

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bluele/gcache"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/theoremus-urban-solutions/line-sections/section"
)

const defaultCacheSize = 256

// Options configures a Service.
type Options struct {
	// CacheSize bounds the number of cached station lists. Zero means 256.
	CacheSize int
	Logger    *slog.Logger
}

// Service coordinates lines, stations and their persistence.
//
// Section mutations on one line are serialized by that line's lock and span
// load, mutate and save. Catalog changes (create/rename/delete of lines and
// stations) hold the catalog lock exclusively so name and usage checks stay
// consistent. Section adds hold it shared from the station check to the save,
// so a station cannot be deleted while a line starts using it.
type Service struct {
	repo     Repository
	cache    gcache.Cache
	log      *slog.Logger
	validate *validator.Validate

	catalogMu sync.RWMutex
	locks     *lineLocks
}

// NewService wires a Service around repo.
func NewService(repo Repository, opts Options) *Service {
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		cache:    gcache.New(size).LRU().Build(),
		log:      logger.With("component", "line"),
		validate: validator.New(),
		locks:    newLineLocks(),
	}
}

// CreateStation registers a new station.
func (s *Service) CreateStation(ctx context.Context, name, code string, lat, lon float64) (Station, error) {
	st := Station{
		ID:   section.StationID(uuid.NewString()),
		Name: strings.TrimSpace(name),
		Code: strings.TrimSpace(code),
		Lat:  lat,
		Lon:  lon,
	}
	if err := s.validate.Struct(st); err != nil {
		return Station{}, fmt.Errorf("%w: %v", ErrInvalidStation, err)
	}

	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()
	if err := s.repo.SaveStation(ctx, st); err != nil {
		return Station{}, err
	}
	s.log.Info("station created", "station", st.ID, "name", st.Name)
	return st, nil
}

// Station returns the station with the given id.
func (s *Service) Station(ctx context.Context, id section.StationID) (Station, error) {
	return s.repo.FindStation(ctx, id)
}

// Stations returns every registered station.
func (s *Service) Stations(ctx context.Context) ([]Station, error) {
	return s.repo.ListStations(ctx)
}

// DeleteStation unregisters a station that no line uses.
func (s *Service) DeleteStation(ctx context.Context, id section.StationID) error {
	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	if _, err := s.repo.FindStation(ctx, id); err != nil {
		return err
	}
	lines, err := s.repo.ListLines(ctx)
	if err != nil {
		return err
	}
	for _, l := range lines {
		if l.Uses(id) {
			return fmt.Errorf("%w: %s", ErrStationInUse, l.Name)
		}
	}
	if err := s.repo.DeleteStation(ctx, id); err != nil {
		return err
	}
	s.log.Info("station deleted", "station", id)
	return nil
}

// CreateLine creates a line with its first section.
func (s *Service) CreateLine(ctx context.Context, name, color, routeRef string, up, down section.StationID, distance int) (*Line, error) {
	d, err := section.NewDistance(distance)
	if err != nil {
		return nil, err
	}

	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	if err := s.requireStations(ctx, up, down); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := s.ensureUniqueName(ctx, "", name); err != nil {
		return nil, err
	}
	l, err := NewLine(uuid.NewString(), name, color, routeRef, up, down, d)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveLine(ctx, l); err != nil {
		return nil, err
	}
	s.log.Info("line created", "line", l.ID, "name", l.Name)
	return l, nil
}

// Line returns the line with the given id.
func (s *Service) Line(ctx context.Context, id string) (*Line, error) {
	lock := s.locks.get(id)
	lock.RLock()
	defer lock.RUnlock()
	return s.repo.FindLine(ctx, id)
}

// Lines returns every line.
func (s *Service) Lines(ctx context.Context) ([]*Line, error) {
	return s.repo.ListLines(ctx)
}

// UpdateLine renames or recolors a line. Empty arguments keep the current value.
func (s *Service) UpdateLine(ctx context.Context, id, name, color string) (*Line, error) {
	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	lock := s.locks.get(id)
	lock.Lock()
	defer lock.Unlock()

	l, err := s.repo.FindLine(ctx, id)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" && name != l.Name {
		if err := s.ensureUniqueName(ctx, id, name); err != nil {
			return nil, err
		}
		l.Name = name
	}
	if color != "" {
		l.Color = color
	}
	if err := s.repo.SaveLine(ctx, l); err != nil {
		return nil, err
	}
	s.log.Info("line updated", "line", id)
	return l, nil
}

// DeleteLine removes a line and its sections.
func (s *Service) DeleteLine(ctx context.Context, id string) error {
	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	lock := s.locks.get(id)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.repo.FindLine(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteLine(ctx, id); err != nil {
		return err
	}
	s.cache.Remove(id)
	s.log.Info("line deleted", "line", id)
	return nil
}

// AddSection inserts an up→down section into a line.
func (s *Service) AddSection(ctx context.Context, lineID string, up, down section.StationID, distance int) (*Line, error) {
	d, err := section.NewDistance(distance)
	if err != nil {
		return nil, err
	}

	s.catalogMu.RLock()
	defer s.catalogMu.RUnlock()

	if err := s.requireStations(ctx, up, down); err != nil {
		return nil, err
	}
	return s.mutate(ctx, lineID, "add section", func(l *Line) error {
		return l.AddSection(up, down, d)
	})
}

// RemoveStation drops a station from a line.
func (s *Service) RemoveStation(ctx context.Context, lineID string, station section.StationID) (*Line, error) {
	return s.mutate(ctx, lineID, "remove station", func(l *Line) error {
		return l.RemoveStation(station)
	})
}

// LineStations returns a line's stations from start to end.
func (s *Service) LineStations(ctx context.Context, lineID string) ([]Station, error) {
	if v, err := s.cache.Get(lineID); err == nil {
		return v.([]Station), nil
	}

	lock := s.locks.get(lineID)
	lock.RLock()
	defer lock.RUnlock()

	l, err := s.repo.FindLine(ctx, lineID)
	if err != nil {
		return nil, err
	}
	stations, err := s.resolve(ctx, l.StationIDs())
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(lineID, stations)
	return stations, nil
}

func (s *Service) mutate(ctx context.Context, lineID, op string, apply func(*Line) error) (*Line, error) {
	lock := s.locks.get(lineID)
	lock.Lock()
	defer lock.Unlock()

	l, err := s.repo.FindLine(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if err := apply(l); err != nil {
		s.log.Warn(op+" rejected", "line", lineID, "error", err)
		return nil, err
	}
	if err := s.repo.SaveLine(ctx, l); err != nil {
		return nil, err
	}
	s.cache.Remove(lineID)
	s.log.Info(op, "line", lineID, "sections", l.Sections.Len())
	return l, nil
}

func (s *Service) resolve(ctx context.Context, ids []section.StationID) ([]Station, error) {
	out := make([]Station, 0, len(ids))
	for _, id := range ids {
		st, err := s.repo.FindStation(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (s *Service) requireStations(ctx context.Context, ids ...section.StationID) error {
	for _, id := range ids {
		if _, err := s.repo.FindStation(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// ensureUniqueName fails when a line other than selfID already uses name.
func (s *Service) ensureUniqueName(ctx context.Context, selfID, name string) error {
	lines, err := s.repo.ListLines(ctx)
	if err != nil {
		return err
	}
	for _, l := range lines {
		if l.ID != selfID && strings.EqualFold(l.Name, name) {
			return fmt.Errorf("%w: %s", ErrLineNameDuplicated, name)
		}
	}
	return nil
}

// IsRejected reports whether err is a business-rule rejection the caller
// should surface as a bad request rather than a server failure.
func IsRejected(err error) bool {
	return errors.Is(err, section.ErrInvalidDistance) ||
		errors.Is(err, section.ErrSectionAddFailed) ||
		errors.Is(err, section.ErrSectionRemoveFailed) ||
		errors.Is(err, ErrLineNameDuplicated) ||
		errors.Is(err, ErrStationInUse) ||
		errors.Is(err, ErrInvalidStation) ||
		errors.Is(err, ErrInvalidPlan)
}
