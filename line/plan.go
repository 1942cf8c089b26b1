package line

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/line-sections/section"
)

// PlanStop is one stop of an imported line, in travel order.
type PlanStop struct {
	Code string
	Name string
	Lat  float64
	Lon  float64
}

// Plan describes a line built outside the service, typically by the GTFS or
// OSM importers. Distances[i] is the distance in metres from Stops[i] to
// Stops[i+1].
type Plan struct {
	Name      string
	Color     string
	RouteRef  string
	Stops     []PlanStop
	Distances []int
}

// Validate checks the plan's shape before anything is written.
func (p Plan) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPlan)
	}
	if len(p.Stops) < 2 {
		return fmt.Errorf("%w: need at least 2 stops, got %d", ErrInvalidPlan, len(p.Stops))
	}
	if len(p.Distances) != len(p.Stops)-1 {
		return fmt.Errorf("%w: %d stops need %d distances, got %d",
			ErrInvalidPlan, len(p.Stops), len(p.Stops)-1, len(p.Distances))
	}
	seen := make(map[string]struct{}, len(p.Stops))
	for i, st := range p.Stops {
		if st.Code == "" {
			return fmt.Errorf("%w: stop %d has no code", ErrInvalidPlan, i)
		}
		if _, dup := seen[st.Code]; dup {
			return fmt.Errorf("%w: stop %s appears twice", ErrInvalidPlan, st.Code)
		}
		seen[st.Code] = struct{}{}
	}
	for i, d := range p.Distances {
		if d <= 0 {
			return fmt.Errorf("%w: distance %d is %d", ErrInvalidPlan, i, d)
		}
	}
	return nil
}

// ImportPlan creates a line from p. Stations are matched by code and created
// when missing; sections are appended one by one at the end of the line.
// Nothing is stored unless the whole line can be built, and stations created
// for the line are removed again if saving it fails.
func (s *Service) ImportPlan(ctx context.Context, p Plan) (*Line, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	name := strings.TrimSpace(p.Name)
	if err := s.ensureUniqueName(ctx, "", name); err != nil {
		return nil, err
	}

	ids, created, err := s.stationsForPlan(ctx, p.Stops)
	if err != nil {
		return nil, err
	}

	first, err := section.NewDistance(p.Distances[0])
	if err != nil {
		return nil, err
	}
	l, err := NewLine(uuid.NewString(), name, p.Color, p.RouteRef, ids[0], ids[1], first)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(p.Distances); i++ {
		d, err := section.NewDistance(p.Distances[i])
		if err != nil {
			return nil, err
		}
		if err := l.AddSection(ids[i], ids[i+1], d); err != nil {
			return nil, fmt.Errorf("import %s: stop %s: %w", name, p.Stops[i+1].Code, err)
		}
	}

	for i, st := range created {
		if err := s.repo.SaveStation(ctx, st); err != nil {
			s.dropStations(ctx, created[:i])
			return nil, err
		}
	}
	if err := s.repo.SaveLine(ctx, l); err != nil {
		s.dropStations(ctx, created)
		return nil, err
	}
	s.log.Info("line imported", "line", l.ID, "name", l.Name, "stations", len(ids),
		"created", len(created), "total_m", l.Sections.TotalDistance().Int())
	return l, nil
}

// stationsForPlan maps every stop to a station id. Stops whose code is not
// registered yet get a new, validated but unsaved station.
func (s *Service) stationsForPlan(ctx context.Context, stops []PlanStop) ([]section.StationID, []Station, error) {
	existing, err := s.repo.ListStations(ctx)
	if err != nil {
		return nil, nil, err
	}
	byCode := make(map[string]section.StationID, len(existing))
	for _, st := range existing {
		if st.Code != "" {
			byCode[st.Code] = st.ID
		}
	}

	ids := make([]section.StationID, 0, len(stops))
	var created []Station
	for _, stop := range stops {
		if id, ok := byCode[stop.Code]; ok {
			ids = append(ids, id)
			continue
		}
		name := stop.Name
		if name == "" {
			name = stop.Code
		}
		st := Station{
			ID:   section.StationID(uuid.NewString()),
			Name: name,
			Code: stop.Code,
			Lat:  stop.Lat,
			Lon:  stop.Lon,
		}
		if err := s.validate.Struct(st); err != nil {
			return nil, nil, fmt.Errorf("%w: stop %s: %v", ErrInvalidStation, stop.Code, err)
		}
		byCode[stop.Code] = st.ID
		ids = append(ids, st.ID)
		created = append(created, st)
	}
	s.log.Debug("plan stations resolved", "stops", len(stops), "new", len(created))
	return ids, created, nil
}

func (s *Service) dropStations(ctx context.Context, stations []Station) {
	for _, st := range stations {
		if err := s.repo.DeleteStation(ctx, st.ID); err != nil {
			s.log.Error("failed to remove imported station", "station", st.ID, "error", err)
		}
	}
}
