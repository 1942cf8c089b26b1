package store

import (
	"fmt"

	"github.com/theoremus-urban-solutions/line-sections/line"
	"github.com/theoremus-urban-solutions/line-sections/section"
)

type sectionRecord struct {
	Up       string `json:"up"`
	Down     string `json:"down"`
	Distance int    `json:"distance"`
}

type lineRecord struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Color    string          `json:"color,omitempty"`
	RouteRef string          `json:"routeRef,omitempty"`
	Sections []sectionRecord `json:"sections"`
}

func toLineRecord(l *line.Line) lineRecord {
	ordered := l.Sections.Ordered()
	rec := lineRecord{
		ID:       l.ID,
		Name:     l.Name,
		Color:    l.Color,
		RouteRef: l.RouteRef,
		Sections: make([]sectionRecord, 0, len(ordered)),
	}
	for _, s := range ordered {
		rec.Sections = append(rec.Sections, sectionRecord{
			Up:       string(s.Up),
			Down:     string(s.Down),
			Distance: s.Distance.Int(),
		})
	}
	return rec
}

func (r lineRecord) toLine() (*line.Line, error) {
	secs := make([]section.Section, 0, len(r.Sections))
	for _, s := range r.Sections {
		sec := section.NewSection(section.StationID(s.Up), section.StationID(s.Down), section.Distance(s.Distance))
		sec.LineID = r.ID
		secs = append(secs, sec)
	}
	restored, err := section.Restore(secs)
	if err != nil {
		return nil, fmt.Errorf("restore line %s: %w", r.ID, err)
	}
	return &line.Line{
		ID:       r.ID,
		Name:     r.Name,
		Color:    r.Color,
		RouteRef: r.RouteRef,
		Sections: restored,
	}, nil
}
