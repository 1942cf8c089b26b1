package line

import (
	"context"

	"github.com/theoremus-urban-solutions/line-sections/section"
)

// Repository persists lines and stations.
// Lookups of unknown ids return errors wrapping ErrLineNotFound or ErrStationNotFound.
type Repository interface {
	SaveLine(ctx context.Context, l *Line) error
	FindLine(ctx context.Context, id string) (*Line, error)
	ListLines(ctx context.Context) ([]*Line, error)
	DeleteLine(ctx context.Context, id string) error

	SaveStation(ctx context.Context, st Station) error
	FindStation(ctx context.Context, id section.StationID) (Station, error)
	ListStations(ctx context.Context) ([]Station, error)
	DeleteStation(ctx context.Context, id section.StationID) error
}
