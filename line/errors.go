package line

import "errors"

var (
	ErrLineNotFound       = errors.New("line: line not found")
	ErrStationNotFound    = errors.New("line: station not found")
	ErrLineNameDuplicated = errors.New("line: line name already exists")
	ErrStationInUse       = errors.New("line: station is used by a line")
	ErrInvalidStation     = errors.New("line: invalid station")
	ErrInvalidPlan        = errors.New("line: invalid import plan")
)

// IsNotFound reports whether err means an unknown line or station.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrLineNotFound) || errors.Is(err, ErrStationNotFound)
}
