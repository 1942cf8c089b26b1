package section

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	ErrInvalidDistance     = errors.New("section: distance must be positive")
	ErrSectionAddFailed    = errors.New("section: add failed")
	ErrSectionRemoveFailed = errors.New("section: remove failed")
)

// Add failure reasons. Each wraps ErrSectionAddFailed.
var (
	ErrSameStation         = fmt.Errorf("%w: up and down station must differ", ErrSectionAddFailed)
	ErrNoMatchedStation    = fmt.Errorf("%w: one of up/down station must already be in the line", ErrSectionAddFailed)
	ErrBothStationsMatched = fmt.Errorf("%w: up and down station cannot both already be in the line", ErrSectionAddFailed)
	ErrDistanceTooLong     = fmt.Errorf("%w: new section's distance must be smaller than the matched section's distance", ErrSectionAddFailed)
)

// Remove failure reasons. Each wraps ErrSectionRemoveFailed.
var (
	ErrStationNotInLine = fmt.Errorf("%w: station not in line", ErrSectionRemoveFailed)
	ErrLastSection      = fmt.Errorf("%w: line with one section cannot be shrunk", ErrSectionRemoveFailed)
)

// ErrBrokenPath is returned by Restore when the given sections do not form one simple path.
var ErrBrokenPath = errors.New("section: sections do not form a single path")
