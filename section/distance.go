package section

import "fmt"

// Distance is a strictly positive length between two adjacent stations.
// The zero value is not a valid distance.
type Distance int

// NewDistance validates n and returns it as a Distance.
func NewDistance(n int) (Distance, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDistance, n)
	}
	return Distance(n), nil
}

// Minus returns d - other. The remainder must stay positive.
func (d Distance) Minus(other Distance) (Distance, error) {
	if other >= d {
		return 0, fmt.Errorf("%w: %d - %d leaves no remainder", ErrInvalidDistance, d, other)
	}
	return d - other, nil
}

// Plus returns d + other.
func (d Distance) Plus(other Distance) Distance {
	return d + other
}

// Valid reports whether d is positive.
func (d Distance) Valid() bool { return d > 0 }

// Int returns the raw magnitude.
func (d Distance) Int() int { return int(d) }
