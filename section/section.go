package section

// StationID identifies a station. It carries no behaviour beyond equality;
// station metadata lives in the registry that issued the id.
type StationID string

// Section is one directed edge of a line's path.
type Section struct {
	Up       StationID
	Down     StationID
	Distance Distance
	// LineID names the owning line. Sections derived from a split or merge
	// inherit it through ChangeLine.
	LineID string
}

// NewSection builds a section without an owning line.
func NewSection(up, down StationID, distance Distance) Section {
	return Section{Up: up, Down: down, Distance: distance}
}

// HasUpStation reports whether station is s's up station.
func (s Section) HasUpStation(station StationID) bool { return s.Up == station }

// HasDownStation reports whether station is s's down station.
func (s Section) HasDownStation(station StationID) bool { return s.Down == station }

// Follows reports whether s starts where other ends.
func (s Section) Follows(other Section) bool { return s.Up == other.Down }

// Precedes reports whether s ends where other starts.
func (s Section) Precedes(other Section) bool { return s.Down == other.Up }

// NoLongerThan reports whether s.Distance <= other.Distance.
func (s Section) NoLongerThan(other Section) bool { return s.Distance <= other.Distance }

// RemainDistance is the distance left over when other is carved out of s.
func (s Section) RemainDistance(other Section) (Distance, error) {
	return s.Distance.Minus(other.Distance)
}

// MergedDistance is the distance of the section replacing s and other.
func (s Section) MergedDistance(other Section) Distance {
	return s.Distance.Plus(other.Distance)
}

// ChangeLine moves s to other's owning line.
func (s *Section) ChangeLine(other Section) {
	s.LineID = other.LineID
}
