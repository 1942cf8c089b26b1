package section

// Sections is the set of sections making up one line's path.
//
// Sections are indexed twice: by up station (outgoing edge) and by down
// station (incoming edge). The single-path invariant guarantees both keys
// are unique, so adjacency lookups are O(1) and traversal is O(n).
type Sections struct {
	byUp   map[StationID]Section   // up station -> section leaving it
	byDown map[StationID]StationID // down station -> up station of the section entering it
}

// New returns an empty collection, as held by a freshly created line.
func New() *Sections {
	return &Sections{
		byUp:   map[StationID]Section{},
		byDown: map[StationID]StationID{},
	}
}

// Restore rebuilds a collection from stored sections, in any order.
// It fails with ErrBrokenPath unless the sections form one simple path.
func Restore(sections []Section) (*Sections, error) {
	s := New()
	for _, sec := range sections {
		if !sec.Distance.Valid() {
			return nil, ErrInvalidDistance
		}
		if sec.Up == sec.Down {
			return nil, ErrBrokenPath
		}
		if _, dup := s.byUp[sec.Up]; dup {
			return nil, ErrBrokenPath
		}
		if _, dup := s.byDown[sec.Down]; dup {
			return nil, ErrBrokenPath
		}
		s.insert(sec)
	}
	if len(s.Ordered()) != s.Len() {
		return nil, ErrBrokenPath
	}
	return s, nil
}

// Len returns the number of sections.
func (s *Sections) Len() int { return len(s.byUp) }

// Contains reports whether station is an endpoint of any section.
func (s *Sections) Contains(station StationID) bool {
	_, asUp := s.byUp[station]
	_, asDown := s.byDown[station]
	return asUp || asDown
}

// Add inserts section into the path.
//
// The section either extends the path at its start or end, or it shares
// exactly one station with the path and splits the section it overlaps.
// On failure the collection is unchanged.
func (s *Sections) Add(section Section) error {
	if !section.Distance.Valid() {
		return ErrInvalidDistance
	}
	if section.Up == section.Down {
		return ErrSameStation
	}
	if s.extends(section) {
		s.insert(section)
		return nil
	}

	kind, matched := s.locate(section)
	switch kind {
	case noMatch:
		return ErrNoMatchedStation
	case matchedByBoth:
		return ErrBothStationsMatched
	}
	if matched.NoLongerThan(section) {
		return ErrDistanceTooLong
	}
	remain, err := matched.RemainDistance(section)
	if err != nil {
		return err
	}

	var derived Section
	if kind == matchedByUp {
		if s.Contains(section.Down) {
			return ErrBothStationsMatched
		}
		derived = NewSection(section.Down, matched.Down, remain)
	} else {
		if s.Contains(section.Up) {
			return ErrBothStationsMatched
		}
		derived = NewSection(matched.Up, section.Up, remain)
	}
	derived.ChangeLine(section)

	s.delete(matched)
	s.insert(section)
	s.insert(derived)
	return nil
}

// Remove drops station from the path. An interior station's two sections
// are merged into one; an end station's single section is dropped.
// On failure the collection is unchanged.
func (s *Sections) Remove(station StationID) error {
	if !s.Contains(station) {
		return ErrStationNotInLine
	}
	if s.Len() == 1 {
		return ErrLastSection
	}

	previous, hasPrevious := s.findByDown(station)
	next, hasNext := s.findByUp(station)
	if hasPrevious {
		s.delete(previous)
	}
	if hasNext {
		s.delete(next)
	}
	if hasPrevious && hasNext {
		merged := NewSection(previous.Up, next.Down, previous.MergedDistance(next))
		merged.ChangeLine(previous)
		s.insert(merged)
	}
	return nil
}

// ToStations returns the stations along the path, start to end.
// An empty collection yields an empty, non-nil slice.
func (s *Sections) ToStations() []StationID {
	ordered := s.Ordered()
	stations := make([]StationID, 0, len(ordered)+1)
	for _, sec := range ordered {
		stations = append(stations, sec.Up)
	}
	if len(ordered) > 0 {
		stations = append(stations, ordered[len(ordered)-1].Down)
	}
	return stations
}

// Ordered returns the sections in path order.
func (s *Sections) Ordered() []Section {
	out := make([]Section, 0, len(s.byUp))
	start, ok := s.Start()
	if !ok {
		return out
	}
	for cur, ok := s.byUp[start]; ok && len(out) < len(s.byUp); cur, ok = s.byUp[cur.Down] {
		out = append(out, cur)
	}
	return out
}

// Start returns the first station of the path.
func (s *Sections) Start() (StationID, bool) {
	cur, ok := s.anyUp()
	if !ok {
		return "", false
	}
	// bounded: a cyclic set has no start
	for i := 0; i <= len(s.byUp); i++ {
		prev, ok := s.byDown[cur]
		if !ok {
			return cur, true
		}
		cur = prev
	}
	return "", false
}

func (s *Sections) anyUp() (StationID, bool) {
	for up := range s.byUp {
		return up, true
	}
	return "", false
}

// End returns the last station of the path.
func (s *Sections) End() (StationID, bool) {
	start, ok := s.Start()
	if !ok {
		return "", false
	}
	cur := start
	for i := 0; i < len(s.byUp); i++ {
		next, ok := s.byUp[cur]
		if !ok {
			break
		}
		cur = next.Down
	}
	return cur, true
}

// TotalDistance sums every section's distance.
func (s *Sections) TotalDistance() Distance {
	var total Distance
	for _, sec := range s.byUp {
		total = total.Plus(sec.Distance)
	}
	return total
}

// Equal reports whether both collections hold the same sections,
// regardless of insertion order.
func (s *Sections) Equal(other *Sections) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.Len() != other.Len() {
		return false
	}
	for up, sec := range s.byUp {
		if o, ok := other.byUp[up]; !ok || o != sec {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s *Sections) Clone() *Sections {
	c := New()
	for _, sec := range s.byUp {
		c.insert(sec)
	}
	return c
}

// extends reports whether section is an endpoint extension of the path:
// the first section of an empty line, a new leading section whose up station
// is new, or a new trailing section whose down station is new.
func (s *Sections) extends(section Section) bool {
	if s.Len() == 0 {
		return true
	}
	if start, ok := s.Start(); ok && section.HasDownStation(start) {
		if _, taken := s.byDown[section.Up]; !taken {
			return true
		}
	}
	if end, ok := s.End(); ok && section.HasUpStation(end) {
		if _, taken := s.byUp[section.Down]; !taken {
			return true
		}
	}
	return false
}

type matchKind int

const (
	noMatch matchKind = iota
	matchedByUp
	matchedByDown
	matchedByBoth
)

// locate finds the existing section a middle insertion would split.
func (s *Sections) locate(section Section) (matchKind, Section) {
	byUp, upOK := s.findByUp(section.Up)
	byDown, downOK := s.findByDown(section.Down)
	switch {
	case upOK && downOK:
		return matchedByBoth, Section{}
	case upOK:
		return matchedByUp, byUp
	case downOK:
		return matchedByDown, byDown
	}
	return noMatch, Section{}
}

func (s *Sections) findByUp(station StationID) (Section, bool) {
	sec, ok := s.byUp[station]
	return sec, ok
}

func (s *Sections) findByDown(station StationID) (Section, bool) {
	up, ok := s.byDown[station]
	if !ok {
		return Section{}, false
	}
	return s.byUp[up], true
}

func (s *Sections) insert(sec Section) {
	s.byUp[sec.Up] = sec
	s.byDown[sec.Down] = sec.Up
}

func (s *Sections) delete(sec Section) {
	delete(s.byUp, sec.Up)
	delete(s.byDown, sec.Down)
}
