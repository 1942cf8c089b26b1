/*
Package section implements the topology of a single transit line.

A line is an ordered chain of station-to-station sections that together form
one simple path from a start station to an end station. The Sections type owns
that chain and keeps it consistent under two mutations:

  - Add inserts a new section. It either extends one end of the path or splits
    an existing section in two, redistributing the distance.
  - Remove drops a station. It either shrinks one end of the path or merges the
    two sections around the station into one, summing their distances.

After every successful call the sections still form exactly one connected,
branchless, cycle-free path. A failed call leaves the collection unchanged.

# Basic Usage

	gangnam, yeoksam, sadang := section.StationID("gangnam"), section.StationID("yeoksam"), section.StationID("sadang")

	d, _ := section.NewDistance(10)
	s := section.New()
	_ = s.Add(section.NewSection(gangnam, yeoksam, d))

	d6, _ := section.NewDistance(6)
	_ = s.Add(section.NewSection(gangnam, sadang, d6))

	s.ToStations() // [gangnam sadang yeoksam]

# Errors

Failures wrap one of three kinds so callers can branch with errors.Is:

	ErrInvalidDistance     - a distance is zero/negative or a split leaves no remainder
	ErrSectionAddFailed    - an Add was rejected; the wrapped reason says why
	ErrSectionRemoveFailed - a Remove was rejected; the wrapped reason says why

# Concurrency

Sections is not safe for concurrent use. Callers that share one line across
goroutines must serialize mutations per line (see package line).
*/
package section
