/*
Package gtfs reads GTFS static feeds and turns one route direction into a
line.Plan that line.Service.ImportPlan can persist.

# Basic Usage

	feed, err := gtfs.Load(ctx, "https://example.org/gtfs.zip", "")
	if err != nil {
	    log.Fatal(err)
	}
	plan, err := feed.RouteLine("2", "0", gtfs.Metres)
	if err != nil {
	    log.Fatal(err)
	}
	l, err := svc.ImportPlan(ctx, plan)

Only agency.txt, routes.txt, trips.txt, stops.txt, stop_times.txt and
shapes.txt are read.

# Distances

Section distances are whole metres and always at least 1. For each pair of
consecutive stops the first available source wins:

  - the shape_dist_traveled delta, converted from the feed's unit
  - the delta between the stops' projections onto the trip's shape
  - the great-circle distance between the stops

# Caching

Parse the zip once and keep the Feed; SaveFeed and LoadFeed persist it with
gob for repeated CLI imports.
*/
package gtfs
