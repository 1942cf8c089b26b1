// Package osmroute builds a line plan from an OpenStreetMap public transport
// route relation read from an .osm.pbf extract.
//
// The extract is scanned twice: once for relations, to find the route by id
// or by its ref tag, and once for nodes, to resolve the relation's stop
// members. Stop members are node members with role stop, stop_entry_only or
// stop_exit_only, taken in relation order. Distances between consecutive
// stops are great-circle distances rounded up to whole metres.
//
// A stop's code is its gtfs:stop_id or ref:gtfs tag when present, so that
// realtime positions keyed by GTFS stop ids can be placed on OSM-imported
// lines; otherwise it is "osm:<node id>".
package osmroute
