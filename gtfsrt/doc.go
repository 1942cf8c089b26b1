// Package gtfsrt overlays GTFS-Realtime vehicle positions on a line.
//
// Fetching is optional: callers holding raw protobuf bytes can call
// DecodeVehicles directly.
//
//	client := gtfsrt.NewClient(5 * time.Second)
//	vehicles, err := client.FetchVehicles(ctx, "https://example.org/vehicle-positions")
//	if err != nil {
//	    // handle error
//	}
//	stations, _ := svc.LineStations(ctx, lineID)
//	for _, p := range gtfsrt.Place(vehicles, stations, l.RouteRef) {
//	    fmt.Println(p.Vehicle.ID, p.Station.Name)
//	}
//
// Vehicles are matched to stations by stop_id against Station.Code, which the
// GTFS importer fills with the feed's stop_id.
package gtfsrt
