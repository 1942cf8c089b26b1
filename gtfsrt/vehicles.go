package gtfsrt

import (
	"fmt"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/line-sections/utils"
)

// Vehicle is one vehicle position entity, flattened.
type Vehicle struct {
	ID         string  `json:"id"`
	Label      string  `json:"label,omitempty"`
	TripID     string  `json:"tripId,omitempty"`
	RouteID    string  `json:"routeId,omitempty"`
	StopID     string  `json:"stopId,omitempty"`
	Status     string  `json:"status,omitempty"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Timestamp  int64   `json:"timestamp,omitempty"`
	RecordedAt string  `json:"recordedAt,omitempty"` // Timestamp in ISO 8601
}

// DecodeVehicles unmarshals a FeedMessage and returns its vehicle positions.
// Entities without a vehicle position are skipped. Empty input yields no
// vehicles.
func DecodeVehicles(raw []byte) ([]Vehicle, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(raw, &fm); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFeed, err)
	}

	out := make([]Vehicle, 0, len(fm.GetEntity()))
	for _, e := range fm.GetEntity() {
		vp := e.GetVehicle()
		if vp == nil {
			continue
		}
		v := Vehicle{
			ID:        vp.GetVehicle().GetId(),
			Label:     vp.GetVehicle().GetLabel(),
			TripID:    vp.GetTrip().GetTripId(),
			RouteID:   vp.GetTrip().GetRouteId(),
			StopID:    vp.GetStopId(),
			Lat:       float64(vp.GetPosition().GetLatitude()),
			Lon:       float64(vp.GetPosition().GetLongitude()),
			Timestamp: int64(vp.GetTimestamp()),
		}
		if vp.CurrentStatus != nil {
			v.Status = vp.GetCurrentStatus().String()
		}
		if v.ID == "" {
			v.ID = e.GetId()
		}
		if v.Timestamp == 0 {
			v.Timestamp = int64(fm.GetHeader().GetTimestamp())
		}
		v.RecordedAt = utils.Iso8601FromUnixSeconds(v.Timestamp)
		out = append(out, v)
	}
	return out, nil
}
