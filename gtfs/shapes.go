package gtfs

import (
	"math"

	"github.com/theoremus-urban-solutions/line-sections/utils"
)

// alongShapeKM projects each stop onto the trip's shape and returns the
// cumulative km at each projection. Projections only move forward along the
// shape, so stops visited twice on a loop map to the later pass.
// It returns nil when the shape is unusable.
func (f *Feed) alongShapeKM(shapeID string, stops []Stop) []float64 {
	pts := f.Shapes[shapeID]
	cum := f.ShapeCumKM[shapeID]
	if len(pts) < 2 || len(cum) != len(pts) {
		return nil
	}
	out := make([]float64, len(stops))
	from := 0
	for i, st := range stops {
		seg, t, _ := nearestSegmentProjection(pts[from:], [2]float64{st.Lon, st.Lat})
		if seg < 0 {
			return nil
		}
		seg += from
		out[i] = cum[seg] + t*(cum[seg+1]-cum[seg])
		from = seg
	}
	return out
}

// nearestSegmentProjection finds the segment index i (between pts[i] and pts[i+1])
// that is closest to the given coordinate, and returns the clamped projection
// parameter t in [0,1] along that segment and the snapped lon/lat point.
func nearestSegmentProjection(pts [][2]float64, coord [2]float64) (int, float64, [2]float64) {
	bestIdx := -1
	bestT := 0.0
	var bestSnap [2]float64
	bestDist := math.MaxFloat64
	for i := 0; i+1 < len(pts); i++ {
		ax, ay := pts[i][0], pts[i][1]
		vx, vy := pts[i+1][0]-ax, pts[i+1][1]-ay
		wx, wy := coord[0]-ax, coord[1]-ay
		denom := vx*vx + vy*vy
		t := 0.0
		if denom > 0 {
			t = (wx*vx + wy*vy) / denom
		}
		t = math.Max(0, math.Min(1, t))
		snap := [2]float64{ax + t*vx, ay + t*vy}
		d := utils.HaversineKM(coord[1], coord[0], snap[1], snap[0])
		if d < bestDist {
			bestDist, bestIdx, bestT, bestSnap = d, i, t, snap
		}
	}
	return bestIdx, bestT, bestSnap
}
