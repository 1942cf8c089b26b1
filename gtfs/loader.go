package gtfs

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/line-sections/utils"
)

var wanted = map[string]bool{
	"agency.txt":     true,
	"routes.txt":     true,
	"trips.txt":      true,
	"stops.txt":      true,
	"stop_times.txt": true,
	"shapes.txt":     true,
}

// FetchGTFSData downloads a GTFS zip.
func FetchGTFSData(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch GTFS from %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch GTFS from %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// LoadFromBytes parses a GTFS zip held in memory.
func LoadFromBytes(data []byte, agencyID string) (*Feed, error) {
	return LoadFromReader(bytes.NewReader(data), int64(len(data)), agencyID)
}

// LoadFromReader parses a GTFS zip from any random-access source.
func LoadFromReader(r io.ReaderAt, size int64, agencyID string) (*Feed, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open GTFS zip: %w", err)
	}
	return load(zr.File, agencyID)
}

// LoadFromPath parses a GTFS zip file on disk.
func LoadFromPath(path, agencyID string) (*Feed, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open GTFS zip %s: %w", path, err)
	}
	defer zr.Close()
	return load(zr.File, agencyID)
}

// Load reads a GTFS zip from a local path or an http(s) URL.
func Load(ctx context.Context, src, agencyID string) (*Feed, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		data, err := FetchGTFSData(ctx, src)
		if err != nil {
			return nil, err
		}
		return LoadFromBytes(data, agencyID)
	}
	return LoadFromPath(src, agencyID)
}

func load(files []*zip.File, agencyID string) (*Feed, error) {
	f := newFeed(agencyID)
	for _, zf := range files {
		name := strings.ToLower(zf.Name)
		if !wanted[name] {
			continue
		}
		if err := f.consumeCSV(zf); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
	}
	for shapeID, pts := range f.Shapes {
		f.ShapeCumKM[shapeID] = utils.CumulativeKM(pts)
	}
	if len(f.Agencies) == 1 {
		for only := range f.Agencies {
			for id, r := range f.Routes {
				if r.AgencyID == "" {
					r.AgencyID = only
					f.Routes[id] = r
				}
			}
		}
	}
	return f, nil
}

func (f *Feed) consumeCSV(zf *zip.File) error {
	r, err := zf.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil {
		return err
	}
	if len(rec) == 0 {
		return nil
	}
	head := rec[0]
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	rows := rec[1:]

	switch strings.ToLower(zf.Name) {
	case "agency.txt":
		agID, agName := idx("agency_id"), idx("agency_name")
		for _, row := range rows {
			f.Agencies[field(row, agID)] = field(row, agName)
		}
	case "routes.txt":
		rID, rAg, rSN, rLN, rCol := idx("route_id"), idx("agency_id"), idx("route_short_name"), idx("route_long_name"), idx("route_color")
		if rID < 0 {
			return nil
		}
		for _, row := range rows {
			f.Routes[field(row, rID)] = Route{
				ID:        field(row, rID),
				AgencyID:  field(row, rAg),
				ShortName: field(row, rSN),
				LongName:  field(row, rLN),
				Color:     field(row, rCol),
			}
		}
	case "trips.txt":
		rID, tID, hs, dir, sh := idx("route_id"), idx("trip_id"), idx("trip_headsign"), idx("direction_id"), idx("shape_id")
		if rID < 0 || tID < 0 {
			return nil
		}
		for _, row := range rows {
			f.Trips[field(row, tID)] = Trip{
				ID:          field(row, tID),
				RouteID:     field(row, rID),
				DirectionID: field(row, dir),
				ShapeID:     field(row, sh),
				Headsign:    field(row, hs),
			}
		}
	case "stops.txt":
		sID, sN, sLat, sLon := idx("stop_id"), idx("stop_name"), idx("stop_lat"), idx("stop_lon")
		if sID < 0 {
			return nil
		}
		for _, row := range rows {
			lat, _ := strconv.ParseFloat(field(row, sLat), 64)
			lon, _ := strconv.ParseFloat(field(row, sLon), 64)
			f.Stops[field(row, sID)] = Stop{ID: field(row, sID), Name: field(row, sN), Lat: lat, Lon: lon}
		}
	case "stop_times.txt":
		tID, sID, sq, sd := idx("trip_id"), idx("stop_id"), idx("stop_sequence"), idx("shape_dist_traveled")
		if tID < 0 || sID < 0 || sq < 0 {
			return nil
		}
		for _, row := range rows {
			seq, _ := strconv.Atoi(field(row, sq))
			st := StopTime{StopID: field(row, sID), Sequence: seq}
			if raw := field(row, sd); raw != "" {
				if v, err := strconv.ParseFloat(raw, 64); err == nil {
					st.ShapeDist, st.HasShapeDist = v, true
				}
			}
			trip := field(row, tID)
			f.StopTimes[trip] = append(f.StopTimes[trip], st)
		}
		for _, arr := range f.StopTimes {
			sort.SliceStable(arr, func(i, j int) bool { return arr[i].Sequence < arr[j].Sequence })
		}
	case "shapes.txt":
		sh, latIdx, lonIdx, seqIdx := idx("shape_id"), idx("shape_pt_lat"), idx("shape_pt_lon"), idx("shape_pt_sequence")
		if sh < 0 || latIdx < 0 || lonIdx < 0 || seqIdx < 0 {
			return nil
		}
		type point struct {
			lon, lat float64
			seq      int
		}
		tmp := map[string][]point{}
		for _, row := range rows {
			lat, _ := strconv.ParseFloat(field(row, latIdx), 64)
			lon, _ := strconv.ParseFloat(field(row, lonIdx), 64)
			seq, _ := strconv.Atoi(field(row, seqIdx))
			tmp[field(row, sh)] = append(tmp[field(row, sh)], point{lon, lat, seq})
		}
		for shapeID, arr := range tmp {
			sort.Slice(arr, func(i, j int) bool { return arr[i].seq < arr[j].seq })
			pts := make([][2]float64, len(arr))
			for i, p := range arr {
				pts[i] = [2]float64{p.lon, p.lat}
			}
			f.Shapes[shapeID] = pts
		}
	}
	return nil
}

// field returns row[i], or "" when the column is absent or the row is short.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
