package linesections

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/theoremus-urban-solutions/line-sections/formatter"
	"github.com/theoremus-urban-solutions/line-sections/gtfsrt"
	"github.com/theoremus-urban-solutions/line-sections/line"
	"github.com/theoremus-urban-solutions/line-sections/section"
)

type stationRequest struct {
	Name string  `json:"name" validate:"required"`
	Code string  `json:"code"`
	Lat  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon  float64 `json:"lon" validate:"gte=-180,lte=180"`
}

type lineRequest struct {
	Name          string `json:"name" validate:"required"`
	Color         string `json:"color"`
	RouteRef      string `json:"routeRef"`
	UpStationID   string `json:"upStationId" validate:"required"`
	DownStationID string `json:"downStationId" validate:"required"`
	Distance      int    `json:"distance"`
}

type lineUpdateRequest struct {
	Name  string `json:"name" validate:"required_without=Color"`
	Color string `json:"color"`
}

type sectionRequest struct {
	UpStationID   string `json:"upStationId" validate:"required"`
	DownStationID string `json:"downStationId" validate:"required"`
	Distance      int    `json:"distance"`
}

// decode reads a JSON body into v and validates it. Distances are left to the
// section package so their errors carry the domain message.
func (s *Server) decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	return nil
}

func wantsXML(r *http.Request) bool {
	return strings.EqualFold(r.URL.Query().Get("format"), "xml")
}

func (s *Server) handleCreateStation(w http.ResponseWriter, r *http.Request) {
	var req stationRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	st, err := s.svc.CreateStation(r.Context(), req.Name, req.Code, req.Lat, req.Lon)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) handleListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := s.svc.Stations(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if stations == nil {
		stations = []line.Station{}
	}
	writeJSON(w, http.StatusOK, stations)
}

func (s *Server) handleDeleteStation(w http.ResponseWriter, r *http.Request) {
	id := section.StationID(mux.Vars(r)["id"])
	if err := s.svc.DeleteStation(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateLine(w http.ResponseWriter, r *http.Request) {
	var req lineRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.svc.CreateLine(r.Context(), req.Name, req.Color, req.RouteRef,
		section.StationID(req.UpStationID), section.StationID(req.DownStationID), req.Distance)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeLine(w, r, http.StatusCreated, l)
}

func (s *Server) handleListLines(w http.ResponseWriter, r *http.Request) {
	lines, err := s.svc.Lines(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]formatter.LineResponse, 0, len(lines))
	for _, l := range lines {
		stations, err := s.svc.LineStations(r.Context(), l.ID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		out = append(out, formatter.WrapLine(l, stations))
	}
	if wantsXML(r) {
		writeXML(w, http.StatusOK, formatter.BuildLinesXML(out))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetLine(w http.ResponseWriter, r *http.Request) {
	l, err := s.svc.Line(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeLine(w, r, http.StatusOK, l)
}

func (s *Server) handleUpdateLine(w http.ResponseWriter, r *http.Request) {
	var req lineUpdateRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.svc.UpdateLine(r.Context(), mux.Vars(r)["id"], req.Name, req.Color)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeLine(w, r, http.StatusOK, l)
}

func (s *Server) handleDeleteLine(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteLine(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.svc.AddSection(r.Context(), mux.Vars(r)["id"],
		section.StationID(req.UpStationID), section.StationID(req.DownStationID), req.Distance)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeLine(w, r, http.StatusOK, l)
}

func (s *Server) handleRemoveStation(w http.ResponseWriter, r *http.Request) {
	station := r.URL.Query().Get("stationId")
	if station == "" {
		s.writeError(w, r, fmt.Errorf("%w: stationId query parameter is required", errInvalidRequest))
		return
	}
	if _, err := s.svc.RemoveStation(r.Context(), mux.Vars(r)["id"], section.StationID(station)); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleVehicles(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	l, err := s.svc.Line(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	url := s.cfg.GTFSRT.VehiclePositionsURL
	if url == "" {
		s.writeError(w, r, errRealtimeUnavailable)
		return
	}
	stations, err := s.svc.LineStations(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	vehicles, err := s.realtime.FetchVehicles(r.Context(), url)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formatter.WrapVehicles(l.ID, gtfsrt.Place(vehicles, stations, l.RouteRef)))
}

func (s *Server) writeLine(w http.ResponseWriter, r *http.Request, status int, l *line.Line) {
	stations, err := s.svc.LineStations(r.Context(), l.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res := formatter.WrapLine(l, stations)
	if wantsXML(r) {
		writeXML(w, status, formatter.BuildLineXML(res))
		return
	}
	writeJSON(w, status, res)
}
