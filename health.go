package linesections

import (
	"net/http"
)

type healthResponse struct {
	Status          string `json:"status"`
	RealtimeEnabled bool   `json:"realtime_enabled"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		RealtimeEnabled: s.cfg.GTFSRT.VehiclePositionsURL != "",
	})
}
