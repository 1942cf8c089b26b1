package linesections

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/exp/slog"

	"github.com/theoremus-urban-solutions/line-sections/gtfsrt"
	"github.com/theoremus-urban-solutions/line-sections/line"
)

var (
	errInvalidRequest      = errors.New("invalid request")
	errRealtimeUnavailable = errors.New("realtime feed not configured")
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps a service error to an HTTP status.
func statusFor(err error) int {
	switch {
	case line.IsNotFound(err):
		return http.StatusNotFound
	case line.IsRejected(err), errors.Is(err, errInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, errRealtimeUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, gtfsrt.ErrFeedUnavailable), errors.Is(err, gtfsrt.ErrInvalidFeed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeXML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.log.Log(r.Context(), level, "request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)

	msg := err.Error()
	switch {
	case status == http.StatusInternalServerError:
		msg = http.StatusText(status)
	case errors.Is(err, gtfsrt.ErrFeedUnavailable):
		msg = "realtime feed unavailable"
	case errors.Is(err, gtfsrt.ErrInvalidFeed):
		msg = "realtime feed returned invalid data"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
