package linesections

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"golang.org/x/exp/slog"

	"github.com/theoremus-urban-solutions/line-sections/config"
	"github.com/theoremus-urban-solutions/line-sections/gtfsrt"
	"github.com/theoremus-urban-solutions/line-sections/line"
	"github.com/theoremus-urban-solutions/line-sections/utils"
)

// Server exposes a line.Service over HTTP.
type Server struct {
	cfg      config.AppConfig
	svc      *line.Service
	realtime *gtfsrt.Client
	log      *slog.Logger
	validate *validator.Validate

	httpServer *http.Server
}

// NewServer wires handlers for svc. A nil logger means slog.Default().
func NewServer(cfg config.AppConfig, svc *line.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		svc:      svc,
		realtime: gtfsrt.NewClient(utils.Millis(cfg.GTFSRT.TimeoutMS, 5*time.Second)),
		log:      logger.With("component", "http"),
		validate: validator.New(),
	}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: utils.Millis(cfg.Server.ReadHeaderTimeoutMS, 5*time.Second),
		ReadTimeout:       utils.Millis(cfg.Server.ReadTimeoutMS, 10*time.Second),
		WriteTimeout:      utils.Millis(cfg.Server.WriteTimeoutMS, 30*time.Second),
		IdleTimeout:       utils.Millis(cfg.Server.IdleTimeoutMS, 60*time.Second),
	}
	return s
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api.HandleFunc("/stations", s.handleCreateStation).Methods(http.MethodPost)
	api.HandleFunc("/stations", s.handleListStations).Methods(http.MethodGet)
	api.HandleFunc("/stations/{id}", s.handleDeleteStation).Methods(http.MethodDelete)

	api.HandleFunc("/lines", s.handleCreateLine).Methods(http.MethodPost)
	api.HandleFunc("/lines", s.handleListLines).Methods(http.MethodGet)
	api.HandleFunc("/lines/{id}", s.handleGetLine).Methods(http.MethodGet)
	api.HandleFunc("/lines/{id}", s.handleUpdateLine).Methods(http.MethodPut)
	api.HandleFunc("/lines/{id}", s.handleDeleteLine).Methods(http.MethodDelete)
	api.HandleFunc("/lines/{id}/sections", s.handleAddSection).Methods(http.MethodPost)
	api.HandleFunc("/lines/{id}/sections", s.handleRemoveStation).Methods(http.MethodDelete)
	api.HandleFunc("/lines/{id}/vehicles", s.handleVehicles).Methods(http.MethodGet)
	return r
}

// Start begins serving in the background.
func (s *Server) Start() {
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()
	s.log.Info("server listening", "addr", s.httpServer.Addr)
}

// HandleGracefulShutdown blocks until SIGINT, SIGTERM or ctx is done, then
// gives in-flight requests 10s to finish.
func (s *Server) HandleGracefulShutdown(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	s.log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.log.Info("server shut down successfully")
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}
