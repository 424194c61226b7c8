// ABOUTME: HTTP server exposing the fitness tracker as a JSON API.
// ABOUTME: Routes with gorilla/mux, CORS via rs/cors, metrics on /metrics.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/tracker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Server serves the tracker over HTTP.
type Server struct {
	tracker  *tracker.Tracker
	logger   *log.Logger
	metrics  *Instrumentation
	registry *prometheus.Registry
	handler  http.Handler
}

// NewServer builds the router. Metrics are registered on reg, which is
// also what /metrics exposes.
func NewServer(t *tracker.Tracker, logger *log.Logger, reg *prometheus.Registry) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Server{
		tracker:  t,
		logger:   logger,
		metrics:  NewInstrumentationWithRegisterer("fitness", "api", reg),
		registry: reg,
	}

	s.observe(t.Snapshot())
	t.Subscribe(s.observe)

	s.handler = s.routerSetup()
	return s
}

// observe keeps the state gauges current.
func (s *Server) observe(state models.State) {
	s.metrics.GaugeActivities.Set(float64(len(state.Activities)))
	open := 0
	for _, g := range state.Goals {
		if !g.Completed {
			open++
		}
	}
	s.metrics.GaugeOpenGoals.Set(float64(open))
}

// Handler returns the full HTTP handler including CORS.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routerSetup() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/activities", s.handleListActivities).Methods("GET")
	api.HandleFunc("/activities", s.handleAddActivity).Methods("POST")
	api.HandleFunc("/activities/{id}", s.handleDeleteActivity).Methods("DELETE")

	api.HandleFunc("/goals", s.handleListGoals).Methods("GET")
	api.HandleFunc("/goals", s.handleAddGoal).Methods("POST")
	api.HandleFunc("/goals/{id}", s.handleUpdateGoal).Methods("PATCH")
	api.HandleFunc("/goals/{id}/complete", s.handleCompleteGoal).Methods("POST")
	api.HandleFunc("/goals/{id}", s.handleDeleteGoal).Methods("DELETE")

	api.HandleFunc("/stats", s.handleGetStats).Methods("GET")
	api.HandleFunc("/stats", s.handleUpdateStats).Methods("PATCH")

	api.HandleFunc("/dashboard", s.handleDashboard).Methods("GET")
	api.HandleFunc("/calendar/{year:[0-9]{4}}/{month:[0-9]{1,2}}", s.handleCalendar).Methods("GET")

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})

	r.Use(panicRecovery(s.metrics, s.logger))
	r.Use(logRequest(s.logger))
	r.Use(requestMetrics(s.metrics))

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      time.Minute,
		ReadTimeout:       time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen and serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("http server shutting down")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
