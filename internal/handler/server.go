// Package handler implements the HTTP handlers for the trip planner API.
// Handlers are methods on Server, split into domain-specific files
// (health.go, trip.go, entry.go) that all share the same Server struct.
// Routing is plain chi; handlers decode JSON, call a service, and map
// domain sentinel errors to HTTP status codes.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/hos"
	"trip-planner-service/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Plan(ctx context.Context, req service.PlanRequest) (service.PlanResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, []domain.DailyLog, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Logs(ctx context.Context, tripID uuid.UUID) ([]domain.DailyLog, error)
}

// LogServicer defines the operations the log entry handlers depend on.
type LogServicer interface {
	CreateEntry(ctx context.Context, dailyLogID uuid.UUID, entry domain.LogEntry) (domain.LogEntry, error)
	DeleteEntry(ctx context.Context, dailyLogID, entryID uuid.UUID) error
	ListEntries(ctx context.Context, dailyLogID uuid.UUID) ([]domain.LogEntry, error)
}

// CycleServicer defines the rolling cycle computation the handlers depend on.
type CycleServicer interface {
	Rolling(ctx context.Context, tripID uuid.UUID, asOf time.Time) (hos.CycleSummary, error)
}

// Server holds the handlers' dependencies. Methods live in domain-specific
// files but all operate on this struct.
type Server struct {
	trips  TripServicer
	logs   LogServicer
	cycles CycleServicer
	log    *slog.Logger
}

// NewServer constructs the Server with all its dependencies. log may be nil.
func NewServer(trips TripServicer, logs LogServicer, cycles CycleServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{trips: trips, logs: logs, cycles: cycles, log: log}
}

// Routes returns the API route tree. Middleware is attached by the caller;
// this router carries only paths and handlers.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.PlanTrip)
			r.Get("/", s.ListTrips)
			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Delete("/", s.DeleteTrip)
				r.Get("/logs", s.TripLogs)
				r.Get("/cycle", s.TripCycle)
			})
		})
		r.Route("/logs/{logID}/entries", func(r chi.Router) {
			r.Get("/", s.ListEntries)
			r.Post("/", s.CreateEntry)
			r.Delete("/{entryID}", s.DeleteEntry)
		})
	})

	return r
}
