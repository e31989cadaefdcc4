// Package service contains the business logic for the trip planner API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// provider calls. No SQL and no HTTP live here.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/hos"
	"trip-planner-service/internal/repo"
	"trip-planner-service/internal/routing"
)

// RouteProvider is the routing collaborator the trip service depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". The production
// implementation is routing.ORSClient.
type RouteProvider interface {
	GetRoute(ctx context.Context, origin, dest domain.Location) (domain.RouteSegment, error)
}

// Geocoder resolves a free-text address to coordinates. It follows the
// sentinel contract of routing.ORSClient.Geocode: on failure it returns a
// zero-coordinate Location rather than an error, and callers validate the
// result.
type Geocoder interface {
	Geocode(ctx context.Context, address string) domain.Location
}

// PlanRequest is the input to TripService.Plan.
type PlanRequest struct {
	DriverName      string
	CurrentLocation domain.Location
	PickupLocation  domain.Location
	DropoffLocation domain.Location
	StartTime       time.Time
	CycleUsedHours  float64
}

// PlanResult is the full trip plan: the persisted trip plus the computed
// route, stops, logs, and compliance verdict.
type PlanResult struct {
	Trip               domain.Trip           `json:"trip"`
	Segments           []domain.RouteSegment `json:"segments"`
	Stops              []domain.Stop         `json:"stops"`
	TotalDistanceMiles float64               `json:"total_distance_miles"`
	TotalDrivingHours  float64               `json:"total_driving_hours"`
	TotalTripHours     float64               `json:"total_trip_hours"`
	DailyLogs          []domain.DailyLog     `json:"daily_logs"`
	Compliance         hos.Compliance        `json:"compliance"`
	Fuel               hos.Fuel              `json:"fuel"`
	RouteAPIUsed       bool                  `json:"route_api_used"`
}

// TripService implements trip planning and trip CRUD.
type TripService struct {
	trips       repo.TripRepo
	logs        repo.DailyLogRepo
	provider    RouteProvider
	geocoder    Geocoder
	avgSpeedMPH float64
	log         *slog.Logger
}

// NewTripService constructs a TripService. provider may be nil, in which
// case every leg uses the great-circle estimate. geocoder may be nil, in
// which case every location must arrive with coordinates. avgSpeedMPH ≤ 0
// falls back to the default. log may be nil.
func NewTripService(trips repo.TripRepo, logs repo.DailyLogRepo, provider RouteProvider, geocoder Geocoder, avgSpeedMPH float64, log *slog.Logger) *TripService {
	if avgSpeedMPH <= 0 {
		avgSpeedMPH = routing.DefaultAvgSpeedMPH
	}
	if log == nil {
		log = slog.Default()
	}
	return &TripService{
		trips:       trips,
		logs:        logs,
		provider:    provider,
		geocoder:    geocoder,
		avgSpeedMPH: avgSpeedMPH,
		log:         log,
	}
}

// Plan computes and persists a complete HOS-compliant trip plan:
// route (current → pickup → dropoff), mandatory stops, daily logs, and a
// compliance verdict. Address-only locations are geocoded first; one that
// cannot be resolved to coordinates fails validation. Route provider failure
// is recovered per leg by a great-circle estimate; RouteAPIUsed reports
// false when any leg fell back.
func (s *TripService) Plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	req.CurrentLocation = s.resolveLocation(ctx, req.CurrentLocation)
	req.PickupLocation = s.resolveLocation(ctx, req.PickupLocation)
	req.DropoffLocation = s.resolveLocation(ctx, req.DropoffLocation)

	if err := validatePlanRequest(req); err != nil {
		return PlanResult{}, err
	}

	apiUsed := true
	currentToPickup, ok := s.routeLeg(ctx, req.CurrentLocation, req.PickupLocation)
	apiUsed = apiUsed && ok
	pickupToDropoff, ok := s.routeLeg(ctx, req.PickupLocation, req.DropoffLocation)
	apiUsed = apiUsed && ok

	totalDistance := currentToPickup.DistanceMiles + pickupToDropoff.DistanceMiles
	totalDriving := currentToPickup.DrivingHours + pickupToDropoff.DrivingHours

	stops := hos.PlanStops(totalDriving, totalDistance)
	totalTrip := totalDriving + hos.TotalStopHours(stops)

	dayLogs := hos.GenerateDailyLogs(req.StartTime, totalTrip, req.CycleUsedHours, req.DriverName)
	compliance := hos.CheckCompliance(totalTrip, req.CycleUsedHours)
	fuel := hos.FuelRequirement(totalDistance)

	trip, err := s.trips.Create(ctx, domain.Trip{
		DriverName:      req.DriverName,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		StartTime:       req.StartTime,
		CycleUsedHours:  req.CycleUsedHours,
		Status:          domain.TripStatusPlanned,
	})
	if err != nil {
		return PlanResult{}, fmt.Errorf("service.TripService.Plan: %w", err)
	}

	created, err := s.logs.CreateBatch(ctx, mergeByDay(trip.ID, dayLogs))
	if err != nil {
		return PlanResult{}, fmt.Errorf("service.TripService.Plan: %w", err)
	}

	return PlanResult{
		Trip:               trip,
		Segments:           []domain.RouteSegment{currentToPickup, pickupToDropoff},
		Stops:              stops,
		TotalDistanceMiles: totalDistance,
		TotalDrivingHours:  totalDriving,
		TotalTripHours:     totalTrip,
		DailyLogs:          created,
		Compliance:         compliance,
		Fuel:               fuel,
		RouteAPIUsed:       apiUsed,
	}, nil
}

// resolveLocation fills in coordinates for an address-only location via the
// geocoder. Locations that already carry coordinates pass through untouched.
// A failed or unavailable geocode leaves the zero-coordinate sentinel in
// place, which validatePlanRequest then rejects.
func (s *TripService) resolveLocation(ctx context.Context, loc domain.Location) domain.Location {
	if loc.Valid() || loc.Address == "" || s.geocoder == nil {
		return loc
	}
	resolved := s.geocoder.Geocode(ctx, loc.Address)
	if !resolved.Valid() {
		s.log.WarnContext(ctx, "geocoding failed", "address", loc.Address)
		return loc
	}
	return resolved
}

// routeLeg resolves one driving leg, falling back to the great-circle
// estimate when the provider is absent or unavailable. The returned bool
// reports whether the provider supplied the leg.
func (s *TripService) routeLeg(ctx context.Context, origin, dest domain.Location) (domain.RouteSegment, bool) {
	if s.provider == nil {
		return routing.EstimateRoute(origin, dest, s.avgSpeedMPH), false
	}

	seg, err := s.provider.GetRoute(ctx, origin, dest)
	if err != nil {
		s.log.WarnContext(ctx, "route provider failed, using estimate",
			"from", origin.Address, "to", dest.Address, "error", err)
		return routing.EstimateRoute(origin, dest, s.avgSpeedMPH), false
	}
	return seg, true
}

// GetByID returns a single trip with its daily logs attached.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, []domain.DailyLog, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	logs, err := s.logs.ListByTripID(ctx, id)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	if logs == nil {
		logs = []domain.DailyLog{}
	}
	return trip, logs, nil
}

// List returns one page of trips with the total count.
func (s *TripService) List(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Delete removes a trip and, by cascade, its logs and entries.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Logs returns a trip's daily logs, verifying the trip exists first so an
// unknown trip yields not-found rather than an empty list.
func (s *TripService) Logs(ctx context.Context, tripID uuid.UUID) ([]domain.DailyLog, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.TripService.Logs: %w", err)
	}
	logs, err := s.logs.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Logs: %w", err)
	}
	if logs == nil {
		logs = []domain.DailyLog{}
	}
	return logs, nil
}

func validatePlanRequest(req PlanRequest) error {
	if strings.TrimSpace(req.DriverName) == "" {
		return fmt.Errorf("%w: driver_name is required", domain.ErrValidation)
	}
	for _, loc := range []struct {
		name string
		loc  domain.Location
	}{
		{"current_location", req.CurrentLocation},
		{"pickup_location", req.PickupLocation},
		{"dropoff_location", req.DropoffLocation},
	} {
		if !loc.loc.Valid() {
			return fmt.Errorf("%w: %s has no usable coordinates (lat=%g, lon=%g)",
				domain.ErrValidation, loc.name, loc.loc.Lat, loc.loc.Lon)
		}
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: start_time is required", domain.ErrValidation)
	}
	if req.CycleUsedHours < 0 {
		return fmt.Errorf("%w: cycle_used_hours must not be negative (got %g)",
			domain.ErrValidation, req.CycleUsedHours)
	}
	return nil
}

// mergeByDay converts the generator's day sequence into persistable daily
// logs. The simulation can emit two records for one calendar day (a forced
// break day followed by a driving day on the same date); since at most one
// daily log may exist per (trip, day), same-day records are merged by
// summing hours, preferring the driving status, and joining remarks.
func mergeByDay(tripID uuid.UUID, dayLogs []hos.DayLog) []domain.DailyLog {
	var out []domain.DailyLog
	for _, dl := range dayLogs {
		if n := len(out); n > 0 && out[n-1].Day.Equal(dl.Day) {
			prev := &out[n-1]
			prev.DrivingHours += dl.DrivingHours
			prev.OffDutyHours += dl.OffDutyHours
			if dl.Status == domain.StatusDriving {
				prev.Status = domain.StatusDriving
			}
			prev.Remarks = prev.Remarks + "; " + dl.Remarks
			continue
		}
		out = append(out, domain.DailyLog{
			TripID:       tripID,
			Day:          dl.Day,
			DrivingHours: dl.DrivingHours,
			OffDutyHours: dl.OffDutyHours,
			Status:       dl.Status,
			Remarks:      dl.Remarks,
		})
	}
	return out
}
