package handler

import (
	"net/http"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/service"
)

// planTripRequest is the JSON body of POST /api/trips.
type planTripRequest struct {
	DriverName      string          `json:"driver_name"`
	CurrentLocation domain.Location `json:"current_location"`
	PickupLocation  domain.Location `json:"pickup_location"`
	DropoffLocation domain.Location `json:"dropoff_location"`
	StartTime       time.Time       `json:"start_time"`
	CycleUsedHours  float64         `json:"cycle_used_hours"`
}

// tripDetailResponse is the body of GET /api/trips/{id}.
type tripDetailResponse struct {
	Trip      domain.Trip       `json:"trip"`
	DailyLogs []domain.DailyLog `json:"daily_logs"`
}

// listTripsResponse is the paginated body of GET /api/trips.
type listTripsResponse struct {
	Data       []domain.Trip `json:"data"`
	Pagination pagination    `json:"pagination"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// PlanTrip handles POST /api/trips: plan, persist, and return the full plan.
func (s *Server) PlanTrip(w http.ResponseWriter, r *http.Request) {
	var body planTripRequest
	if err := decodeJSON(r, &body); err != nil {
		s.respondRequestError(w, r, err.Error())
		return
	}

	res, err := s.trips.Plan(r.Context(), service.PlanRequest{
		DriverName:      body.DriverName,
		CurrentLocation: body.CurrentLocation,
		PickupLocation:  body.PickupLocation,
		DropoffLocation: body.DropoffLocation,
		StartTime:       body.StartTime,
		CycleUsedHours:  body.CycleUsedHours,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusCreated, res)
}

// ListTrips handles GET /api/trips.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	trips, total, err := s.trips.List(r.Context(), params)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, listTripsResponse{
		Data: trips,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTrip handles GET /api/trips/{tripID}: the trip with its daily logs.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondRequestError(w, r, err.Error())
		return
	}

	trip, logs, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, tripDetailResponse{Trip: trip, DailyLogs: logs})
}

// DeleteTrip handles DELETE /api/trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondRequestError(w, r, err.Error())
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TripLogs handles GET /api/trips/{tripID}/logs.
func (s *Server) TripLogs(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondRequestError(w, r, err.Error())
		return
	}

	logs, err := s.trips.Logs(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, map[string]any{"data": logs})
}

// TripCycle handles GET /api/trips/{tripID}/cycle. The optional ?as_of=
// query parameter is RFC 3339; it defaults to now.
func (s *Server) TripCycle(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		s.respondRequestError(w, r, err.Error())
		return
	}

	asOf := time.Now().UTC()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		asOf, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			s.respondRequestError(w, r, "invalid as_of: must be an RFC 3339 timestamp")
			return
		}
	}

	summary, err := s.cycles.Rolling(r.Context(), id, asOf)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, summary)
}
