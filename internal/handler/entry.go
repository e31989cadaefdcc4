package handler

import (
	"net/http"

	"trip-planner-service/internal/domain"
)

// createEntryRequest is the JSON body of POST /api/logs/{logID}/entries.
type createEntryRequest struct {
	Status        domain.DutyStatus `json:"status"`
	StartHour     float64           `json:"start_hour"`
	DurationHours float64           `json:"duration_hours"`
	Remarks       string            `json:"remarks"`
}

// ListEntries handles GET /api/logs/{logID}/entries.
func (s *Server) ListEntries(w http.ResponseWriter, r *http.Request) {
	logID, err := pathUUID(r, "logID")
	if err != nil {
		s.respondRequestError(w, r, err.Error())
		return
	}

	entries, err := s.logs.ListEntries(r.Context(), logID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, map[string]any{"data": entries})
}

// CreateEntry handles POST /api/logs/{logID}/entries.
func (s *Server) CreateEntry(w http.ResponseWriter, r *http.Request) {
	logID, err := pathUUID(r, "logID")
	if err != nil {
		s.respondRequestError(w, r, err.Error())
		return
	}

	var body createEntryRequest
	if err := decodeJSON(r, &body); err != nil {
		s.respondRequestError(w, r, err.Error())
		return
	}

	entry, err := s.logs.CreateEntry(r.Context(), logID, domain.LogEntry{
		Status:        body.Status,
		StartHour:     body.StartHour,
		DurationHours: body.DurationHours,
		Remarks:       body.Remarks,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusCreated, entry)
}

// DeleteEntry handles DELETE /api/logs/{logID}/entries/{entryID}.
func (s *Server) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	logID, err := pathUUID(r, "logID")
	if err != nil {
		s.respondRequestError(w, r, err.Error())
		return
	}
	entryID, err := pathUUID(r, "entryID")
	if err != nil {
		s.respondRequestError(w, r, err.Error())
		return
	}

	if err := s.logs.DeleteEntry(r.Context(), logID, entryID); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
