package handler

import (
	"errors"
	"net/http"
	"strings"

	"trip-planner-service/internal/domain"
)

// ErrorResponse is the JSON error envelope for all non-2xx responses.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps a service error onto the HTTP error envelope:
// ErrNotFound → 404, ErrValidation → 422, ErrConflict → 409, anything
// else → 500 with the detail logged rather than leaked.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.respondJSON(w, r, http.StatusNotFound,
			ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrValidation):
		s.respondJSON(w, r, http.StatusUnprocessableEntity,
			ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrConflict):
		s.respondJSON(w, r, http.StatusConflict,
			ErrorResponse{Error: ErrorDetail{Code: "conflict", Message: unwrapMessage(err)}})
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		s.respondJSON(w, r, http.StatusInternalServerError,
			ErrorResponse{Error: ErrorDetail{Code: "internal_error", Message: "internal server error"}})
	}
}

// respondRequestError rejects a request before it reaches the service layer
// (malformed body, bad path or query parameter).
func (s *Server) respondRequestError(w http.ResponseWriter, r *http.Request, message string) {
	s.respondJSON(w, r, http.StatusUnprocessableEntity,
		ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}})
}

// unwrapMessage strips the layer-qualification prefixes from a wrapped
// sentinel error, e.g. "service.TripService.Plan: validation error: x" → "x".
// Only leading dotted identifiers and a leading sentinel are removed, so a
// detail whose text happens to contain ": " or echo a sentinel is never cut
// mid-message.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for {
		i := strings.Index(msg, ": ")
		if i < 0 {
			break
		}
		head := msg[:i]
		if strings.Contains(head, " ") || !strings.Contains(head, ".") {
			break
		}
		msg = msg[i+2:]
	}
	for _, sentinel := range []string{
		"validation error: ",
		"conflict: ",
		"not found: ",
	} {
		if strings.HasPrefix(msg, sentinel) {
			return msg[len(sentinel):]
		}
	}
	return msg
}
