package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing coordinates, entry crossing midnight).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write collides with existing domain state,
// such as a duplicate (trip, day) daily log or an edit to a past day's log.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("conflict")

// ErrRouteUnavailable is returned by route providers when the external
// routing service is unreachable or returns no usable route. Callers recover
// by falling back to a great-circle estimate; this error never reaches the
// HTTP layer on the trip planning path.
var ErrRouteUnavailable = errors.New("route unavailable")
