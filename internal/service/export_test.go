package service

import "time"

// SetNow overrides the LogService clock for tests.
func SetNow(s *LogService, now func() time.Time) {
	s.now = now
}
