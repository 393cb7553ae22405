package store

import (
	"time"

	"github.com/google/uuid"
)

// TimeFormat is the canonical node timestamp layout: ISO-8601 at second
// precision, 19 characters, no timezone.
const TimeFormat = "2006-01-02T15:04:05"

// Clock supplies the wall time stamped onto date_added and date_modified.
// The store defaults to the system clock; tests substitute a fixed one.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// GUIDSource generates node identifiers. The default source produces
// random canonical UUID strings (36 characters).
type GUIDSource interface {
	NewGUID() string
}

type uuidSource struct{}

func (uuidSource) NewGUID() string { return uuid.NewString() }

// now renders the clock's current time in TimeFormat.
func (s *Store) now() string { return s.clock.Now().Format(TimeFormat) }
