package utils

import "time"

func Ptr[T any](v T) *T {
	return &v
}

func Val[T any](p *T) T {
	if p != nil {
		return *p
	}
	var zero T
	return zero
}

// Clock returns the instant a request is evaluated at. Services take one
// instead of calling time.Now so tests can pin the wall clock.
type Clock func() time.Time

// SystemClock is the production Clock.
func SystemClock() time.Time { return time.Now() }

// DateOnlyIn returns midnight UTC of t's calendar date in loc, which is how
// DATE columns compare.
func DateOnlyIn(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
