package utils

import "time"

// Contractors may collect the PIN on weekdays within [start, end) local time.
const (
	ServiceWindowStartHour = 8
	ServiceWindowEndHour   = 17
)

type WindowStatus int

const (
	WindowOpen WindowStatus = iota
	WindowClosedWeekend
	WindowClosedOffHours
	WindowClosedHoliday
)

func (s WindowStatus) String() string {
	switch s {
	case WindowOpen:
		return "open"
	case WindowClosedWeekend:
		return "weekend"
	case WindowClosedOffHours:
		return "off_hours"
	case WindowClosedHoliday:
		return "holiday"
	default:
		return "unknown"
	}
}

// ServiceWindow evaluates the access policy in the property's time zone.
type ServiceWindow struct {
	Location        *time.Location
	ObserveHolidays bool
}

func (w ServiceWindow) location() *time.Location {
	if w.Location == nil {
		return time.UTC
	}
	return w.Location
}

// Evaluate classifies now. Weekend takes precedence over the hour check so
// a Saturday morning gets the weekend notice.
func (w ServiceWindow) Evaluate(now time.Time) WindowStatus {
	local := now.In(w.location())

	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return WindowClosedWeekend
	}
	if w.ObserveHolidays && IsUSFedHoliday(local) {
		return WindowClosedHoliday
	}
	if h := local.Hour(); h < ServiceWindowStartHour || h >= ServiceWindowEndHour {
		return WindowClosedOffHours
	}
	return WindowOpen
}

// Today is the property-local calendar date of now, as a DATE value.
func (w ServiceWindow) Today(now time.Time) time.Time {
	return DateOnlyIn(now, w.location())
}
