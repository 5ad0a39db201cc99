package utils

import (
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

var usFed = cal.NewBusinessCalendar()

func init() {
	usFed.AddHoliday(
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
}

// IsUSFedHoliday reports whether t's calendar date is a federal holiday,
// either on the day itself or as the observed weekday.
func IsUSFedHoliday(t time.Time) bool {
	actual, observed, _ := usFed.IsHoliday(t)
	return actual || observed
}
