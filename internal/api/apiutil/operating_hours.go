package apiutil

import (
	"time"

	"github.com/ink102/studio-status/internal/hours"
	operatinghourstempl "github.com/ink102/studio-status/internal/templates/components/operatinghours"
)

// WeekData lays out s Sunday first for display, flagging today.
func WeekData(s hours.WeeklySchedule, today time.Weekday, loc *time.Location) operatinghourstempl.WeekData {
	week := operatinghourstempl.WeekData{Days: make([]operatinghourstempl.DayHours, 0, 7)}
	if loc != nil {
		week.Timezone = loc.String()
	}
	for _, day := range s.Days() {
		entry := operatinghourstempl.DayHours{
			DayOfWeek: int64(day.Weekday),
			DayName:   day.Weekday.String(),
			IsClosed:  !day.Open,
			IsToday:   day.Weekday == today,
		}
		if day.Open {
			entry.OpensAt = hours.FormatHour(day.Hours.Open)
			entry.ClosesAt = hours.FormatHour(day.Hours.Close)
		}
		week.Days = append(week.Days, entry)
	}
	return week
}
