// Package hours evaluates a studio's weekly opening hours against a point in
// time. Everything here is pure: callers supply the instant and the schedule.
package hours

import (
	"fmt"
	"time"
)

const daysPerWeek = 7

// DayHours is one day's opening window in fractional hours (13.5 = 1:30 PM).
type DayHours struct {
	Open  float64
	Close float64
}

// IsClosed reports whether the window admits no open time at all.
func (d DayHours) IsClosed() bool {
	return d.Open == d.Close
}

// ScheduleError describes a rejected schedule entry.
type ScheduleError struct {
	Day    time.Weekday
	Reason string
}

func (e ScheduleError) Error() string {
	if e.Day < time.Sunday || e.Day > time.Saturday {
		return fmt.Sprintf("day %d: %s", int(e.Day), e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Day, e.Reason)
}

// WeeklySchedule maps each weekday to optional opening hours. The zero value
// is a schedule that is closed every day. Values are copied, never shared.
type WeeklySchedule struct {
	days [daysPerWeek]DayHours
	set  [daysPerWeek]bool
}

// NewWeeklySchedule validates days and builds an immutable schedule. Days
// absent from the map are closed all day, as are days with Open == Close.
func NewWeeklySchedule(days map[time.Weekday]DayHours) (WeeklySchedule, error) {
	var s WeeklySchedule
	for day, h := range days {
		if err := validateDay(day, h); err != nil {
			return WeeklySchedule{}, err
		}
		if h.IsClosed() {
			continue
		}
		s.days[day] = h
		s.set[day] = true
	}
	return s, nil
}

// MustWeeklySchedule is NewWeeklySchedule for literals known to be valid.
func MustWeeklySchedule(days map[time.Weekday]DayHours) WeeklySchedule {
	s, err := NewWeeklySchedule(days)
	if err != nil {
		panic(err)
	}
	return s
}

func validateDay(day time.Weekday, h DayHours) error {
	if day < time.Sunday || day > time.Saturday {
		return ScheduleError{Day: day, Reason: "day of week must be between 0 and 6"}
	}
	if h.Open < 0 {
		return ScheduleError{Day: day, Reason: fmt.Sprintf("open %.2f is before midnight", h.Open)}
	}
	if h.Close > 24 {
		return ScheduleError{Day: day, Reason: fmt.Sprintf("close %.2f is past midnight", h.Close)}
	}
	if h.Open > h.Close {
		return ScheduleError{Day: day, Reason: fmt.Sprintf("open %s must be before close %s", FormatHour(h.Open), FormatHour(h.Close))}
	}
	return nil
}

// Hours returns the day's window and false when the studio is closed all day.
func (s WeeklySchedule) Hours(day time.Weekday) (DayHours, bool) {
	if day < time.Sunday || day > time.Saturday {
		return DayHours{}, false
	}
	return s.days[day], s.set[day]
}

// IsClosedAllWeek reports whether no day has hours.
func (s WeeklySchedule) IsClosedAllWeek() bool {
	for _, ok := range s.set {
		if ok {
			return false
		}
	}
	return true
}

// Day is one row of the week as returned by Days.
type Day struct {
	Weekday time.Weekday
	Hours   DayHours
	Open    bool
}

// Days lists Sunday through Saturday.
func (s WeeklySchedule) Days() []Day {
	out := make([]Day, 0, daysPerWeek)
	for i := 0; i < daysPerWeek; i++ {
		out = append(out, Day{
			Weekday: time.Weekday(i),
			Hours:   s.days[i],
			Open:    s.set[i],
		})
	}
	return out
}
