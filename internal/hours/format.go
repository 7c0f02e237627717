package hours

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatHour renders a fractional hour on a 12-hour clock, dropping the
// minutes when they are zero: 11 -> "11 AM", 13.5 -> "1:30 PM".
func FormatHour(hour float64) string {
	h := int(math.Floor(hour))
	m := int(math.Round((hour - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	h = ((h % 24) + 24) % 24

	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	if m == 0 {
		return fmt.Sprintf("%d %s", display, period)
	}
	return fmt.Sprintf("%d:%02d %s", display, m, period)
}

// FormatClock renders a wall-clock time the way the banner shows it.
func FormatClock(t time.Time) string {
	return t.Format("3:04 PM")
}

// ParseClock accepts "13:30", "1:30 PM" or "1 PM" and returns fractional
// hours. "24:00" is accepted as end of day.
func ParseClock(raw string) (float64, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return 0, fmt.Errorf("time is required")
	}
	if raw == "24:00" {
		return 24, nil
	}
	for _, layout := range []string{"15:04", "3:04 PM", "3:04PM", "3 PM", "3PM"} {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return float64(parsed.Hour()) + float64(parsed.Minute())/60, nil
		}
	}
	return 0, fmt.Errorf("%q must be in HH:MM or H:MM AM/PM format", raw)
}

func pluralMinutes(n int) string {
	if n == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", n)
}
