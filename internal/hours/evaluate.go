package hours

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Classification is the coarse state the banner and indicator colour by.
type Classification int

const (
	Closed Classification = iota
	Open
	ClosingSoon
	OpeningSoon
)

// String returns the CSS state class for c.
func (c Classification) String() string {
	switch c {
	case Open:
		return "open"
	case ClosingSoon:
		return "closing-soon"
	case OpeningSoon:
		return "opening-soon"
	default:
		return "closed"
	}
}

// Label is the short text shown on the back-to-top indicator.
func (c Classification) Label() string {
	switch c {
	case Open:
		return "Open"
	case ClosingSoon:
		return "Closing Soon"
	case OpeningSoon:
		return "Opening Soon"
	default:
		return "Closed"
	}
}

func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

const (
	HeadlineOpen        = "Open Now"
	HeadlineClosingSoon = "Closing Soon"
	HeadlineOpeningSoon = "Opening Soon"
	HeadlineClosed      = "Currently Closed"
	HeadlineClosedToday = "Closed Today"

	// DetailHoursUnavailable is reported when no day of the week has hours.
	DetailHoursUnavailable = "Hours unavailable"
)

// DetailStyle selects how an imminent opening is described.
type DetailStyle int

const (
	// DetailClock reads "Opens at 1 PM".
	DetailClock DetailStyle = iota
	// DetailCountdown reads "Opens in 45 minutes".
	DetailCountdown
)

func (d DetailStyle) String() string {
	if d == DetailCountdown {
		return "countdown"
	}
	return "clock"
}

// ParseDetailStyle accepts "clock" or "countdown"; empty means clock.
func ParseDetailStyle(raw string) (DetailStyle, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "clock":
		return DetailClock, nil
	case "countdown":
		return DetailCountdown, nil
	default:
		return DetailClock, fmt.Errorf("opening soon detail must be clock or countdown, got %q", raw)
	}
}

// Policy holds the thresholds that turn Open/Closed into the "soon" states.
type Policy struct {
	ClosingSoon       time.Duration
	OpeningSoon       time.Duration
	OpeningSoonDetail DetailStyle
}

// DefaultPolicy matches the studio's live site: one hour before closing,
// two hours before opening, opening time shown as a clock time.
func DefaultPolicy() Policy {
	return Policy{
		ClosingSoon:       time.Hour,
		OpeningSoon:       2 * time.Hour,
		OpeningSoonDetail: DetailClock,
	}
}

// Result is one evaluation. It is comparable; equal inputs give equal results.
type Result struct {
	Classification Classification `json:"classification"`
	Headline       string         `json:"headline"`
	Detail         string         `json:"detail"`
}

// Instant is a wall-clock moment in the studio's own zone.
type Instant struct {
	Day  time.Weekday
	Hour float64
	Time time.Time
}

// InstantAt decomposes t in loc. The hour keeps minute resolution so that
// every evaluation inside the same minute agrees.
func InstantAt(t time.Time, loc *time.Location) Instant {
	if loc != nil {
		t = t.In(loc)
	}
	return Instant{
		Day:  t.Weekday(),
		Hour: float64(t.Hour()) + float64(t.Minute())/60,
		Time: t,
	}
}

// thresholds are compared with a small tolerance so that minute-aligned
// instants are not lost to float rounding (20 - 19.6667 vs 20/60).
const epsilon = 1e-9

// Evaluate classifies in against s. It never fails.
func Evaluate(in Instant, s WeeklySchedule, p Policy) Result {
	today, ok := s.Hours(in.Day)
	if !ok {
		next, found := FindNextOpen(in.Day, s)
		return Result{
			Classification: Closed,
			Headline:       HeadlineClosedToday,
			Detail:         DescribeNextOpen(next, found),
		}
	}

	if in.Hour >= today.Open && in.Hour < today.Close {
		remaining := today.Close - in.Hour
		if remaining <= p.ClosingSoon.Hours()+epsilon {
			return Result{
				Classification: ClosingSoon,
				Headline:       HeadlineClosingSoon,
				Detail:         "Closes in " + pluralMinutes(minutes(remaining)),
			}
		}
		return Result{
			Classification: Open,
			Headline:       HeadlineOpen,
			Detail:         "Closes at " + FormatHour(today.Close),
		}
	}

	if in.Hour < today.Open {
		until := today.Open - in.Hour
		if until <= p.OpeningSoon.Hours()+epsilon {
			detail := "Opens at " + FormatHour(today.Open)
			if p.OpeningSoonDetail == DetailCountdown {
				detail = "Opens in " + pluralMinutes(minutes(until))
			}
			return Result{
				Classification: OpeningSoon,
				Headline:       HeadlineOpeningSoon,
				Detail:         detail,
			}
		}
	}

	next, found := NextOpen(in, s)
	return Result{
		Classification: Closed,
		Headline:       HeadlineClosed,
		Detail:         DescribeNextOpen(next, found),
	}
}

func minutes(hours float64) int {
	return int(math.Round(hours * 60))
}

// NextOpening locates an opening relative to a reference day.
// Offset 0 is the reference day itself, 1 the day after, up to 7.
type NextOpening struct {
	Offset int
	Day    time.Weekday
	Open   float64
}

// FindNextOpen scans the seven days after from, wrapping Saturday to Sunday,
// and returns the first with hours. It reports false for a schedule with no
// hours on any day.
func FindNextOpen(from time.Weekday, s WeeklySchedule) (NextOpening, bool) {
	for offset := 1; offset <= daysPerWeek; offset++ {
		day := time.Weekday((int(from) + offset) % daysPerWeek)
		if h, ok := s.Hours(day); ok {
			return NextOpening{Offset: offset, Day: day, Open: h.Open}, true
		}
	}
	return NextOpening{}, false
}

// NextOpen is FindNextOpen that also considers a later opening today.
func NextOpen(in Instant, s WeeklySchedule) (NextOpening, bool) {
	if h, ok := s.Hours(in.Day); ok && in.Hour < h.Open {
		return NextOpening{Offset: 0, Day: in.Day, Open: h.Open}, true
	}
	return FindNextOpen(in.Day, s)
}

// DescribeNextOpen renders the next opening for the banner's detail line.
func DescribeNextOpen(next NextOpening, ok bool) string {
	if !ok {
		return DetailHoursUnavailable
	}
	at := FormatHour(next.Open)
	switch next.Offset {
	case 0:
		return "Opens today at " + at
	case 1:
		return "Opens tomorrow at " + at
	case daysPerWeek:
		return fmt.Sprintf("Opens next %s at %s", next.Day, at)
	default:
		return fmt.Sprintf("Opens %s at %s", next.Day, at)
	}
}
