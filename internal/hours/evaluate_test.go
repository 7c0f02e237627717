package hours

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func studioSchedule(t *testing.T) WeeklySchedule {
	t.Helper()

	weekday := DayHours{Open: 11, Close: 20}
	s, err := NewWeeklySchedule(map[time.Weekday]DayHours{
		time.Sunday:    {Open: 13, Close: 18},
		time.Monday:    weekday,
		time.Tuesday:   weekday,
		time.Wednesday: weekday,
		time.Thursday:  weekday,
		time.Friday:    weekday,
		time.Saturday:  weekday,
	})
	if err != nil {
		t.Fatalf("build schedule: %v", err)
	}
	return s
}

func closedSundaySchedule(t *testing.T) WeeklySchedule {
	t.Helper()

	weekday := DayHours{Open: 11, Close: 20}
	s, err := NewWeeklySchedule(map[time.Weekday]DayHours{
		time.Monday:    weekday,
		time.Tuesday:   weekday,
		time.Wednesday: weekday,
		time.Thursday:  weekday,
		time.Friday:    weekday,
		time.Saturday:  weekday,
	})
	if err != nil {
		t.Fatalf("build schedule: %v", err)
	}
	return s
}

func at(day time.Weekday, hour float64) Instant {
	return Instant{Day: day, Hour: hour}
}

func TestEvaluate_StudioWeek(t *testing.T) {
	schedule := studioSchedule(t)
	policy := DefaultPolicy()

	tests := []struct {
		name    string
		instant Instant
		want    Result
	}{
		{
			name:    "wednesday evening closing soon",
			instant: at(time.Wednesday, 19.75),
			want:    Result{Classification: ClosingSoon, Headline: HeadlineClosingSoon, Detail: "Closes in 15 minutes"},
		},
		{
			name:    "sunday morning before opening",
			instant: at(time.Sunday, 9),
			want:    Result{Classification: Closed, Headline: HeadlineClosed, Detail: "Opens today at 1 PM"},
		},
		{
			name:    "opening boundary counts as open",
			instant: at(time.Tuesday, 11),
			want:    Result{Classification: Open, Headline: HeadlineOpen, Detail: "Closes at 8 PM"},
		},
		{
			name:    "closing boundary counts as closed",
			instant: at(time.Tuesday, 20),
			want:    Result{Classification: Closed, Headline: HeadlineClosed, Detail: "Opens tomorrow at 11 AM"},
		},
		{
			name:    "saturday night opens sunday afternoon",
			instant: at(time.Saturday, 23),
			want:    Result{Classification: Closed, Headline: HeadlineClosed, Detail: "Opens tomorrow at 1 PM"},
		},
		{
			name:    "opening soon shows clock time",
			instant: at(time.Monday, 10),
			want:    Result{Classification: OpeningSoon, Headline: HeadlineOpeningSoon, Detail: "Opens at 11 AM"},
		},
		{
			name:    "one minute left",
			instant: at(time.Friday, 20-1.0/60),
			want:    Result{Classification: ClosingSoon, Headline: HeadlineClosingSoon, Detail: "Closes in 1 minute"},
		},
		{
			name:    "exactly at closing threshold",
			instant: at(time.Friday, 19),
			want:    Result{Classification: ClosingSoon, Headline: HeadlineClosingSoon, Detail: "Closes in 60 minutes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.instant, schedule, policy)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Evaluate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvaluate_OpenWhenFarFromClose(t *testing.T) {
	schedule := studioSchedule(t)
	policy := DefaultPolicy()

	for minute := 11 * 60; minute < 19*60; minute++ {
		got := Evaluate(at(time.Thursday, float64(minute)/60), schedule, policy)
		if got.Classification != Open {
			t.Fatalf("minute %d: classification %s, want open", minute, got.Classification)
		}
	}
}

func TestEvaluate_ClosingSoonMinuteCount(t *testing.T) {
	schedule := studioSchedule(t)
	policy := Policy{ClosingSoon: 30 * time.Minute, OpeningSoon: time.Hour}

	for minute := 19*60 + 30; minute < 20*60; minute++ {
		got := Evaluate(at(time.Monday, float64(minute)/60), schedule, policy)
		if got.Classification != ClosingSoon {
			t.Fatalf("minute %d: classification %s, want closing-soon", minute, got.Classification)
		}
		want := "Closes in " + pluralMinutes(20*60-minute)
		if got.Detail != want {
			t.Fatalf("minute %d: detail %q, want %q", minute, got.Detail, want)
		}
	}

	got := Evaluate(at(time.Monday, 19+29.0/60), schedule, policy)
	if got.Classification != Open {
		t.Fatalf("31 minutes before close: classification %s, want open", got.Classification)
	}
}

func TestEvaluate_OpeningSoonWindow(t *testing.T) {
	schedule := studioSchedule(t)
	policy := Policy{ClosingSoon: time.Hour, OpeningSoon: 90 * time.Minute}

	for minute := 11*60 - 89; minute < 11*60; minute++ {
		got := Evaluate(at(time.Saturday, float64(minute)/60), schedule, policy)
		if got.Classification != OpeningSoon {
			t.Fatalf("minute %d: classification %s, want opening-soon", minute, got.Classification)
		}
	}

	got := Evaluate(at(time.Saturday, 9), schedule, policy)
	if got.Classification != Closed {
		t.Fatalf("two hours before open: classification %s, want closed", got.Classification)
	}
}

func TestEvaluate_OpeningSoonCountdown(t *testing.T) {
	schedule := studioSchedule(t)
	policy := DefaultPolicy()
	policy.OpeningSoonDetail = DetailCountdown

	got := Evaluate(at(time.Sunday, 12.25), schedule, policy)
	want := Result{Classification: OpeningSoon, Headline: HeadlineOpeningSoon, Detail: "Opens in 45 minutes"}
	if got != want {
		t.Fatalf("Evaluate() = %+v, want %+v", got, want)
	}
}

func TestEvaluate_ClosedAllDay(t *testing.T) {
	schedule := closedSundaySchedule(t)
	policy := DefaultPolicy()

	for minute := 0; minute < 24*60; minute += 15 {
		got := Evaluate(at(time.Sunday, float64(minute)/60), schedule, policy)
		want := Result{Classification: Closed, Headline: HeadlineClosedToday, Detail: "Opens tomorrow at 11 AM"}
		if got != want {
			t.Fatalf("minute %d: got %+v, want %+v", minute, got, want)
		}
	}
}

func TestEvaluate_EqualOpenCloseIsClosedDay(t *testing.T) {
	withEqual, err := NewWeeklySchedule(map[time.Weekday]DayHours{
		time.Sunday: {Open: 12, Close: 12},
		time.Monday: {Open: 11, Close: 20},
	})
	if err != nil {
		t.Fatalf("build schedule: %v", err)
	}
	withoutSunday, err := NewWeeklySchedule(map[time.Weekday]DayHours{
		time.Monday: {Open: 11, Close: 20},
	})
	if err != nil {
		t.Fatalf("build schedule: %v", err)
	}

	policy := DefaultPolicy()
	for _, hour := range []float64{0, 11.5, 12, 23.75} {
		a := Evaluate(at(time.Sunday, hour), withEqual, policy)
		b := Evaluate(at(time.Sunday, hour), withoutSunday, policy)
		if a != b {
			t.Fatalf("hour %v: %+v != %+v", hour, a, b)
		}
	}
}

func TestEvaluate_Wraparound(t *testing.T) {
	schedule := closedSundaySchedule(t)

	got := Evaluate(at(time.Saturday, 23), schedule, DefaultPolicy())
	want := Result{Classification: Closed, Headline: HeadlineClosed, Detail: "Opens Monday at 11 AM"}
	if got != want {
		t.Fatalf("Evaluate() = %+v, want %+v", got, want)
	}
}

func TestEvaluate_FullyClosed(t *testing.T) {
	var schedule WeeklySchedule

	got := Evaluate(at(time.Wednesday, 12), schedule, DefaultPolicy())
	want := Result{Classification: Closed, Headline: HeadlineClosedToday, Detail: DetailHoursUnavailable}
	if got != want {
		t.Fatalf("Evaluate() = %+v, want %+v", got, want)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	schedule := studioSchedule(t)
	policy := DefaultPolicy()
	instant := at(time.Wednesday, 19.75)

	first := Evaluate(instant, schedule, policy)
	for i := 0; i < 100; i++ {
		if got := Evaluate(instant, schedule, policy); got != first {
			t.Fatalf("evaluation %d differs: %+v != %+v", i, got, first)
		}
	}
}

func TestFindNextOpen(t *testing.T) {
	schedule := closedSundaySchedule(t)

	for day := time.Sunday; day <= time.Saturday; day++ {
		next, ok := FindNextOpen(day, schedule)
		if !ok {
			t.Fatalf("%s: no next opening", day)
		}
		if next.Offset < 1 || next.Offset > 7 {
			t.Fatalf("%s: offset %d out of range", day, next.Offset)
		}
		if _, open := schedule.Hours(next.Day); !open {
			t.Fatalf("%s: next opening %s has no hours", day, next.Day)
		}
		if next.Day == time.Sunday {
			t.Fatalf("%s: next opening fell on closed Sunday", day)
		}
	}
}

func TestFindNextOpen_SingleDayWrapsFullWeek(t *testing.T) {
	schedule := MustWeeklySchedule(map[time.Weekday]DayHours{
		time.Wednesday: {Open: 10, Close: 14},
	})

	next, ok := FindNextOpen(time.Wednesday, schedule)
	if !ok {
		t.Fatal("expected an opening")
	}
	if next.Offset != 7 || next.Day != time.Wednesday {
		t.Fatalf("next = %+v, want offset 7 on Wednesday", next)
	}
	if got := DescribeNextOpen(next, ok); got != "Opens next Wednesday at 10 AM" {
		t.Fatalf("DescribeNextOpen() = %q", got)
	}
}

func TestFindNextOpen_Empty(t *testing.T) {
	_, ok := FindNextOpen(time.Monday, WeeklySchedule{})
	if ok {
		t.Fatal("expected no opening for an empty schedule")
	}
}

func TestInstantAt_UsesBusinessZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 00:30 UTC on a Thursday is 20:30 Wednesday in New York (EDT).
	utc := time.Date(2024, time.July, 11, 0, 30, 45, 0, time.UTC)
	in := InstantAt(utc, ny)

	if in.Day != time.Wednesday {
		t.Fatalf("day = %s, want Wednesday", in.Day)
	}
	if in.Hour != 20.5 {
		t.Fatalf("hour = %v, want 20.5", in.Hour)
	}

	got := Evaluate(in, studioSchedule(t), DefaultPolicy())
	if got.Classification != Closed {
		t.Fatalf("classification = %s, want closed", got.Classification)
	}
}
