package hours

import (
	"errors"
	"testing"
	"time"
)

func TestNewWeeklySchedule_Rejects(t *testing.T) {
	tests := []struct {
		name string
		days map[time.Weekday]DayHours
	}{
		{name: "open after close", days: map[time.Weekday]DayHours{time.Monday: {Open: 20, Close: 11}}},
		{name: "negative open", days: map[time.Weekday]DayHours{time.Monday: {Open: -1, Close: 11}}},
		{name: "close past midnight", days: map[time.Weekday]DayHours{time.Friday: {Open: 20, Close: 26}}},
		{name: "day out of range", days: map[time.Weekday]DayHours{time.Weekday(7): {Open: 11, Close: 20}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWeeklySchedule(tt.days)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var schedErr ScheduleError
			if !errors.As(err, &schedErr) {
				t.Fatalf("expected ScheduleError, got %T: %v", err, err)
			}
		})
	}
}

func TestNewWeeklySchedule_ClosedDays(t *testing.T) {
	s, err := NewWeeklySchedule(map[time.Weekday]DayHours{
		time.Monday:  {Open: 11, Close: 20},
		time.Tuesday: {Open: 9, Close: 9},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := s.Hours(time.Monday); !ok {
		t.Fatal("monday should be open")
	}
	if _, ok := s.Hours(time.Tuesday); ok {
		t.Fatal("tuesday with equal open and close should be closed")
	}
	if _, ok := s.Hours(time.Sunday); ok {
		t.Fatal("missing sunday should be closed")
	}
	if s.IsClosedAllWeek() {
		t.Fatal("schedule has hours")
	}

	days := s.Days()
	if len(days) != 7 || days[0].Weekday != time.Sunday || days[6].Weekday != time.Saturday {
		t.Fatalf("unexpected days: %+v", days)
	}
	if !days[1].Open || days[1].Hours.Close != 20 {
		t.Fatalf("monday row: %+v", days[1])
	}
}

func TestWeeklySchedule_CopiesAreIndependent(t *testing.T) {
	input := map[time.Weekday]DayHours{time.Monday: {Open: 11, Close: 20}}
	s := MustWeeklySchedule(input)

	input[time.Monday] = DayHours{Open: 1, Close: 2}
	delete(input, time.Monday)

	h, ok := s.Hours(time.Monday)
	if !ok || h.Open != 11 || h.Close != 20 {
		t.Fatalf("schedule changed after input mutation: %+v %v", h, ok)
	}
}

func TestScheduleError_Message(t *testing.T) {
	err := ScheduleError{Day: time.Monday, Reason: "broken"}
	if err.Error() != "Monday: broken" {
		t.Fatalf("Error() = %q", err.Error())
	}
}
