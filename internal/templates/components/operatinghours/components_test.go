package operatinghours

import (
	"bytes"
	"context"
	"testing"
)

func TestWeekList(t *testing.T) {
	week := WeekData{Days: []DayHours{
		{DayOfWeek: 0, DayName: "Sunday", OpensAt: "1 PM", ClosesAt: "6 PM"},
		{DayOfWeek: 1, DayName: "Monday", IsClosed: true, IsToday: true},
	}}

	var buf bytes.Buffer
	if err := WeekList(week).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}

	html := buf.String()
	want := `<dl class="operating-hours">` +
		`<div class="operating-hours-day"><dt>Sunday</dt><dd>1 PM - 6 PM</dd></div>` +
		`<div class="operating-hours-day today"><dt>Monday</dt><dd>Closed</dd></div>` +
		`</dl>`
	if html != want {
		t.Fatalf("week list:\n got %s\nwant %s", html, want)
	}
}
