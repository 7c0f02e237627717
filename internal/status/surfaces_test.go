package status

import (
	"testing"
	"time"

	"github.com/ink102/studio-status/internal/hours"
)

func TestDisplay_LoadingBeforeFirstTick(t *testing.T) {
	view := NewDisplay().View()
	if view.Ready {
		t.Fatal("display should not be ready before first render")
	}
	if view.Indicator.Label != "Loading..." {
		t.Fatalf("label = %q", view.Indicator.Label)
	}
}

func TestTransitionLog_TracksChanges(t *testing.T) {
	tl := NewTransitionLog()

	snaps := []hours.Classification{hours.Open, hours.Open, hours.ClosingSoon, hours.Closed}
	for i, c := range snaps {
		snap := Snapshot{
			Tick:        uint64(i + 1),
			EvaluatedAt: time.Date(2024, time.March, 6, 19, i, 0, 0, time.UTC),
			Result:      hours.Result{Classification: c},
		}
		if err := tl.Render(snap); err != nil {
			t.Fatalf("render %d: %v", i, err)
		}
		if tl.last != c || !tl.seen {
			t.Fatalf("after tick %d last = %s", i+1, tl.last)
		}
	}
}

func TestViewBuilders(t *testing.T) {
	snap := Snapshot{
		Tick:      7,
		LocalTime: "9:00 AM",
		Result: hours.Result{
			Classification: hours.Closed,
			Headline:       hours.HeadlineClosed,
			Detail:         "Opens today at 1 PM",
		},
	}

	banner := BannerData(snap)
	if banner.StatusClass != "closed" || banner.Headline != hours.HeadlineClosed || banner.LocalTime != "9:00 AM" || banner.Tick != 7 {
		t.Fatalf("banner = %+v", banner)
	}
	indicator := IndicatorData(snap)
	if indicator.StatusClass != "closed" || indicator.Label != "Closed" {
		t.Fatalf("indicator = %+v", indicator)
	}
}
