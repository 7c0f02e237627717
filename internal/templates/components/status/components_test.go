package status

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestBanner(t *testing.T) {
	html := render(t, Banner(BannerData{
		StatusClass: "opening-soon",
		Headline:    "Opening Soon",
		LocalTime:   "11:15 AM",
		Detail:      "Opens at 1 PM",
		Tick:        4,
	}))

	for _, want := range []string{
		`class="business-status-banner opening-soon"`,
		`data-tick="4"`,
		`hx-get="` + BannerPath + `"`,
		`hx-trigger="every 60s"`,
		"Current time: 11:15 AM",
		"Opens at 1 PM",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("banner missing %q:\n%s", want, html)
		}
	}
}

func TestBanner_EscapesText(t *testing.T) {
	html := render(t, Banner(BannerData{StatusClass: "closed", Headline: "<b>Closed</b>"}))
	if strings.Contains(html, "<b>") {
		t.Fatalf("headline not escaped: %s", html)
	}
	if strings.Contains(html, "Current time:") {
		t.Fatalf("empty local time should render nothing: %s", html)
	}
}

func TestIndicator(t *testing.T) {
	inline := render(t, Indicator(IndicatorData{StatusClass: "open", Label: "Open"}, false))
	if !strings.Contains(inline, `class="back-to-top open"`) || strings.Contains(inline, "hx-swap-oob") {
		t.Fatalf("inline indicator: %s", inline)
	}

	oob := render(t, Indicator(IndicatorData{StatusClass: "closed", Label: "Closed"}, true))
	if !strings.Contains(oob, `hx-swap-oob="true"`) {
		t.Fatalf("oob indicator: %s", oob)
	}

	loading := render(t, Indicator(LoadingIndicator(), false))
	if !strings.Contains(loading, `class="back-to-top"`) || !strings.Contains(loading, "Loading...") {
		t.Fatalf("loading indicator: %s", loading)
	}
}

func TestBannerWithIndicator_SameState(t *testing.T) {
	html := render(t, BannerWithIndicator(
		BannerData{StatusClass: "closing-soon", Headline: "Closing Soon"},
		IndicatorData{StatusClass: "closing-soon", Label: "Closing Soon"},
	))

	banner := strings.Index(html, `id="business-status-banner"`)
	indicator := strings.Index(html, `id="back-to-top"`)
	if banner < 0 || indicator < banner {
		t.Fatalf("expected banner then indicator: %s", html)
	}
}

func TestVisibilityRefresh(t *testing.T) {
	html := render(t, VisibilityRefresh())
	if !strings.Contains(html, `hx-post="`+RefreshPath+`"`) || !strings.Contains(html, "visibilitychange") {
		t.Fatalf("visibility refresh: %s", html)
	}
}
