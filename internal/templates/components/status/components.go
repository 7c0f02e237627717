package status

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const (
	BannerPath    = "/api/v1/status/banner"
	IndicatorPath = "/api/v1/status/indicator"
	RefreshPath   = "/api/v1/status/refresh"
	pollTrigger   = "every 60s"
)

// Banner renders the status banner. It re-polls itself once a minute.
func Banner(data BannerData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div id="business-status-banner" class="%s" data-tick="%d" hx-get="%s" hx-trigger="%s" hx-swap="outerHTML">`+
				`<span class="status-indicator"></span>`+
				`<span class="status-text">%s</span>`+
				`<span class="current-time">%s</span>`+
				`<span class="next-change">%s</span>`+
				`</div>`,
			templ.EscapeString(templ.Classes("business-status-banner", templ.KV(data.StatusClass, data.StatusClass != "")).String()),
			data.Tick,
			BannerPath,
			pollTrigger,
			templ.EscapeString(data.Headline),
			templ.EscapeString(currentTimeText(data.LocalTime)),
			templ.EscapeString(data.Detail),
		)
		return err
	})
}

// Indicator renders the back-to-top button. With oob set it is swapped in
// alongside a banner response so both reflect the same evaluation.
func Indicator(data IndicatorData, oob bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		swap := ""
		if oob {
			swap = ` hx-swap-oob="true"`
		}
		_, err := fmt.Fprintf(w,
			`<button id="back-to-top" type="button" class="%s" aria-label="Back to top"%s>`+
				`<span class="status-dot"></span>`+
				`<span class="status-label">%s</span>`+
				`</button>`,
			templ.EscapeString(templ.Classes("back-to-top", templ.KV(data.StatusClass, data.StatusClass != "")).String()),
			swap,
			templ.EscapeString(data.Label),
		)
		return err
	})
}

// BannerWithIndicator renders a banner plus an out-of-band indicator.
func BannerWithIndicator(banner BannerData, indicator IndicatorData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := Banner(banner).Render(ctx, w); err != nil {
			return err
		}
		return Indicator(indicator, true).Render(ctx, w)
	})
}

// VisibilityRefresh posts a refresh when the tab becomes visible again and
// swaps the banner with the fresh result.
func VisibilityRefresh() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div hidden hx-post="%s" hx-trigger="visibilitychange[document.visibilityState==='visible'] from:document" hx-target="#business-status-banner" hx-swap="outerHTML"></div>`,
			RefreshPath,
		)
		return err
	})
}

func currentTimeText(localTime string) string {
	if localTime == "" {
		return ""
	}
	return "Current time: " + localTime
}
