package operatinghours

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// WeekList renders the opening hours as a definition list, today highlighted.
func WeekList(week WeekData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<dl class="operating-hours">`); err != nil {
			return err
		}
		for _, day := range week.Days {
			hours := "Closed"
			if !day.IsClosed {
				hours = day.OpensAt + " - " + day.ClosesAt
			}
			_, err := fmt.Fprintf(w, `<div class="%s"><dt>%s</dt><dd>%s</dd></div>`,
				templ.EscapeString(templ.Classes("operating-hours-day", templ.KV("today", day.IsToday)).String()),
				templ.EscapeString(day.DayName),
				templ.EscapeString(hours),
			)
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</dl>`)
		return err
	})
}
