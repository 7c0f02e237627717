package layouts

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/ink102/studio-status/internal/models"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// Base wraps body in the site shell with palette CSS and htmx loaded.
func Base(title string, palette *models.StatusPalette, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>%s</title><style>%s</style><script src="%s"></script></head><body>`,
			templ.EscapeString(title),
			getPaletteCSS(palette),
			htmxScript,
		)
		if err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, `</body></html>`)
		return err
	})
}
