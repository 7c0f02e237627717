package layouts

import (
	"fmt"
	"strings"

	"github.com/ink102/studio-status/internal/hours"
	"github.com/ink102/studio-status/internal/models"
)

var paletteClasses = []hours.Classification{hours.Open, hours.ClosingSoon, hours.OpeningSoon, hours.Closed}

func getPaletteCSS(palette *models.StatusPalette) string {
	p := models.DefaultPalette()
	if palette != nil {
		p = palette.WithDefaults()
	}

	var b strings.Builder
	b.WriteString(":root{")
	for _, c := range paletteClasses {
		color := statusColorOrDefault(p.Color(c), models.DefaultPalette().Color(c))
		fmt.Fprintf(&b, "--status-%s:%s;--status-%s-text:%s;", c, color, c, models.TextColor(color))
	}
	b.WriteString("}")
	for _, c := range paletteClasses {
		fmt.Fprintf(&b,
			".business-status-banner.%[1]s{background:var(--status-%[1]s);color:var(--status-%[1]s-text);}"+
				".back-to-top.%[1]s .status-dot{background:var(--status-%[1]s);box-shadow:0 0 15px var(--status-%[1]s);}",
			c,
		)
	}
	return b.String()
}

func statusColorOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	if !models.IsHexColor(trimmed) {
		return fallback
	}
	return trimmed
}
