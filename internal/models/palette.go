// internal/models/palette.go
package models

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ink102/studio-status/internal/hours"
)

// Status colors back the banner and indicator dot, not body text, so we use the AA large-text threshold.
const wcagAAMinContrastRatio = 3.0
const wcagAAContrastNote = "WCAG AA for large text/UI components"
const darkTextColor = "#000000"
const lightTextColor = "#FFFFFF"
const defaultOpenColor = "#7FB069"
const defaultClosingSoonColor = "#F4B400"
const defaultOpeningSoonColor = "#9B59B6"
const defaultClosedColor = "#FF6B6B"

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

// StatusPalette assigns one color to each classification.
type StatusPalette struct {
	Open        string `json:"open" yaml:"open"`
	ClosingSoon string `json:"closingSoon" yaml:"closing_soon"`
	OpeningSoon string `json:"openingSoon" yaml:"opening_soon"`
	Closed      string `json:"closed" yaml:"closed"`
}

func DefaultPalette() StatusPalette {
	return StatusPalette{
		Open:        defaultOpenColor,
		ClosingSoon: defaultClosingSoonColor,
		OpeningSoon: defaultOpeningSoonColor,
		Closed:      defaultClosedColor,
	}
}

// WithDefaults fills empty entries from DefaultPalette.
func (p StatusPalette) WithDefaults() StatusPalette {
	def := DefaultPalette()
	p.Open = colorOrDefault(p.Open, def.Open)
	p.ClosingSoon = colorOrDefault(p.ClosingSoon, def.ClosingSoon)
	p.OpeningSoon = colorOrDefault(p.OpeningSoon, def.OpeningSoon)
	p.Closed = colorOrDefault(p.Closed, def.Closed)
	return p
}

func (p StatusPalette) Validate() error {
	colorFields := []struct {
		name  string
		value string
	}{
		{"open", p.Open},
		{"closing_soon", p.ClosingSoon},
		{"opening_soon", p.OpeningSoon},
		{"closed", p.Closed},
	}

	for _, field := range colorFields {
		if !hexColorRegex.MatchString(field.value) {
			return fmt.Errorf("%s must be a 6-digit hex color like #AABBCC", field.name)
		}
		if err := validateTextContrast(field.name, field.value); err != nil {
			return err
		}
	}

	return nil
}

// Color returns the palette entry for c.
func (p StatusPalette) Color(c hours.Classification) string {
	switch c {
	case hours.Open:
		return p.Open
	case hours.ClosingSoon:
		return p.ClosingSoon
	case hours.OpeningSoon:
		return p.OpeningSoon
	default:
		return p.Closed
	}
}

// TextColor picks black or white, whichever reads better on backgroundColor.
func TextColor(backgroundColor string) string {
	best, _, err := bestTextColor(backgroundColor)
	if err != nil {
		return darkTextColor
	}
	return best
}

func colorOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

func validateTextContrast(colorName, backgroundColor string) error {
	bestText, bestRatio, err := bestTextColor(backgroundColor)
	if err != nil {
		return err
	}
	if bestRatio < wcagAAMinContrastRatio {
		return fmt.Errorf(
			"%s must have contrast ratio >= %.1f with #000000 or #FFFFFF text (%s); best is %s at %.2f",
			colorName,
			wcagAAMinContrastRatio,
			wcagAAContrastNote,
			bestText,
			bestRatio,
		)
	}
	return nil
}

func bestTextColor(backgroundColor string) (string, float64, error) {
	bestRatio := 0.0
	bestText := ""
	for _, textColor := range []string{darkTextColor, lightTextColor} {
		ratio, err := contrastRatio(textColor, backgroundColor)
		if err != nil {
			return "", 0, err
		}
		if ratio > bestRatio {
			bestRatio = ratio
			bestText = textColor
		}
	}
	return bestText, bestRatio, nil
}

func contrastRatio(textColor, backgroundColor string) (float64, error) {
	textL, err := relativeLuminance(textColor)
	if err != nil {
		return 0, err
	}
	backgroundL, err := relativeLuminance(backgroundColor)
	if err != nil {
		return 0, err
	}
	lightest := math.Max(textL, backgroundL)
	darkest := math.Min(textL, backgroundL)
	return (lightest + 0.05) / (darkest + 0.05), nil
}

func relativeLuminance(hexColor string) (float64, error) {
	r, g, b, err := parseHexColor(hexColor)
	if err != nil {
		return 0, err
	}

	rl := srgbToLinear(r)
	gl := srgbToLinear(g)
	bl := srgbToLinear(b)

	return 0.2126*rl + 0.7152*gl + 0.0722*bl, nil
}

func parseHexColor(hexColor string) (float64, float64, float64, error) {
	if !hexColorRegex.MatchString(hexColor) {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %s", hexColor)
	}

	hex := strings.TrimPrefix(hexColor, "#")
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %s", hexColor)
	}

	r := float64((value >> 16) & 0xFF)
	g := float64((value >> 8) & 0xFF)
	b := float64(value & 0xFF)

	return r / 255, g / 255, b / 255, nil
}

func srgbToLinear(value float64) float64 {
	if value <= 0.03928 {
		return value / 12.92
	}
	return math.Pow((value+0.055)/1.055, 2.4)
}
