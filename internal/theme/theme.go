package theme

import (
	"fmt"
	"image/color"
	"strings"
)

// House palette. Every chart type uses the same four colors: green bars and
// scatters by default, red for the primary highlight group, yellow for the
// secondary group, and the dark navy ink for axes, edges and text.
var (
	Base               = color.NRGBA{R: 0x80, G: 0xCB, B: 0xA2, A: 0xFF} // #80CBA2
	PrimaryHighlight   = color.NRGBA{R: 0xEE, G: 0x7A, B: 0x6F, A: 0xFF} // #EE7A6F
	SecondaryHighlight = color.NRGBA{R: 0xF6, G: 0xC2, B: 0x43, A: 0xFF} // #F6C243
	Ink                = color.NRGBA{R: 0x0C, G: 0x1B, B: 0x37, A: 0xFF} // #0C1B37
)

// Default hex strings, used as config defaults so that `config show` prints
// something readable.
const (
	BaseHex               = "#80CBA2"
	PrimaryHighlightHex   = "#EE7A6F"
	SecondaryHighlightHex = "#F6C243"
	InkHex                = "#0C1B37"
)

// Shared column and sizing defaults.
const (
	DefaultIDColumn    = "player_name"
	DefaultLabelColumn = "player_name"

	DefaultWidthInches  = 8.0
	DefaultHeightInches = 4.0
)

// Font sizes in points, matching the compact report style.
const (
	AxisLabelFontSize = 7
	TickFontSize      = 7
	PointLabelSize    = 6
)

// ParseHex parses a #RRGGBB (or RRGGBB) string into a color.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(h, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

// WithAlpha returns c with its alpha channel replaced.
func WithAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
