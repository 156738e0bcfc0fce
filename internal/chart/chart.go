// Package chart renders the three standard chart types (bar, scatter,
// swarm/violin) over a metric frame using gonum/plot. Builders return the
// assembled *plot.Plot; Save encodes it to PNG or SVG.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/pitchplot/pitchplot-cli/internal/theme"
)

func init() {
	// Liberation ships with gonum/plot, so rendering never depends on
	// system fonts.
	plot.DefaultFont = font.Font{Typeface: "Liberation", Variant: "Sans"}
	plotter.DefaultFont = plot.DefaultFont
}

// Style bundles the colors and figure dimensions shared by all chart types.
type Style struct {
	Base      color.NRGBA
	Primary   color.NRGBA
	Secondary color.NRGBA
	Ink       color.NRGBA

	Width  vg.Length
	Height vg.Length
}

// DefaultStyle returns the house style.
func DefaultStyle() Style {
	return Style{
		Base:      theme.Base,
		Primary:   theme.PrimaryHighlight,
		Secondary: theme.SecondaryHighlight,
		Ink:       theme.Ink,
		Width:     vg.Length(theme.DefaultWidthInches) * vg.Inch,
		Height:    vg.Length(theme.DefaultHeightInches) * vg.Inch,
	}
}

// Save encodes the plot at the style's figure size. The format is inferred
// from the file extension; png and svg are supported.
func Save(p *plot.Plot, st Style, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".svg":
	default:
		return fmt.Errorf("unsupported output format %q (use .png or .svg)", filepath.Ext(path))
	}
	if err := p.Save(st.Width, st.Height, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// applyAxisStyle sets the ink color and compact font sizes on both axes.
func applyAxisStyle(p *plot.Plot, st Style) {
	p.BackgroundColor = color.White
	p.Title.TextStyle.Color = st.Ink
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.LineStyle.Color = st.Ink
		ax.LineStyle.Width = vg.Points(0.5)
		ax.Label.TextStyle.Color = st.Ink
		ax.Label.TextStyle.Font.Size = vg.Points(theme.AxisLabelFontSize)
		ax.Tick.LineStyle.Color = st.Ink
		ax.Tick.Label.Color = st.Ink
		ax.Tick.Label.Font.Size = vg.Points(theme.TickFontSize)
	}
}

// addGrid adds the faint dashed grid used on every chart.
func addGrid(p *plot.Plot, st Style) {
	grid := plotter.NewGrid()
	ls := draw.LineStyle{
		Color:  theme.WithAlpha(st.Ink, 0x40),
		Width:  vg.Points(0.5),
		Dashes: []vg.Length{vg.Points(2), vg.Points(2)},
	}
	grid.Vertical = ls
	grid.Horizontal = ls
	p.Add(grid)
}

// unitTicks decorates the default tick labels with a unit suffix,
// e.g. "12.5" becomes "12.5%" or "12.5 km/h".
type unitTicks struct {
	unit string
}

func (t unitTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	sep := " "
	if t.unit == "%" {
		sep = ""
	}
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label += sep + t.unit
		}
	}
	return ticks
}

// memberSet builds a lookup for highlight-group membership.
func memberSet(group []string) map[string]bool {
	if len(group) == 0 {
		return nil
	}
	m := make(map[string]bool, len(group))
	for _, v := range group {
		m[v] = true
	}
	return m
}

// finiteRange returns the min and max of the finite values in vals, and
// whether any finite value exists.
func finiteRange(vals []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		ok = true
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, ok
}

func dashed(c color.Color, w vg.Length) draw.LineStyle {
	return draw.LineStyle{
		Color:  c,
		Width:  w,
		Dashes: []vg.Length{vg.Points(4), vg.Points(3)},
	}
}
