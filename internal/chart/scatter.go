package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/pitchplot/pitchplot-cli/internal/frame"
	"github.com/pitchplot/pitchplot-cli/internal/theme"
)

// SumMinutesPlayed is a pseudo z-metric computed on demand from
// minutes_played_per_match * count_match, for sizing points by total
// minutes observed.
const SumMinutesPlayed = "sum_minutes_played"

// Glyph area bounds in square points, matching the familiar bubble scale.
const (
	minGlyphArea     = 50
	maxGlyphArea     = 300
	defaultGlyphArea = 100
)

// ScatterOptions configures an x/y scatter with optional z-sized bubbles.
type ScatterOptions struct {
	XMetric string
	YMetric string
	// ZMetric optionally sizes points. The special value sum_minutes_played
	// is derived from minutes_played_per_match and count_match.
	ZMetric string

	// Axis labels default to the metric names; ZLabel captions the size
	// legend.
	XLabel string
	YLabel string
	ZLabel string

	// XAnnotation/YAnnotation, when both set, describe the axes in the
	// four plot corners (e.g. "Volume" x "Intensity").
	XAnnotation string
	YAnnotation string

	XUnit string
	YUnit string

	// XSDHighlight/YSDHighlight label points more than the given number of
	// standard deviations above the mean on that axis. Zero disables.
	XSDHighlight float64
	YSDHighlight float64

	PrimaryGroup   []string
	SecondaryGroup []string

	IDColumn    string
	LabelColumn string

	// MeanLines draws a dashed crosshair at the x and y means.
	MeanLines bool

	Title string
	Style Style
}

// Scatter builds the scatter plot.
func Scatter(f *frame.Frame, opt ScatterOptions) (*plot.Plot, error) {
	if f.Len() == 0 {
		return nil, errors.New("empty frame")
	}
	st := opt.Style
	if st == (Style{}) {
		st = DefaultStyle()
	}
	idCol := opt.IDColumn
	if idCol == "" {
		idCol = theme.DefaultIDColumn
	}
	labelCol := opt.LabelColumn
	if labelCol == "" {
		labelCol = theme.DefaultLabelColumn
	}

	xs, err := f.Floats(opt.XMetric)
	if err != nil {
		return nil, err
	}
	ys, err := f.Floats(opt.YMetric)
	if err != nil {
		return nil, err
	}
	ids, err := f.Strings(idCol)
	if err != nil {
		return nil, err
	}
	labels, err := f.Strings(labelCol)
	if err != nil {
		return nil, err
	}
	zs, err := zValues(f, opt.ZMetric)
	if err != nil {
		return nil, err
	}

	rows := make([]int, 0, len(xs))
	for i := range xs {
		if finite(xs[i]) && finite(ys[i]) {
			rows = append(rows, i)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no plottable points for %s vs %s", opt.XMetric, opt.YMetric)
	}

	areas := glyphAreas(zs, rows)
	primary := memberSet(opt.PrimaryGroup)
	secondary := memberSet(opt.SecondaryGroup)

	fx := collect(xs, rows)
	fy := collect(ys, rows)
	meanX, stdX := stat.Mean(fx, nil), stat.StdDev(fx, nil)
	meanY, stdY := stat.Mean(fy, nil), stat.StdDev(fy, nil)

	p := plot.New()
	applyAxisStyle(p, st)
	addGrid(p, st)

	// Background layer: every point, translucent.
	bg := make(plotter.XYs, len(rows))
	for i, idx := range rows {
		bg[i] = plotter.XY{X: xs[idx], Y: ys[idx]}
	}
	bgScatter, err := plotter.NewScatter(bg)
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	faded := theme.WithAlpha(st.Base, 0x4D)
	bgScatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{Color: faded, Radius: areaRadius(areas[i]), Shape: draw.CircleGlyph{}}
	}
	p.Add(bgScatter)

	// Highlight layer: group members, opaque and on top.
	var hlPts plotter.XYs
	var hlColors []color.Color
	var hlAreas []float64
	labelPts := plotter.XYLabels{}
	for i, idx := range rows {
		inPrimary := primary[ids[idx]]
		inSecondary := secondary[ids[idx]]
		if inPrimary || inSecondary {
			c := color.Color(st.Secondary)
			if inPrimary {
				c = st.Primary
			}
			hlPts = append(hlPts, plotter.XY{X: xs[idx], Y: ys[idx]})
			hlColors = append(hlColors, c)
			hlAreas = append(hlAreas, areas[i])
		}
		sdHit := (opt.XSDHighlight > 0 && xs[idx] > meanX+opt.XSDHighlight*stdX) ||
			(opt.YSDHighlight > 0 && ys[idx] > meanY+opt.YSDHighlight*stdY)
		if inPrimary || inSecondary || sdHit {
			labelPts.XYs = append(labelPts.XYs, plotter.XY{X: xs[idx], Y: ys[idx]})
			labelPts.Labels = append(labelPts.Labels, labels[idx])
		}
	}
	if len(hlPts) > 0 {
		hlScatter, err := plotter.NewScatter(hlPts)
		if err != nil {
			return nil, fmt.Errorf("highlight scatter: %w", err)
		}
		hlScatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{Color: hlColors[i], Radius: areaRadius(hlAreas[i]), Shape: draw.CircleGlyph{}}
		}
		p.Add(hlScatter)
	}

	if opt.MeanLines {
		loY, hiY, _ := finiteRange(fy)
		loX, hiX, _ := finiteRange(fx)
		vline, err := plotter.NewLine(plotter.XYs{{X: meanX, Y: loY}, {X: meanX, Y: hiY}})
		if err != nil {
			return nil, fmt.Errorf("mean line: %w", err)
		}
		hline, err := plotter.NewLine(plotter.XYs{{X: loX, Y: meanY}, {X: hiX, Y: meanY}})
		if err != nil {
			return nil, fmt.Errorf("mean line: %w", err)
		}
		ls := dashed(theme.WithAlpha(st.Ink, 0x99), vg.Points(1))
		vline.LineStyle = ls
		hline.LineStyle = ls
		p.Add(vline, hline)
		p.Legend.Add("Average", vline)
	}

	if len(labelPts.XYs) > 0 {
		names, err := plotter.NewLabels(labelPts)
		if err != nil {
			return nil, fmt.Errorf("labels: %w", err)
		}
		for i := range names.TextStyle {
			names.TextStyle[i].Color = st.Ink
			names.TextStyle[i].Font.Size = vg.Points(theme.PointLabelSize)
		}
		names.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(2)}
		p.Add(names)
	}

	xLabel := opt.XLabel
	if xLabel == "" {
		xLabel = opt.XMetric
	}
	yLabel := opt.YLabel
	if yLabel == "" {
		yLabel = opt.YMetric
	}
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	if opt.XUnit != "" {
		p.X.Tick.Marker = unitTicks{unit: opt.XUnit}
	}
	if opt.YUnit != "" {
		p.Y.Tick.Marker = unitTicks{unit: opt.YUnit}
	}
	if opt.Title != "" {
		p.Title.Text = opt.Title
	}

	if opt.XAnnotation != "" && opt.YAnnotation != "" {
		if err := addCornerAnnotations(p, st, opt.XAnnotation, opt.YAnnotation); err != nil {
			return nil, err
		}
	}

	if opt.ZMetric != "" {
		zLabel := opt.ZLabel
		if zLabel == "" {
			zLabel = opt.ZMetric
		}
		addSizeLegend(p, st, zLabel, areas)
	}
	p.Legend.Top = true
	p.Legend.TextStyle.Color = st.Ink
	p.Legend.TextStyle.Font.Size = vg.Points(theme.PointLabelSize)

	return p, nil
}

// zValues resolves the z column, deriving sum_minutes_played when asked for.
func zValues(f *frame.Frame, zMetric string) ([]float64, error) {
	if zMetric == "" {
		return nil, nil
	}
	if zMetric == SumMinutesPlayed && !f.HasColumn(SumMinutesPlayed) {
		minutes, err := f.Floats("minutes_played_per_match")
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", SumMinutesPlayed, err)
		}
		matches, err := f.Floats("count_match")
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", SumMinutesPlayed, err)
		}
		out := make([]float64, len(minutes))
		for i := range minutes {
			out[i] = minutes[i] * matches[i] / 10
		}
		return out, nil
	}
	return f.Floats(zMetric)
}

// glyphAreas maps z values linearly into the fixed area range. Without a z
// column, or when all z values agree, every point gets the default area.
func glyphAreas(zs []float64, rows []int) []float64 {
	areas := make([]float64, len(rows))
	for i := range areas {
		areas[i] = defaultGlyphArea
	}
	if zs == nil {
		return areas
	}
	sub := collect(zs, rows)
	lo, hi, ok := finiteRange(sub)
	if !ok || hi == lo {
		return areas
	}
	for i, idx := range rows {
		if !finite(zs[idx]) {
			continue
		}
		areas[i] = (zs[idx]-lo)/(hi-lo)*(maxGlyphArea-minGlyphArea) + minGlyphArea
	}
	return areas
}

// areaRadius converts a glyph area in square points to a radius.
func areaRadius(area float64) vg.Length {
	return vg.Points(math.Sqrt(area / math.Pi))
}

func addCornerAnnotations(p *plot.Plot, st Style, xAnno, yAnno string) error {
	// Widen the limits a little so the annotations sit clear of the data.
	padX := (p.X.Max - p.X.Min) * 0.08
	padY := (p.Y.Max - p.Y.Min) * 0.08
	p.X.Min -= padX
	p.X.Max += padX
	p.Y.Min -= padY
	p.Y.Max += padY

	corners := plotter.XYLabels{
		XYs: plotter.XYs{
			{X: p.X.Min, Y: p.Y.Min},
			{X: p.X.Min, Y: p.Y.Max},
			{X: p.X.Max, Y: p.Y.Min},
			{X: p.X.Max, Y: p.Y.Max},
		},
		Labels: []string{
			"Low " + yAnno + "\nLow " + xAnno,
			"High " + yAnno + "\nLow " + xAnno,
			"Low " + yAnno + "\nHigh " + xAnno,
			"High " + yAnno + "\nHigh " + xAnno,
		},
	}
	anno, err := plotter.NewLabels(corners)
	if err != nil {
		return fmt.Errorf("corner annotations: %w", err)
	}
	aligns := []struct {
		x text.XAlignment
		y text.YAlignment
	}{
		{text.XLeft, text.YBottom},
		{text.XLeft, text.YTop},
		{text.XRight, text.YBottom},
		{text.XRight, text.YTop},
	}
	for i := range anno.TextStyle {
		anno.TextStyle[i].Color = st.Ink
		anno.TextStyle[i].Font.Size = vg.Points(theme.PointLabelSize)
		anno.TextStyle[i].XAlign = aligns[i].x
		anno.TextStyle[i].YAlign = aligns[i].y
	}
	p.Add(anno)
	return nil
}

// addSizeLegend adds High/Average/Low size swatches captioned with the z
// metric label.
func addSizeLegend(p *plot.Plot, st Style, zLabel string, areas []float64) {
	mean, std := stat.Mean(areas, nil), stat.StdDev(areas, nil)
	p.Legend.Add(zLabel + ":")
	p.Legend.Add("High", glyphThumb{r: areaRadius(mean + 1.5*std), c: st.Ink})
	p.Legend.Add("Average", glyphThumb{r: areaRadius(mean), c: st.Ink})
	p.Legend.Add("Low", glyphThumb{r: areaRadius(math.Max(mean-1.5*std, minGlyphArea)), c: st.Ink})
}

// glyphThumb draws a fixed-size circle in a legend entry.
type glyphThumb struct {
	r vg.Length
	c color.Color
}

func (g glyphThumb) Thumbnail(c *draw.Canvas) {
	center := vg.Point{
		X: (c.Rectangle.Min.X + c.Rectangle.Max.X) / 2,
		Y: (c.Rectangle.Min.Y + c.Rectangle.Max.Y) / 2,
	}
	c.DrawGlyph(draw.GlyphStyle{Color: g.c, Radius: g.r, Shape: draw.CircleGlyph{}}, center)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func collect(vals []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, idx := range rows {
		out[i] = vals[idx]
	}
	return out
}
