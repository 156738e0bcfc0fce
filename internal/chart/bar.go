package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pitchplot/pitchplot-cli/internal/frame"
	"github.com/pitchplot/pitchplot-cli/internal/theme"
)

// BarOptions configures a horizontal bar chart of one metric, one bar per
// data point, sorted ascending so the best value ends up on top.
type BarOptions struct {
	// Metric is the numeric column to plot.
	Metric string
	// Label is the x-axis label; defaults to Unit when empty.
	Label string
	// Unit, when set, is appended to tick labels (e.g. % or km/h).
	Unit  string
	Title string

	// IDColumn keys highlight-group membership; LabelColumn provides the
	// bar labels. Both default to player_name.
	IDColumn    string
	LabelColumn string

	// PrimaryGroup and SecondaryGroup are sets of data-point ids to
	// recolor and mark with a dashed guide line.
	PrimaryGroup   []string
	SecondaryGroup []string

	Style Style
}

// Bar builds the bar chart. The input frame is not modified.
func Bar(f *frame.Frame, opt BarOptions) (*plot.Plot, error) {
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

	vals, err := f.Floats(opt.Metric)
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

	// Keep only plottable rows, sorted ascending by the metric.
	order := make([]int, 0, len(vals))
	for i, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			order = append(order, i)
		}
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("column %q has no plottable values", opt.Metric)
	}
	sort.SliceStable(order, func(a, b int) bool { return vals[order[a]] < vals[order[b]] })

	primary := memberSet(opt.PrimaryGroup)
	secondary := memberSet(opt.SecondaryGroup)

	n := len(order)
	base := make(plotter.Values, n)
	second := make(plotter.Values, n)
	first := make(plotter.Values, n)
	names := make([]string, n)
	maxVal := vals[order[n-1]]
	for i, idx := range order {
		names[i] = labels[idx]
		switch {
		case primary[ids[idx]]:
			first[i] = vals[idx]
		case secondary[ids[idx]]:
			second[i] = vals[idx]
		default:
			base[i] = vals[idx]
		}
	}

	p := plot.New()
	applyAxisStyle(p, st)
	addGrid(p, st)

	// Dashed guide lines behind highlighted bars.
	for i, idx := range order {
		if !primary[ids[idx]] && !secondary[ids[idx]] {
			continue
		}
		guide, err := plotter.NewLine(plotter.XYs{{X: 0, Y: float64(i)}, {X: maxVal, Y: float64(i)}})
		if err != nil {
			return nil, fmt.Errorf("guide line: %w", err)
		}
		guide.LineStyle = dashed(st.Ink, vg.Points(0.75))
		p.Add(guide)
	}

	barWidth := vg.Points(10)
	for _, layer := range []struct {
		vals  plotter.Values
		color color.Color
	}{
		{base, st.Base},
		{second, st.Secondary},
		{first, st.Primary},
	} {
		bars, err := plotter.NewBarChart(layer.vals, barWidth)
		if err != nil {
			return nil, fmt.Errorf("bar chart: %w", err)
		}
		bars.Horizontal = true
		bars.Color = layer.color
		bars.LineStyle.Color = st.Ink
		bars.LineStyle.Width = vg.Points(0.5)
		p.Add(bars)
	}

	p.NominalY(names...)

	xLabel := opt.Label
	if xLabel == "" {
		xLabel = opt.Unit
	}
	p.X.Label.Text = xLabel
	if opt.Unit != "" {
		p.X.Tick.Marker = unitTicks{unit: opt.Unit}
	}
	if opt.Title != "" {
		p.Title.Text = opt.Title
	}
	return p, nil
}
