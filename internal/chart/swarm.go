package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/pitchplot/pitchplot-cli/internal/frame"
	"github.com/pitchplot/pitchplot-cli/internal/theme"
)

// violinHalfWidth is the maximum half-width of a violin silhouette in group
// units (groups are spaced 1 unit apart on the y axis).
const violinHalfWidth = 0.45

// SwarmOptions configures a swarm/violin chart: one violin per categorical
// group with the individual data points swarmed on top.
type SwarmOptions struct {
	// XMetric is the numeric column on the x axis.
	XMetric string
	// YMetric is the categorical column splitting rows into groups.
	YMetric string
	// YGroups restricts and orders the groups; defaults to every distinct
	// value of YMetric in first-seen order.
	YGroups []string
	// YGroupLabels override the tick labels; default to YGroups.
	YGroupLabels []string

	XLabel string
	XUnit  string

	PrimaryGroup   []string
	SecondaryGroup []string

	IDColumn    string
	LabelColumn string

	Title string
	Style Style
}

// SwarmViolin builds the swarm/violin chart.
func SwarmViolin(f *frame.Frame, opt SwarmOptions) (*plot.Plot, error) {
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

	groups := opt.YGroups
	if len(groups) == 0 {
		var err error
		groups, err = f.Unique(opt.YMetric)
		if err != nil {
			return nil, err
		}
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("column %q has no groups", opt.YMetric)
	}
	groupLabels := opt.YGroupLabels
	if len(groupLabels) == 0 {
		groupLabels = groups
	}
	if len(groupLabels) != len(groups) {
		return nil, fmt.Errorf("%d group labels for %d groups", len(groupLabels), len(groups))
	}

	sub, err := f.FilterIn(opt.YMetric, groups)
	if err != nil {
		return nil, err
	}
	xs, err := sub.Floats(opt.XMetric)
	if err != nil {
		return nil, err
	}
	cats, err := sub.Strings(opt.YMetric)
	if err != nil {
		return nil, err
	}
	ids, err := sub.Strings(idCol)
	if err != nil {
		return nil, err
	}
	labels, err := sub.Strings(labelCol)
	if err != nil {
		return nil, err
	}

	lo, hi, ok := finiteRange(xs)
	if !ok {
		return nil, fmt.Errorf("column %q has no plottable values", opt.XMetric)
	}

	primary := memberSet(opt.PrimaryGroup)
	secondary := memberSet(opt.SecondaryGroup)

	p := plot.New()
	applyAxisStyle(p, st)
	addGrid(p, st)

	// Point sizes shrink as more groups share the vertical space.
	baseRadius := clampRadius(6.5 - float64(len(groups)))
	hlRadius := clampRadius(10 - float64(len(groups)))

	// Approximate glyph extents in data units for the swarm layout. The x
	// span maps onto the figure width, groups are 1 unit apart on y.
	rx := float64(baseRadius) * (hi - lo) / float64(st.Width)
	ry := float64(baseRadius) * float64(len(groups)) / float64(st.Height)
	if hi == lo {
		rx = float64(baseRadius) / float64(st.Width)
	}

	for gi, group := range groups {
		yc := float64(gi)
		var idxs []int
		for i, cat := range cats {
			if cat == group && finite(xs[i]) {
				idxs = append(idxs, i)
			}
		}
		if len(idxs) == 0 {
			continue
		}
		gx := make([]float64, len(idxs))
		for i, idx := range idxs {
			gx[i] = xs[idx]
		}

		if poly := violinPolygon(gx, yc); poly != nil {
			shape, err := plotter.NewPolygon(poly)
			if err != nil {
				return nil, fmt.Errorf("violin: %w", err)
			}
			shape.Color = theme.WithAlpha(st.Ink, 0x1A)
			shape.LineStyle.Color = theme.WithAlpha(st.Ink, 0x66)
			shape.LineStyle.Width = vg.Points(0.5)
			p.Add(shape)
		}

		offsets := swarmOffsets(gx, rx, ry)

		var basePts, hlPts plotter.XYs
		var hlColors []color.Color
		labelPts := plotter.XYLabels{}
		for i, idx := range idxs {
			pt := plotter.XY{X: gx[i], Y: yc + offsets[i]}
			switch {
			case primary[ids[idx]]:
				hlPts = append(hlPts, pt)
				hlColors = append(hlColors, st.Primary)
				labelPts.XYs = append(labelPts.XYs, pt)
				labelPts.Labels = append(labelPts.Labels, labels[idx])
			case secondary[ids[idx]]:
				hlPts = append(hlPts, pt)
				hlColors = append(hlColors, st.Secondary)
				labelPts.XYs = append(labelPts.XYs, pt)
				labelPts.Labels = append(labelPts.Labels, labels[idx])
			default:
				basePts = append(basePts, pt)
			}
		}

		if len(basePts) > 0 {
			sc, err := plotter.NewScatter(basePts)
			if err != nil {
				return nil, fmt.Errorf("swarm: %w", err)
			}
			sc.GlyphStyle = draw.GlyphStyle{Color: st.Base, Radius: baseRadius, Shape: draw.CircleGlyph{}}
			p.Add(sc)
		}
		if len(hlPts) > 0 {
			sc, err := plotter.NewScatter(hlPts)
			if err != nil {
				return nil, fmt.Errorf("swarm highlight: %w", err)
			}
			colors := hlColors
			sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
				return draw.GlyphStyle{Color: colors[i], Radius: hlRadius, Shape: draw.CircleGlyph{}}
			}
			p.Add(sc)

			names, err := plotter.NewLabels(labelPts)
			if err != nil {
				return nil, fmt.Errorf("swarm labels: %w", err)
			}
			for i := range names.TextStyle {
				names.TextStyle[i].Color = st.Ink
				names.TextStyle[i].Font.Size = vg.Points(theme.PointLabelSize - 1)
			}
			names.Offset = vg.Point{X: vg.Points(3), Y: vg.Points(3)}
			p.Add(names)
		}
	}

	p.NominalY(groupLabels...)

	xLabel := opt.XLabel
	if xLabel == "" {
		xLabel = opt.XMetric
	}
	p.X.Label.Text = xLabel
	if opt.XUnit != "" {
		p.X.Tick.Marker = unitTicks{unit: opt.XUnit}
	}
	// Percent metrics can exceed 100 on small samples, but an axis running
	// far past 100% reads as a mistake.
	if opt.XUnit == "%" && p.X.Max > 110 {
		p.X.Max = 110
	}
	if opt.Title != "" {
		p.Title.Text = opt.Title
	}
	return p, nil
}

func clampRadius(pts float64) vg.Length {
	if pts < 1.5 {
		pts = 1.5
	}
	return vg.Points(pts / 2)
}

// violinPolygon returns the KDE silhouette of xs mirrored around the group
// center yc, or nil when there is not enough spread to estimate a density.
func violinPolygon(xs []float64, yc float64) plotter.XYs {
	if len(xs) < 3 {
		return nil
	}
	sigma := stat.StdDev(xs, nil)
	if sigma == 0 || math.IsNaN(sigma) {
		return nil
	}
	// Silverman's rule of thumb.
	h := 1.06 * sigma * math.Pow(float64(len(xs)), -0.2)

	lo, hi, _ := finiteRange(xs)
	lo -= 3 * h
	hi += 3 * h
	const steps = 80
	grid := make([]float64, steps+1)
	dens := make([]float64, steps+1)
	maxD := 0.0
	for i := 0; i <= steps; i++ {
		g := lo + (hi-lo)*float64(i)/steps
		grid[i] = g
		var d float64
		for _, x := range xs {
			d += distuv.UnitNormal.Prob((g - x) / h)
		}
		d /= float64(len(xs)) * h
		dens[i] = d
		if d > maxD {
			maxD = d
		}
	}
	if maxD == 0 {
		return nil
	}

	poly := make(plotter.XYs, 0, 2*(steps+1))
	for i := 0; i <= steps; i++ {
		poly = append(poly, plotter.XY{X: grid[i], Y: yc + dens[i]/maxD*violinHalfWidth})
	}
	for i := steps; i >= 0; i-- {
		poly = append(poly, plotter.XY{X: grid[i], Y: yc - dens[i]/maxD*violinHalfWidth})
	}
	return poly
}

// swarmOffsets assigns each point a vertical offset from the group center so
// that glyphs do not overlap, mirroring a beeswarm layout: points are placed
// in ascending x order, each at the smallest collision-free offset,
// alternating above and below the center line.
func swarmOffsets(xs []float64, rx, ry float64) []float64 {
	n := len(xs)
	offsets := make([]float64, n)
	if rx <= 0 || ry <= 0 {
		return offsets
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return xs[order[a]] < xs[order[b]] })

	var done []swarmPoint
	step := ry * 1.1
	for _, idx := range order {
		x := xs[idx]
		best := 0.0
		for k := 0; ; k++ {
			cand := float64((k+1)/2) * step
			if k%2 == 1 {
				cand = -cand
			}
			if !collides(done, x, cand, rx, ry) {
				best = cand
				break
			}
		}
		offsets[idx] = best
		done = append(done, swarmPoint{x: x, y: best})
	}
	return offsets
}

type swarmPoint struct{ x, y float64 }

func collides(done []swarmPoint, x, y, rx, ry float64) bool {
	for _, d := range done {
		dx := (x - d.x) / rx
		dy := (y - d.y) / ry
		if dx*dx+dy*dy < 4 {
			return true
		}
	}
	return false
}
