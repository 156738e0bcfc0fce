package chart

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pitchplot/pitchplot-cli/internal/frame"
)

func metricFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f := frame.New([]string{
		"player_name", "position", "minutes_played_per_match", "count_match",
		"psv99", "top_speed", "distance_per_90",
	})
	set := func(col string, vals []float64) {
		t.Helper()
		if err := f.SetFloats(col, vals); err != nil {
			t.Fatalf("SetFloats %s: %v", col, err)
		}
	}
	if err := f.SetStrings("player_name", []string{
		"Ada Hegerberg", "Sam Kerr", "Lauren James", "Caroline Graham Hansen",
		"Aitana Bonmati", "Keira Walsh", "Mapi Leon", "Lucy Bronze",
	}); err != nil {
		t.Fatalf("SetStrings: %v", err)
	}
	if err := f.SetStrings("position", []string{
		"CF", "CF", "RW", "RW", "CM", "CM", "CB", "RB",
	}); err != nil {
		t.Fatalf("SetStrings: %v", err)
	}
	set("minutes_played_per_match", []float64{88, 90, 75, 85, 90, 89, 90, 87})
	set("count_match", []float64{20, 22, 18, 21, 23, 22, 20, 19})
	set("psv99", []float64{30.1, 31.5, 32.2, 30.8, 27.5, 26.9, 28.3, 29.7})
	set("top_speed", []float64{32.0, 33.1, 33.8, 32.4, 29.0, 28.1, 30.2, 31.0})
	set("distance_per_90", []float64{10100, 9900, 9400, 10500, 11200, 10900, 9800, 10300})
	return f
}

func TestBarChart(t *testing.T) {
	f := metricFrame(t)
	p, err := Bar(f, BarOptions{
		Metric:         "psv99",
		Unit:           "km/h",
		Title:          "PSV-99",
		PrimaryGroup:   []string{"Lauren James"},
		SecondaryGroup: []string{"Sam Kerr"},
	})
	if err != nil {
		t.Fatalf("Bar: %v", err)
	}
	if p.Title.Text != "PSV-99" {
		t.Fatalf("title = %q", p.Title.Text)
	}
	if p.X.Label.Text != "km/h" {
		t.Fatalf("x label = %q, want unit fallback", p.X.Label.Text)
	}

	out := filepath.Join(t.TempDir(), "bar.png")
	if err := Save(p, DefaultStyle(), out); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Fatalf("png not written: %v", err)
	}
}

func TestBarErrors(t *testing.T) {
	empty := frame.New([]string{"player_name", "psv99"})
	if _, err := Bar(empty, BarOptions{Metric: "psv99"}); err == nil {
		t.Fatal("expected error for empty frame")
	}

	f := metricFrame(t)
	if _, err := Bar(f, BarOptions{Metric: "nope"}); err == nil {
		t.Fatal("expected error for missing metric")
	}

	if err := f.SetFloats("all_nan", []float64{
		math.NaN(), math.NaN(), math.NaN(), math.NaN(),
		math.NaN(), math.NaN(), math.NaN(), math.NaN(),
	}); err != nil {
		t.Fatalf("SetFloats: %v", err)
	}
	if _, err := Bar(f, BarOptions{Metric: "all_nan"}); err == nil {
		t.Fatal("expected error for all-NaN metric")
	}
}

func TestScatterChart(t *testing.T) {
	f := metricFrame(t)
	p, err := Scatter(f, ScatterOptions{
		XMetric:      "psv99",
		YMetric:      "top_speed",
		ZMetric:      SumMinutesPlayed,
		XLabel:       "PSV-99",
		XUnit:        "km/h",
		YUnit:        "km/h",
		XAnnotation:  "Sprint speed",
		YAnnotation:  "Top speed",
		XSDHighlight: 1,
		MeanLines:    true,
		PrimaryGroup: []string{"Aitana Bonmati"},
	})
	if err != nil {
		t.Fatalf("Scatter: %v", err)
	}
	if p.X.Label.Text != "PSV-99" {
		t.Fatalf("x label = %q", p.X.Label.Text)
	}
	if p.Y.Label.Text != "top_speed" {
		t.Fatalf("y label = %q, want metric fallback", p.Y.Label.Text)
	}

	out := filepath.Join(t.TempDir(), "scatter.svg")
	if err := Save(p, DefaultStyle(), out); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Fatalf("svg not written: %v", err)
	}
}

func TestScatterErrors(t *testing.T) {
	f := metricFrame(t)
	if _, err := Scatter(f, ScatterOptions{XMetric: "psv99", YMetric: "nope"}); err == nil {
		t.Fatal("expected error for missing metric")
	}
	if _, err := Scatter(f, ScatterOptions{XMetric: "psv99", YMetric: "top_speed", ZMetric: "nope"}); err == nil {
		t.Fatal("expected error for missing z metric")
	}

	empty := frame.New([]string{"player_name", "a", "b"})
	if _, err := Scatter(empty, ScatterOptions{XMetric: "a", YMetric: "b"}); err == nil {
		t.Fatal("expected error for empty frame")
	}
}

func TestZValuesDerivesSumMinutes(t *testing.T) {
	f := metricFrame(t)
	zs, err := zValues(f, SumMinutesPlayed)
	if err != nil {
		t.Fatalf("zValues: %v", err)
	}
	want := 88.0 * 20 / 10
	if math.Abs(zs[0]-want) > 1e-9 {
		t.Fatalf("zs[0] = %f, want %f", zs[0], want)
	}
}

func TestGlyphAreas(t *testing.T) {
	zs := []float64{0, 50, 100, math.NaN()}
	rows := []int{0, 1, 2, 3}
	areas := glyphAreas(zs, rows)
	if areas[0] != minGlyphArea {
		t.Fatalf("areas[0] = %f, want %d", areas[0], minGlyphArea)
	}
	if areas[2] != maxGlyphArea {
		t.Fatalf("areas[2] = %f, want %d", areas[2], maxGlyphArea)
	}
	if areas[1] <= areas[0] || areas[1] >= areas[2] {
		t.Fatalf("areas[1] = %f, want between min and max", areas[1])
	}
	if areas[3] != defaultGlyphArea {
		t.Fatalf("areas[3] = %f, want default for NaN", areas[3])
	}

	// Uniform z: every point gets the default area.
	uniform := glyphAreas([]float64{5, 5, 5}, []int{0, 1, 2})
	for i, a := range uniform {
		if a != defaultGlyphArea {
			t.Fatalf("uniform[%d] = %f, want %d", i, a, defaultGlyphArea)
		}
	}
}

func TestSwarmViolinChart(t *testing.T) {
	f := metricFrame(t)
	p, err := SwarmViolin(f, SwarmOptions{
		XMetric:      "distance_per_90",
		YMetric:      "position",
		YGroups:      []string{"CF", "RW", "CM"},
		YGroupLabels: []string{"Forwards", "Wingers", "Midfielders"},
		XUnit:        "m",
		PrimaryGroup: []string{"Aitana Bonmati"},
	})
	if err != nil {
		t.Fatalf("SwarmViolin: %v", err)
	}
	if p.X.Label.Text != "distance_per_90" {
		t.Fatalf("x label = %q, want metric fallback", p.X.Label.Text)
	}

	out := filepath.Join(t.TempDir(), "swarm.png")
	if err := Save(p, DefaultStyle(), out); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Fatalf("png not written: %v", err)
	}
}

func TestSwarmViolinPercentClamp(t *testing.T) {
	f := frame.New([]string{"player_name", "group", "pct"})
	if err := f.SetStrings("player_name", []string{"A", "B", "C", "D"}); err != nil {
		t.Fatalf("SetStrings: %v", err)
	}
	if err := f.SetStrings("group", []string{"g", "g", "g", "g"}); err != nil {
		t.Fatalf("SetStrings: %v", err)
	}
	if err := f.SetFloats("pct", []float64{80, 95, 120, 150}); err != nil {
		t.Fatalf("SetFloats: %v", err)
	}
	p, err := SwarmViolin(f, SwarmOptions{XMetric: "pct", YMetric: "group", XUnit: "%"})
	if err != nil {
		t.Fatalf("SwarmViolin: %v", err)
	}
	if p.X.Max != 110 {
		t.Fatalf("x max = %f, want clamp at 110", p.X.Max)
	}
}

func TestSwarmViolinErrors(t *testing.T) {
	f := metricFrame(t)
	if _, err := SwarmViolin(f, SwarmOptions{
		XMetric:      "distance_per_90",
		YMetric:      "position",
		YGroups:      []string{"CF", "RW"},
		YGroupLabels: []string{"Forwards"},
	}); err == nil {
		t.Fatal("expected error for label count mismatch")
	}
	if _, err := SwarmViolin(f, SwarmOptions{XMetric: "nope", YMetric: "position"}); err == nil {
		t.Fatal("expected error for missing metric")
	}
}

func TestViolinPolygon(t *testing.T) {
	if poly := violinPolygon([]float64{1, 2}, 0); poly != nil {
		t.Fatal("expected nil polygon for too few points")
	}
	if poly := violinPolygon([]float64{3, 3, 3, 3}, 0); poly != nil {
		t.Fatal("expected nil polygon for zero spread")
	}

	xs := []float64{1, 2, 2.5, 3, 3.5, 4, 5}
	poly := violinPolygon(xs, 2)
	if poly == nil {
		t.Fatal("expected polygon")
	}
	// Mirrored silhouette: same length above and below the center line,
	// peak exactly at half width.
	maxUp, maxDown := 0.0, 0.0
	for _, pt := range poly {
		if d := pt.Y - 2; d > maxUp {
			maxUp = d
		}
		if d := 2 - pt.Y; d > maxDown {
			maxDown = d
		}
	}
	if math.Abs(maxUp-violinHalfWidth) > 1e-9 {
		t.Fatalf("max upper extent = %f, want %f", maxUp, violinHalfWidth)
	}
	if math.Abs(maxUp-maxDown) > 1e-9 {
		t.Fatalf("silhouette not mirrored: up %f down %f", maxUp, maxDown)
	}
}

func TestSwarmOffsetsAvoidCollisions(t *testing.T) {
	xs := []float64{10, 10, 10, 10, 10}
	rx, ry := 1.0, 0.1
	offsets := swarmOffsets(xs, rx, ry)
	for i := range offsets {
		for j := i + 1; j < len(offsets); j++ {
			dy := (offsets[i] - offsets[j]) / ry
			if dy*dy < 4 {
				t.Fatalf("points %d and %d overlap: offsets %f / %f", i, j, offsets[i], offsets[j])
			}
		}
	}
	if offsets[0] != 0 {
		t.Fatalf("first placed point should sit on the center line, got %f", offsets[0])
	}
}

func TestUnitTicks(t *testing.T) {
	ticks := unitTicks{unit: "km/h"}.Ticks(0, 10)
	var labeled bool
	for _, tk := range ticks {
		if tk.Label == "" {
			continue
		}
		labeled = true
		if tk.Label[len(tk.Label)-4:] != "km/h" {
			t.Fatalf("tick label = %q, want km/h suffix", tk.Label)
		}
	}
	if !labeled {
		t.Fatal("no labeled ticks")
	}

	pct := unitTicks{unit: "%"}.Ticks(0, 100)
	for _, tk := range pct {
		if tk.Label == "" {
			continue
		}
		if tk.Label[len(tk.Label)-1] != '%' {
			t.Fatalf("tick label = %q, want %% suffix", tk.Label)
		}
		if len(tk.Label) > 1 && tk.Label[len(tk.Label)-2] == ' ' {
			t.Fatalf("tick label = %q, percent should have no space", tk.Label)
		}
	}
}

func TestSaveRejectsUnknownFormat(t *testing.T) {
	p, err := Bar(metricFrame(t), BarOptions{Metric: "psv99"})
	if err != nil {
		t.Fatalf("Bar: %v", err)
	}
	if err := Save(p, DefaultStyle(), filepath.Join(t.TempDir(), "chart.pdf")); err == nil {
		t.Fatal("expected error for pdf output")
	}
}

func TestFiniteRange(t *testing.T) {
	lo, hi, ok := finiteRange([]float64{math.NaN(), 3, 1, math.Inf(1), 2})
	if !ok || lo != 1 || hi != 3 {
		t.Fatalf("finiteRange = %f %f %v", lo, hi, ok)
	}
	if _, _, ok := finiteRange([]float64{math.NaN()}); ok {
		t.Fatal("expected ok=false for all-NaN input")
	}
}
