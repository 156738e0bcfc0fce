package normalize

import (
	"math"
	"testing"

	"github.com/pitchplot/pitchplot-cli/internal/frame"
)

func metricFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f := frame.New([]string{
		"player_name",
		"minutes_played_per_match",
		"adjusted_min_tip_per_match",
		"count_sprints_per_match",
		"count_runs_per_match",
		"distance_per_match",
	})
	if err := f.SetStrings("player_name", []string{"A", "B", "C"}); err != nil {
		t.Fatalf("SetStrings: %v", err)
	}
	set := func(col string, vals []float64) {
		if err := f.SetFloats(col, vals); err != nil {
			t.Fatalf("SetFloats %s: %v", col, err)
		}
	}
	set("minutes_played_per_match", []float64{90, 60, 0})
	set("adjusted_min_tip_per_match", []float64{30, 15, math.NaN()})
	set("count_sprints_per_match", []float64{18, 12, 9})
	set("count_runs_per_match", []float64{40, 20, 10})
	set("distance_per_match", []float64{10800, 7200, 5400})
	return f
}

func TestScalarNormalizations(t *testing.T) {
	if got := Per90(10, 45); !almostEqual(got, 20, 1e-9) {
		t.Fatalf("Per90 = %f, want 20", got)
	}
	if got := Per30TIP(10, 15); !almostEqual(got, 20, 1e-9) {
		t.Fatalf("Per30TIP = %f, want 20", got)
	}
	if got := Per100(3, 40); !almostEqual(got, 7.5, 1e-9) {
		t.Fatalf("Per100 = %f, want 7.5", got)
	}
	if got := Per90(10, 0); !math.IsNaN(got) {
		t.Fatalf("Per90 with zero minutes = %f, want NaN", got)
	}
	if got := Per90(math.NaN(), 90); !math.IsNaN(got) {
		t.Fatalf("Per90 with NaN value = %f, want NaN", got)
	}
	if got := Per30TIP(10, math.NaN()); !math.IsNaN(got) {
		t.Fatalf("Per30TIP with NaN TIP = %f, want NaN", got)
	}
}

func TestPer90Column(t *testing.T) {
	f := metricFrame(t)
	name, err := Per90Column(f, "distance_per_match", DefaultMinutesColumn)
	if err != nil {
		t.Fatalf("Per90Column: %v", err)
	}
	if name != "distance_per_90" {
		t.Fatalf("column name = %q, want distance_per_90", name)
	}
	vals, err := f.Floats(name)
	if err != nil {
		t.Fatalf("Floats: %v", err)
	}
	if !almostEqual(vals[0], 10800, 1e-9) {
		t.Fatalf("vals[0] = %f, want 10800", vals[0])
	}
	if !almostEqual(vals[1], 10800, 1e-9) {
		t.Fatalf("vals[1] = %f, want 10800", vals[1])
	}
	if !math.IsNaN(vals[2]) {
		t.Fatalf("vals[2] = %f, want NaN for zero minutes", vals[2])
	}
}

func TestPer30TIPColumn(t *testing.T) {
	f := metricFrame(t)
	name, err := Per30TIPColumn(f, "count_sprints_per_match", DefaultTIPColumn)
	if err != nil {
		t.Fatalf("Per30TIPColumn: %v", err)
	}
	if name != "count_sprints_per_30_tip" {
		t.Fatalf("column name = %q, want count_sprints_per_30_tip", name)
	}
	vals, err := f.Floats(name)
	if err != nil {
		t.Fatalf("Floats: %v", err)
	}
	if !almostEqual(vals[0], 18, 1e-9) {
		t.Fatalf("vals[0] = %f, want 18", vals[0])
	}
	if !almostEqual(vals[1], 24, 1e-9) {
		t.Fatalf("vals[1] = %f, want 24", vals[1])
	}
	if !math.IsNaN(vals[2]) {
		t.Fatalf("vals[2] = %f, want NaN for missing TIP", vals[2])
	}
}

func TestPer100Column(t *testing.T) {
	f := metricFrame(t)
	name, err := Per100Column(f, "count_sprints_per_match", "count_runs_per_match")
	if err != nil {
		t.Fatalf("Per100Column: %v", err)
	}
	if name != "count_sprints_per_100" {
		t.Fatalf("column name = %q, want count_sprints_per_100", name)
	}
	vals, err := f.Floats(name)
	if err != nil {
		t.Fatalf("Floats: %v", err)
	}
	want := []float64{45, 60, 90}
	for i := range want {
		if !almostEqual(vals[i], want[i], 1e-9) {
			t.Fatalf("vals[%d] = %f, want %f", i, vals[i], want[i])
		}
	}
}

func TestColumnErrors(t *testing.T) {
	f := metricFrame(t)
	if _, err := Per90Column(f, "nope", DefaultMinutesColumn); err == nil {
		t.Fatal("expected error for missing metric")
	}
	if _, err := Per90Column(f, "distance_per_match", "nope"); err == nil {
		t.Fatal("expected error for missing denominator")
	}
}

func TestAddPer30TIPMetrics(t *testing.T) {
	f := metricFrame(t)
	added, err := AddPer30TIPMetrics(f, "")
	if err != nil {
		t.Fatalf("AddPer30TIPMetrics: %v", err)
	}
	want := []string{"count_sprints_per_30_tip", "count_runs_per_30_tip"}
	if len(added) != len(want) {
		t.Fatalf("added = %#v, want %#v", added, want)
	}
	for i := range want {
		if added[i] != want[i] {
			t.Fatalf("added[%d] = %q, want %q", i, added[i], want[i])
		}
		if !f.HasColumn(want[i]) {
			t.Fatalf("column %q not added", want[i])
		}
	}
	// distance_per_match has no count_ prefix and must be left alone.
	if f.HasColumn("distance_per_30_tip") {
		t.Fatal("distance_per_match should not get a per-30-TIP variant")
	}
}

func TestSuffixName(t *testing.T) {
	if got := suffixName("count_runs_per_match", "per_30_tip"); got != "count_runs_per_30_tip" {
		t.Fatalf("suffixName = %q", got)
	}
	if got := suffixName("psv99", "per_90"); got != "psv99_per_90" {
		t.Fatalf("suffixName = %q", got)
	}
}

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
