// Package normalize derives standardized per-duration and per-volume rates
// from raw per-match metrics. All functions are pure arithmetic over frame
// columns; a zero or missing denominator yields NaN rather than an error so
// that one bad row never aborts a whole table.
package normalize

import (
	"fmt"
	"math"
	"strings"

	"github.com/pitchplot/pitchplot-cli/internal/frame"
)

// Reference scales for each normalization.
const (
	MatchMinutes = 90  // a standard match duration
	TIPMinutes   = 30  // time-in-possession baseline
	ActionCount  = 100 // action-volume baseline
)

// Default denominator columns in exported metric tables.
const (
	DefaultMinutesColumn = "minutes_played_per_match"
	DefaultTIPColumn     = "adjusted_min_tip_per_match"
)

// Per90 scales a per-match value to a 90 minute match.
func Per90(value, minutes float64) float64 {
	return ratio(value, minutes, MatchMinutes)
}

// Per30TIP scales a per-match value to 30 minutes of team time in possession.
func Per30TIP(value, minutesTIP float64) float64 {
	return ratio(value, minutesTIP, TIPMinutes)
}

// Per100 scales a per-match value to 100 of the underlying action events.
func Per100(value, actions float64) float64 {
	return ratio(value, actions, ActionCount)
}

func ratio(value, denom, scale float64) float64 {
	if denom == 0 || math.IsNaN(denom) || math.IsNaN(value) {
		return math.NaN()
	}
	return value / (denom / scale)
}

// Per90Column appends a per-90 column derived from metric, using minutesCol
// as the denominator. It returns the name of the added column.
func Per90Column(f *frame.Frame, metric, minutesCol string) (string, error) {
	return applyColumn(f, metric, minutesCol, MatchMinutes, "per_90")
}

// Per30TIPColumn appends a per-30-TIP column derived from metric.
func Per30TIPColumn(f *frame.Frame, metric, tipCol string) (string, error) {
	return applyColumn(f, metric, tipCol, TIPMinutes, "per_30_tip")
}

// Per100Column appends a per-100 column derived from metric, scaled by the
// given adjustment metric (e.g. count_runs_per_match for per 100 runs).
func Per100Column(f *frame.Frame, metric, adjustmentMetric string) (string, error) {
	return applyColumn(f, metric, adjustmentMetric, ActionCount, "per_100")
}

func applyColumn(f *frame.Frame, metric, denomCol string, scale float64, suffix string) (string, error) {
	vals, err := f.Floats(metric)
	if err != nil {
		return "", fmt.Errorf("metric: %w", err)
	}
	denom, err := f.Floats(denomCol)
	if err != nil {
		return "", fmt.Errorf("denominator: %w", err)
	}
	out := make([]float64, len(vals))
	for i := range vals {
		out[i] = ratio(vals[i], denom[i], scale)
	}
	name := suffixName(metric, suffix)
	if err := f.SetFloats(name, out); err != nil {
		return "", err
	}
	return name, nil
}

// AddPer30TIPMetrics appends a per-30-TIP variant for every count metric in
// the frame (columns named count_*_per_match). It returns the names of the
// added columns.
func AddPer30TIPMetrics(f *frame.Frame, tipCol string) ([]string, error) {
	if tipCol == "" {
		tipCol = DefaultTIPColumn
	}
	var added []string
	for _, col := range f.Columns() {
		if !strings.Contains(col, "count_") || !strings.Contains(col, "per_match") {
			continue
		}
		name, err := Per30TIPColumn(f, col, tipCol)
		if err != nil {
			return added, fmt.Errorf("column %s: %w", col, err)
		}
		added = append(added, name)
	}
	return added, nil
}

// suffixName renames a per-match metric to its normalized form, so
// count_runs_per_match becomes count_runs_per_30_tip. Metrics without the
// per_match suffix get the normalization appended.
func suffixName(metric, suffix string) string {
	if strings.Contains(metric, "per_match") {
		return strings.Replace(metric, "per_match", suffix, 1)
	}
	return metric + "_" + suffix
}
