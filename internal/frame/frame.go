// Package frame provides a small column-oriented table for metric CSVs.
// It keeps the raw cell strings alongside lazily parsed numeric views, so a
// frame can be round-tripped back to CSV without mangling columns it never
// touched.
package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Options controls CSV ingestion.
type Options struct {
	// Delimiter for CSV. If 0, auto-detects from the file extension
	// (.tsv means tab, everything else comma).
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune // optional; if 0, auto-detect common separators
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
}

// DefaultOptions returns the usual ingestion defaults.
func DefaultOptions() Options {
	return Options{}
}

// Frame is a column-oriented table. Cells are stored as strings; numeric
// access parses on demand using the locale options the frame was loaded with.
type Frame struct {
	cols  []string
	index map[string]int
	data  [][]string // column-major: data[col][row]
	rows  int
	opt   Options
}

// New creates an empty frame with the given column names.
func New(cols []string) *Frame {
	f := &Frame{cols: append([]string(nil), cols...), index: make(map[string]int, len(cols))}
	for i, c := range f.cols {
		f.index[c] = i
		f.data = append(f.data, nil)
	}
	return f
}

// Load reads a CSV/TSV file into a frame.
func Load(path string, opt Options) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(file)
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty csv: %s", path)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	for i := range header {
		cols[i] = strings.TrimSpace(header[i])
	}
	f := New(cols)
	f.opt = opt

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = math.MaxInt
	}
	for f.rows < maxRows {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", f.rows+1, err)
		}
		for j := range f.cols {
			v := ""
			if j < len(rec) {
				v = strings.TrimSpace(rec[j])
			}
			f.data[j] = append(f.data[j], v)
		}
		f.rows++
	}
	return f, nil
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string { return append([]string(nil), f.cols...) }

// Len returns the number of rows.
func (f *Frame) Len() int { return f.rows }

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

func (f *Frame) column(name string) ([]string, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	return f.data[i], nil
}

// Strings returns a copy of the raw cells of a column.
func (f *Frame) Strings(name string) ([]string, error) {
	col, err := f.column(name)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), col...), nil
}

// Floats returns the numeric view of a column. Empty cells and cells that do
// not parse as numbers become NaN.
func (f *Frame) Floats(name string) ([]float64, error) {
	col, err := f.column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(col))
	for i, v := range col {
		if v == "" {
			out[i] = math.NaN()
			continue
		}
		x, ok := parseNumeric(v, f.opt)
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = x
	}
	return out, nil
}

// SetFloats adds or replaces a numeric column. NaN values are stored as empty
// cells so they serialize as missing.
func (f *Frame) SetFloats(name string, vals []float64) error {
	if f.rows > 0 && len(vals) != f.rows {
		return fmt.Errorf("column %q: %d values for %d rows", name, len(vals), f.rows)
	}
	cells := make([]string, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		cells[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return f.setColumn(name, cells)
}

// SetStrings adds or replaces a raw string column.
func (f *Frame) SetStrings(name string, vals []string) error {
	if f.rows > 0 && len(vals) != f.rows {
		return fmt.Errorf("column %q: %d values for %d rows", name, len(vals), f.rows)
	}
	return f.setColumn(name, append([]string(nil), vals...))
}

func (f *Frame) setColumn(name string, cells []string) error {
	if f.rows == 0 {
		f.rows = len(cells)
	}
	if i, ok := f.index[name]; ok {
		f.data[i] = cells
		return nil
	}
	f.index[name] = len(f.cols)
	f.cols = append(f.cols, name)
	f.data = append(f.data, cells)
	return nil
}

// SortBy sorts rows ascending by the numeric values of a column. NaN rows
// sort first so that the largest bars end up on top of a horizontal chart.
func (f *Frame) SortBy(name string) error {
	keys, err := f.Floats(name)
	if err != nil {
		return err
	}
	order := make([]int, f.rows)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		x, y := keys[order[a]], keys[order[b]]
		if math.IsNaN(x) {
			return !math.IsNaN(y)
		}
		if math.IsNaN(y) {
			return false
		}
		return x < y
	})
	for j := range f.data {
		src := f.data[j]
		dst := make([]string, len(src))
		for i, idx := range order {
			dst[i] = src[idx]
		}
		f.data[j] = dst
	}
	return nil
}

// FilterIn returns a new frame containing only rows whose value in the named
// column is one of the given values.
func (f *Frame) FilterIn(name string, values []string) (*Frame, error) {
	col, err := f.column(name)
	if err != nil {
		return nil, err
	}
	keep := make(map[string]bool, len(values))
	for _, v := range values {
		keep[v] = true
	}
	out := New(f.cols)
	out.opt = f.opt
	for i := 0; i < f.rows; i++ {
		if !keep[col[i]] {
			continue
		}
		for j := range f.data {
			out.data[j] = append(out.data[j], f.data[j][i])
		}
		out.rows++
	}
	return out, nil
}

// Unique returns the distinct values of a column in first-seen order.
func (f *Frame) Unique(name string) ([]string, error) {
	col, err := f.column(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(col))
	var out []string
	for _, v := range col {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out, nil
}

// WriteCSV writes the frame to w as comma-separated values with a header row.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.cols); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(f.cols))
	for i := 0; i < f.rows; i++ {
		for j := range f.cols {
			rec[j] = f.data[j][i]
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the frame to a file.
func (f *Frame) SaveCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := f.WriteCSV(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// parseNumeric handles percent suffixes, decimal commas and thousands
// separators so that exported spreadsheets load without preprocessing.
func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.TrimSpace(s)
	if strings.Contains(raw, "%") {
		raw = strings.ReplaceAll(raw, "%", "")
	}
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)

	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		if cpos >= 0 && dpos >= 0 {
			if cpos > dpos {
				dec = ','
				thou = '.'
			} else {
				dec = '.'
				thou = ','
			}
		} else if cpos >= 0 {
			dec = ','
		} else {
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
