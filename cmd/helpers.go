package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/pitchplot/pitchplot-cli/internal/chart"
	"github.com/pitchplot/pitchplot-cli/internal/frame"
	"github.com/pitchplot/pitchplot-cli/internal/normalize"
	"github.com/pitchplot/pitchplot-cli/internal/theme"
)

// frameOptions translates the shared --delimiter/--decimal/--thousands flag
// values into frame ingestion options.
func frameOptions(delimiter, decimal, thousands string) (frame.Options, error) {
	opt := frame.DefaultOptions()
	switch delimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case ";":
		opt.Delimiter = ';'
	case "\t", "tab":
		opt.Delimiter = '\t'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", delimiter)
	}
	switch strings.ToLower(strings.TrimSpace(decimal)) {
	case "":
	case ",", "comma":
		opt.DecimalSeparator = ','
	case ".", "dot":
		opt.DecimalSeparator = '.'
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", decimal)
	}
	switch strings.ToLower(strings.TrimSpace(thousands)) {
	case "":
	case ",":
		opt.ThousandsSeparator = ','
	case ".":
		opt.ThousandsSeparator = '.'
	case "space", " ":
		opt.ThousandsSeparator = ' '
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", thousands)
	}
	return opt, nil
}

// styleFromConfig resolves the chart style from the loaded configuration,
// falling back to the house defaults when no config is available.
func styleFromConfig() (chart.Style, error) {
	st := chart.DefaultStyle()
	if cfg == nil {
		return st, nil
	}
	var err error
	if cfg.BaseColor != "" {
		if st.Base, err = theme.ParseHex(cfg.BaseColor); err != nil {
			return st, fmt.Errorf("base_color: %w", err)
		}
	}
	if cfg.PrimaryColor != "" {
		if st.Primary, err = theme.ParseHex(cfg.PrimaryColor); err != nil {
			return st, fmt.Errorf("primary_color: %w", err)
		}
	}
	if cfg.SecondaryColor != "" {
		if st.Secondary, err = theme.ParseHex(cfg.SecondaryColor); err != nil {
			return st, fmt.Errorf("secondary_color: %w", err)
		}
	}
	if cfg.InkColor != "" {
		if st.Ink, err = theme.ParseHex(cfg.InkColor); err != nil {
			return st, fmt.Errorf("ink_color: %w", err)
		}
	}
	if cfg.FigWidthIn > 0 {
		st.Width = vg.Length(cfg.FigWidthIn) * vg.Inch
	}
	if cfg.FigHeightIn > 0 {
		st.Height = vg.Length(cfg.FigHeightIn) * vg.Inch
	}
	return st, nil
}

// outputFormat returns the configured chart file extension.
func outputFormat() string {
	if cfg != nil && cfg.OutputFormat != "" {
		return cfg.OutputFormat
	}
	return "png"
}

// resolveOutput picks the chart output path: the explicit --output value, or
// <input-stem>_<suffix>.<format> next to the working directory.
func resolveOutput(output, input, suffix string) string {
	if output != "" {
		return output
	}
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_%s.%s", stem, suffix, outputFormat())
}

// idColumn and labelColumn resolve the data-point column conventions.
func idColumn() string {
	if cfg != nil && cfg.IDColumn != "" {
		return cfg.IDColumn
	}
	return theme.DefaultIDColumn
}

func labelColumn() string {
	if cfg != nil && cfg.LabelColumn != "" {
		return cfg.LabelColumn
	}
	return theme.DefaultLabelColumn
}

func minutesColumn() string {
	if cfg != nil && cfg.MinutesColumn != "" {
		return cfg.MinutesColumn
	}
	return normalize.DefaultMinutesColumn
}

func tipColumn() string {
	if cfg != nil && cfg.TIPColumn != "" {
		return cfg.TIPColumn
	}
	return normalize.DefaultTIPColumn
}
