package cmd

import (
	"testing"

	"gonum.org/v1/plot/vg"

	cfgpkg "github.com/pitchplot/pitchplot-cli/internal/config"
	"github.com/pitchplot/pitchplot-cli/internal/theme"
)

func TestFrameOptions(t *testing.T) {
	opt, err := frameOptions(";", "comma", ".")
	if err != nil {
		t.Fatalf("frameOptions: %v", err)
	}
	if opt.Delimiter != ';' || opt.DecimalSeparator != ',' || opt.ThousandsSeparator != '.' {
		t.Fatalf("options = %#v", opt)
	}

	opt, err = frameOptions("tab", "", "space")
	if err != nil {
		t.Fatalf("frameOptions: %v", err)
	}
	if opt.Delimiter != '\t' || opt.DecimalSeparator != 0 || opt.ThousandsSeparator != ' ' {
		t.Fatalf("options = %#v", opt)
	}

	if _, err := frameOptions("|", "", ""); err == nil {
		t.Fatal("expected error for unsupported delimiter")
	}
	if _, err := frameOptions("", "semicolon", ""); err == nil {
		t.Fatal("expected error for unsupported decimal")
	}
	if _, err := frameOptions("", "", "x"); err == nil {
		t.Fatal("expected error for unsupported thousands")
	}
}

func TestResolveOutput(t *testing.T) {
	old := cfg
	defer func() { cfg = old }()
	cfg = nil

	if got := resolveOutput("custom.png", "metrics.csv", "bar_psv99"); got != "custom.png" {
		t.Fatalf("explicit output ignored: %q", got)
	}
	if got := resolveOutput("", "data/metrics.csv", "bar_psv99"); got != "metrics_bar_psv99.png" {
		t.Fatalf("default output = %q", got)
	}

	cfg = &cfgpkg.Global{OutputFormat: "svg"}
	if got := resolveOutput("", "metrics.csv", "scatter_a_b"); got != "metrics_scatter_a_b.svg" {
		t.Fatalf("svg output = %q", got)
	}
}

func TestStyleFromConfig(t *testing.T) {
	old := cfg
	defer func() { cfg = old }()

	cfg = nil
	st, err := styleFromConfig()
	if err != nil {
		t.Fatalf("styleFromConfig: %v", err)
	}
	if st.Base != theme.Base || st.Width != vg.Length(theme.DefaultWidthInches)*vg.Inch {
		t.Fatalf("default style = %#v", st)
	}

	cfg = &cfgpkg.Global{
		BaseColor:   "#112233",
		FigWidthIn:  10,
		FigHeightIn: 5,
	}
	st, err = styleFromConfig()
	if err != nil {
		t.Fatalf("styleFromConfig: %v", err)
	}
	if st.Base.R != 0x11 || st.Base.G != 0x22 || st.Base.B != 0x33 {
		t.Fatalf("base color = %#v", st.Base)
	}
	if st.Width != 10*vg.Inch || st.Height != 5*vg.Inch {
		t.Fatalf("dims = %v x %v", st.Width, st.Height)
	}
	// Unset colors keep the house palette.
	if st.Primary != theme.PrimaryHighlight {
		t.Fatalf("primary = %#v", st.Primary)
	}

	cfg = &cfgpkg.Global{InkColor: "nope"}
	if _, err := styleFromConfig(); err == nil {
		t.Fatal("expected error for invalid ink_color")
	}
}

func TestColumnFallbacks(t *testing.T) {
	old := cfg
	defer func() { cfg = old }()

	cfg = nil
	if got := idColumn(); got != theme.DefaultIDColumn {
		t.Fatalf("idColumn = %q", got)
	}
	if got := minutesColumn(); got != "minutes_played_per_match" {
		t.Fatalf("minutesColumn = %q", got)
	}

	cfg = &cfgpkg.Global{IDColumn: "short_name", TIPColumn: "tip_minutes"}
	if got := idColumn(); got != "short_name" {
		t.Fatalf("idColumn = %q", got)
	}
	if got := tipColumn(); got != "tip_minutes" {
		t.Fatalf("tipColumn = %q", got)
	}
	// Empty fields still fall back.
	if got := labelColumn(); got != theme.DefaultLabelColumn {
		t.Fatalf("labelColumn = %q", got)
	}
}

func TestChartSlug(t *testing.T) {
	cs := reportChartSpec{Type: "scatter", XMetric: "psv99", YMetric: "top speed (km/h)"}
	if got := chartSlug(cs); got != "scatter_psv99_top_speed__km_h_" {
		t.Fatalf("chartSlug = %q", got)
	}
	bar := reportChartSpec{Type: "bar", Metric: "distance_per_90"}
	if got := chartSlug(bar); got != "bar_distance_per_90" {
		t.Fatalf("chartSlug = %q", got)
	}
}
