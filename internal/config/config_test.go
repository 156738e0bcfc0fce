package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pitchplot/pitchplot-cli/internal/normalize"
	"github.com/pitchplot/pitchplot-cli/internal/theme"
)

func TestLoadDefaults(t *testing.T) {
	// Point at a nonexistent file so only defaults apply.
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	c, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.BaseColor != theme.BaseHex {
		t.Fatalf("base_color = %q, want %q", c.BaseColor, theme.BaseHex)
	}
	if c.PrimaryColor != theme.PrimaryHighlightHex {
		t.Fatalf("primary_color = %q", c.PrimaryColor)
	}
	if c.FigWidthIn != theme.DefaultWidthInches || c.FigHeightIn != theme.DefaultHeightInches {
		t.Fatalf("figure dims = %f x %f", c.FigWidthIn, c.FigHeightIn)
	}
	if c.OutputFormat != "png" {
		t.Fatalf("output_format = %q, want png", c.OutputFormat)
	}
	if c.IDColumn != theme.DefaultIDColumn || c.LabelColumn != theme.DefaultLabelColumn {
		t.Fatalf("columns = %q / %q", c.IDColumn, c.LabelColumn)
	}
	if c.MinutesColumn != normalize.DefaultMinutesColumn {
		t.Fatalf("minutes_column = %q", c.MinutesColumn)
	}
	if c.TIPColumn != normalize.DefaultTIPColumn {
		t.Fatalf("tip_column = %q", c.TIPColumn)
	}
	if c.ReportsDir == "" {
		t.Fatal("reports_dir not defaulted")
	}
}

func TestLoadFromFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	content := strings.Join([]string{
		"base_color: \"#112233\"",
		"output_format: svg",
		"fig_width_in: 12",
		"id_column: short_name",
		"reports_dir: /tmp/reports",
	}, "\n")
	if err := os.WriteFile(cfgFile, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	c, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.BaseColor != "#112233" {
		t.Fatalf("base_color = %q", c.BaseColor)
	}
	if c.OutputFormat != "svg" {
		t.Fatalf("output_format = %q", c.OutputFormat)
	}
	if c.FigWidthIn != 12 {
		t.Fatalf("fig_width_in = %f", c.FigWidthIn)
	}
	if c.FigHeightIn != theme.DefaultHeightInches {
		t.Fatalf("fig_height_in = %f, want default", c.FigHeightIn)
	}
	if c.IDColumn != "short_name" {
		t.Fatalf("id_column = %q", c.IDColumn)
	}
	if c.ReportsDir != "/tmp/reports" {
		t.Fatalf("reports_dir = %q", c.ReportsDir)
	}
}

func TestLoadRejectsBadFormat(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgFile, []byte("output_format: pdf\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(cfgFile); err == nil {
		t.Fatal("expected error for output_format pdf")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	c, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.SecondaryColor = "#ABCDEF"
	c.FigHeightIn = 5.5
	if err := Save(c, cfgFile); err != nil {
		t.Fatalf("Save: %v", err)
	}
	reloaded, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.SecondaryColor != "#ABCDEF" {
		t.Fatalf("secondary_color = %q", reloaded.SecondaryColor)
	}
	if reloaded.FigHeightIn != 5.5 {
		t.Fatalf("fig_height_in = %f", reloaded.FigHeightIn)
	}
}
