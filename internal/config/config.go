package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pitchplot/pitchplot-cli/internal/normalize"
	"github.com/pitchplot/pitchplot-cli/internal/theme"
)

// Global configuration structure.
type Global struct {
	// Palette overrides as #RRGGBB strings.
	BaseColor      string `mapstructure:"base_color" yaml:"base_color"`
	PrimaryColor   string `mapstructure:"primary_color" yaml:"primary_color"`
	SecondaryColor string `mapstructure:"secondary_color" yaml:"secondary_color"`
	InkColor       string `mapstructure:"ink_color" yaml:"ink_color"`

	// Figure dimensions in inches and the default output format (png|svg).
	FigWidthIn   float64 `mapstructure:"fig_width_in" yaml:"fig_width_in"`
	FigHeightIn  float64 `mapstructure:"fig_height_in" yaml:"fig_height_in"`
	OutputFormat string  `mapstructure:"output_format" yaml:"output_format"`

	// Column conventions of the metric exports.
	IDColumn      string `mapstructure:"id_column" yaml:"id_column"`
	LabelColumn   string `mapstructure:"label_column" yaml:"label_column"`
	MinutesColumn string `mapstructure:"minutes_column" yaml:"minutes_column"`
	TIPColumn     string `mapstructure:"tip_column" yaml:"tip_column"`

	// ReportsDir is where `pitchplot report` writes its artifacts.
	ReportsDir string `mapstructure:"reports_dir" yaml:"reports_dir"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.pitchplot/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".pitchplot")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("PITCHPLOT")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("base_color", theme.BaseHex)
	v.SetDefault("primary_color", theme.PrimaryHighlightHex)
	v.SetDefault("secondary_color", theme.SecondaryHighlightHex)
	v.SetDefault("ink_color", theme.InkHex)
	v.SetDefault("fig_width_in", theme.DefaultWidthInches)
	v.SetDefault("fig_height_in", theme.DefaultHeightInches)
	v.SetDefault("output_format", "png")
	v.SetDefault("id_column", theme.DefaultIDColumn)
	v.SetDefault("label_column", theme.DefaultLabelColumn)
	v.SetDefault("minutes_column", normalize.DefaultMinutesColumn)
	v.SetDefault("tip_column", normalize.DefaultTIPColumn)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".pitchplot")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.OutputFormat != "png" && c.OutputFormat != "svg" {
		return nil, fmt.Errorf("invalid output_format: %s (use png or svg)", c.OutputFormat)
	}
	// Resolve reports_dir default: ~/.pitchplot/reports
	if c.ReportsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.ReportsDir = filepath.Join(home, ".pitchplot", "reports")
	}
	return &c, nil
}
