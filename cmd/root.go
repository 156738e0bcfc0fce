package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/pitchplot/pitchplot-cli/internal/config"
)

var (
	// Global flags (wired to config at load time)
	cfgFile string
	debug   bool
	// Figure flags (override config if set)
	flagFormat   string
	flagWidthIn  float64
	flagHeightIn float64

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "pitchplot",
	Short: "pitchplot: standardized charts and normalizations for match metric tables",
	Long:  `pitchplot renders the analysis team's standard chart types (bar, scatter, swarm/violin) from per-player metric CSVs and derives per-90, per-30-TIP and per-100 normalized columns.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.pitchplot/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "chart output format: png|svg (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&flagWidthIn, "fig-width", 0, "figure width in inches (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&flagHeightIn, "fig-height", 0, "figure height in inches (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("format") && flagFormat != "" {
		cfg.OutputFormat = flagFormat
	}
	if f.Changed("fig-width") && flagWidthIn > 0 {
		cfg.FigWidthIn = flagWidthIn
	}
	if f.Changed("fig-height") && flagHeightIn > 0 {
		cfg.FigHeightIn = flagHeightIn
	}
}
