package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/pitchplot/pitchplot-cli/internal/config"
	"github.com/pitchplot/pitchplot-cli/internal/theme"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set pitchplot configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("base_color: %s\n", cfg.BaseColor)
		fmt.Printf("primary_color: %s\n", cfg.PrimaryColor)
		fmt.Printf("secondary_color: %s\n", cfg.SecondaryColor)
		fmt.Printf("ink_color: %s\n", cfg.InkColor)
		fmt.Printf("fig_width_in: %.2f\n", cfg.FigWidthIn)
		fmt.Printf("fig_height_in: %.2f\n", cfg.FigHeightIn)
		fmt.Printf("output_format: %s\n", cfg.OutputFormat)
		fmt.Printf("id_column: %s\n", cfg.IDColumn)
		fmt.Printf("label_column: %s\n", cfg.LabelColumn)
		fmt.Printf("minutes_column: %s\n", cfg.MinutesColumn)
		fmt.Printf("tip_column: %s\n", cfg.TIPColumn)
		fmt.Printf("reports_dir: %s\n", cfg.ReportsDir)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "base_color", "primary_color", "secondary_color", "ink_color":
			if _, err := theme.ParseHex(val); err != nil {
				return fmt.Errorf("invalid color for %s: %w", key, err)
			}
			switch key {
			case "base_color":
				cfg.BaseColor = val
			case "primary_color":
				cfg.PrimaryColor = val
			case "secondary_color":
				cfg.SecondaryColor = val
			case "ink_color":
				cfg.InkColor = val
			}
		case "fig_width_in", "fig_height_in":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid dimension for %s: %v", key, val)
			}
			if key == "fig_width_in" {
				cfg.FigWidthIn = f
			} else {
				cfg.FigHeightIn = f
			}
		case "output_format":
			if val != "png" && val != "svg" {
				return fmt.Errorf("invalid output_format: %s (use png or svg)", val)
			}
			cfg.OutputFormat = val
		case "id_column":
			cfg.IDColumn = val
		case "label_column":
			cfg.LabelColumn = val
		case "minutes_column":
			cfg.MinutesColumn = val
		case "tip_column":
			cfg.TIPColumn = val
		case "reports_dir":
			cfg.ReportsDir = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
