package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pitchplot/pitchplot-cli/internal/frame"
	"github.com/pitchplot/pitchplot-cli/internal/normalize"
)

var (
	normOutput      string
	normMetrics     []string
	normMode        string
	normDenominator string
	normAllTIP      bool
	normDelimiter   string
	normDecimal     string
	normThousands   string
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <file.csv>",
	Short: "Add per-90, per-30-TIP or per-100 columns to a metric table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt, err := frameOptions(normDelimiter, normDecimal, normThousands)
		if err != nil {
			return err
		}
		f, err := frame.Load(path, opt)
		if err != nil {
			return err
		}

		var added []string
		if normAllTIP {
			cols, err := normalize.AddPer30TIPMetrics(f, tipColumn())
			if err != nil {
				return err
			}
			added = append(added, cols...)
		}
		for _, metric := range normMetrics {
			var (
				name string
				err  error
			)
			switch strings.ToLower(normMode) {
			case "per-90", "per90":
				name, err = normalize.Per90Column(f, metric, minutesColumn())
			case "per-30-tip", "per30tip":
				name, err = normalize.Per30TIPColumn(f, metric, tipColumn())
			case "per-100", "per100":
				if normDenominator == "" {
					return fmt.Errorf("--mode per-100 requires --denominator")
				}
				name, err = normalize.Per100Column(f, metric, normDenominator)
			default:
				return fmt.Errorf("unsupported --mode: %s (use per-90|per-30-tip|per-100)", normMode)
			}
			if err != nil {
				return err
			}
			added = append(added, name)
		}
		if len(added) == 0 {
			return fmt.Errorf("nothing to do: pass --metric or --all-per-30-tip")
		}

		if normOutput != "" {
			if err := f.SaveCSV(normOutput); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote %s with %d new columns: %s\n", normOutput, len(added), strings.Join(added, ", "))
			return nil
		}
		return f.WriteCSV(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
	normalizeCmd.Flags().StringVarP(&normOutput, "output", "o", "", "path to write the extended CSV (default: stdout)")
	normalizeCmd.Flags().StringSliceVarP(&normMetrics, "metric", "m", nil, "metric column(s) to normalize (repeatable)")
	normalizeCmd.Flags().StringVar(&normMode, "mode", "per-90", "normalization: per-90 | per-30-tip | per-100")
	normalizeCmd.Flags().StringVar(&normDenominator, "denominator", "", "adjustment metric column for per-100 (e.g. count_runs_per_match)")
	normalizeCmd.Flags().BoolVar(&normAllTIP, "all-per-30-tip", false, "add a per-30-TIP variant for every count_*_per_match column")
	normalizeCmd.Flags().StringVar(&normDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	normalizeCmd.Flags().StringVar(&normDecimal, "decimal", "", "decimal separator: '.'|'comma' (auto-detect if omitted)")
	normalizeCmd.Flags().StringVar(&normThousands, "thousands", "", "thousands separator: ','|'.'|'space' (auto-detect if omitted)")
}
