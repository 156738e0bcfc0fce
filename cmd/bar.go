package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pitchplot/pitchplot-cli/internal/chart"
	"github.com/pitchplot/pitchplot-cli/internal/frame"
)

var (
	barMetric    string
	barLabel     string
	barUnit      string
	barTitle     string
	barOutput    string
	barPrimary   []string
	barSecondary []string
	barIDCol     string
	barLabelCol  string
	barDelimiter string
	barDecimal   string
	barThousands string
)

var barCmd = &cobra.Command{
	Use:   "bar <file.csv>",
	Short: "Render a sorted horizontal bar chart of one metric",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt, err := frameOptions(barDelimiter, barDecimal, barThousands)
		if err != nil {
			return err
		}
		f, err := frame.Load(path, opt)
		if err != nil {
			return err
		}
		st, err := styleFromConfig()
		if err != nil {
			return err
		}
		idCol := barIDCol
		if idCol == "" {
			idCol = idColumn()
		}
		labelCol := barLabelCol
		if labelCol == "" {
			labelCol = labelColumn()
		}
		p, err := chart.Bar(f, chart.BarOptions{
			Metric:         barMetric,
			Label:          barLabel,
			Unit:           barUnit,
			Title:          barTitle,
			IDColumn:       idCol,
			LabelColumn:    labelCol,
			PrimaryGroup:   barPrimary,
			SecondaryGroup: barSecondary,
			Style:          st,
		})
		if err != nil {
			return err
		}
		out := resolveOutput(barOutput, path, "bar_"+barMetric)
		if err := chart.Save(p, st, out); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(barCmd)
	barCmd.Flags().StringVarP(&barMetric, "metric", "m", "", "metric column to plot (required)")
	_ = barCmd.MarkFlagRequired("metric")
	barCmd.Flags().StringVar(&barLabel, "label", "", "x-axis label (defaults to the unit)")
	barCmd.Flags().StringVar(&barUnit, "unit", "", "unit suffix for axis values, e.g. '%' or 'km/h'")
	barCmd.Flags().StringVar(&barTitle, "title", "", "chart title")
	barCmd.Flags().StringVarP(&barOutput, "output", "o", "", "output image path (defaults next to the input)")
	barCmd.Flags().StringSliceVar(&barPrimary, "primary", nil, "data-point ids to highlight in the primary color")
	barCmd.Flags().StringSliceVar(&barSecondary, "secondary", nil, "data-point ids to highlight in the secondary color")
	barCmd.Flags().StringVar(&barIDCol, "id-column", "", "column identifying data points (default from config)")
	barCmd.Flags().StringVar(&barLabelCol, "label-column", "", "column used for bar labels (default from config)")
	barCmd.Flags().StringVar(&barDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	barCmd.Flags().StringVar(&barDecimal, "decimal", "", "decimal separator: '.'|'comma'")
	barCmd.Flags().StringVar(&barThousands, "thousands", "", "thousands separator: ','|'.'|'space'")
}
