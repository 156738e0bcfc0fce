package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pitchplot/pitchplot-cli/internal/chart"
	"github.com/pitchplot/pitchplot-cli/internal/frame"
)

var (
	swX           string
	swY           string
	swYGroups     []string
	swYGroupNames []string
	swXLabel      string
	swXUnit       string
	swTitle       string
	swOutput      string
	swPrimary     []string
	swSecondary   []string
	swIDCol       string
	swLabelCol    string
	swDelimiter   string
	swDecimal     string
	swThousands   string
)

var swarmCmd = &cobra.Command{
	Use:   "swarm <file.csv>",
	Short: "Render a swarm/violin chart of one metric split by category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt, err := frameOptions(swDelimiter, swDecimal, swThousands)
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
		idCol := swIDCol
		if idCol == "" {
			idCol = idColumn()
		}
		labelCol := swLabelCol
		if labelCol == "" {
			labelCol = labelColumn()
		}
		p, err := chart.SwarmViolin(f, chart.SwarmOptions{
			XMetric:        swX,
			YMetric:        swY,
			YGroups:        swYGroups,
			YGroupLabels:   swYGroupNames,
			XLabel:         swXLabel,
			XUnit:          swXUnit,
			Title:          swTitle,
			IDColumn:       idCol,
			LabelColumn:    labelCol,
			PrimaryGroup:   swPrimary,
			SecondaryGroup: swSecondary,
			Style:          st,
		})
		if err != nil {
			return err
		}
		suffix := "swarm_" + swX
		if swY != "" {
			suffix += "_by_" + strings.ReplaceAll(swY, " ", "_")
		}
		out := resolveOutput(swOutput, path, suffix)
		if err := chart.Save(p, st, out); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(swarmCmd)
	swarmCmd.Flags().StringVarP(&swX, "x-metric", "x", "", "numeric metric column on the x axis (required)")
	_ = swarmCmd.MarkFlagRequired("x-metric")
	swarmCmd.Flags().StringVarP(&swY, "y-metric", "y", "", "categorical column splitting rows into groups (required)")
	_ = swarmCmd.MarkFlagRequired("y-metric")
	swarmCmd.Flags().StringSliceVar(&swYGroups, "y-groups", nil, "categorical values to include, in order (default: all)")
	swarmCmd.Flags().StringSliceVar(&swYGroupNames, "y-group-labels", nil, "display labels for the included groups")
	swarmCmd.Flags().StringVar(&swXLabel, "x-label", "", "x-axis label (defaults to the metric name)")
	swarmCmd.Flags().StringVar(&swXUnit, "x-unit", "", "unit suffix for x tick values")
	swarmCmd.Flags().StringVar(&swTitle, "title", "", "chart title")
	swarmCmd.Flags().StringVarP(&swOutput, "output", "o", "", "output image path (defaults next to the input)")
	swarmCmd.Flags().StringSliceVar(&swPrimary, "primary", nil, "data-point ids to highlight in the primary color")
	swarmCmd.Flags().StringSliceVar(&swSecondary, "secondary", nil, "data-point ids to highlight in the secondary color")
	swarmCmd.Flags().StringVar(&swIDCol, "id-column", "", "column identifying data points (default from config)")
	swarmCmd.Flags().StringVar(&swLabelCol, "label-column", "", "column used for point labels (default from config)")
	swarmCmd.Flags().StringVar(&swDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	swarmCmd.Flags().StringVar(&swDecimal, "decimal", "", "decimal separator: '.'|'comma'")
	swarmCmd.Flags().StringVar(&swThousands, "thousands", "", "thousands separator: ','|'.'|'space'")
}
