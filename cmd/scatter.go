package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pitchplot/pitchplot-cli/internal/chart"
	"github.com/pitchplot/pitchplot-cli/internal/frame"
)

var (
	scX          string
	scY          string
	scZ          string
	scXLabel     string
	scYLabel     string
	scZLabel     string
	scXUnit      string
	scYUnit      string
	scXAnno      string
	scYAnno      string
	scXSD        float64
	scYSD        float64
	scNoMeans    bool
	scTitle      string
	scOutput     string
	scPrimary    []string
	scSecondary  []string
	scIDCol      string
	scLabelCol   string
	scDelimiter  string
	scDecimal    string
	scThousands  string
)

var scatterCmd = &cobra.Command{
	Use:   "scatter <file.csv>",
	Short: "Render an x/y scatter with optional z-sized bubbles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt, err := frameOptions(scDelimiter, scDecimal, scThousands)
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
		idCol := scIDCol
		if idCol == "" {
			idCol = idColumn()
		}
		labelCol := scLabelCol
		if labelCol == "" {
			labelCol = labelColumn()
		}
		p, err := chart.Scatter(f, chart.ScatterOptions{
			XMetric:        scX,
			YMetric:        scY,
			ZMetric:        scZ,
			XLabel:         scXLabel,
			YLabel:         scYLabel,
			ZLabel:         scZLabel,
			XUnit:          scXUnit,
			YUnit:          scYUnit,
			XAnnotation:    scXAnno,
			YAnnotation:    scYAnno,
			XSDHighlight:   scXSD,
			YSDHighlight:   scYSD,
			MeanLines:      !scNoMeans,
			Title:          scTitle,
			IDColumn:       idCol,
			LabelColumn:    labelCol,
			PrimaryGroup:   scPrimary,
			SecondaryGroup: scSecondary,
			Style:          st,
		})
		if err != nil {
			return err
		}
		out := resolveOutput(scOutput, path, "scatter_"+scX+"_"+scY)
		if err := chart.Save(p, st, out); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scatterCmd)
	scatterCmd.Flags().StringVarP(&scX, "x-metric", "x", "", "x-axis metric column (required)")
	_ = scatterCmd.MarkFlagRequired("x-metric")
	scatterCmd.Flags().StringVarP(&scY, "y-metric", "y", "", "y-axis metric column (required)")
	_ = scatterCmd.MarkFlagRequired("y-metric")
	scatterCmd.Flags().StringVarP(&scZ, "z-metric", "z", "", "column sizing the points (sum_minutes_played derives from minutes and match counts)")
	scatterCmd.Flags().StringVar(&scXLabel, "x-label", "", "x-axis label (defaults to the metric name)")
	scatterCmd.Flags().StringVar(&scYLabel, "y-label", "", "y-axis label (defaults to the metric name)")
	scatterCmd.Flags().StringVar(&scZLabel, "z-label", "", "size legend caption (defaults to the z metric name)")
	scatterCmd.Flags().StringVar(&scXUnit, "x-unit", "", "unit suffix for x tick values")
	scatterCmd.Flags().StringVar(&scYUnit, "y-unit", "", "unit suffix for y tick values")
	scatterCmd.Flags().StringVar(&scXAnno, "x-annotation", "", "corner annotation describing the x axis")
	scatterCmd.Flags().StringVar(&scYAnno, "y-annotation", "", "corner annotation describing the y axis")
	scatterCmd.Flags().Float64Var(&scXSD, "x-sd-highlight", 0, "label points this many standard deviations above the x mean")
	scatterCmd.Flags().Float64Var(&scYSD, "y-sd-highlight", 0, "label points this many standard deviations above the y mean")
	scatterCmd.Flags().BoolVar(&scNoMeans, "no-mean-lines", false, "disable the dashed mean crosshair")
	scatterCmd.Flags().StringVar(&scTitle, "title", "", "chart title")
	scatterCmd.Flags().StringVarP(&scOutput, "output", "o", "", "output image path (defaults next to the input)")
	scatterCmd.Flags().StringSliceVar(&scPrimary, "primary", nil, "data-point ids to highlight in the primary color")
	scatterCmd.Flags().StringSliceVar(&scSecondary, "secondary", nil, "data-point ids to highlight in the secondary color")
	scatterCmd.Flags().StringVar(&scIDCol, "id-column", "", "column identifying data points (default from config)")
	scatterCmd.Flags().StringVar(&scLabelCol, "label-column", "", "column used for point labels (default from config)")
	scatterCmd.Flags().StringVar(&scDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	scatterCmd.Flags().StringVar(&scDecimal, "decimal", "", "decimal separator: '.'|'comma'")
	scatterCmd.Flags().StringVar(&scThousands, "thousands", "", "thousands separator: ','|'.'|'space'")
}
