package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gonum.org/v1/plot"

	"github.com/pitchplot/pitchplot-cli/internal/chart"
	"github.com/pitchplot/pitchplot-cli/internal/frame"
	"github.com/pitchplot/pitchplot-cli/internal/report"
	"github.com/pitchplot/pitchplot-cli/internal/utils"
)

var (
	repSpecPath   string
	repOutDir     string
	repDelimiter  string
	repDecimal    string
	repThousands  string
)

// reportSpec is the yaml description of a chart batch.
type reportSpec struct {
	Title  string            `yaml:"title"`
	Charts []reportChartSpec `yaml:"charts"`
}

type reportChartSpec struct {
	Type string `yaml:"type"` // bar|scatter|swarm

	Metric  string `yaml:"metric"` // bar
	XMetric string `yaml:"x_metric"`
	YMetric string `yaml:"y_metric"`
	ZMetric string `yaml:"z_metric"`

	Label  string `yaml:"label"`
	XLabel string `yaml:"x_label"`
	YLabel string `yaml:"y_label"`
	ZLabel string `yaml:"z_label"`
	Unit   string `yaml:"unit"`
	XUnit  string `yaml:"x_unit"`
	YUnit  string `yaml:"y_unit"`
	Title  string `yaml:"title"`

	XAnnotation string `yaml:"x_annotation"`
	YAnnotation string `yaml:"y_annotation"`

	XSDHighlight float64 `yaml:"x_sd_highlight"`
	YSDHighlight float64 `yaml:"y_sd_highlight"`
	NoMeanLines  bool    `yaml:"no_mean_lines"`

	YGroups      []string `yaml:"y_groups"`
	YGroupLabels []string `yaml:"y_group_labels"`

	Primary   []string `yaml:"primary"`
	Secondary []string `yaml:"secondary"`
}

var reportCmd = &cobra.Command{
	Use:   "report <file.csv>",
	Short: "Render a batch of charts described by a yaml spec into a report directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		specBytes, err := os.ReadFile(repSpecPath)
		if err != nil {
			return fmt.Errorf("read spec: %w", err)
		}
		var spec reportSpec
		if err := yaml.Unmarshal(specBytes, &spec); err != nil {
			return fmt.Errorf("parse spec: %w", err)
		}
		if len(spec.Charts) == 0 {
			return fmt.Errorf("spec %s contains no charts", repSpecPath)
		}

		opt, err := frameOptions(repDelimiter, repDecimal, repThousands)
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

		outDir := repOutDir
		if outDir == "" && cfg != nil {
			outDir = cfg.ReportsDir
		}
		if outDir == "" {
			return fmt.Errorf("no reports directory configured; pass --out-dir")
		}
		rep := report.New(path, outDir)
		if err := utils.EnsureDir(rep.RootDir()); err != nil {
			return fmt.Errorf("report dir: %w", err)
		}

		// Render each chart before recording it, so the manifest never
		// references a file that failed to render.
		for i, cs := range spec.Charts {
			p, metrics, err := buildReportChart(f, cs, st)
			if err != nil {
				return fmt.Errorf("chart %d (%s): %w", i+1, cs.Type, err)
			}
			file := fmt.Sprintf("%02d_%s.%s", i+1, chartSlug(cs), outputFormat())
			if err := chart.Save(p, st, rep.ChartPath(file)); err != nil {
				return fmt.Errorf("chart %d (%s): %w", i+1, cs.Type, err)
			}
			rep.AddChart(cs.Type, cs.Title, file, metrics)
			if err := rep.Save(); err != nil {
				return err
			}
		}
		fmt.Printf("✓ Report %s: %d charts in %s\n", rep.ID, len(rep.Charts), rep.RootDir())
		return nil
	},
}

func buildReportChart(f *frame.Frame, cs reportChartSpec, st chart.Style) (*plot.Plot, []string, error) {
	switch cs.Type {
	case "bar":
		p, err := chart.Bar(f, chart.BarOptions{
			Metric:         cs.Metric,
			Label:          cs.Label,
			Unit:           cs.Unit,
			Title:          cs.Title,
			IDColumn:       idColumn(),
			LabelColumn:    labelColumn(),
			PrimaryGroup:   cs.Primary,
			SecondaryGroup: cs.Secondary,
			Style:          st,
		})
		return p, []string{cs.Metric}, err
	case "scatter":
		p, err := chart.Scatter(f, chart.ScatterOptions{
			XMetric:        cs.XMetric,
			YMetric:        cs.YMetric,
			ZMetric:        cs.ZMetric,
			XLabel:         cs.XLabel,
			YLabel:         cs.YLabel,
			ZLabel:         cs.ZLabel,
			XUnit:          cs.XUnit,
			YUnit:          cs.YUnit,
			XAnnotation:    cs.XAnnotation,
			YAnnotation:    cs.YAnnotation,
			XSDHighlight:   cs.XSDHighlight,
			YSDHighlight:   cs.YSDHighlight,
			MeanLines:      !cs.NoMeanLines,
			Title:          cs.Title,
			IDColumn:       idColumn(),
			LabelColumn:    labelColumn(),
			PrimaryGroup:   cs.Primary,
			SecondaryGroup: cs.Secondary,
			Style:          st,
		})
		metrics := []string{cs.XMetric, cs.YMetric}
		if cs.ZMetric != "" {
			metrics = append(metrics, cs.ZMetric)
		}
		return p, metrics, err
	case "swarm":
		p, err := chart.SwarmViolin(f, chart.SwarmOptions{
			XMetric:        cs.XMetric,
			YMetric:        cs.YMetric,
			YGroups:        cs.YGroups,
			YGroupLabels:   cs.YGroupLabels,
			XLabel:         cs.XLabel,
			XUnit:          cs.XUnit,
			Title:          cs.Title,
			IDColumn:       idColumn(),
			LabelColumn:    labelColumn(),
			PrimaryGroup:   cs.Primary,
			SecondaryGroup: cs.Secondary,
			Style:          st,
		})
		return p, []string{cs.XMetric, cs.YMetric}, err
	default:
		return nil, nil, fmt.Errorf("unsupported chart type %q (use bar|scatter|swarm)", cs.Type)
	}
}

func chartSlug(cs reportChartSpec) string {
	parts := []string{cs.Type}
	for _, m := range []string{cs.Metric, cs.XMetric, cs.YMetric} {
		if m != "" {
			parts = append(parts, m)
		}
	}
	slug := strings.Join(parts, "_")
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, slug)
	return slug
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&repSpecPath, "spec", "s", "", "yaml file describing the charts to render (required)")
	_ = reportCmd.MarkFlagRequired("spec")
	reportCmd.Flags().StringVar(&repOutDir, "out-dir", "", "reports directory (default from config)")
	reportCmd.Flags().StringVar(&repDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	reportCmd.Flags().StringVar(&repDecimal, "decimal", "", "decimal separator: '.'|'comma'")
	reportCmd.Flags().StringVar(&repThousands, "thousands", "", "thousands separator: ','|'.'|'space'")
}
