package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"demoqual/app"
	"demoqual/internal/analysis/quality"
)

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute every quality indicator and print a summary",
		Long: `Compute the Whipple, Myers, Bachi and UN indices for the male, female and
total population, the Benford conformity test, the smoothing test and the
consolidated quality score.

Example: demoqual analyze --table census.xlsx --whipple-min-age 25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.build(cmd)
			if err != nil {
				return err
			}
			report, err := c.Service.Analyze(commandContext(cmd), c.Config.Analysis)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return printSummary(out, report)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var format string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the report workbook or the raw table",
		Long: `Export the analysis.

  xlsx  workbook with Summary, Data, Indices, Tests, Terminal digits and Formulas sheets
  csv   raw Age,Male,Female,Total table
  json  raw table as an array of rows

Example: demoqual export --format xlsx --out report.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.build(cmd)
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)
			if _, err := c.Service.Exporter(format); err != nil {
				return err
			}

			report, err := c.Service.Analyze(ctx, c.Config.Analysis)
			if err != nil {
				return err
			}

			if outPath == "" || outPath == "-" {
				return c.Service.Export(ctx, cmd.OutOrStdout(), format, report)
			}
			return exportToFile(ctx, c.Service, outPath, format, report)
		},
	}

	cmd.Flags().StringVar(&format, "format", "xlsx", "xlsx, csv or json")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newBenfordCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benford",
		Short: "Test leading digits of all counts against Benford's law",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.build(cmd)
			if err != nil {
				return err
			}
			report, err := c.Service.Analyze(commandContext(cmd), c.Config.Analysis)
			if err != nil {
				return err
			}
			return printBenford(cmd.OutOrStdout(), report)
		},
	}
	return cmd
}

// exportToFile writes the export to path and removes the file if either the
// export or the close fails
func exportToFile(ctx context.Context, svc *app.QualityService, path, format string, report *quality.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return svc.Export(ctx, f, format, report)
}

func printSummary(out io.Writer, r *quality.Report) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Population\t%s\t(male %s, female %s)\n", number(r.TotalPopulation), number(r.MalePopulation), number(r.FemalePopulation))
	fmt.Fprintf(tw, "Sex ratio\t%s\n", decimal(r.SexRatio.Global))
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "GROUP\tWHIPPLE\tMYERS\tBACHI\tUN\tSMOOTHING p")
	for _, g := range r.Groups {
		fmt.Fprintf(tw, "%s\t%s (%s)\t%s (%s)\t%s (%s)\t%s\t%s\n",
			g.Group,
			decimal(g.Whipple.Value), g.Whipple.Label,
			decimal(g.Myers.Value), g.Myers.Label,
			decimal(g.Bachi.Value), g.Bachi.Label,
			decimal(g.UN.Value),
			pvalue(g.Smoothing.PValue))
	}
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "Benford\tchi2=%s\tp=%s\t%s\n", decimal(r.Benford.ChiSquare), pvalue(r.Benford.PValue), r.BenfordLabel)
	fmt.Fprintf(tw, "Score\t%d/%d\t%s\n", r.Score.Total, r.Score.Max, r.Score.Label)
	return tw.Flush()
}

func printBenford(out io.Writer, r *quality.Report) error {
	b := r.Benford
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "DIGIT\tOBSERVED\tEXPECTED\tOBSERVED %\tBENFORD %\t")
	freq := b.ObservedFrequencies()
	for d := 1; d <= 9; d++ {
		fmt.Fprintf(tw, "%d\t%d\t%.1f\t%.2f\t%.2f\t\n", d, b.Observed[d-1], b.Expected[d-1], freq[d-1]*100, quality.BenfordProbability(d)*100)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\nN=%d  chi2=%s  df=%d  p=%s  %s (alpha %.2f)\n",
		b.N, decimal(b.ChiSquare), b.DegreesOfFreedom, pvalue(b.PValue), r.BenfordLabel, r.Params.Thresholds.BenfordAlpha)
	return err
}

func decimal(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func pvalue(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.4g", v)
}

func number(v float64) string {
	return fmt.Sprintf("%.0f", v)
}
