package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/cashflow/internal/chart"
	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/config"
	"github.com/Veraticus/cashflow/internal/report"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	var (
		opts     sourceOptions
		company  string
		output   string
		noCharts bool
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "report [ledger.csv|ledger.ofx]",
		Short: "Export the dashboard as a PDF report",
		Long: `Build a PDF report with KPIs, trends, charts and alerts and write it to
the output directory as relatorio_financeiro_<company>_<timestamp>.pdf.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, args, &opts)
			if err != nil {
				return err
			}

			if company == "" {
				company = s.cfg.Report.Company
			}
			if strings.TrimSpace(company) == "" {
				return common.NewUserError("company name is required", fmt.Errorf("set --company or report.company: %w", report.ErrCompanyRequired))
			}
			if output == "" {
				output = s.cfg.Report.OutputDir
			}

			var renderer chart.Renderer = chart.NewGoChart()
			if noCharts {
				renderer = chart.Unavailable{}
			}

			builder := report.NewBuilder(renderer, s.format, slog.Default())
			if !quiet {
				progress := cli.NewStageProgress(cmd.ErrOrStderr(), "Gerando relatório", report.Stages)
				builder.OnStage = progress.Stage
				defer progress.Finish()
			}

			exporter := &report.Exporter{
				Builder:   builder,
				OutputDir: config.ExpandPath(output),
			}
			path, err := exporter.Export(cmd.Context(), report.Input{
				Company:     company,
				Snapshot:    s.snapshot(),
				GeneratedAt: now(),
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Relatório gerado: "+path))
			return nil
		},
	}

	addSourceFlags(cmd, &opts)
	cmd.Flags().StringVar(&company, "company", "", "company name shown on the cover (default: report.company)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: report.output_dir)")
	cmd.Flags().BoolVar(&noCharts, "no-charts", false, "omit the charts section")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")

	return cmd
}
