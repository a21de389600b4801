package main

import (
	"fmt"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	var (
		opts   sourceOptions
		output string
	)

	cmd := &cobra.Command{
		Use:   "summary [ledger.csv|ledger.ofx]",
		Short: "Print KPIs, trends and alerts for a ledger",
		Long: `Print the financial dashboard for a ledger: basic and advanced KPIs,
monthly and weekday trends, top subcategories and alerts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "table" && output != "json" {
				return fmt.Errorf("invalid --format %q (use table or json)", output)
			}

			s, err := openSession(cmd, args, &opts)
			if err != nil {
				return err
			}
			snap := s.snapshot()

			if output == "json" {
				return cli.WriteJSON(cmd.OutOrStdout(), snap)
			}

			view := cli.NewSnapshotView(s.format)
			view.TopN = s.cfg.TopN
			_, err = fmt.Fprint(cmd.OutOrStdout(), view.Render(snap))
			return err
		},
	}

	addSourceFlags(cmd, &opts)
	cmd.Flags().StringVar(&output, "format", "table", "output format (table, json)")

	return cmd
}
