package main

import (
	"github.com/Veraticus/cashflow/internal/dashboard"
	"github.com/Veraticus/cashflow/internal/tui"
	"github.com/Veraticus/cashflow/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func dashboardCmd() *cobra.Command {
	var opts sourceOptions

	cmd := &cobra.Command{
		Use:   "dashboard [ledger.csv|ledger.ofx]",
		Short: "Explore a ledger interactively",
		Long: `Open the interactive dashboard. Filters can be changed live:
m cycles months, t types, c categories, s subcategories and r resets.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, args, &opts)
			if err != nil {
				return err
			}

			return tui.Run(cmd.Context(),
				tui.WithService(dashboard.NewService(s.engine, 0)),
				tui.WithLedger(s.result.Ledger),
				tui.WithInitialFilter(s.filter),
				tui.WithFormatter(s.format),
				tui.WithWarnings(s.warnings()),
				tui.WithTheme(themes.ByName(viper.GetString("tui.theme"))),
			)
		},
	}

	addSourceFlags(cmd, &opts)
	cmd.Flags().String("theme", "default", "color theme (default, catppuccin)")
	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}
