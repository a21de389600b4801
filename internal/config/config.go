// Package config provides configuration utilities for the application.
package config

import (
	"fmt"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/spf13/viper"
)

// Ratios are the heuristic shares used to approximate the advanced KPIs.
// They are assumptions about the business, not values measured from the ledger.
type Ratios struct {
	VariableCostShare float64 // share of expenses treated as variable costs
	InvestmentShare   float64 // share of income treated as average investment
	FixedCostShare    float64 // share of expenses treated as fixed costs
	DefaultCycleDays  int
	MinCycleDays      int
	MaxCycleDays      int
}

// DefaultRatios returns the ratios used when nothing is configured.
func DefaultRatios() Ratios {
	return Ratios{
		VariableCostShare: 0.70,
		InvestmentShare:   0.20,
		FixedCostShare:    0.40,
		DefaultCycleDays:  45,
		MinCycleDays:      30,
		MaxCycleDays:      90,
	}
}

// Validate checks the ratios are usable.
func (r Ratios) Validate() error {
	for name, share := range map[string]float64{
		"variable_cost_share": r.VariableCostShare,
		"investment_share":    r.InvestmentShare,
		"fixed_cost_share":    r.FixedCostShare,
	} {
		if share < 0 || share > 1 {
			return fmt.Errorf("%w: kpi.%s must be between 0 and 1, got %v", common.ErrInvalidConfig, name, share)
		}
	}
	if r.MinCycleDays <= 0 || r.MinCycleDays > r.MaxCycleDays {
		return fmt.Errorf("%w: kpi cycle bounds [%d, %d] are invalid", common.ErrInvalidConfig, r.MinCycleDays, r.MaxCycleDays)
	}
	return nil
}

// Report holds PDF export settings.
type Report struct {
	Company        string
	OutputDir      string
	CurrencySymbol string
}

// Logging holds the slog handler settings.
type Logging struct {
	Level  string
	Format string
}

// Config is the typed application configuration.
type Config struct {
	Logging Logging
	Report  Report
	Ratios  Ratios
	TopN    int
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	r := DefaultRatios()
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("kpi.variable_cost_share", r.VariableCostShare)
	v.SetDefault("kpi.investment_share", r.InvestmentShare)
	v.SetDefault("kpi.fixed_cost_share", r.FixedCostShare)
	v.SetDefault("kpi.default_cycle_days", r.DefaultCycleDays)
	v.SetDefault("kpi.min_cycle_days", r.MinCycleDays)
	v.SetDefault("kpi.max_cycle_days", r.MaxCycleDays)
	v.SetDefault("kpi.top_n", 10)
	v.SetDefault("report.currency_symbol", "R$")
	v.SetDefault("report.output_dir", ".")
}

// Load builds a Config from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		Logging: Logging{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Report: Report{
			Company:        v.GetString("report.company"),
			OutputDir:      ExpandPath(v.GetString("report.output_dir")),
			CurrencySymbol: v.GetString("report.currency_symbol"),
		},
		Ratios: Ratios{
			VariableCostShare: v.GetFloat64("kpi.variable_cost_share"),
			InvestmentShare:   v.GetFloat64("kpi.investment_share"),
			FixedCostShare:    v.GetFloat64("kpi.fixed_cost_share"),
			DefaultCycleDays:  v.GetInt("kpi.default_cycle_days"),
			MinCycleDays:      v.GetInt("kpi.min_cycle_days"),
			MaxCycleDays:      v.GetInt("kpi.max_cycle_days"),
		},
		TopN: v.GetInt("kpi.top_n"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Ratios.Validate(); err != nil {
		return err
	}
	if c.TopN <= 0 {
		return fmt.Errorf("%w: kpi.top_n must be positive", common.ErrInvalidConfig)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	return nil
}
