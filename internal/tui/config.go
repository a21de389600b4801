package tui

import (
	"github.com/Veraticus/cashflow/internal/dashboard"
	"github.com/Veraticus/cashflow/internal/format"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme    themes.Theme
	Service  *dashboard.Service
	Ledger   *model.Ledger
	Format   *format.Formatter
	Filter   model.Filter
	Warnings []string
	TopN     int
	Width    int
	Height   int
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Format: format.New(format.DefaultSymbol),
		TopN:   5,
		Width:  100,
		Height: 30,
	}
}

// WithService sets the snapshot service.
func WithService(service *dashboard.Service) Option {
	return func(c *Config) {
		c.Service = service
	}
}

// WithLedger sets the ledger being explored.
func WithLedger(ledger *model.Ledger) Option {
	return func(c *Config) {
		c.Ledger = ledger
	}
}

// WithFormatter sets the number formatter.
func WithFormatter(f *format.Formatter) Option {
	return func(c *Config) {
		c.Format = f
	}
}

// WithInitialFilter restricts the ledger before any interactive filter applies.
func WithInitialFilter(f model.Filter) Option {
	return func(c *Config) {
		c.Filter = f
	}
}

// WithWarnings shows load warnings in the status bar.
func WithWarnings(warnings []string) Option {
	return func(c *Config) {
		c.Warnings = warnings
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithTopN limits the subcategory rankings.
func WithTopN(n int) Option {
	return func(c *Config) {
		c.TopN = n
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
