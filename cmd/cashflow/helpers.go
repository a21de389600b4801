package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/config"
	"github.com/Veraticus/cashflow/internal/dashboard"
	"github.com/Veraticus/cashflow/internal/format"
	"github.com/Veraticus/cashflow/internal/kpi"
	"github.com/Veraticus/cashflow/internal/loader"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// sourceOptions are the flags shared by every command that reads a ledger.
type sourceOptions struct {
	sheet         string
	from          string
	to            string
	types         []string
	categories    []string
	subcategories []string
}

func addSourceFlags(cmd *cobra.Command, opts *sourceOptions) {
	f := cmd.Flags()
	f.StringVar(&opts.sheet, "sheet", "", "read the ledger from this Google Sheets spreadsheet ID instead of a file")
	f.StringVar(&opts.from, "from", "", "first day to include (dd/mm/yyyy)")
	f.StringVar(&opts.to, "to", "", "last day to include (dd/mm/yyyy)")
	f.StringSliceVar(&opts.types, "type", nil, "transaction types to include (Receita, Despesa)")
	f.StringSliceVar(&opts.categories, "category", nil, "categories to include")
	f.StringSliceVar(&opts.subcategories, "subcategory", nil, "subcategories to include")
}

// filter converts the flag values into a model.Filter.
func (o *sourceOptions) filter() (model.Filter, error) {
	var f model.Filter

	if o.from != "" {
		from, err := loader.ParseDate(o.from)
		if err != nil {
			return f, fmt.Errorf("invalid --from date: %w", err)
		}
		f.From = &from
	}
	if o.to != "" {
		to, err := loader.ParseDate(o.to)
		if err != nil {
			return f, fmt.Errorf("invalid --to date: %w", err)
		}
		f.To = &to
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, fmt.Errorf("--from %s is after --to %s", f.From.Format("02/01/2006"), f.To.Format("02/01/2006"))
	}

	for _, raw := range o.types {
		t, err := model.ParseTransactionType(raw)
		if err != nil {
			return f, fmt.Errorf("invalid --type: %w", err)
		}
		f.Types = append(f.Types, t)
	}
	f.Categories = trimAll(o.categories)
	f.Subcategories = trimAll(o.subcategories)

	return f, nil
}

// load reads the ledger from the file argument or from Google Sheets.
func (o *sourceOptions) load(ctx context.Context, args []string) (*loader.Result, error) {
	if len(args) > 0 && o.sheet != "" {
		return nil, errors.New("pass either a ledger file or --sheet, not both")
	}
	if len(args) > 0 {
		return loader.LoadFile(ctx, config.ExpandPath(args[0]))
	}
	if o.sheet == "" && viper.GetString("sheets.spreadsheet_id") == "" {
		return nil, common.NewUserError("no ledger given", errors.New("pass a CSV/OFX file or --sheet SPREADSHEET_ID"))
	}

	cfg, err := config.LoadSheetsConfig(viper.GetViper(), o.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to load sheets config: %w", err)
	}
	reader, err := sheets.NewReader(ctx, *cfg, slog.Default())
	if err != nil {
		return nil, err
	}
	return reader.Load(ctx)
}

// session is a loaded ledger plus everything needed to analyze it.
type session struct {
	cfg    *config.Config
	result *loader.Result
	filter model.Filter
	engine *kpi.Engine
	format *format.Formatter
}

func openSession(cmd *cobra.Command, args []string, opts *sourceOptions) (*session, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	filter, err := opts.filter()
	if err != nil {
		return nil, err
	}

	result, err := opts.load(cmd.Context(), args)
	if err != nil {
		return nil, err
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.RenderWarnings(result.Warnings))
	}

	engine := kpi.New(cfg.Ratios)
	engine.TopN = cfg.TopN

	return &session{
		cfg:    cfg,
		result: result,
		filter: filter,
		engine: engine,
		format: format.New(cfg.Report.CurrencySymbol),
	}, nil
}

func (s *session) snapshot() dashboard.Snapshot {
	return dashboard.Compute(s.engine, s.result.Ledger, s.filter)
}

func (s *session) warnings() []string {
	out := make([]string, len(s.result.Warnings))
	for i, w := range s.result.Warnings {
		out[i] = w.String()
	}
	return out
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// now is replaced in tests.
var now = time.Now
