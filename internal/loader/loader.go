// Package loader parses raw ledger input into a validated model.Ledger.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
)

// Result is the outcome of a successful load.
type Result struct {
	Ledger   *model.Ledger
	Warnings []common.DataWarning
	Dropped  int // rows removed for unparseable date, amount or type
}

// LoadFile opens path and dispatches on its extension.
func LoadFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Debug("failed to close ledger file", "path", path, "error", cerr)
		}
	}()

	var res *Result
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		res, err = LoadCSV(ctx, f)
	case ".ofx", ".qfx":
		res, err = LoadOFX(ctx, f)
	default:
		return nil, fmt.Errorf("unsupported ledger file type %q (use .csv, .ofx or .qfx)", ext)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded ledger",
		"path", path,
		"transactions", res.Ledger.Len(),
		"dropped", res.Dropped,
		"warnings", len(res.Warnings))

	return res, nil
}

func newResult(txns []model.Transaction, dropped int) *Result {
	res := &Result{
		Ledger:  model.NewLedger(txns),
		Dropped: dropped,
	}

	negative := 0
	for _, t := range txns {
		if t.Amount.IsNegative() {
			negative++
		}
	}
	if negative > 0 {
		w := common.DataWarning{Message: "negative amounts found in column Valor", Rows: negative}
		slog.Warn("Ledger contains negative amounts", "rows", negative)
		res.Warnings = append(res.Warnings, w)
	}
	if dropped > 0 {
		res.Warnings = append(res.Warnings, common.DataWarning{
			Message: "rows dropped for unparseable date, amount or type",
			Rows:    dropped,
		})
	}

	return res
}
