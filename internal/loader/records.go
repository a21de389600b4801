package loader

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/shopspring/decimal"
)

// Canonical column names.
const (
	ColDate        = "Data"
	ColCategory    = "Categoria"
	ColSubcategory = "Subcategoria"
	ColType        = "Tipo"
	ColAmount      = "Valor"
	ColClient      = "Cliente"
)

var requiredColumns = []string{ColDate, ColCategory, ColSubcategory, ColType, ColAmount}

var columnAliases = map[string]string{
	"data":         ColDate,
	"date":         ColDate,
	"categoria":    ColCategory,
	"category":     ColCategory,
	"subcategoria": ColSubcategory,
	"subcategory":  ColSubcategory,
	"tipo":         ColType,
	"type":         ColType,
	"valor":        ColAmount,
	"amount":       ColAmount,
	"value":        ColAmount,
	"cliente":      ColClient,
	"client":       ColClient,
}

var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2006-01-02",
	"2/1/2006 15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// LoadRecords validates a header plus rows and builds the ledger.
// It is shared by the CSV and spreadsheet sources.
func LoadRecords(ctx context.Context, header []string, rows [][]string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	index, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var (
		txns          []model.Transaction
		dropped       int
		parsedAmounts int
		nonEmpty      int
	)

	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		nonEmpty++

		amount, err := ParseAmount(cell(row, index[ColAmount]))
		if err != nil {
			slog.Debug("dropping row with invalid amount", "row", i+2, "error", err)
			dropped++
			continue
		}
		parsedAmounts++

		date, err := ParseDate(cell(row, index[ColDate]))
		if err != nil {
			slog.Debug("dropping row with invalid date", "row", i+2, "error", err)
			dropped++
			continue
		}

		typ, err := model.ParseTransactionType(cell(row, index[ColType]))
		if err != nil {
			slog.Debug("dropping row with invalid type", "row", i+2, "error", err)
			dropped++
			continue
		}

		txn := model.Transaction{
			Date:        date,
			Amount:      amount,
			Category:    strings.TrimSpace(cell(row, index[ColCategory])),
			Subcategory: strings.TrimSpace(cell(row, index[ColSubcategory])),
			Type:        typ,
		}
		if col, ok := index[ColClient]; ok {
			txn.Client = strings.TrimSpace(cell(row, col))
		}
		txns = append(txns, txn)
	}

	if nonEmpty > 0 && parsedAmounts == 0 {
		return nil, &common.SchemaError{Reason: fmt.Sprintf("column %s has no numeric values", ColAmount)}
	}

	return newResult(txns, dropped), nil
}

func mapColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if canonical, ok := columnAliases[key]; ok {
			if _, dup := index[canonical]; !dup {
				index[canonical] = i
			}
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &common.SchemaError{Missing: missing}
	}
	return index, nil
}

// ParseAmount converts a money string to a decimal. It accepts plain
// decimals, "1,234.56", "1.234,56" and a leading currency symbol.
func ParseAmount(s string) (decimal.Decimal, error) {
	raw := s
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastDot >= 0 && strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	return d, nil
}

// ParseDate parses a day-first date and returns it at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
