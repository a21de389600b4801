// Package testutil provides ledger fixtures shared by package tests.
//
// Example usage:
//
//	ledger := testutil.NewLedgerBuilder(t).
//		WithFixture(testutil.QuarterFixture).
//		Income("05/04/2024", "Vendas", "Produtos", "1200").
//		Build()
package testutil

import (
	"testing"

	"github.com/Veraticus/cashflow/internal/loader"
	"github.com/Veraticus/cashflow/internal/model"
)

// Row is one fixture transaction in ledger notation (dd/mm/yyyy dates, decimal amounts).
type Row struct {
	Date        string
	Category    string
	Subcategory string
	Type        model.TransactionType
	Amount      string
}

// Fixture is a named set of rows.
type Fixture []Row

// QuarterFixture is a small business quarter: three months of sales with rent and payroll.
var QuarterFixture = Fixture{
	{"03/01/2024", "Vendas", "Produtos", model.Income, "5000"},
	{"10/01/2024", "Operacional", "Aluguel", model.Expense, "1500"},
	{"02/02/2024", "Vendas", "Servicos", model.Income, "6500"},
	{"15/02/2024", "Pessoal", "Salarios", model.Expense, "2500"},
	{"01/03/2024", "Vendas", "Produtos", model.Income, "8000"},
}

// LedgerBuilder builds a model.Ledger fluently, failing the test on bad input.
type LedgerBuilder struct {
	t    *testing.T
	txns []model.Transaction
}

// NewLedgerBuilder creates an empty builder.
func NewLedgerBuilder(t *testing.T) *LedgerBuilder {
	t.Helper()
	return &LedgerBuilder{t: t}
}

// WithFixture appends every row of f.
func (b *LedgerBuilder) WithFixture(f Fixture) *LedgerBuilder {
	b.t.Helper()
	for _, r := range f {
		b.add(r)
	}
	return b
}

// Income appends an income row.
func (b *LedgerBuilder) Income(date, category, subcategory, amount string) *LedgerBuilder {
	b.t.Helper()
	b.add(Row{date, category, subcategory, model.Income, amount})
	return b
}

// Expense appends an expense row.
func (b *LedgerBuilder) Expense(date, category, subcategory, amount string) *LedgerBuilder {
	b.t.Helper()
	b.add(Row{date, category, subcategory, model.Expense, amount})
	return b
}

// Build returns the ledger.
func (b *LedgerBuilder) Build() *model.Ledger {
	return model.NewLedger(b.txns)
}

func (b *LedgerBuilder) add(r Row) {
	b.t.Helper()
	date, err := loader.ParseDate(r.Date)
	if err != nil {
		b.t.Fatalf("bad fixture date: %v", err)
	}
	amount, err := loader.ParseAmount(r.Amount)
	if err != nil {
		b.t.Fatalf("bad fixture amount: %v", err)
	}
	b.txns = append(b.txns, model.Transaction{
		Date:        date,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Type:        r.Type,
		Amount:      amount,
	})
}
