package kpi

import (
	"testing"
	"time"

	"github.com/Veraticus/cashflow/internal/config"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(date string, typ model.TransactionType, sub string, amount string) model.Transaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return model.Transaction{
		Date:        d,
		Type:        typ,
		Category:    "Geral",
		Subcategory: sub,
		Amount:      decimal.RequireFromString(amount),
	}
}

func TestComputeBasic_Example(t *testing.T) {
	ledger := model.NewLedger([]model.Transaction{
		txn("2024-01-01", model.Income, "Vendas", "1000"),
		txn("2024-01-02", model.Expense, "Aluguel", "400"),
	})

	k := New(config.DefaultRatios()).ComputeBasic(ledger)

	assert.True(t, k.TotalIncome.Equal(decimal.NewFromInt(1000)))
	assert.True(t, k.TotalExpense.Equal(decimal.NewFromInt(400)))
	assert.True(t, k.NetBalance.Equal(decimal.NewFromInt(600)))
	assert.InDelta(t, 60.0, k.NetMargin, 1e-9)
	assert.Equal(t, 2, k.TransactionCount)
	assert.True(t, k.AverageTicket.Equal(decimal.NewFromInt(1000)))
}

func TestComputeBasic_Empty(t *testing.T) {
	e := New(config.DefaultRatios())
	k := e.ComputeBasic(model.NewLedger(nil))

	assert.True(t, k.TotalIncome.IsZero())
	assert.True(t, k.TotalExpense.IsZero())
	assert.True(t, k.NetBalance.IsZero())
	assert.Zero(t, k.NetMargin)
	assert.Zero(t, k.TransactionCount)
	assert.True(t, k.AverageTicket.IsZero())
	assert.Empty(t, k.TopIncome)
	assert.Empty(t, k.TopExpense)

	adv := e.ComputeAdvanced(model.NewLedger(nil), k)
	assert.Zero(t, adv.ROI)
	assert.True(t, adv.BreakEven.IsZero())
	assert.Zero(t, adv.ContributionMargin)
	assert.Equal(t, 45, adv.CashConversionCycle)
}

func TestComputeBasic_NetBalanceIdentity(t *testing.T) {
	ledgers := map[string][]model.Transaction{
		"fractional cents": {
			txn("2024-01-01", model.Income, "A", "0.1"),
			txn("2024-01-01", model.Income, "A", "0.2"),
			txn("2024-01-03", model.Expense, "B", "0.3"),
		},
		"expenses only": {
			txn("2024-01-01", model.Expense, "B", "19.99"),
			txn("2024-02-01", model.Expense, "C", "0.01"),
		},
		"negative amount": {
			txn("2024-01-01", model.Income, "A", "100"),
			txn("2024-01-02", model.Income, "A", "-30.33"),
			txn("2024-01-02", model.Expense, "B", "12.345"),
		},
	}

	for name, txns := range ledgers {
		t.Run(name, func(t *testing.T) {
			k := New(config.DefaultRatios()).ComputeBasic(model.NewLedger(txns))
			assert.True(t, k.TotalIncome.Sub(k.TotalExpense).Equal(k.NetBalance))
			if k.TotalIncome.IsZero() {
				assert.Zero(t, k.NetMargin)
			}
		})
	}
}

func TestTopSubcategories(t *testing.T) {
	amounts := map[string]decimal.Decimal{
		"Aluguel":  decimal.NewFromInt(500),
		"Energia":  decimal.NewFromInt(120),
		"Agua":     decimal.NewFromInt(120),
		"Salarios": decimal.NewFromInt(900),
	}

	got := TopSubcategories(amounts, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "Salarios", got[0].Subcategory)
	assert.Equal(t, "Aluguel", got[1].Subcategory)
	assert.Equal(t, "Agua", got[2].Subcategory)

	assert.Len(t, TopSubcategories(amounts, 10), 4)
}

func TestComputeBasic_TopN(t *testing.T) {
	var txns []model.Transaction
	for i := 0; i < 12; i++ {
		txns = append(txns, txn("2024-01-01", model.Income, string(rune('A'+i)), decimal.NewFromInt(int64(100+i)).String()))
	}

	k := New(config.DefaultRatios()).ComputeBasic(model.NewLedger(txns))
	assert.Len(t, k.TopIncome, 10)
	assert.Len(t, k.IncomeBySubcategory, 12)
	assert.Equal(t, "L", k.TopIncome[0].Subcategory)
}

func TestComputeAdvanced(t *testing.T) {
	ledger := model.NewLedger([]model.Transaction{
		txn("2024-01-01", model.Income, "Vendas", "1000"),
		txn("2024-03-01", model.Expense, "Aluguel", "400"),
	})
	e := New(config.DefaultRatios())
	adv := e.ComputeAdvanced(ledger, e.ComputeBasic(ledger))

	// contribution = (1000 - 280) / 1000 = 0.72
	assert.InDelta(t, 72.0, adv.ContributionMargin, 1e-9)
	// investment = 200, roi = 600 / 200 * 100
	assert.InDelta(t, 300.0, adv.ROI, 1e-9)
	// fixed = 160, break-even = 160 / 0.72
	assert.True(t, adv.BreakEven.Equal(decimal.RequireFromString("222.22")), "got %s", adv.BreakEven)
	assert.True(t, adv.OperatingCashFlow.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, 60, adv.CashConversionCycle)
}

func TestComputeAdvanced_NonPositiveContribution(t *testing.T) {
	ledger := model.NewLedger([]model.Transaction{
		txn("2024-01-01", model.Income, "Vendas", "100"),
		txn("2024-01-02", model.Expense, "Fornecedores", "1000"),
	})
	e := New(config.DefaultRatios())
	adv := e.ComputeAdvanced(ledger, e.ComputeBasic(ledger))

	assert.Less(t, adv.ContributionMargin, 0.0)
	assert.True(t, adv.BreakEven.IsZero())
}

func TestCashConversionCycle(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{name: "single transaction uses default", dates: []string{"2024-01-01"}, want: 45},
		{name: "same day uses default", dates: []string{"2024-01-01", "2024-01-01"}, want: 45},
		{name: "short gap clamps to minimum", dates: []string{"2024-01-01", "2024-01-06"}, want: 30},
		{name: "long gap clamps to maximum", dates: []string{"2024-01-01", "2024-07-19"}, want: 90},
		{name: "in range", dates: []string{"2024-01-01", "2024-03-01", "2024-02-10"}, want: 30},
		{name: "truncates fractional mean", dates: []string{"2024-01-01", "2024-02-10", "2024-03-22"}, want: 40},
	}

	e := New(config.DefaultRatios())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txns []model.Transaction
			for _, d := range tt.dates {
				txns = append(txns, txn(d, model.Expense, "X", "1"))
			}
			assert.Equal(t, tt.want, e.cashConversionCycle(model.NewLedger(txns)))
		})
	}
}
