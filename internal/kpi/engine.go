// Package kpi computes financial indicators from a ledger view.
package kpi

import (
	"slices"
	"strings"

	"github.com/Veraticus/cashflow/internal/config"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/shopspring/decimal"
)

// DefaultTopN is the ranking size used for on-screen lists.
const DefaultTopN = 10

var hundred = decimal.NewFromInt(100)

// Engine computes basic and advanced KPIs. It holds no state between calls.
type Engine struct {
	Ratios config.Ratios
	TopN   int
}

// New creates an Engine with the given heuristic ratios.
func New(ratios config.Ratios) *Engine {
	return &Engine{Ratios: ratios, TopN: DefaultTopN}
}

// ComputeBasic aggregates the ledger. Empty input yields zero values.
func (e *Engine) ComputeBasic(ledger *model.Ledger) model.BasicKpis {
	k := model.BasicKpis{
		TotalIncome:          decimal.Zero,
		TotalExpense:         decimal.Zero,
		NetBalance:           decimal.Zero,
		AverageTicket:        decimal.Zero,
		IncomeBySubcategory:  make(map[string]decimal.Decimal),
		ExpenseBySubcategory: make(map[string]decimal.Decimal),
	}

	incomeRows := 0
	ledger.Each(func(t model.Transaction) {
		k.TransactionCount++
		switch t.Type {
		case model.Income:
			incomeRows++
			k.TotalIncome = k.TotalIncome.Add(t.Amount)
			k.IncomeBySubcategory[t.Subcategory] = k.IncomeBySubcategory[t.Subcategory].Add(t.Amount)
		case model.Expense:
			k.TotalExpense = k.TotalExpense.Add(t.Amount)
			k.ExpenseBySubcategory[t.Subcategory] = k.ExpenseBySubcategory[t.Subcategory].Add(t.Amount)
		}
	})

	k.NetBalance = k.TotalIncome.Sub(k.TotalExpense)
	if k.TotalIncome.IsPositive() {
		k.NetMargin = k.NetBalance.Div(k.TotalIncome).Mul(hundred).InexactFloat64()
	}
	if incomeRows > 0 {
		k.AverageTicket = k.TotalIncome.Div(decimal.NewFromInt(int64(incomeRows)))
	}

	n := e.TopN
	if n <= 0 {
		n = DefaultTopN
	}
	k.TopIncome = TopSubcategories(k.IncomeBySubcategory, n)
	k.TopExpense = TopSubcategories(k.ExpenseBySubcategory, n)

	return k
}

// TopSubcategories ranks amounts descending, breaking ties by name, and keeps n.
func TopSubcategories(amounts map[string]decimal.Decimal, n int) []model.SubcategoryAmount {
	ranked := make([]model.SubcategoryAmount, 0, len(amounts))
	for name, amount := range amounts {
		ranked = append(ranked, model.SubcategoryAmount{Subcategory: name, Amount: amount})
	}

	slices.SortFunc(ranked, func(a, b model.SubcategoryAmount) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return strings.Compare(a.Subcategory, b.Subcategory)
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// ComputeAdvanced derives the approximated KPIs. Every ratio used here is an
// assumption from configuration; only the cash conversion cycle reads the dates.
func (e *Engine) ComputeAdvanced(ledger *model.Ledger, basic model.BasicKpis) model.AdvancedKpis {
	r := e.Ratios
	income := basic.TotalIncome
	expense := basic.TotalExpense

	adv := model.AdvancedKpis{
		BreakEven:           decimal.Zero,
		OperatingCashFlow:   basic.NetBalance,
		CashConversionCycle: e.cashConversionCycle(ledger),
	}

	// Contribution margin as a fraction drives break-even; it is reported as a percentage.
	var contribution decimal.Decimal
	if income.IsPositive() {
		variableCosts := expense.Mul(decimal.NewFromFloat(r.VariableCostShare))
		contribution = income.Sub(variableCosts).Div(income)
		adv.ContributionMargin = contribution.Mul(hundred).InexactFloat64()
	}

	investment := income.Mul(decimal.NewFromFloat(r.InvestmentShare))
	if investment.IsPositive() {
		adv.ROI = basic.NetBalance.Div(investment).Mul(hundred).InexactFloat64()
	}

	if contribution.IsPositive() {
		fixedCosts := expense.Mul(decimal.NewFromFloat(r.FixedCostShare))
		adv.BreakEven = fixedCosts.Div(contribution).Round(2)
	}

	return adv
}

// cashConversionCycle is the mean gap in days between chronologically sorted
// transactions, truncated and clamped to the configured bounds.
func (e *Engine) cashConversionCycle(ledger *model.Ledger) int {
	r := e.Ratios
	if ledger.Len() < 2 {
		return r.DefaultCycleDays
	}

	// consecutive gaps of the sorted dates telescope to last minus first
	first, last, _ := ledger.DateRange()
	gap := last.Sub(first).Hours() / 24 / float64(ledger.Len()-1)

	days := int(gap)
	if gap == 0 {
		// all on one day: no gap to measure
		days = r.DefaultCycleDays
	}

	return max(r.MinCycleDays, min(days, r.MaxCycleDays))
}
