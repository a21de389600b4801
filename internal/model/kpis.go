package model

import "github.com/shopspring/decimal"

// SubcategoryAmount is one entry of a ranked subcategory list.
type SubcategoryAmount struct {
	Subcategory string          `json:"subcategory"`
	Amount      decimal.Decimal `json:"amount"`
}

// BasicKpis is the aggregate snapshot of a ledger view.
type BasicKpis struct {
	TotalIncome          decimal.Decimal
	TotalExpense         decimal.Decimal
	NetBalance           decimal.Decimal
	NetMargin            float64 // percent
	TransactionCount     int
	AverageTicket        decimal.Decimal
	TopIncome            []SubcategoryAmount
	TopExpense           []SubcategoryAmount
	IncomeBySubcategory  map[string]decimal.Decimal
	ExpenseBySubcategory map[string]decimal.Decimal
}

// AdvancedKpis are approximations derived from BasicKpis and configured ratios.
// None of them is measured from the data except the cash conversion cycle.
type AdvancedKpis struct {
	ROI                 float64         `json:"roi"` // percent
	BreakEven           decimal.Decimal `json:"break_even"`
	OperatingCashFlow   decimal.Decimal `json:"operating_cash_flow"`
	CashConversionCycle int             `json:"cash_conversion_cycle"` // days
	ContributionMargin  float64         `json:"contribution_margin"`   // percent
}

// MonthTotals holds income and expense for one year-month bucket.
type MonthTotals struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Total is the sum of all movement in the month regardless of type.
func (m MonthTotals) Total() decimal.Decimal {
	return m.Income.Add(m.Expense)
}

// WeekdayAmount is the summed and mean movement for one weekday.
type WeekdayAmount struct {
	Weekday string          `json:"weekday"`
	Total   decimal.Decimal `json:"total"`
	Mean    decimal.Decimal `json:"mean"`
	Count   int             `json:"count"`
}

// Trends summarizes month-over-month growth and weekday seasonality.
type Trends struct {
	AverageGrowth  float64 // percent
	LatestGrowth   float64 // percent
	PositiveTrend  bool
	BusiestWeekday string
	MonthsAnalyzed int

	Monthly       []MonthTotals
	WeekdayTotals []WeekdayAmount
}

// NoWeekday is reported when there is no weekday data to rank.
const NoWeekday = "N/A"

// IsEmpty reports whether trends could not be computed.
func (t Trends) IsEmpty() bool {
	return t.MonthsAnalyzed == 0
}
