// Package trend computes month-over-month growth and weekday seasonality.
package trend

import (
	"sort"

	"github.com/Veraticus/cashflow/internal/model"
	"github.com/shopspring/decimal"
)

// MinRows is the smallest ledger that yields trends.
const MinRows = 2

// Analyze returns the trends of ledger, or the zero value when it has fewer than MinRows rows.
func Analyze(ledger *model.Ledger) model.Trends {
	if ledger.Len() < MinRows {
		return model.Trends{}
	}

	monthly := monthlyTotals(ledger)
	growth := growthRates(monthly)

	t := model.Trends{
		MonthsAnalyzed: len(monthly),
		Monthly:        monthly,
		WeekdayTotals:  weekdayTotals(ledger),
	}

	var sum float64
	var defined int
	for _, g := range growth {
		if g.ok {
			sum += g.value
			defined++
		}
	}
	if defined > 0 {
		t.AverageGrowth = sum / float64(defined)
	}
	if n := len(growth); n > 0 && growth[n-1].ok {
		t.LatestGrowth = growth[n-1].value
	}
	t.PositiveTrend = t.LatestGrowth > 0
	t.BusiestWeekday = busiestWeekday(t.WeekdayTotals)

	return t
}

type rate struct {
	value float64
	ok    bool
}

// growthRates returns one rate per bucket after the first. A rate is
// undefined when the previous bucket summed to zero.
func growthRates(monthly []model.MonthTotals) []rate {
	if len(monthly) < 2 {
		return nil
	}
	hundred := decimal.NewFromInt(100)
	rates := make([]rate, 0, len(monthly)-1)
	for i := 1; i < len(monthly); i++ {
		prev, cur := monthly[i-1].Total(), monthly[i].Total()
		if prev.IsZero() {
			rates = append(rates, rate{})
			continue
		}
		rates = append(rates, rate{
			value: cur.Sub(prev).Div(prev).Mul(hundred).InexactFloat64(),
			ok:    true,
		})
	}
	return rates
}

func monthlyTotals(ledger *model.Ledger) []model.MonthTotals {
	byMonth := make(map[string]*model.MonthTotals)
	ledger.Each(func(t model.Transaction) {
		key := t.Month()
		m, ok := byMonth[key]
		if !ok {
			m = &model.MonthTotals{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
			byMonth[key] = m
		}
		if t.IsIncome() {
			m.Income = m.Income.Add(t.Amount)
		} else {
			m.Expense = m.Expense.Add(t.Amount)
		}
	})

	out := make([]model.MonthTotals, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func weekdayTotals(ledger *model.Ledger) []model.WeekdayAmount {
	totals := make(map[string]*model.WeekdayAmount, len(model.WeekOrder))
	out := make([]model.WeekdayAmount, len(model.WeekOrder))
	for i, d := range model.WeekOrder {
		out[i] = model.WeekdayAmount{Weekday: model.WeekdayName(d), Total: decimal.Zero, Mean: decimal.Zero}
		totals[out[i].Weekday] = &out[i]
	}

	ledger.Each(func(t model.Transaction) {
		w := totals[t.Weekday()]
		w.Total = w.Total.Add(t.Amount)
		w.Count++
	})

	for i := range out {
		if out[i].Count > 0 {
			out[i].Mean = out[i].Total.Div(decimal.NewFromInt(int64(out[i].Count)))
		}
	}
	return out
}

// busiestWeekday picks the highest mean; the first weekday in Monday..Sunday order wins ties.
func busiestWeekday(days []model.WeekdayAmount) string {
	best := -1
	for i, d := range days {
		if d.Count == 0 {
			continue
		}
		if best < 0 || d.Mean.GreaterThan(days[best].Mean) {
			best = i
		}
	}
	if best < 0 {
		return model.NoWeekday
	}
	return days[best].Weekday
}
