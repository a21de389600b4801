package tui

import (
	"slices"
	"time"

	"github.com/Veraticus/cashflow/internal/model"
)

// AllLabel is shown for a dimension with no restriction.
const AllLabel = "Todos"

type dimension int

const (
	dimMonth dimension = iota
	dimType
	dimCategory
	dimSubcategory
)

// filterState tracks the interactive selection. Each dimension cycles through
// "all" (position 0) and then every value present in the ledger.
type filterState struct {
	months        []string
	types         []model.TransactionType
	categories    []string
	subcategories []string
	selected      [4]int
}

func newFilterState(ledger *model.Ledger) filterState {
	seen := make(map[string]bool)
	var months []string
	ledger.Each(func(t model.Transaction) {
		if m := t.Month(); !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	})
	slices.Sort(months)

	return filterState{
		months:        months,
		types:         ledger.Types(),
		categories:    ledger.Categories(),
		subcategories: ledger.Subcategories(),
	}
}

func (f *filterState) size(d dimension) int {
	switch d {
	case dimMonth:
		return len(f.months)
	case dimType:
		return len(f.types)
	case dimCategory:
		return len(f.categories)
	default:
		return len(f.subcategories)
	}
}

// cycle advances d to its next value, wrapping back to "all".
func (f *filterState) cycle(d dimension) {
	f.selected[d] = (f.selected[d] + 1) % (f.size(d) + 1)
}

func (f *filterState) reset() {
	f.selected = [4]int{}
}

func (f *filterState) isZero() bool {
	return f.selected == [4]int{}
}

// label returns the current value of d for display.
func (f *filterState) label(d dimension) string {
	i := f.selected[d] - 1
	if i < 0 {
		return AllLabel
	}
	switch d {
	case dimMonth:
		return f.months[i]
	case dimType:
		return string(f.types[i])
	case dimCategory:
		return f.categories[i]
	default:
		return f.subcategories[i]
	}
}

// filter converts the selection into a model.Filter.
func (f *filterState) filter() model.Filter {
	var out model.Filter
	if i := f.selected[dimMonth] - 1; i >= 0 {
		if start, err := time.Parse(model.MonthLayout, f.months[i]); err == nil {
			end := start.AddDate(0, 1, -1)
			out.From, out.To = &start, &end
		}
	}
	if i := f.selected[dimType] - 1; i >= 0 {
		out.Types = []model.TransactionType{f.types[i]}
	}
	if i := f.selected[dimCategory] - 1; i >= 0 {
		out.Categories = []string{f.categories[i]}
	}
	if i := f.selected[dimSubcategory] - 1; i >= 0 {
		out.Subcategories = []string{f.subcategories[i]}
	}
	return out
}
