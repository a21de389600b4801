package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

// Transaction types, named as they appear in the ledger's Tipo column.
const (
	Income  TransactionType = "Receita"
	Expense TransactionType = "Despesa"
)

// ParseTransactionType accepts the Portuguese ledger names and their English equivalents.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "receita", "income":
		return Income, nil
	case "despesa", "expense":
		return Expense, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// MonthLayout is the layout of a transaction's month bucket.
const MonthLayout = "2006-01"

var weekdayNames = [...]string{
	time.Sunday:    "Domingo",
	time.Monday:    "Segunda-feira",
	time.Tuesday:   "Terça-feira",
	time.Wednesday: "Quarta-feira",
	time.Thursday:  "Quinta-feira",
	time.Friday:    "Sexta-feira",
	time.Saturday:  "Sábado",
}

// WeekOrder lists weekdays Monday first, the order used by seasonality views.
var WeekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeekdayName returns the localized name for d.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

// Transaction is a single ledger row.
type Transaction struct {
	Date        time.Time
	Amount      decimal.Decimal
	Category    string
	Subcategory string
	Type        TransactionType
	Client      string // optional
}

// Month returns the year-month bucket, e.g. "2024-03".
func (t Transaction) Month() string {
	return t.Date.Format(MonthLayout)
}

// Year returns the calendar year of the transaction.
func (t Transaction) Year() int {
	return t.Date.Year()
}

// Weekday returns the localized weekday name of the transaction date.
func (t Transaction) Weekday() string {
	return WeekdayName(t.Date.Weekday())
}

// IsIncome reports whether the transaction is income.
func (t Transaction) IsIncome() bool {
	return t.Type == Income
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Type == Expense
}

// key is the canonical encoding used for fingerprinting.
func (t Transaction) key() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		t.Date.Format("2006-01-02"),
		t.Category,
		t.Subcategory,
		t.Type,
		t.Amount.String(),
		t.Client)
}
