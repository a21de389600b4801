package model

import (
	"crypto/sha256"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Filter restricts a ledger to a sub-view. Empty sets and nil bounds
// place no restriction; date bounds are inclusive and compared by day.
type Filter struct {
	From          *time.Time
	To            *time.Time
	Types         []TransactionType
	Categories    []string
	Subcategories []string
}

// IsZero reports whether the filter places no restriction at all.
func (f Filter) IsZero() bool {
	return f.From == nil && f.To == nil &&
		len(f.Types) == 0 && len(f.Categories) == 0 && len(f.Subcategories) == 0
}

// Match reports whether t passes every restriction in f.
func (f Filter) Match(t Transaction) bool {
	day := truncateDay(t.Date)
	if f.From != nil && day.Before(truncateDay(*f.From)) {
		return false
	}
	if f.To != nil && day.After(truncateDay(*f.To)) {
		return false
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, t.Type) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, t.Category) {
		return false
	}
	if len(f.Subcategories) > 0 && !slices.Contains(f.Subcategories, t.Subcategory) {
		return false
	}
	return true
}

// Fingerprint returns a digest of the filter that ignores set ordering.
func (f Filter) Fingerprint() string {
	var b strings.Builder
	b.WriteString("from=")
	if f.From != nil {
		b.WriteString(truncateDay(*f.From).Format("2006-01-02"))
	}
	b.WriteString(";to=")
	if f.To != nil {
		b.WriteString(truncateDay(*f.To).Format("2006-01-02"))
	}

	types := make([]string, len(f.Types))
	for i, t := range f.Types {
		types[i] = string(t)
	}
	writeSet(&b, "types", types)
	writeSet(&b, "categories", f.Categories)
	writeSet(&b, "subcategories", f.Subcategories)

	return fmt.Sprintf("%x", sha256.Sum256([]byte(b.String())))
}

func writeSet(b *strings.Builder, name string, values []string) {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	fmt.Fprintf(b, ";%s=%s", name, strings.Join(sorted, "\x1f"))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
