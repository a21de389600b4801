package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Ledger is an immutable, ordered view over transactions.
// Filtering produces a new Ledger and never touches the receiver.
type Ledger struct {
	txns        []Transaction
	fingerprint string
}

// NewLedger copies txns into a new Ledger.
func NewLedger(txns []Transaction) *Ledger {
	owned := make([]Transaction, len(txns))
	copy(owned, txns)
	return newOwnedLedger(owned)
}

func newOwnedLedger(txns []Transaction) *Ledger {
	h := sha256.New()
	for _, t := range txns {
		_, _ = fmt.Fprintln(h, t.key())
	}
	return &Ledger{txns: txns, fingerprint: fmt.Sprintf("%x", h.Sum(nil))}
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.txns)
}

// Transactions returns a copy of the ledger rows in their original order.
func (l *Ledger) Transactions() []Transaction {
	if l == nil {
		return nil
	}
	out := make([]Transaction, len(l.txns))
	copy(out, l.txns)
	return out
}

// Each calls fn for every transaction in order without copying the ledger.
func (l *Ledger) Each(fn func(Transaction)) {
	if l == nil {
		return
	}
	for _, t := range l.txns {
		fn(t)
	}
}

// DateRange returns the earliest and latest transaction dates.
// ok is false for an empty ledger.
func (l *Ledger) DateRange() (start, end time.Time, ok bool) {
	if l.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	start, end = l.txns[0].Date, l.txns[0].Date
	for _, t := range l.txns[1:] {
		if t.Date.Before(start) {
			start = t.Date
		}
		if t.Date.After(end) {
			end = t.Date
		}
	}
	return start, end, true
}

// Types returns the distinct transaction types in first-seen order.
func (l *Ledger) Types() []TransactionType {
	var out []TransactionType
	seen := make(map[TransactionType]struct{})
	l.Each(func(t Transaction) {
		if _, ok := seen[t.Type]; !ok {
			seen[t.Type] = struct{}{}
			out = append(out, t.Type)
		}
	})
	return out
}

// Categories returns the distinct categories in first-seen order.
func (l *Ledger) Categories() []string {
	return l.distinct(func(t Transaction) string { return t.Category })
}

// Subcategories returns the distinct subcategories in first-seen order.
func (l *Ledger) Subcategories() []string {
	return l.distinct(func(t Transaction) string { return t.Subcategory })
}

func (l *Ledger) distinct(field func(Transaction) string) []string {
	var out []string
	seen := make(map[string]struct{})
	l.Each(func(t Transaction) {
		v := field(t)
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	})
	return out
}

// Filter returns the sub-ledger of rows matching f.
func (l *Ledger) Filter(f Filter) *Ledger {
	if f.IsZero() {
		return NewLedger(l.Transactions())
	}
	var out []Transaction
	l.Each(func(t Transaction) {
		if f.Match(t) {
			out = append(out, t)
		}
	})
	return newOwnedLedger(out)
}

// Fingerprint returns a content digest of the ordered rows.
// Equal ledgers always share a fingerprint.
func (l *Ledger) Fingerprint() string {
	if l == nil {
		return ""
	}
	return l.fingerprint
}
