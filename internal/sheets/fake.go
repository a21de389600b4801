package sheets

import (
	"context"
	"sync"
)

// FakeValues is an in-memory ValuesGetter for testing.
type FakeValues struct {
	GetFunc   func(ctx context.Context, spreadsheetID, readRange string) ([][]any, error)
	Rows      [][]any
	LastRange string
	Calls     int
	mu        sync.Mutex
}

// Get implements ValuesGetter.
func (f *FakeValues) Get(ctx context.Context, spreadsheetID, readRange string) ([][]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls++
	f.LastRange = readRange

	if f.GetFunc != nil {
		return f.GetFunc(ctx, spreadsheetID, readRange)
	}
	return f.Rows, nil
}

// CallCount returns the number of Get calls.
func (f *FakeValues) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls
}
