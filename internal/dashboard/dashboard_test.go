package dashboard

import (
	"sync"
	"testing"

	"github.com/Veraticus/cashflow/internal/alert"
	"github.com/Veraticus/cashflow/internal/config"
	"github.com/Veraticus/cashflow/internal/kpi"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLedger(t *testing.T) *model.Ledger {
	t.Helper()
	return testutil.NewLedgerBuilder(t).WithFixture(testutil.QuarterFixture).Build()
}

func TestCompute(t *testing.T) {
	engine := kpi.New(config.DefaultRatios())
	snap := Compute(engine, sampleLedger(t), model.Filter{})

	assert.Equal(t, 5, snap.View.Len())
	assert.True(t, snap.Basic.NetBalance.Equal(decimal.NewFromInt(15500)))
	assert.Equal(t, 3, snap.Trends.MonthsAnalyzed)
	assert.NotEmpty(t, snap.Alerts)
}

func TestCompute_FilterByOwnValuesMatchesUnfiltered(t *testing.T) {
	engine := kpi.New(config.DefaultRatios())
	ledger := sampleLedger(t)

	full := Compute(engine, ledger, model.Filter{})
	same := Compute(engine, ledger, model.Filter{
		Types:         ledger.Types(),
		Categories:    ledger.Categories(),
		Subcategories: ledger.Subcategories(),
	})

	assert.Equal(t, full.Basic, same.Basic)
	assert.Equal(t, full.Advanced, same.Advanced)
	assert.Equal(t, full.Trends, same.Trends)
	assert.Equal(t, full.Alerts, same.Alerts)
}

func TestCompute_EmptyView(t *testing.T) {
	engine := kpi.New(config.DefaultRatios())
	snap := Compute(engine, sampleLedger(t), model.Filter{Categories: []string{"Inexistente"}})

	assert.Zero(t, snap.View.Len())
	assert.True(t, snap.Basic.TotalIncome.IsZero())
	assert.True(t, snap.Trends.IsEmpty())
	require.Len(t, snap.Alerts, 1)
	assert.Equal(t, alert.Nominal, snap.Alerts[0])
}

func TestCompute_DoesNotMutateLedger(t *testing.T) {
	ledger := sampleLedger(t)
	before := ledger.Fingerprint()

	Compute(kpi.New(config.DefaultRatios()), ledger, model.Filter{Types: []model.TransactionType{model.Expense}})

	assert.Equal(t, before, ledger.Fingerprint())
	assert.Equal(t, 5, ledger.Len())
}

func TestService_Cache(t *testing.T) {
	svc := NewService(kpi.New(config.DefaultRatios()), 2)
	ledger := sampleLedger(t)
	incomeOnly := model.Filter{Types: []model.TransactionType{model.Income}}

	first := svc.Snapshot(ledger, incomeOnly)
	second := svc.Snapshot(sampleLedger(t), model.Filter{Types: []model.TransactionType{model.Income}})
	assert.Equal(t, first, second)

	hits, misses, size := svc.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
	assert.Equal(t, 1, size)

	// the third distinct filter evicts the oldest entry
	svc.Snapshot(ledger, model.Filter{})
	svc.Snapshot(ledger, model.Filter{Categories: []string{"Vendas"}})
	svc.Snapshot(ledger, incomeOnly)

	_, misses, size = svc.Stats()
	assert.Equal(t, 2, size)
	assert.Equal(t, 4, misses)
}

func TestService_Concurrent(t *testing.T) {
	svc := NewService(kpi.New(config.DefaultRatios()), 0)
	ledger := sampleLedger(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap := svc.Snapshot(ledger, model.Filter{})
			assert.Equal(t, 5, snap.View.Len())
		}()
	}
	wg.Wait()

	_, _, size := svc.Stats()
	assert.Equal(t, 1, size)
}
