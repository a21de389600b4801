// Package dashboard computes the full KPI, trend and alert snapshot for a
// filtered ledger view.
package dashboard

import (
	"github.com/Veraticus/cashflow/internal/alert"
	"github.com/Veraticus/cashflow/internal/kpi"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/Veraticus/cashflow/internal/trend"
)

// Snapshot is everything derived from one ledger view.
type Snapshot struct {
	View     *model.Ledger
	Filter   model.Filter
	Basic    model.BasicKpis
	Advanced model.AdvancedKpis
	Trends   model.Trends
	Alerts   []model.Alert
}

// Compute filters ledger and derives the snapshot. It has no side effects:
// equal inputs always produce equal snapshots.
func Compute(engine *kpi.Engine, ledger *model.Ledger, filter model.Filter) Snapshot {
	view := ledger.Filter(filter)

	basic := engine.ComputeBasic(view)
	advanced := engine.ComputeAdvanced(view, basic)
	trends := trend.Analyze(view)

	return Snapshot{
		View:     view,
		Filter:   filter,
		Basic:    basic,
		Advanced: advanced,
		Trends:   trends,
		Alerts:   alert.Evaluate(basic, advanced, trends),
	}
}
