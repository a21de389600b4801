// Package chart renders aggregated series to raster images.
package chart

import (
	"context"
	"errors"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
)

// Kind selects the chart type.
type Kind string

// Supported chart kinds.
const (
	Bar Kind = "bar"
	Pie Kind = "pie"
)

// Palettes for the two sides of the ledger.
var (
	IncomePalette  = []string{"#1b9e77", "#66c2a5", "#8dd3c7", "#a6d854", "#b3de69"}
	ExpensePalette = []string{"#d7301f", "#ef6548", "#fc8d59", "#fdbb84", "#fdd49e"}
)

// ErrEmptySeries is returned for a spec with no positive values.
var ErrEmptySeries = errors.New("chart series has no positive values")

// Spec describes one chart. Labels and Values are parallel.
type Spec struct {
	Kind    Kind
	Title   string
	Labels  []string
	Values  []float64
	Palette []string
	Width   int
	Height  int
}

// Renderer turns a Spec into PNG bytes. Implementations that cannot render
// return common.ErrRenderingUnavailable.
type Renderer interface {
	Render(ctx context.Context, spec Spec) ([]byte, error)
}

// Unavailable is the Renderer used when no chart backend is configured.
type Unavailable struct{}

// Render always fails with common.ErrRenderingUnavailable.
func (Unavailable) Render(context.Context, Spec) ([]byte, error) {
	return nil, common.ErrRenderingUnavailable
}

// FromRanking builds a spec from a subcategory ranking.
func FromRanking(kind Kind, title string, ranking []model.SubcategoryAmount, palette []string) Spec {
	spec := Spec{
		Kind:    kind,
		Title:   title,
		Palette: palette,
		Labels:  make([]string, 0, len(ranking)),
		Values:  make([]float64, 0, len(ranking)),
	}
	for _, r := range ranking {
		spec.Labels = append(spec.Labels, r.Subcategory)
		spec.Values = append(spec.Values, r.Amount.InexactFloat64())
	}
	switch kind {
	case Pie:
		spec.Width, spec.Height = 500, 400
	default:
		spec.Width, spec.Height = 600, 350
	}
	return spec
}

// positive drops non-positive points; go-chart cannot draw them.
func (s Spec) positive() ([]string, []float64) {
	var labels []string
	var values []float64
	for i, v := range s.Values {
		if v > 0 && i < len(s.Labels) {
			labels = append(labels, s.Labels[i])
			values = append(values, v)
		}
	}
	return labels, values
}
