package chart

import (
	"bytes"
	"context"
	"fmt"
	"unicode/utf8"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const maxLabelRunes = 18

// GoChart renders PNG charts with go-chart.
type GoChart struct{}

// NewGoChart creates a go-chart backed Renderer.
func NewGoChart() *GoChart {
	return &GoChart{}
}

// Render implements Renderer.
func (g *GoChart) Render(ctx context.Context, spec Spec) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	labels, values := spec.positive()
	if len(values) == 0 {
		return nil, ErrEmptySeries
	}

	chartValues := make([]gochart.Value, len(values))
	for i, v := range values {
		chartValues[i] = gochart.Value{
			Value: v,
			Label: truncate(labels[i]),
			Style: gochart.Style{
				FillColor:   color(spec.Palette, i),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			},
		}
	}

	var buf bytes.Buffer
	var err error
	switch spec.Kind {
	case Pie:
		err = g.renderPie(&buf, spec, chartValues)
	case Bar:
		err = g.renderBar(&buf, spec, chartValues)
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", spec.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s chart %q: %w", spec.Kind, spec.Title, err)
	}

	return buf.Bytes(), nil
}

func (g *GoChart) renderBar(buf *bytes.Buffer, spec Spec, values []gochart.Value) error {
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v.Value)
	}

	barWidth := max(20, spec.Width/(2*len(values)+2))
	bar := gochart.BarChart{
		Title:      spec.Title,
		Width:      spec.Width,
		Height:     spec.Height,
		BarWidth:   barWidth,
		BarSpacing: barWidth / 2,
		Background: gochart.Style{Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		YAxis: gochart.YAxis{
			Range:          &gochart.ContinuousRange{Min: 0, Max: peak * 1.1},
			ValueFormatter: func(v interface{}) string { return gochart.FloatValueFormatterWithFormat(v, "%.0f") },
		},
		Bars: values,
	}
	return bar.Render(gochart.PNG, buf)
}

func (g *GoChart) renderPie(buf *bytes.Buffer, spec Spec, values []gochart.Value) error {
	pie := gochart.PieChart{
		Title:  spec.Title,
		Width:  spec.Width,
		Height: spec.Height,
		Values: values,
	}
	return pie.Render(gochart.PNG, buf)
}

func color(palette []string, i int) drawing.Color {
	if len(palette) == 0 {
		return gochart.GetDefaultColor(i)
	}
	return drawing.ColorFromHex(palette[i%len(palette)][1:])
}

func truncate(label string) string {
	if utf8.RuneCountInString(label) <= maxLabelRunes {
		return label
	}
	runes := []rune(label)
	return string(runes[:maxLabelRunes-3]) + "..."
}
