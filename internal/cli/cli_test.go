package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/cashflow/internal/alert"
	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/config"
	"github.com/Veraticus/cashflow/internal/dashboard"
	"github.com/Veraticus/cashflow/internal/format"
	"github.com/Veraticus/cashflow/internal/kpi"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(filter model.Filter) dashboard.Snapshot {
	d := func(m time.Month, day int) time.Time { return time.Date(2024, m, day, 0, 0, 0, 0, time.UTC) }
	ledger := model.NewLedger([]model.Transaction{
		{Date: d(1, 1), Category: "Vendas", Subcategory: "Produtos", Type: model.Income, Amount: decimal.NewFromInt(4000)},
		{Date: d(1, 8), Category: "Operacional", Subcategory: "Aluguel", Type: model.Expense, Amount: decimal.NewFromInt(1200)},
		{Date: d(2, 5), Category: "Vendas", Subcategory: "Servicos", Type: model.Income, Amount: decimal.NewFromInt(5500)},
		{Date: d(2, 9), Category: "Pessoal", Subcategory: "Salarios", Type: model.Expense, Amount: decimal.NewFromInt(2000)},
	})
	return dashboard.Compute(kpi.New(config.DefaultRatios()), ledger, filter)
}

func TestSnapshotView_Render(t *testing.T) {
	out := NewSnapshotView(format.New("R$")).Render(snapshot(model.Filter{}))

	for _, want := range []string{
		"Período: 01/01/2024 a 09/02/2024",
		"KPIs FINANCEIROS PRINCIPAIS",
		"R$ 9,500.00",
		"R$ 3,200.00",
		"R$ 6,300.00",
		"66.3%",
		"ANÁLISE DE TENDÊNCIAS",
		"2024-01",
		"2024-02",
		"Principais Fontes de Receita",
		"Servicos",
		"ALERTAS E RECOMENDAÇÕES",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "**")
}

func TestSnapshotView_EmptyView(t *testing.T) {
	v := NewSnapshotView(nil)
	snap := snapshot(model.Filter{Categories: []string{"Nada"}})
	out := v.Render(snap)

	assert.Contains(t, out, "Nenhuma transação no período selecionado")
	assert.Contains(t, out, "Dados insuficientes para análise de tendências.")
	assert.Contains(t, out, "sem dados")
	assert.Contains(t, out, "TUDO OK")
}

func TestSnapshotView_TopN(t *testing.T) {
	v := NewSnapshotView(nil)
	v.TopN = 1

	out := v.Rankings(snapshot(model.Filter{}).Basic)
	assert.Contains(t, out, "Servicos")
	assert.NotContains(t, out, "Produtos")
}

func TestRenderMarkup(t *testing.T) {
	got := RenderMarkup("❌ **ALERTA**: saldo negativo", lipgloss.NewStyle())
	assert.Equal(t, "❌ ALERTA: saldo negativo", got)
	assert.Equal(t, "sem marcação", RenderMarkup("sem marcação", lipgloss.NewStyle()))
}

func TestRenderError(t *testing.T) {
	tests := []struct {
		err      error
		name     string
		wantHint bool
	}{
		{name: "schema error", err: &common.SchemaError{Missing: []string{"Valor"}}, wantHint: true},
		{name: "wrapped schema error", err: fmt.Errorf("load: %w", &common.SchemaError{Reason: "empty"}), wantHint: true},
		{name: "other error", err: os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderError(tt.err)
			assert.Contains(t, out, tt.err.Error())
			if tt.wantHint {
				assert.Contains(t, out, "Tipo (Receita/Despesa)")
			} else {
				assert.NotContains(t, out, "Expected CSV format")
			}
		})
	}
}

func TestRenderWarnings(t *testing.T) {
	out := RenderWarnings([]common.DataWarning{
		{Message: "negative amounts found in column Valor", Rows: 2},
		{Message: "something else"},
	})
	assert.Contains(t, out, "negative amounts found in column Valor (2 rows)")
	assert.Contains(t, out, "something else")
	assert.Empty(t, RenderWarnings(nil))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, snapshot(model.Filter{})))

	var got Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	require.NotNil(t, got.Period)
	assert.Equal(t, "2024-01-01", got.Period.Start)
	assert.Equal(t, "2024-02-09", got.Period.End)
	assert.True(t, got.Basic.TotalIncome.Equal(decimal.NewFromInt(9500)))
	assert.Equal(t, 4, got.Basic.TransactionCount)
	assert.Len(t, got.Trends.Monthly, 2)
	require.NotEmpty(t, got.Alerts)
	assert.NotContains(t, got.Alerts[0].Message, "**")
}

func TestWriteJSON_EmptyView(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, snapshot(model.Filter{Types: []model.TransactionType{"Outro"}})))

	var got Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Nil(t, got.Period)
	require.Len(t, got.Alerts, 1)
	assert.Equal(t, alert.Nominal.PlainMessage, got.Alerts[0].Message)
}

func TestStageProgress(t *testing.T) {
	var buf bytes.Buffer
	stages := []string{"cover", "kpis", "charts", "render"}
	p := NewStageProgress(&buf, "Gerando relatório", stages)

	p.Stage("kpis")
	assert.Equal(t, 2, p.Done())

	p.Stage("unknown")
	p.Stage("cover")
	assert.Equal(t, 2, p.Done())

	p.Stage("render")
	assert.Equal(t, 4, p.Done())
	p.Finish()
}

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestInterruptHandler(t *testing.T) {
	t.Run("signal cancels context", func(t *testing.T) {
		output := &syncBuffer{}
		h := NewInterruptHandler(output, "Export interrupted")

		ctx, stop := h.HandleInterrupts(context.Background())
		defer stop()

		h.signals <- os.Interrupt

		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Fatal("context was not canceled")
		}
		assert.Eventually(t, h.WasInterrupted, time.Second, 10*time.Millisecond)
		assert.Contains(t, output.String(), "Export interrupted")
	})

	t.Run("stop without signal", func(t *testing.T) {
		output := &syncBuffer{}
		h := NewInterruptHandler(output, "unused")

		ctx, stop := h.HandleInterrupts(context.Background())
		stop()

		<-ctx.Done()
		assert.False(t, h.WasInterrupted())
		assert.Empty(t, output.String())
	})

	t.Run("nil writer defaults to stderr", func(t *testing.T) {
		h := NewInterruptHandler(nil, "x")
		assert.Equal(t, os.Stderr, h.writer)
	})
}
