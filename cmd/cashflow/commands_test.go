package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/cashflow/internal/cli"
	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ledgerCSV = `Data,Categoria,Subcategoria,Tipo,Valor,Cliente
03/01/2024,Vendas,Produtos,Receita,5000.00,Cliente A
10/01/2024,Operacional,Aluguel,Despesa,1500.00,
02/02/2024,Vendas,Servicos,Receita,6500.00,Cliente B
15/02/2024,Pessoal,Salarios,Despesa,2500.00,
01/03/2024,Vendas,Produtos,Receita,8000.00,Cliente A
`

func writeLedger(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestSummaryCommand_Table(t *testing.T) {
	out, _, err := run(t, summaryCmd(), writeLedger(t, ledgerCSV))
	require.NoError(t, err)

	assert.Contains(t, out, "KPIs FINANCEIROS PRINCIPAIS")
	assert.Contains(t, out, "R$ 19,500.00")
	assert.Contains(t, out, "ALERTAS E RECOMENDAÇÕES")
}

func TestSummaryCommand_JSONWithFilter(t *testing.T) {
	out, _, err := run(t, summaryCmd(), writeLedger(t, ledgerCSV),
		"--format", "json", "--type", "receita", "--from", "01/02/2024")
	require.NoError(t, err)

	var got cli.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.Basic.TransactionCount)
	assert.Equal(t, "14500", got.Basic.TotalIncome.String())
	assert.True(t, got.Basic.TotalExpense.IsZero())
}

func TestSummaryCommand_Warnings(t *testing.T) {
	csv := ledgerCSV + "xx/xx/2024,Vendas,Produtos,Receita,10.00,\n"
	_, stderr, err := run(t, summaryCmd(), writeLedger(t, csv))
	require.NoError(t, err)
	assert.Contains(t, stderr, "rows dropped")
}

func TestSummaryCommand_Errors(t *testing.T) {
	tests := []struct {
		check func(t *testing.T, err error)
		name  string
		args  []string
	}{
		{
			name: "missing columns",
			args: []string{writeLedger(t, "Data,Categoria\n01/01/2024,Vendas\n")},
			check: func(t *testing.T, err error) {
				var schemaErr *common.SchemaError
				require.ErrorAs(t, err, &schemaErr)
				assert.Contains(t, schemaErr.Missing, "Valor")
			},
		},
		{
			name: "bad format",
			args: []string{writeLedger(t, ledgerCSV), "--format", "xml"},
		},
		{
			name: "bad type",
			args: []string{writeLedger(t, ledgerCSV), "--type", "Transferencia"},
		},
		{
			name: "from after to",
			args: []string{writeLedger(t, ledgerCSV), "--from", "02/02/2024", "--to", "01/02/2024"},
		},
		{
			name: "no source",
			check: func(t *testing.T, err error) {
				var userErr *common.UserError
				assert.ErrorAs(t, err, &userErr)
			},
		},
		{
			name: "file and sheet",
			args: []string{writeLedger(t, ledgerCSV), "--sheet", "abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, summaryCmd(), tt.args...)
			require.Error(t, err)
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestReportCommand(t *testing.T) {
	fixed := time.Date(2024, 4, 2, 9, 5, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	outDir := t.TempDir()
	out, _, err := run(t, reportCmd(), writeLedger(t, ledgerCSV),
		"--company", "Padaria Central", "--output", outDir, "--no-charts", "--quiet")
	require.NoError(t, err)

	path := filepath.Join(outDir, "relatorio_financeiro_Padaria_Central_20240402_0905.pdf")
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestReportCommand_RequiresCompany(t *testing.T) {
	_, _, err := run(t, reportCmd(), writeLedger(t, ledgerCSV), "--output", t.TempDir(), "--quiet")

	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
}

func TestSourceOptions_Filter(t *testing.T) {
	opts := sourceOptions{
		from:       "01/01/2024",
		to:         "2024-01-31",
		types:      []string{"Despesa"},
		categories: []string{" Operacional ", ""},
	}

	f, err := opts.filter()
	require.NoError(t, err)
	require.NotNil(t, f.From)
	require.NotNil(t, f.To)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *f.From)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *f.To)
	assert.Equal(t, []model.TransactionType{model.Expense}, f.Types)
	assert.Equal(t, []string{"Operacional"}, f.Categories)
	assert.Empty(t, f.Subcategories)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, versionCmd())
	require.NoError(t, err)
	assert.Equal(t, "cashflow version dev\n", out)
}
