package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Data,Categoria,Subcategoria,Tipo,Valor,Cliente
01/01/2024,Vendas,Produtos,Receita,1000.00,ACME
02/01/2024,Operacional,Aluguel,Despesa,400,
15/02/2024,Vendas,Servicos,Receita,"1.250,50",Globex
`

func TestLoadCSV(t *testing.T) {
	res, err := LoadCSV(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.Equal(t, 3, res.Ledger.Len())
	assert.Zero(t, res.Dropped)
	assert.Empty(t, res.Warnings)

	txns := res.Ledger.Transactions()
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), txns[0].Date)
	assert.Equal(t, model.Income, txns[0].Type)
	assert.Equal(t, "ACME", txns[0].Client)
	assert.Equal(t, "Aluguel", txns[1].Subcategory)
	assert.True(t, txns[2].Amount.Equal(decimal.RequireFromString("1250.50")))
	assert.Equal(t, "2024-02", txns[2].Month())
	assert.Equal(t, "Quinta-feira", txns[2].Weekday())
}

func TestLoadCSV_SemicolonAndAliases(t *testing.T) {
	input := "date;category;subcategory;type;amount\n2024-03-01;Vendas;Produtos;income;R$ 10,00\n"

	res, err := LoadCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 1, res.Ledger.Len())
	assert.True(t, res.Ledger.Transactions()[0].Amount.Equal(decimal.NewFromInt(10)))
}

func TestLoadCSV_SchemaErrors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantMissing []string
		wantReason  string
	}{
		{
			name:        "missing columns",
			input:       "Data,Categoria,Valor\n01/01/2024,Vendas,10\n",
			wantMissing: []string{"Subcategoria", "Tipo"},
		},
		{
			name:       "amount column not numeric",
			input:      "Data,Categoria,Subcategoria,Tipo,Valor\n01/01/2024,Vendas,X,Receita,abc\n02/01/2024,Vendas,X,Receita,n/a\n",
			wantReason: "column Valor has no numeric values",
		},
		{
			name:       "empty input",
			input:      "",
			wantReason: common.ErrEmptyInput.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(context.Background(), strings.NewReader(tt.input))

			var schemaErr *common.SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.wantMissing, schemaErr.Missing)
			assert.Equal(t, tt.wantReason, schemaErr.Reason)
		})
	}
}

func TestLoadRecords_DropsBadRows(t *testing.T) {
	header := []string{"Data", "Categoria", "Subcategoria", "Tipo", "Valor"}
	rows := [][]string{
		{"01/01/2024", "Vendas", "Produtos", "Receita", "100"},
		{"31/02/2024", "Vendas", "Produtos", "Receita", "100"},
		{"02/01/2024", "Vendas", "Produtos", "Receita", "cem"},
		{"03/01/2024", "Vendas", "Produtos", "Transferencia", "100"},
		{"", "", "", "", ""},
		{"04/01/2024", "Ajuste", "Estorno", "Despesa", "-25"},
	}

	res, err := LoadRecords(context.Background(), header, rows)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Ledger.Len())
	assert.Equal(t, 3, res.Dropped)
	require.Len(t, res.Warnings, 2)
	assert.Equal(t, 1, res.Warnings[0].Rows)
	assert.Contains(t, res.Warnings[0].Message, "negative")
	assert.Equal(t, 3, res.Warnings[1].Rows)
}

func TestLoadRecords_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadRecords(ctx, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "1234.56", want: "1234.56"},
		{input: "1,234.56", want: "1234.56"},
		{input: "1.234,56", want: "1234.56"},
		{input: "R$ 10,00", want: "10"},
		{input: "1.234.567", want: "1234567"},
		{input: "-50", want: "-50"},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{"05/03/2024", "5/3/2024", "05-03-2024", "2024-03-05", "05/03/2024 14:30:00"} {
		t.Run(input, func(t *testing.T) {
			got, err := ParseDate(input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := ParseDate("March 5th")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "ledger.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o600))

	res, err := LoadFile(context.Background(), csvPath)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Ledger.Len())

	xlsPath := filepath.Join(dir, "ledger.xls")
	require.NoError(t, os.WriteFile(xlsPath, []byte("x"), 0o600))
	_, err = LoadFile(context.Background(), xlsPath)
	assert.ErrorContains(t, err, "unsupported")

	_, err = LoadFile(context.Background(), filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
