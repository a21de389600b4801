package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatter_Money(t *testing.T) {
	f := New("")

	tests := []struct {
		input string
		want  string
	}{
		{input: "0", want: "R$ 0.00"},
		{input: "1234.5", want: "R$ 1,234.50"},
		{input: "1234567.891", want: "R$ 1,234,567.89"},
		{input: "-9876.5", want: "R$ -9,876.50"},
		{input: "999.999", want: "R$ 1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Money(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestFormatter_CustomSymbol(t *testing.T) {
	assert.Equal(t, "US$ 10.00", New("US$").Money(decimal.NewFromInt(10)))
}

func TestFormatter_PercentAndCount(t *testing.T) {
	f := New("R$")

	assert.Equal(t, "12.3%", f.Percent(12.345))
	assert.Equal(t, "-5.0%", f.Percent(-5))
	assert.Equal(t, "0.0%", f.Percent(0))
	assert.Equal(t, "1,234", f.Count(1234))
	assert.Equal(t, "7", f.Count(7))
}
