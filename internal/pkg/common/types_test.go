package common

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseRetailer(t *testing.T) {
	tests := []struct {
		in   string
		want Retailer
		ok   bool
	}{
		{"disco", RetailerDisco, true},
		{"Disco", RetailerDisco, true},
		{"  DISCO  ", RetailerDisco, true},
		{"tienda inglesa", RetailerTiendaInglesa, true},
		{"tienda_inglesa", RetailerTiendaInglesa, true},
		{"Tienda Inglesa", RetailerTiendaInglesa, true},
		{"devoto", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseRetailer(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestRetailerDisplayName(t *testing.T) {
	assert.Equal(t, "Disco", RetailerDisco.DisplayName())
	assert.Equal(t, "Tienda Inglesa", RetailerTiendaInglesa.DisplayName())
}

func TestRecalcTotal(t *testing.T) {
	order := &RetailerOrder{
		Retailer: RetailerDisco,
		Lines: []OrderLine{
			{LineTotal: decimal.NewFromInt(300)},
			{LineTotal: decimal.NewFromInt(80)},
		},
		Total: decimal.NewFromInt(999),
	}
	order.RecalcTotal()
	assert.True(t, order.Total.Equal(decimal.NewFromInt(380)))

	empty := &RetailerOrder{Retailer: RetailerDisco}
	empty.RecalcTotal()
	assert.True(t, empty.Total.IsZero())
}
