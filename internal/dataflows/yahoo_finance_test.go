package dataflows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYahooSymbol(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"BTC", "BTC-USD"},
		{"eth", "ETH-USD"},
		{" sol ", "SOL-USD"},
		{"BTC-USD", "BTC-USD"},   // already suffixed, pass through
		{"PEPE", "PEPE-USD"},     // unknown symbol gets the default suffix
		{"PEPE-USD", "PEPE-USD"}, // idempotent for unknowns too
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, YahooSymbol(tt.in), "YahooSymbol(%q)", tt.in)
	}
}

func TestYahooSymbolIdempotent(t *testing.T) {
	for _, symbol := range []string{"BTC", "DOGE", "XYZAB"} {
		once := YahooSymbol(symbol)
		assert.Equal(t, once, YahooSymbol(once))
	}
}

func TestClampDays(t *testing.T) {
	assert.Equal(t, 1, ClampDays(0))
	assert.Equal(t, 1, ClampDays(-10))
	assert.Equal(t, 30, ClampDays(30))
	assert.Equal(t, 365, ClampDays(400))
}

func TestQuantizeWindow(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{1, 7},
		{7, 7},
		{8, 30},
		{30, 30},
		{31, 90},
		{90, 90},
		{91, 180},
		{180, 180},
		{181, 365},
		{365, 365},
		{1000, 365},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, QuantizeWindow(tt.days), "QuantizeWindow(%d)", tt.days)
	}
}

func TestValidateSymbol(t *testing.T) {
	assert.NoError(t, ValidateSymbol("BTC"))
	assert.Error(t, ValidateSymbol(""))
	assert.Error(t, ValidateSymbol("WAYTOOLONGSYMBOL"))
}
