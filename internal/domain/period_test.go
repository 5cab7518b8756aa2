package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in   string
		want Period
	}{
		{"24h", Period24h},
		{"7d", Period7d},
		{"30d", Period30d},
		{" 30D ", Period30d},
		{"", Period7d},
		{"1y", Period7d},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePeriod(tt.in), "ParsePeriod(%q)", tt.in)
	}
}

func TestPeriod_Days(t *testing.T) {
	assert.Equal(t, 1, Period24h.Days())
	assert.Equal(t, 7, Period7d.Days())
	assert.Equal(t, 30, Period30d.Days())
	assert.Equal(t, 7, Period("bogus").Days())
}

func TestValidateCatalog(t *testing.T) {
	ok := []CoinRecord{
		{ID: "1", Name: "Bitcoin", Symbol: "BTC"},
		{ID: "2", Name: "Ethereum", Symbol: "ETH"},
	}
	assert.NoError(t, ValidateCatalog(ok))

	dup := append(ok, CoinRecord{ID: "1", Name: "Bitcoin Cash", Symbol: "BCH"})
	assert.ErrorIs(t, ValidateCatalog(dup), ErrDuplicateCoin)

	assert.Error(t, ValidateCatalog([]CoinRecord{{ID: "3", Name: "", Symbol: "X"}}))
}
