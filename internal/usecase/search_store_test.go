package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/coin_wallet/internal/domain"
	"github.com/vitos/coin_wallet/internal/usecase"
)

func testCatalog() []domain.CoinRecord {
	return []domain.CoinRecord{
		{ID: "1", Name: "Bitcoin", Symbol: "BTC"},
		{ID: "2", Name: "Ethereum", Symbol: "ETH"},
		{ID: "3", Name: "Tether", Symbol: "USDT"},
		{ID: "4", Name: "Ethereum Classic", Symbol: "ETC"},
	}
}

func ids(coins []domain.CoinRecord) []string {
	out := make([]string, 0, len(coins))
	for _, c := range coins {
		out = append(out, c.ID)
	}
	return out
}

func TestSearchStore_Search(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"Symbol Lowercase", "btc", []string{"1"}},
		{"Name Substring Keeps Catalog Order", "eth", []string{"2", "3", "4"}},
		{"Mixed Case And Padding", "  EtHeReUm ", []string{"2", "4"}},
		{"Empty", "", []string{}},
		{"Whitespace Only", "   ", []string{}},
		{"No Match", "doge", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := usecase.NewSearchStore(testCatalog())
			got := store.Search(tt.query)
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, tt.want, ids(store.Results()))
		})
	}
}

func TestSearchStore_ResultsOnlyContainMatches(t *testing.T) {
	store := usecase.NewSearchStore(testCatalog())
	for _, q := range []string{"e", "T", "um", "c", "x"} {
		for _, c := range store.Search(q) {
			assert.True(t,
				containsFold(c.Name, q) || containsFold(c.Symbol, q),
				"%s does not match %q", c.Name, q)
		}
	}
}

func TestSearchStore_Idempotent(t *testing.T) {
	store := usecase.NewSearchStore(testCatalog())
	first := store.Search("et")
	second := store.Search("et")
	assert.Equal(t, first, second)
}

func TestSearchStore_BlankClearsPreviousResult(t *testing.T) {
	store := usecase.NewSearchStore(testCatalog())
	require.Len(t, store.Search("btc"), 1)

	store.Search("  ")
	assert.Empty(t, store.Results())
}

func TestSearchStore_Reset(t *testing.T) {
	store := usecase.NewSearchStore(testCatalog())
	store.Reset()
	assert.Empty(t, store.Results())

	store.Search("eth")
	store.Reset()
	assert.NotNil(t, store.Results())
	assert.Empty(t, store.Results())
}

func TestSearchStore_FindByID(t *testing.T) {
	store := usecase.NewSearchStore(testCatalog())

	coin, ok := store.FindByID("1")
	require.True(t, ok)
	assert.Equal(t, "Bitcoin", coin.Name)

	_, ok = store.FindByID("99")
	assert.False(t, ok)
}

func TestSearchStore_ResultsAreCopies(t *testing.T) {
	store := usecase.NewSearchStore(testCatalog())
	got := store.Search("btc")
	got[0].Name = "changed"

	assert.Equal(t, "Bitcoin", store.Results()[0].Name)
	assert.Len(t, store.All(), 4)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}
