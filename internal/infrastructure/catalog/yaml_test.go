package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/coin_wallet/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	coins, err := Default().ListCoins(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, coins)

	assert.NoError(t, domain.ValidateCatalog(coins))
	assert.Equal(t, "1", coins[0].ID)
	assert.Equal(t, "Bitcoin", coins[0].Name)
	assert.Equal(t, "BTC", coins[0].Symbol)
}

func TestYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coins.yaml")
	doc := "coins:\n" +
		"  - {id: \"1\", name: Bitcoin, symbol: BTC, price: 100}\n" +
		"  - {id: \"2\", name: Ethereum, symbol: ETH, balance: 2.5}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	coins, err := NewYAMLFile(path).ListCoins(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.CoinRecord{
		{ID: "1", Name: "Bitcoin", Symbol: "BTC", Price: 100},
		{ID: "2", Name: "Ethereum", Symbol: "ETH", Balance: 2.5},
	}, coins)
}

func TestYAMLFile_Missing(t *testing.T) {
	_, err := NewYAMLFile(filepath.Join(t.TempDir(), "nope.yaml")).ListCoins(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("coins: [\n"), 0o644))

	_, err := NewYAMLFile(path).ListCoins(context.Background())
	assert.Error(t, err)
}
