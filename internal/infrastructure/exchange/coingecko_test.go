package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/coin_wallet/internal/domain"
)

func newTestClient(url string) *CoinGeckoClient {
	return NewCoinGeckoClient(CoinGeckoConfig{
		Enabled:    true,
		BaseURL:    url,
		Coin:       "bitcoin",
		Timeout:    time.Second,
		RatePerSec: 1000,
		CacheTTL:   time.Minute,
	})
}

func TestCoinGeckoClient_PriceHistory(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/coins/bitcoin/market_chart", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "7", r.URL.Query().Get("days"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"prices":[[1760227200000,60000.5],[1760313600000,61000]],"total_volumes":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	points, err := client.PriceHistory(context.Background(), domain.Period7d)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, time.UnixMilli(1760227200000).UTC(), points[0].Time)
	assert.Equal(t, 60000.5, points[0].Price)

	_, err = client.PriceHistory(context.Background(), domain.Period7d)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "second call served from cache")
}

func TestCoinGeckoClient_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).PriceHistory(context.Background(), domain.Period24h)
	assert.ErrorContains(t, err, "429")
}

func TestCoinGeckoClient_EmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"prices":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).PriceHistory(context.Background(), domain.Period30d)
	assert.ErrorContains(t, err, "empty price history")
}

func TestCoinGeckoClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).PriceHistory(context.Background(), domain.Period7d)
	assert.Error(t, err)
}

func TestCoinGeckoClient_Disabled(t *testing.T) {
	client := NewCoinGeckoClient(CoinGeckoConfig{})
	_, err := client.PriceHistory(context.Background(), domain.Period7d)
	assert.ErrorIs(t, err, domain.ErrQuotesDisabled)
}
