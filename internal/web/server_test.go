package web_test

import (
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/coin_wallet/internal/domain"
	"github.com/vitos/coin_wallet/internal/infrastructure/canvas"
	"github.com/vitos/coin_wallet/internal/usecase"
	"github.com/vitos/coin_wallet/internal/web"
	"go.uber.org/zap"
)

var testCatalog = []domain.CoinRecord{
	{ID: "1", Name: "Bitcoin", Symbol: "BTC", Price: 86455, Balance: 0.5, Change24h: 1.2},
	{ID: "2", Name: "Ethereum", Symbol: "ETH", Price: 3200, Balance: 2, Change24h: -0.8},
	{ID: "3", Name: "Tether", Symbol: "USDT", Price: 1, Balance: 150, Change24h: 0},
}

type FailingFactory struct{}

func (FailingFactory) NewChart(domain.Surface, domain.ChartConfig) (domain.Chart, error) {
	return nil, errors.New("renderer offline")
}

func newTestServer(t *testing.T, factory domain.ChartFactory) *httptest.Server {
	t.Helper()
	s := web.NewServer(0, testCatalog, usecase.NewPriceSeriesProvider(), nil, factory,
		web.ChartSettings{Width: 320, Height: 160, SurfaceRetryDelay: 10 * time.Millisecond},
		zap.NewNop())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestViews(t *testing.T) {
	ts := newTestServer(t, canvas.NewRenderer())

	tests := []struct {
		name   string
		path   string
		status int
		want   string
	}{
		{"home", "/", http.StatusOK, "Total balance"},
		{"home search", "/?q=eth&overlay=open", http.StatusOK, "Ethereum"},
		{"deposit list", "/deposit", http.StatusOK, "/deposit/2"},
		{"deposit coin", "/deposit/1", http.StatusOK, "Bitcoin (BTC)"},
		{"withdraw list", "/withdraw", http.StatusOK, "/withdraw/3"},
		{"withdraw coin", "/withdraw/2", http.StatusOK, "Withdraw ETH"},
		{"unknown coin", "/deposit/999", http.StatusNotFound, `No coin with id "999"`},
		{"trade", "/trade?period=24h", http.StatusOK, "/api/chart.png?period=24h"},
		{"exchange", "/exchange?from=1&to=2&amount=1", http.StatusOK, `id="quote"`},
		{"exchange without quote", "/exchange", http.StatusOK, "Exchange"},
		{"unknown path", "/nowhere", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, body, tt.want)
		})
	}
}

func TestViews_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, canvas.NewRenderer())

	resp, err := http.Post(ts.URL+"/trade", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestAPI_Coins(t *testing.T) {
	ts := newTestServer(t, canvas.NewRenderer())

	decode := func(path string) []domain.CoinRecord {
		resp, body := get(t, ts.URL+path)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		var coins []domain.CoinRecord
		require.NoError(t, json.Unmarshal([]byte(body), &coins))
		return coins
	}

	assert.Len(t, decode("/api/coins"), 3)

	coins := decode("/api/coins?q=%20ETHEREUM%20")
	require.Len(t, coins, 1)
	assert.Equal(t, "Ethereum", coins[0].Name)

	// "eth" is also inside "Tether".
	coins = decode("/api/coins?q=eth")
	require.Len(t, coins, 2)
	assert.Equal(t, []string{"2", "3"}, []string{coins[0].ID, coins[1].ID})

	_, body := get(t, ts.URL+"/api/coins?q=")
	assert.JSONEq(t, "[]", body)
}

func TestAPI_GetCoin(t *testing.T) {
	ts := newTestServer(t, canvas.NewRenderer())

	resp, body := get(t, ts.URL+"/api/coins/3")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var coin domain.CoinRecord
	require.NoError(t, json.Unmarshal([]byte(body), &coin))
	assert.Equal(t, "USDT", coin.Symbol)

	resp, body = get(t, ts.URL+"/api/coins/42")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, domain.ErrCoinNotFound.Error())
}

func TestAPI_Series(t *testing.T) {
	ts := newTestServer(t, canvas.NewRenderer())

	var ds domain.Dataset
	_, body := get(t, ts.URL+"/api/series?period=24h")
	require.NoError(t, json.Unmarshal([]byte(body), &ds))
	assert.Equal(t, domain.Period24h, ds.Period)
	assert.Len(t, ds.Prices, 24)
	assert.Len(t, ds.Labels, 24)
	assert.True(t, ds.Demo)

	_, body = get(t, ts.URL+"/api/series?period=1y")
	require.NoError(t, json.Unmarshal([]byte(body), &ds))
	assert.Equal(t, domain.Period7d, ds.Period)
	assert.Len(t, ds.Prices, 7)
}

func TestAPI_ChartImage(t *testing.T) {
	ts := newTestServer(t, canvas.NewRenderer())

	resp, err := http.Get(ts.URL + "/api/chart.png?period=30d&width=300&height=150")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Chart-Id"))
	assert.Empty(t, resp.Header.Get("X-Chart-Warning"))

	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestAPI_ChartImage_ClampsSize(t *testing.T) {
	ts := newTestServer(t, canvas.NewRenderer())

	resp, err := http.Get(ts.URL + "/api/chart.png?width=5&height=abc")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 160, img.Bounds().Dy())
}

func TestAPI_ChartImage_RenderFailure(t *testing.T) {
	ts := newTestServer(t, FailingFactory{})

	resp, body := get(t, ts.URL+"/api/chart.png")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, "renderer offline")
}

func TestStatus(t *testing.T) {
	ts := newTestServer(t, canvas.NewRenderer())

	resp, body := get(t, ts.URL+"/status")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "System OK")
}
