package exchange

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
	"github.com/vitos/coin_wallet/internal/domain"
	"golang.org/x/time/rate"
)

const (
	CoinGeckoBaseURL = "https://api.coingecko.com/api/v3"
	DefaultCoin      = "bitcoin"
)

type CoinGeckoConfig struct {
	Enabled    bool
	BaseURL    string
	Coin       string
	Timeout    time.Duration
	RatePerSec float64
	CacheTTL   time.Duration
}

// CoinGeckoClient reads price history from the CoinGecko market_chart
// endpoint. Responses are cached per window and requests are rate limited.
type CoinGeckoClient struct {
	enabled bool
	coin    string
	client  *resty.Client
	limiter *rate.Limiter
	cache   *cache.Cache
}

type marketChartResponse struct {
	Prices [][]float64 `json:"prices"`
}

func NewCoinGeckoClient(cfg CoinGeckoConfig) *CoinGeckoClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = CoinGeckoBaseURL
	}
	if cfg.Coin == "" {
		cfg.Coin = DefaultCoin
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 0.5
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeaders(map[string]string{
			"Accept":     "application/json",
			"User-Agent": "coin_wallet/1.0",
		})

	return &CoinGeckoClient{
		enabled: cfg.Enabled,
		coin:    cfg.Coin,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1),
		cache:   cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}
}

// PriceHistory returns (timestamp, price) pairs for the period's window.
func (c *CoinGeckoClient) PriceHistory(ctx context.Context, period domain.Period) ([]domain.PricePoint, error) {
	if !c.enabled {
		return nil, domain.ErrQuotesDisabled
	}

	days := strconv.Itoa(period.Days())
	cacheKey := c.coin + "_" + days
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]domain.PricePoint), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("quote rate limit: %w", err)
	}

	var chart marketChartResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("coin", c.coin).
		SetQueryParams(map[string]string{
			"vs_currency": "usd",
			"days":        days,
		}).
		SetResult(&chart).
		Get("/coins/{coin}/market_chart")
	if err != nil {
		return nil, fmt.Errorf("market chart request [%s]: %w", c.coin, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("market chart API error [%s]: %s", c.coin, resp.Status())
	}

	points := make([]domain.PricePoint, 0, len(chart.Prices))
	for _, p := range chart.Prices {
		if len(p) < 2 {
			continue
		}
		points = append(points, domain.PricePoint{
			Time:  time.UnixMilli(int64(p[0])).UTC(),
			Price: p[1],
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("market chart [%s]: empty price history", c.coin)
	}

	c.cache.Set(cacheKey, points, cache.DefaultExpiration)
	return points, nil
}

var _ domain.QuoteSource = (*CoinGeckoClient)(nil)
