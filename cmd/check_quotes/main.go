package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/vitos/coin_wallet/internal/config"
	"github.com/vitos/coin_wallet/internal/domain"
	"github.com/vitos/coin_wallet/internal/infrastructure/exchange"
	"github.com/vitos/coin_wallet/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, fromFile, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if !fromFile {
		fmt.Printf("Config %s not found, using defaults\n", *configPath)
	}

	// Always enabled here, regardless of quotes.enabled.
	client := exchange.NewCoinGeckoClient(exchange.CoinGeckoConfig{
		Enabled:    true,
		BaseURL:    cfg.Quotes.BaseURL,
		Coin:       cfg.Quotes.Coin,
		Timeout:    cfg.QuoteTimeout(),
		RatePerSec: cfg.Quotes.RatePerSec,
		CacheTTL:   cfg.QuoteCacheTTL(),
	})

	fmt.Printf("Testing quote source...\n")
	fmt.Printf("Endpoint: %s\n", cfg.Quotes.BaseURL)
	fmt.Printf("Coin: %s\n", cfg.Quotes.Coin)

	ctx := context.Background()
	failed := false
	for _, period := range domain.Periods {
		points, err := client.PriceHistory(ctx, period)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", period, err)
			failed = true
			continue
		}
		ds := usecase.DatasetFromQuotes(period, points)
		last := len(ds.Prices) - 1
		fmt.Printf("✅ %s: %d points, first %s (%s), last %s (%s)\n",
			period, len(points),
			domain.FormatTooltip(ds.Prices[0]), ds.Labels[0],
			domain.FormatTooltip(ds.Prices[last]), ds.Labels[last])
	}

	if failed {
		os.Exit(1)
	}
}
