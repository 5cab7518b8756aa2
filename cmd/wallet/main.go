package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitos/coin_wallet/internal/config"
	"github.com/vitos/coin_wallet/internal/domain"
	"github.com/vitos/coin_wallet/internal/infrastructure/canvas"
	"github.com/vitos/coin_wallet/internal/infrastructure/catalog"
	"github.com/vitos/coin_wallet/internal/infrastructure/exchange"
	"github.com/vitos/coin_wallet/internal/infrastructure/logger"
	"github.com/vitos/coin_wallet/internal/infrastructure/storage"
	"github.com/vitos/coin_wallet/internal/usecase"
	"github.com/vitos/coin_wallet/internal/web"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	// 1. Load Config
	cfg, fromFile, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Init Logger
	log, err := logger.NewLogger(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	if !fromFile {
		log.Warn("Config file not found, using defaults", zap.String("path", *configPath))
	}

	// 3. Load Catalog
	src, closeSrc, err := catalogSource(cfg)
	if err != nil {
		log.Fatal("Failed to open catalog", zap.Error(err))
	}
	defer closeSrc()

	coins, err := usecase.LoadCatalog(context.Background(), src)
	if err != nil {
		log.Fatal("Failed to load catalog", zap.Stringer("source", src), zap.Error(err))
	}
	log.Info("Catalog loaded", zap.Stringer("source", src), zap.Int("coins", len(coins)))

	// 4. Init Quote Source
	var quotes domain.QuoteSource
	if cfg.Quotes.Enabled {
		quotes = exchange.NewCoinGeckoClient(exchange.CoinGeckoConfig{
			Enabled:    true,
			BaseURL:    cfg.Quotes.BaseURL,
			Coin:       cfg.Quotes.Coin,
			Timeout:    cfg.QuoteTimeout(),
			RatePerSec: cfg.Quotes.RatePerSec,
			CacheTTL:   cfg.QuoteCacheTTL(),
		})
		log.Info("Live quotes enabled", zap.String("base_url", cfg.Quotes.BaseURL), zap.String("coin", cfg.Quotes.Coin))
	}

	// 5. Init Web Server
	server := web.NewServer(
		cfg.Server.Port,
		coins,
		usecase.NewPriceSeriesProvider(),
		quotes,
		canvas.NewRenderer(),
		web.ChartSettings{
			Width:             cfg.Chart.Width,
			Height:            cfg.Chart.Height,
			SurfaceRetryDelay: cfg.SurfaceRetryDelay(),
		},
		log,
	)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-stop

	log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Shutdown failed", zap.Error(err))
	}
}

type namedSource interface {
	domain.CatalogSource
	fmt.Stringer
}

// catalogSource prefers a SQLite catalog, then a YAML file, then the
// embedded default list.
func catalogSource(cfg *config.Config) (namedSource, func(), error) {
	switch {
	case cfg.Catalog.SQLitePath != "":
		store, err := storage.NewSQLiteCatalog(cfg.Catalog.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case cfg.Catalog.Path != "":
		return catalog.NewYAMLFile(cfg.Catalog.Path), func() {}, nil
	default:
		return catalog.Default(), func() {}, nil
	}
}
