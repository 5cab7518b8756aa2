package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/vitos/coin_wallet/internal/domain"
	"github.com/vitos/coin_wallet/internal/infrastructure/storage"
	"github.com/vitos/coin_wallet/internal/usecase"
)

func main() {
	dbPath := flag.String("db", "wallet.db", "SQLite catalog file")
	id := flag.String("id", "", "coin id")
	name := flag.String("name", "", "display name")
	symbol := flag.String("symbol", "", "ticker symbol")
	price := flag.Float64("price", 0, "USD price")
	balance := flag.Float64("balance", 0, "wallet balance")
	change := flag.Float64("change", 0, "24h change in percent")
	icon := flag.String("icon", "", "icon URL")
	flag.Parse()

	coin := domain.CoinRecord{
		ID:        *id,
		Name:      *name,
		Symbol:    *symbol,
		Price:     *price,
		Balance:   *balance,
		Change24h: *change,
		Icon:      *icon,
	}
	if err := domain.ValidateCatalog([]domain.CoinRecord{coin}); err != nil {
		log.Fatalf("Invalid coin: %v", err)
	}

	store, err := storage.NewSQLiteCatalog(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.SaveCoin(ctx, coin); err != nil {
		log.Fatalf("Failed to save coin: %v", err)
	}

	coins, err := usecase.LoadCatalog(ctx, store)
	if err != nil {
		log.Fatalf("Catalog no longer loads: %v", err)
	}

	fmt.Printf("Coin saved: %s (%s)\n", coin.Name, coin.Symbol)
	fmt.Printf("Catalog %s now has %d coins:\n", *dbPath, len(coins))
	for i, c := range coins {
		fmt.Printf("%2d. %-4s %-12s %s\n", i+1, c.ID, c.Name, domain.FormatTooltip(c.Price))
	}
}
