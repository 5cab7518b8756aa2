package usecase

import (
	"context"
	"fmt"

	"github.com/vitos/coin_wallet/internal/domain"
)

// LoadCatalog reads and validates the coin list once at startup.
func LoadCatalog(ctx context.Context, src domain.CatalogSource) ([]domain.CoinRecord, error) {
	coins, err := src.ListCoins(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if err := domain.ValidateCatalog(coins); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if coins == nil {
		coins = []domain.CoinRecord{}
	}
	return coins, nil
}
