package domain

import (
	"context"
	"fmt"
)

// CoinRecord is one entry of the static coin catalog.
type CoinRecord struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Symbol    string  `json:"symbol" yaml:"symbol"`
	Price     float64 `json:"price" yaml:"price"`
	Balance   float64 `json:"balance" yaml:"balance"`
	Change24h float64 `json:"change_24h" yaml:"change_24h"`
	Icon      string  `json:"icon" yaml:"icon"`
}

// BalanceValue is the balance expressed in USD at the catalog price.
func (c CoinRecord) BalanceValue() float64 {
	return c.Balance * c.Price
}

// CatalogSource loads the ordered coin list. It is called once at startup.
type CatalogSource interface {
	ListCoins(ctx context.Context) ([]CoinRecord, error)
}

// ValidateCatalog rejects records without identity or display names and
// duplicate ids.
func ValidateCatalog(coins []CoinRecord) error {
	seen := make(map[string]struct{}, len(coins))
	for i, c := range coins {
		if c.ID == "" || c.Name == "" || c.Symbol == "" {
			return fmt.Errorf("coin at position %d: id, name and symbol are required", i)
		}
		if _, ok := seen[c.ID]; ok {
			return fmt.Errorf("coin %q: %w", c.ID, ErrDuplicateCoin)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}
