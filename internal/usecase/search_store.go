package usecase

import (
	"strings"
	"sync"

	"github.com/vitos/coin_wallet/internal/domain"
)

// SearchStore filters the coin catalog for one view and keeps the last result.
type SearchStore struct {
	mu      sync.RWMutex
	catalog []domain.CoinRecord
	results []domain.CoinRecord
}

func NewSearchStore(catalog []domain.CoinRecord) *SearchStore {
	return &SearchStore{
		catalog: catalog,
		results: []domain.CoinRecord{},
	}
}

// Search keeps every coin whose name or symbol contains text, ignoring case
// and surrounding whitespace. Blank text clears the results.
func (s *SearchStore) Search(text string) []domain.CoinRecord {
	query := strings.ToLower(strings.TrimSpace(text))

	result := []domain.CoinRecord{}
	if query != "" {
		for _, coin := range s.catalog {
			if strings.Contains(strings.ToLower(coin.Name), query) ||
				strings.Contains(strings.ToLower(coin.Symbol), query) {
				result = append(result, coin)
			}
		}
	}

	s.mu.Lock()
	s.results = result
	s.mu.Unlock()

	return s.Results()
}

// Results returns a copy of the last search result.
func (s *SearchStore) Results() []domain.CoinRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CoinRecord, len(s.results))
	copy(out, s.results)
	return out
}

func (s *SearchStore) Reset() {
	s.mu.Lock()
	s.results = []domain.CoinRecord{}
	s.mu.Unlock()
}

// FindByID returns the first coin with the given id.
func (s *SearchStore) FindByID(id string) (domain.CoinRecord, bool) {
	for _, coin := range s.catalog {
		if coin.ID == id {
			return coin, true
		}
	}
	return domain.CoinRecord{}, false
}

// All returns the whole catalog in catalog order.
func (s *SearchStore) All() []domain.CoinRecord {
	out := make([]domain.CoinRecord, len(s.catalog))
	copy(out, s.catalog)
	return out
}
