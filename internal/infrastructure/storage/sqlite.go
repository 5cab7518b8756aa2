package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vitos/coin_wallet/internal/domain"
)

// SQLiteCatalog serves the coin catalog from a SQLite table ordered by
// position.
type SQLiteCatalog struct {
	db *sql.DB
}

func NewSQLiteCatalog(dbPath string) (*SQLiteCatalog, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &SQLiteCatalog{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteCatalog) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS coins (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			symbol TEXT NOT NULL,
			price REAL NOT NULL DEFAULT 0,
			balance REAL NOT NULL DEFAULT 0,
			change_24h REAL NOT NULL DEFAULT 0,
			icon TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_coins_position ON coins(position);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("failed to exec query %s: %w", q, err)
		}
	}
	return nil
}

func (s *SQLiteCatalog) Close() error {
	return s.db.Close()
}

// SaveCoin inserts or replaces a coin. New coins are appended after the last
// position; replaced coins keep theirs.
func (s *SQLiteCatalog) SaveCoin(ctx context.Context, coin domain.CoinRecord) error {
	query := `INSERT INTO coins (id, position, name, symbol, price, balance, change_24h, icon)
			  VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM coins), ?, ?, ?, ?, ?, ?)
			  ON CONFLICT(id) DO UPDATE SET
			  name=excluded.name,
			  symbol=excluded.symbol,
			  price=excluded.price,
			  balance=excluded.balance,
			  change_24h=excluded.change_24h,
			  icon=excluded.icon`
	_, err := s.db.ExecContext(ctx, query,
		coin.ID, coin.Name, coin.Symbol, coin.Price, coin.Balance, coin.Change24h, coin.Icon)
	return err
}

func (s *SQLiteCatalog) ListCoins(ctx context.Context) ([]domain.CoinRecord, error) {
	query := `SELECT id, name, symbol, price, balance, change_24h, icon FROM coins ORDER BY position, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coins []domain.CoinRecord
	for rows.Next() {
		var c domain.CoinRecord
		if err := rows.Scan(&c.ID, &c.Name, &c.Symbol, &c.Price, &c.Balance, &c.Change24h, &c.Icon); err != nil {
			return nil, err
		}
		coins = append(coins, c)
	}
	return coins, rows.Err()
}

func (s *SQLiteCatalog) String() string {
	return "sqlite"
}
