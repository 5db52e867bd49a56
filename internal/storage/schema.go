package storage

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		telegram_id INTEGER NOT NULL UNIQUE,
		language    TEXT NOT NULL DEFAULT '',
		created_at  DATETIME NOT NULL,
		updated_at  DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS price_lookups (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		telegram_id     INTEGER NOT NULL,
		service         TEXT NOT NULL,
		countries_shown INTEGER NOT NULL DEFAULT 0,
		failed          BOOLEAN NOT NULL DEFAULT 0,
		created_at      DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_price_lookups_created_at ON price_lookups (created_at)`,
}

// Migrate создаёт таблицы, если их ещё нет.
func (s *storageImpl) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("db.ExecContext: %w", err)
		}
	}
	return nil
}
