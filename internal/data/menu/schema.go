package menu

import (
	"context"
	"database/sql"
	"fmt"
)

const createMenuTable = `
CREATE TABLE IF NOT EXISTS menu (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT,
  price REAL,
  description TEXT,
  image TEXT,
  category TEXT
);
`

func ensureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createMenuTable); err != nil {
		return fmt.Errorf("create menu table: %w", err)
	}
	return nil
}
