// Package kv is a small persistent string key-value store on SQLite, used
// for the onboarding flag and the serialized user profile.
package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "littlelemon/internal/core/errors"
	"littlelemon/internal/data/sqlitedb"
	"littlelemon/internal/shared/observability"
)

const storeLabel = "kv"

const createKVTable = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at_utc TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP)
);
`

type Store struct {
	db *sql.DB
}

func Open(path string, busyTimeout time.Duration) (*Store, error) {
	db, err := sqlitedb.Open(path, busyTimeout)
	if err != nil {
		return nil, apperrors.AddContext(
			apperrors.Wrap(err, apperrors.CodeStorageUnavailable, "open key-value store"),
			apperrors.CtxPath, path,
		)
	}
	if _, err := db.Exec(createKVTable); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrap(err, apperrors.CodeStorageUnavailable, "create kv table")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the value under key and whether it was present.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return "", false, err
	}
	var (
		value string
		found bool
	)
	err = s.observe("get", key, func() error {
		return sqlitedb.WithRetry(ctx, storeLabel, "get key", func() error {
			err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
			if errors.Is(err, sql.ErrNoRows) {
				found = false
				return nil
			}
			if err != nil {
				return err
			}
			found = true
			return nil
		})
	})
	return value, found, err
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	return s.observe("set", key, func() error {
		return sqlitedb.WithRetry(ctx, storeLabel, "set key", func() error {
			_, err := s.db.ExecContext(ctx, `
INSERT INTO kv (key, value, updated_at_utc) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at_utc = excluded.updated_at_utc
`, key, value, time.Now().UTC().Format(time.RFC3339Nano))
			return err
		})
	})
}

func (s *Store) Delete(ctx context.Context, key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	return s.observe("delete", key, func() error {
		return sqlitedb.WithRetry(ctx, storeLabel, "delete key", func() error {
			_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
			return err
		})
	})
}

// Clear removes every key.
func (s *Store) Clear(ctx context.Context) error {
	return s.observe("clear", "", func() error {
		return sqlitedb.WithRetry(ctx, storeLabel, "clear keys", func() error {
			_, err := s.db.ExecContext(ctx, `DELETE FROM kv`)
			return err
		})
	})
}

func (s *Store) Keys(ctx context.Context) ([]string, error) {
	keys := make([]string, 0)
	err := s.observe("keys", "", func() error {
		return sqlitedb.WithRetry(ctx, storeLabel, "list keys", func() error {
			keys = keys[:0]
			rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key`)
			if err != nil {
				return err
			}
			defer rows.Close()
			for rows.Next() {
				var k string
				if err := rows.Scan(&k); err != nil {
					return fmt.Errorf("scan key: %w", err)
				}
				keys = append(keys, k)
			}
			return rows.Err()
		})
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", apperrors.New(apperrors.CodeValidationError, "key must not be empty")
	}
	return key, nil
}

func (s *Store) observe(op, key string, fn func() error) error {
	if s == nil || s.db == nil {
		return apperrors.New(apperrors.CodeStorageUnavailable, "key-value store not initialized")
	}
	start := time.Now()
	err := fn()
	observability.StoreOperationDuration.WithLabelValues(storeLabel, op).Observe(time.Since(start).Seconds())
	if err == nil {
		return nil
	}
	observability.StoreOperationErrorsTotal.WithLabelValues(storeLabel, op).Inc()
	code := apperrors.CodeInternal
	if sqlitedb.IsUnavailable(err) {
		code = apperrors.CodeStorageUnavailable
	}
	wrapped := apperrors.AddContext(apperrors.Wrap(err, code, "key-value store"), apperrors.CtxOperation, op)
	if key != "" {
		wrapped = apperrors.AddContext(wrapped, apperrors.CtxKey, key)
	}
	return wrapped
}
