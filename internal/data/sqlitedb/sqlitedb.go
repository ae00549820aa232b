// Package sqlitedb opens the embedded SQLite files the data stores live in.
package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"littlelemon/internal/shared/observability"

	_ "modernc.org/sqlite"
)

const (
	DriverName         = "sqlite"
	DefaultBusyTimeout = 2 * time.Second
	maxAttempts        = 5
)

// MemoryPath opens a private in-memory database. It only lives as long as
// the single pooled connection does.
const MemoryPath = ":memory:"

// Open prepares path's directory and returns a single-connection pool.
func Open(path string, busyTimeout time.Duration) (*sql.DB, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("database path must not be empty")
	}
	if busyTimeout <= 0 {
		busyTimeout = DefaultBusyTimeout
	}

	var dsn string
	if cleanPath == MemoryPath {
		dsn = fmt.Sprintf("file::memory:?_pragma=busy_timeout(%d)", busyTimeout.Milliseconds())
	} else {
		if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
			return nil, fmt.Errorf("database path %q is a directory, expected file", cleanPath)
		}
		dir := filepath.Dir(cleanPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory %q: %w", dir, err)
			}
		}
		// busy_timeout + WAL keep the UI and API readers from tripping over a seed write.
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", cleanPath, busyTimeout.Milliseconds())
	}

	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", cleanPath, err)
	}
	return db, nil
}

// WithRetry runs fn, retrying with linear backoff while the database is locked.
func WithRetry(ctx context.Context, store, op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsLockError(err) || attempt == maxAttempts {
			break
		}
		observability.StoreLockRetriesTotal.WithLabelValues(store).Inc()
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(time.Duration(attempt*25) * time.Millisecond):
		}
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func IsLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}

func IsCorruptError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "malformed") || strings.Contains(msg, "not a database") || errors.Is(err, os.ErrInvalid)
}

// IsUnavailable reports engine failures that mean the file cannot be used right now.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if IsLockError(err) || IsCorruptError(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unable to open") ||
		strings.Contains(msg, "readonly") ||
		strings.Contains(msg, "disk i/o") ||
		strings.Contains(msg, "database is closed") ||
		strings.Contains(msg, "sql: database is closed")
}
