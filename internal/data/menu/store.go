package menu

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	apperrors "littlelemon/internal/core/errors"
	"littlelemon/internal/data/sqlitedb"
	"littlelemon/internal/shared/observability"
)

const storeLabel = "menu"

type options struct {
	searchMode  SearchMode
	busyTimeout time.Duration
}

type Option func(*options)

func WithSearchMode(mode SearchMode) Option {
	return func(o *options) { o.searchMode = mode }
}

func WithBusyTimeout(d time.Duration) Option {
	return func(o *options) { o.busyTimeout = d }
}

// Store owns the menu table of one SQLite file.
type Store struct {
	path       string
	db         *sql.DB
	searchMode SearchMode
	schemaMu   sync.Mutex
}

// Open opens (or creates) the database at path and ensures the menu table exists.
func Open(path string, opts ...Option) (*Store, error) {
	o := options{searchMode: SearchCaseSensitive}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := sqlitedb.Open(path, o.busyTimeout)
	if err != nil {
		return nil, apperrors.AddContext(
			apperrors.Wrap(err, apperrors.CodeStorageUnavailable, "open menu store"),
			apperrors.CtxPath, path,
		)
	}

	s := &Store{path: path, db: db, searchMode: o.searchMode}
	if err := s.EnsureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func (s *Store) SearchMode() SearchMode {
	return s.searchMode
}

// EnsureSchema creates the menu table if it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()

	return s.observe("ensure_schema", func() error {
		return sqlitedb.WithRetry(ctx, storeLabel, "ensure menu schema", func() error {
			return ensureSchema(ctx, s.db)
		})
	})
}

// BulkInsert adds one row per item in a single transaction and returns the
// assigned ids in input order.
func (s *Store) BulkInsert(ctx context.Context, items []NewItem) ([]int64, error) {
	ids := make([]int64, 0, len(items))
	if len(items) == 0 {
		return ids, nil
	}

	err := s.observe("bulk_insert", func() error {
		return sqlitedb.WithRetry(ctx, storeLabel, "bulk insert menu items", func() error {
			ids = ids[:0]
			return s.insertTx(ctx, items, &ids)
		})
	})
	if err != nil {
		return nil, err
	}
	observability.MenuItemsInserted.Add(float64(len(ids)))
	return ids, nil
}

func (s *Store) insertTx(ctx context.Context, items []NewItem, ids *[]int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO menu (name, price, description, image, category) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		res, err := stmt.ExecContext(ctx, item.Name, item.Price, item.Description, item.Image, item.Category)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert item %d (%q): %w", i, item.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("read id of item %d: %w", i, err)
		}
		*ids = append(*ids, id)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	return nil
}

// GetAll returns every row ordered by id. An empty table yields an empty slice.
func (s *Store) GetAll(ctx context.Context) ([]Item, error) {
	query, args := NewQuery().Build()
	return s.query(ctx, "get_all", query, args)
}

// Filter returns the rows whose category is in f.Categories (when non-empty)
// and whose name contains f.Search (when non-empty).
func (s *Store) Filter(ctx context.Context, f Filter) ([]Item, error) {
	observability.MenuFilterRequestsTotal.
		WithLabelValues(observability.FilterShape(len(f.Categories) > 0, f.Search != "")).
		Inc()
	query, args := BuildFilterQuery(f, s.searchMode)
	return s.query(ctx, "filter", query, args)
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.observe("count", func() error {
		return sqlitedb.WithRetry(ctx, storeLabel, "count menu items", func() error {
			return s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu`).Scan(&n)
		})
	})
	return n, err
}

// Categories lists the distinct category labels present, sorted.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	out := make([]string, 0)
	err := s.observe("categories", func() error {
		return sqlitedb.WithRetry(ctx, storeLabel, "list menu categories", func() error {
			out = out[:0]
			rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT category FROM menu WHERE category IS NOT NULL ORDER BY category`)
			if err != nil {
				return err
			}
			defer rows.Close()
			for rows.Next() {
				var c string
				if err := rows.Scan(&c); err != nil {
					return fmt.Errorf("scan category: %w", err)
				}
				out = append(out, c)
			}
			return rows.Err()
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) EnsureSchemaAsync(ctx context.Context) *Task[struct{}] {
	return startTask(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.EnsureSchema(ctx)
	})
}

func (s *Store) BulkInsertAsync(ctx context.Context, items []NewItem) *Task[[]int64] {
	return startTask(ctx, func(ctx context.Context) ([]int64, error) {
		return s.BulkInsert(ctx, items)
	})
}

func (s *Store) GetAllAsync(ctx context.Context) *Task[[]Item] {
	return startTask(ctx, s.GetAll)
}

func (s *Store) FilterAsync(ctx context.Context, f Filter) *Task[[]Item] {
	return startTask(ctx, func(ctx context.Context) ([]Item, error) {
		return s.Filter(ctx, f)
	})
}

func (s *Store) query(ctx context.Context, op, query string, args []any) ([]Item, error) {
	items := make([]Item, 0)
	err := s.observe(op, func() error {
		return sqlitedb.WithRetry(ctx, storeLabel, op+" menu items", func() error {
			items = items[:0]
			rows, err := s.db.QueryContext(ctx, query, args...)
			if err != nil {
				return err
			}
			defer rows.Close()
			for rows.Next() {
				item, err := scanItem(rows)
				if err != nil {
					return err
				}
				items = append(items, item)
			}
			return rows.Err()
		})
	})
	if err != nil {
		return nil, err
	}
	observability.MenuRowsReturned.Observe(float64(len(items)))
	return items, nil
}

func scanItem(rows *sql.Rows) (Item, error) {
	var (
		item        Item
		name        sql.NullString
		price       sql.NullFloat64
		description sql.NullString
		image       sql.NullString
		category    sql.NullString
	)
	if err := rows.Scan(&item.ID, &name, &price, &description, &image, &category); err != nil {
		return Item{}, fmt.Errorf("scan menu row: %w", err)
	}
	item.Name = name.String
	item.Price = price.Float64
	item.Description = description.String
	item.Image = image.String
	item.Category = category.String
	return item, nil
}

// observe times fn and maps engine failures onto domain error codes.
func (s *Store) observe(op string, fn func() error) error {
	if s == nil || s.db == nil {
		return apperrors.New(apperrors.CodeStorageUnavailable, "menu store not initialized")
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
	return apperrors.AddContext(apperrors.Wrap(err, code, "menu store"), apperrors.CtxOperation, op)
}
