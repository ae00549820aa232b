// Package seed loads menu catalogues and populates an empty menu table.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	apperrors "littlelemon/internal/core/errors"
	"littlelemon/internal/core/ports"
	"littlelemon/internal/data/menu"

	"github.com/gobwas/glob"
)

//go:embed default_menu.json
var defaultMenu []byte

type catalogue struct {
	Menu []entry `json:"menu"`
}

type entry struct {
	Name        string    `json:"name"`
	Price       flexPrice `json:"price"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
}

// flexPrice accepts 12.5 as well as "12.50".
type flexPrice float64

func (p *flexPrice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*p = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", s, err)
		}
		*p = flexPrice(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = flexPrice(f)
	return nil
}

// Parse reads a {"menu": [...]} catalogue.
func Parse(r io.Reader) ([]menu.NewItem, error) {
	var c catalogue
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeValidationError, "decode menu catalogue")
	}
	items := make([]menu.NewItem, 0, len(c.Menu))
	for _, e := range c.Menu {
		items = append(items, menu.NewItem{
			Name:        e.Name,
			Price:       float64(e.Price),
			Description: e.Description,
			Image:       e.Image,
			Category:    e.Category,
		})
	}
	return items, nil
}

// Default is the built-in Little Lemon catalogue.
func Default() []menu.NewItem {
	items, err := Parse(bytes.NewReader(defaultMenu))
	if err != nil {
		panic(fmt.Sprintf("embedded menu catalogue is invalid: %v", err))
	}
	return items
}

// LoadDir parses every file directly under dir whose name matches one of
// the include globs, in lexical order.
func LoadDir(dir string, include []string) ([]menu.NewItem, error) {
	if len(include) == 0 {
		include = []string{"*.json"}
	}
	patterns := make([]glob.Glob, 0, len(include))
	for _, p := range include {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid seed include pattern %q: %w", p, err)
		}
		patterns = append(patterns, g)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.AddContext(
			apperrors.Wrap(err, apperrors.CodeNotFound, "read seed directory"),
			apperrors.CtxPath, dir,
		)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, g := range patterns {
			if g.Match(e.Name()) {
				names = append(names, e.Name())
				break
			}
		}
	}
	sort.Strings(names)

	items := make([]menu.NewItem, 0)
	for _, name := range names {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open seed file %q: %w", path, err)
		}
		parsed, err := Parse(f)
		_ = f.Close()
		if err != nil {
			return nil, apperrors.AddContext(err, apperrors.CtxPath, path)
		}
		items = append(items, parsed...)
	}
	return items, nil
}

// IfEmpty inserts items only when the menu table has no rows, so repeated
// starts do not duplicate the catalogue. It returns the number inserted.
func IfEmpty(ctx context.Context, repo ports.MenuRepository, items []menu.NewItem) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Debug("menu already seeded", "rows", n)
		return 0, nil
	}
	ids, err := repo.BulkInsert(ctx, items)
	if err != nil {
		return 0, err
	}
	slog.Info("seeded menu", "rows", len(ids))
	return len(ids), nil
}
