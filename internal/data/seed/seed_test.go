package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "littlelemon/internal/core/errors"
	"littlelemon/internal/data/menu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AcceptsStringAndNumberPrices(t *testing.T) {
	items, err := Parse(strings.NewReader(`{"menu":[
		{"name":"Greek Salad","price":"12.50","category":"Starters"},
		{"name":"Lemon Soda","price":3,"category":"Drinks"},
		{"name":"Water","price":null,"category":"Drinks"}
	]}`))
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, 12.5, items[0].Price)
	assert.Equal(t, 3.0, items[1].Price)
	assert.Equal(t, 0.0, items[2].Price)
}

func TestParse_RejectsBadPrice(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"menu":[{"name":"x","price":"cheap"}]}`))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationError))
}

func TestDefaultCatalogue(t *testing.T) {
	items := Default()
	require.NotEmpty(t, items)
	for _, it := range items {
		assert.NotEmpty(t, it.Name)
		assert.Contains(t, menu.DefaultCategories, it.Category)
	}
}

func TestLoadDir_UsesIncludeGlobs(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("b_mains.json", `{"menu":[{"name":"Pasta","price":"6.99","category":"Mains"}]}`)
	write("a_starters.json", `{"menu":[{"name":"Bruschetta","price":"7.99","category":"Starters"}]}`)
	write("notes.txt", `not a catalogue`)
	write("draft.json.bak", `{"menu":[{"name":"Ignored"}]}`)

	items, err := LoadDir(dir, []string{"*.json"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Bruschetta", items[0].Name)
	assert.Equal(t, "Pasta", items[1].Name)

	items, err = LoadDir(dir, []string{"b_*"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Pasta", items[0].Name)
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestIfEmpty_SeedsOnce(t *testing.T) {
	ctx := context.Background()
	store, err := menu.Open(filepath.Join(t.TempDir(), "menu.db"))
	require.NoError(t, err)
	defer store.Close()

	n, err := IfEmpty(ctx, store, Default())
	require.NoError(t, err)
	assert.Equal(t, len(Default()), n)

	n, err = IfEmpty(ctx, store, Default())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(Default()), count)
}
