package menu

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	apperrors "littlelemon/internal/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "little_lemon.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func fixtureItems() []NewItem {
	return []NewItem{
		{Name: "Greek Salad", Price: 12.5, Description: "Crispy lettuce, peppers, olives and feta.", Image: "greekSalad.jpg", Category: "Starters"},
		{Name: "Greek Yogurt", Price: 4, Description: "Thick yogurt with honey.", Image: "yogurt.jpg", Category: "Desserts"},
		{Name: "Lemon Soda", Price: 3, Description: "Fresh lemon and soda water.", Image: "soda.jpg", Category: "Drinks"},
		{Name: "Bruschetta", Price: 7.99, Description: "Grilled bread with garlic.", Image: "bruschetta.jpg", Category: "Starters"},
		{Name: "Grilled Fish", Price: 20, Description: "Catch of the day.", Image: "fish.jpg", Category: "Mains"},
		{Name: "Lemon Dessert", Price: 5, Description: "Grandma's recipe.", Image: "lemonDessert.jpg", Category: "Desserts"},
	}
}

func names(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	sort.Strings(out)
	return out
}

func TestStore_EnsureSchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.EnsureSchema(ctx))

	_, err := store.BulkInsert(ctx, fixtureItems()[:2])
	require.NoError(t, err)
	require.NoError(t, store.EnsureSchema(ctx))

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	var tables int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'menu'`).Scan(&tables))
	assert.Equal(t, 1, tables)
}

func TestStore_ReopenKeepsRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "menu.db")

	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.BulkInsert(ctx, fixtureItems())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(fixtureItems()), n)
}

func TestStore_InsertThenReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	input := fixtureItems()

	ids, err := store.BulkInsert(ctx, input)
	require.NoError(t, err)
	require.Len(t, ids, len(input))

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(input))

	seen := make(map[int64]bool)
	for i, got := range all {
		assert.False(t, seen[got.ID], "duplicate id %d", got.ID)
		seen[got.ID] = true
		assert.Equal(t, ids[i], got.ID)
		assert.Equal(t, input[i].Name, got.Name)
		assert.Equal(t, input[i].Price, got.Price)
		assert.Equal(t, input[i].Description, got.Description)
		assert.Equal(t, input[i].Image, got.Image)
		assert.Equal(t, input[i].Category, got.Category)
	}
}

func TestStore_BulkInsertIsNotIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first, err := store.BulkInsert(ctx, fixtureItems()[:3])
	require.NoError(t, err)
	second, err := store.BulkInsert(ctx, fixtureItems()[:3])
	require.NoError(t, err)

	for i := range first {
		assert.NotEqual(t, first[i], second[i])
	}
	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestStore_BulkInsertEmptyIsNoop(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	ids, err := store.BulkInsert(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStore_MalformedInputIsStoredAsGiven(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.BulkInsert(ctx, []NewItem{{Name: "Refund", Price: -3, Category: "Specials"}})
	require.NoError(t, err)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, -3.0, all[0].Price)
	assert.Equal(t, "Specials", all[0].Category)
}

func TestStore_EmptyTableReturnsEmptySlice(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	filtered, err := store.Filter(ctx, Filter{Categories: []string{"Mains"}, Search: "x"})
	require.NoError(t, err)
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestStore_EmptyFilterEqualsGetAll(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	_, err := store.BulkInsert(ctx, fixtureItems())
	require.NoError(t, err)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	filtered, err := store.Filter(ctx, Filter{})
	require.NoError(t, err)
	assert.ElementsMatch(t, all, filtered)
}

func TestStore_CategoryFilter(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	_, err := store.BulkInsert(ctx, fixtureItems())
	require.NoError(t, err)
	all, err := store.GetAll(ctx)
	require.NoError(t, err)

	subsets := [][]string{
		{"Starters"},
		{"Desserts", "Drinks"},
		{"Mains", "Starters", "Desserts", "Drinks"},
		{"Unknown"},
		{"Starters", "Starters"},
	}
	for _, subset := range subsets {
		t.Run(strings.Join(subset, ","), func(t *testing.T) {
			got, err := store.Filter(ctx, Filter{Categories: subset})
			require.NoError(t, err)

			want := make([]Item, 0)
			for _, it := range all {
				for _, c := range subset {
					if it.Category == c {
						want = append(want, it)
						break
					}
				}
			}
			assert.ElementsMatch(t, want, got)
		})
	}
}

func TestStore_CategoryFilterIsMembershipNotSubstring(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	_, err := store.BulkInsert(ctx, fixtureItems())
	require.NoError(t, err)

	got, err := store.Filter(ctx, Filter{Categories: []string{"Start"}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_SearchFilterCaseSensitive(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	_, err := store.BulkInsert(ctx, fixtureItems())
	require.NoError(t, err)
	all, err := store.GetAll(ctx)
	require.NoError(t, err)

	for _, q := range []string{"Greek", "Lemon", "lemon", "e", "Fish", "zzz", "reek Y"} {
		t.Run(q, func(t *testing.T) {
			got, err := store.Filter(ctx, Filter{Search: q})
			require.NoError(t, err)

			want := make([]Item, 0)
			for _, it := range all {
				if strings.Contains(it.Name, q) {
					want = append(want, it)
				}
			}
			assert.ElementsMatch(t, want, got)
		})
	}
}

func TestStore_SearchFilterCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, WithSearchMode(SearchCaseInsensitive))
	_, err := store.BulkInsert(ctx, fixtureItems())
	require.NoError(t, err)

	got, err := store.Filter(ctx, Filter{Search: "lemon"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Lemon Dessert", "Lemon Soda"}, names(got))
}

func TestStore_SearchTreatsWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	for _, mode := range []SearchMode{SearchCaseSensitive, SearchCaseInsensitive} {
		t.Run(mode.String(), func(t *testing.T) {
			store := newTestStore(t, WithSearchMode(mode))
			_, err := store.BulkInsert(ctx, []NewItem{
				{Name: "100% Juice", Category: "Drinks"},
				{Name: "Plain Water", Category: "Drinks"},
				{Name: "Chef's [special]", Category: "Mains"},
				{Name: "What?", Category: "Mains"},
				{Name: "snake_case", Category: "Mains"},
			})
			require.NoError(t, err)

			cases := map[string][]string{
				"%":  {"100% Juice"},
				"*":  {},
				"?":  {"What?"},
				"[s": {"Chef's [special]"},
				"_":  {"snake_case"},
			}
			for term, want := range cases {
				got, err := store.Filter(ctx, Filter{Search: term})
				require.NoError(t, err)
				assert.Equal(t, want, names(got), "term %q", term)
			}
		})
	}
}

func TestStore_CombinedFilterScenario(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	_, err := store.BulkInsert(ctx, []NewItem{
		{Name: "Greek Salad", Price: 12.5, Category: "Starters"},
		{Name: "Greek Yogurt", Price: 4, Category: "Desserts"},
		{Name: "Lemon Soda", Price: 3, Category: "Drinks"},
	})
	require.NoError(t, err)

	got, err := store.Filter(ctx, Filter{Categories: []string{"Starters", "Desserts"}, Search: "Greek"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Greek Salad", "Greek Yogurt"}, names(got))
}

func TestStore_CombinedFilterIsIntersection(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	_, err := store.BulkInsert(ctx, fixtureItems())
	require.NoError(t, err)

	byCategory, err := store.Filter(ctx, Filter{Categories: []string{"Desserts", "Drinks"}})
	require.NoError(t, err)
	bySearch, err := store.Filter(ctx, Filter{Search: "Lemon"})
	require.NoError(t, err)
	combined, err := store.Filter(ctx, Filter{Categories: []string{"Desserts", "Drinks"}, Search: "Lemon"})
	require.NoError(t, err)

	inSearch := make(map[int64]bool)
	for _, it := range bySearch {
		inSearch[it.ID] = true
	}
	want := make([]Item, 0)
	for _, it := range byCategory {
		if inSearch[it.ID] {
			want = append(want, it)
		}
	}
	assert.ElementsMatch(t, want, combined)
	assert.Equal(t, []string{"Lemon Dessert", "Lemon Soda"}, names(combined))
}

func TestStore_Categories(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	_, err := store.BulkInsert(ctx, fixtureItems())
	require.NoError(t, err)

	got, err := store.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Desserts", "Drinks", "Mains", "Starters"}, got)
}

func TestStore_AsyncTasks(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	store := newTestStore(t)

	_, err := store.EnsureSchemaAsync(ctx).Await(ctx)
	require.NoError(t, err)

	ids, err := store.BulkInsertAsync(ctx, fixtureItems()).Await(ctx)
	require.NoError(t, err)
	require.Len(t, ids, len(fixtureItems()))

	// Sequenced by awaiting the insert first, so the read must observe it.
	all, err := store.GetAllAsync(ctx).Await(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(fixtureItems()))

	task := store.FilterAsync(ctx, Filter{Categories: []string{"Mains"}})
	select {
	case <-task.Done():
	case <-ctx.Done():
		t.Fatal("filter task did not complete")
	}
	mains, err := task.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Grilled Fish"}, names(mains))
}

func TestTask_AwaitHonoursContext(t *testing.T) {
	release := make(chan struct{})
	task := startTask(context.Background(), func(context.Context) (int, error) {
		<-release
		return 7, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := task.Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	v, err := task.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestStore_ClosedStoreReportsStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "menu.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.GetAll(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeStorageUnavailable), "got %v", err)
}

func TestOpen_DirectoryPathIsStorageUnavailable(t *testing.T) {
	_, err := Open(t.TempDir())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeStorageUnavailable))
}
