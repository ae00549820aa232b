package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilterQuery(t *testing.T) {
	tests := []struct {
		name      string
		filter    Filter
		mode      SearchMode
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "empty filter is select all",
			filter:    Filter{},
			wantQuery: "SELECT id, name, price, description, image, category FROM menu ORDER BY id",
			wantArgs:  []any{},
		},
		{
			name:      "categories only",
			filter:    Filter{Categories: []string{"Starters", "Desserts"}},
			wantQuery: "SELECT id, name, price, description, image, category FROM menu WHERE category IN (?, ?) ORDER BY id",
			wantArgs:  []any{"Starters", "Desserts"},
		},
		{
			name:      "search only",
			filter:    Filter{Search: "Greek"},
			wantQuery: "SELECT id, name, price, description, image, category FROM menu WHERE name GLOB ? ORDER BY id",
			wantArgs:  []any{"*Greek*"},
		},
		{
			name:      "both predicates, category params first",
			filter:    Filter{Categories: []string{"Drinks"}, Search: "Lemon"},
			wantQuery: "SELECT id, name, price, description, image, category FROM menu WHERE category IN (?) AND name GLOB ? ORDER BY id",
			wantArgs:  []any{"Drinks", "*Lemon*"},
		},
		{
			name:      "case insensitive uses escaped LIKE",
			filter:    Filter{Search: "50%_off"},
			mode:      SearchCaseInsensitive,
			wantQuery: `SELECT id, name, price, description, image, category FROM menu WHERE name LIKE ? ESCAPE '\' ORDER BY id`,
			wantArgs:  []any{`%50\%\_off%`},
		},
		{
			name:      "duplicate categories keep their placeholder",
			filter:    Filter{Categories: []string{"Mains", "Mains", "Drinks"}},
			wantQuery: "SELECT id, name, price, description, image, category FROM menu WHERE category IN (?, ?, ?) ORDER BY id",
			wantArgs:  []any{"Mains", "Mains", "Drinks"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotQuery, gotArgs := BuildFilterQuery(tt.filter, tt.mode)
			assert.Equal(t, tt.wantQuery, gotQuery)
			assert.Equal(t, tt.wantArgs, gotArgs)
		})
	}
}

func TestQuery_ClausesAreIndependent(t *testing.T) {
	q := NewQuery().WhereCategoryIn().WhereNameContains("", SearchCaseSensitive)
	assert.Empty(t, q.Clauses())

	q = NewQuery().WhereNameContains("Soup", SearchCaseSensitive).WhereCategoryIn("Starters")
	clauses := q.Clauses()
	require.Len(t, clauses, 2)
	assert.Equal(t, ClauseNameContains, clauses[0].Kind)
	assert.Equal(t, ClauseCategoryIn, clauses[1].Kind)
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, "a[*]b[?]c[[]d]", escapeGlob("a*b?c[d]"))
	assert.Equal(t, "plain", escapeGlob("plain"))
}

func TestParseSearchMode(t *testing.T) {
	mode, err := ParseSearchMode("")
	require.NoError(t, err)
	assert.Equal(t, SearchCaseSensitive, mode)

	mode, err = ParseSearchMode(" Insensitive ")
	require.NoError(t, err)
	assert.Equal(t, SearchCaseInsensitive, mode)

	_, err = ParseSearchMode("fuzzy")
	assert.Error(t, err)
}

func TestFilter_Toggle(t *testing.T) {
	f := Filter{Search: "x"}
	f = f.Toggle("Mains")
	f = f.Toggle("Drinks")
	assert.Equal(t, []string{"Mains", "Drinks"}, f.Categories)
	assert.True(t, f.Has("Mains"))

	f = f.Toggle("Mains")
	assert.Equal(t, []string{"Drinks"}, f.Categories)
	assert.False(t, f.Has("Mains"))
	assert.Equal(t, "x", f.Search)
	assert.False(t, f.IsEmpty())
	assert.True(t, Filter{}.IsEmpty())
}
