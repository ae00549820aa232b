package menu

import (
	"fmt"
	"strings"
)

const selectItems = "SELECT id, name, price, description, image, category FROM menu"

// SearchMode selects how the name-contains predicate treats letter case.
type SearchMode int

const (
	SearchCaseSensitive SearchMode = iota
	SearchCaseInsensitive
)

func (m SearchMode) String() string {
	switch m {
	case SearchCaseInsensitive:
		return "insensitive"
	default:
		return "sensitive"
	}
}

func ParseSearchMode(raw string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "sensitive", "case_sensitive":
		return SearchCaseSensitive, nil
	case "insensitive", "case_insensitive":
		return SearchCaseInsensitive, nil
	default:
		return SearchCaseSensitive, fmt.Errorf("unknown search mode %q (expected sensitive|insensitive)", raw)
	}
}

type ClauseKind int

const (
	ClauseCategoryIn ClauseKind = iota
	ClauseNameContains
)

// Clause is one AND-ed predicate with its positional parameters.
type Clause struct {
	Kind ClauseKind
	SQL  string
	Args []any
}

// Query composes a SELECT over the menu table from independent clauses.
type Query struct {
	clauses []Clause
}

func NewQuery() *Query {
	return &Query{}
}

// WhereCategoryIn adds one placeholder per category, in caller order.
// An empty list adds nothing.
func (q *Query) WhereCategoryIn(categories ...string) *Query {
	if len(categories) == 0 {
		return q
	}
	placeholders := make([]string, len(categories))
	args := make([]any, len(categories))
	for i, c := range categories {
		placeholders[i] = "?"
		args[i] = c
	}
	q.clauses = append(q.clauses, Clause{
		Kind: ClauseCategoryIn,
		SQL:  "category IN (" + strings.Join(placeholders, ", ") + ")",
		Args: args,
	})
	return q
}

// WhereNameContains adds a substring match on name. An empty term adds nothing.
func (q *Query) WhereNameContains(term string, mode SearchMode) *Query {
	if term == "" {
		return q
	}
	var c Clause
	switch mode {
	case SearchCaseInsensitive:
		c = Clause{
			Kind: ClauseNameContains,
			SQL:  `name LIKE ? ESCAPE '\'`,
			Args: []any{"%" + escapeLike(term) + "%"},
		}
	default:
		// GLOB is case-sensitive in SQLite; LIKE is not.
		c = Clause{
			Kind: ClauseNameContains,
			SQL:  "name GLOB ?",
			Args: []any{"*" + escapeGlob(term) + "*"},
		}
	}
	q.clauses = append(q.clauses, c)
	return q
}

func (q *Query) Clauses() []Clause {
	return append([]Clause(nil), q.clauses...)
}

// Build returns the query text and its positional arguments.
func (q *Query) Build() (string, []any) {
	var b strings.Builder
	b.WriteString(selectItems)
	args := make([]any, 0)
	for i, c := range q.clauses {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(c.SQL)
		args = append(args, c.Args...)
	}
	b.WriteString(" ORDER BY id")
	return b.String(), args
}

// BuildFilterQuery is the query for f: category clause first, then search.
func BuildFilterQuery(f Filter, mode SearchMode) (string, []any) {
	return NewQuery().
		WhereCategoryIn(f.Categories...).
		WhereNameContains(f.Search, mode).
		Build()
}

func escapeGlob(term string) string {
	var b strings.Builder
	for _, r := range term {
		switch r {
		case '*', '?', '[':
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteByte(']')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}
