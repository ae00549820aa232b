package menu

// Item is a persisted row of the menu table.
type Item struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// NewItem is an item that has not been assigned an id yet.
type NewItem struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// DefaultCategories are the labels the home screen offers as toggles.
var DefaultCategories = []string{"Starters", "Mains", "Desserts", "Drinks"}

// Filter is the caller-owned filter state passed on every Filter call.
type Filter struct {
	Categories []string `json:"categories,omitempty"`
	Search     string   `json:"search,omitempty"`
}

func (f Filter) IsEmpty() bool {
	return len(f.Categories) == 0 && f.Search == ""
}

// Toggle returns a copy of f with category added or removed.
func (f Filter) Toggle(category string) Filter {
	out := Filter{Search: f.Search, Categories: make([]string, 0, len(f.Categories)+1)}
	found := false
	for _, c := range f.Categories {
		if c == category {
			found = true
			continue
		}
		out.Categories = append(out.Categories, c)
	}
	if !found {
		out.Categories = append(out.Categories, category)
	}
	return out
}

func (f Filter) Has(category string) bool {
	for _, c := range f.Categories {
		if c == category {
			return true
		}
	}
	return false
}
