package library

import (
	"sort"
	"strings"
	"time"
)

// Catalog owns the item records and their availability state. It performs
// no cross-entity validation; that is the Manager's job. Only the Manager
// writes to it.
type Catalog struct {
	items map[int64]*Item
}

// NewCatalog wraps an existing item map, allocating one when nil.
func NewCatalog(items map[int64]*Item) *Catalog {
	if items == nil {
		items = make(map[int64]*Item)
	}
	return &Catalog{items: items}
}

// Add creates an item with a fresh identifier and stores it as available.
// The preview bytes are kept only for audiobooks.
func (c *Catalog) Add(title, author string, category Category, preview []byte) (*Item, error) {
	id, err := generateID(itemIDDigits, func(id int64) bool {
		_, ok := c.items[id]
		return ok
	})
	if err != nil {
		return nil, err
	}
	it := &Item{
		ID:        id,
		Title:     title,
		Author:    author,
		Category:  category,
		Available: true,
	}
	if category == CategoryAudiobook && len(preview) > 0 {
		it.Preview = preview
	}
	c.items[id] = it
	return it, nil
}

// Get returns the item or nil when the identifier is unknown.
func (c *Catalog) Get(id int64) *Item { return c.items[id] }

// Len reports the number of catalog entries.
func (c *Catalog) Len() int { return len(c.items) }

// Find filters items by category (exact, case-insensitive, empty = any) and
// by a case-insensitive substring of title or author (trimmed, empty = any).
// Results come back in ascending identifier order so repeated calls against
// the same snapshot agree.
func (c *Catalog) Find(category Category, query string) []*Item {
	q := strings.ToLower(strings.TrimSpace(query))
	cat := strings.ToLower(string(category))

	var out []*Item
	for _, it := range c.items {
		if cat != "" && strings.ToLower(string(it.Category)) != cat {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(it.Title), q) &&
			!strings.Contains(strings.ToLower(it.Author), q) {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MarkBorrowed flips the item to borrowed state, setting all three borrow
// fields together.
func (c *Catalog) MarkBorrowed(id, memberID int64, borrowed, due time.Time) {
	it := c.items[id]
	if it == nil {
		return
	}
	it.Available = false
	it.BorrowedBy = memberID
	it.BorrowDate = &borrowed
	it.DueDate = &due
}

// MarkAvailable flips the item back to available, clearing all three borrow
// fields together.
func (c *Catalog) MarkAvailable(id int64) {
	it := c.items[id]
	if it == nil {
		return
	}
	it.Available = true
	it.BorrowedBy = 0
	it.BorrowDate = nil
	it.DueDate = nil
}
