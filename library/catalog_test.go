package library

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAddAndGet(t *testing.T) {
	c := NewCatalog(nil)
	it, err := c.Add("The Hobbit", "J.R.R. Tolkien", CategoryBook, nil)
	require.NoError(t, err)
	assert.True(t, it.Available)
	assert.GreaterOrEqual(t, it.ID, int64(1000))
	assert.LessOrEqual(t, it.ID, int64(9999))
	assert.Same(t, it, c.Get(it.ID))
	assert.Nil(t, c.Get(1))
}

func TestCatalogFind(t *testing.T) {
	c := NewCatalog(nil)
	c.Add("The Hobbit", "J.R.R. Tolkien", CategoryBook, nil)
	c.Add("The Fellowship of the Ring", "J.R.R. Tolkien", CategoryBook, nil)
	c.Add("Becoming (Audiobook)", "Michelle Obama", CategoryAudiobook, nil)
	c.Add("Forbes", "Various", CategoryMagazine, nil)

	tests := []struct {
		name     string
		category Category
		query    string
		want     int
	}{
		{"no filters returns everything", "", "", 4},
		{"category filter", CategoryBook, "", 2},
		{"category is case-insensitive", Category("audiobook"), "", 1},
		{"query matches title substring", "", "hobbit", 1},
		{"query matches author", "", "tolkien", 2},
		{"query is trimmed", "", "  obama  ", 1},
		{"category and query combine", CategoryBook, "ring", 1},
		{"no match", CategoryMagazine, "tolkien", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Len(t, c.Find(tc.category, tc.query), tc.want)
		})
	}

	// Ascending ID order, repeatable across calls.
	all := c.Find("", "")
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
	assert.Equal(t, all, c.Find("", ""))
}

func TestCatalogMarkBorrowedAndAvailable(t *testing.T) {
	c := NewCatalog(nil)
	it, _ := c.Add("Time", "Various", CategoryMagazine, nil)

	borrowed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	due := borrowed.AddDate(0, 0, 5)
	c.MarkBorrowed(it.ID, 123456, borrowed, due)
	assert.False(t, it.Available)
	assert.Equal(t, int64(123456), it.BorrowedBy)
	require.NotNil(t, it.BorrowDate)
	require.NotNil(t, it.DueDate)
	assert.Equal(t, borrowed, *it.BorrowDate)
	assert.Equal(t, due, *it.DueDate)

	c.MarkAvailable(it.ID)
	assert.True(t, it.Available)
	assert.Zero(t, it.BorrowedBy)
	assert.Nil(t, it.BorrowDate)
	assert.Nil(t, it.DueDate)

	// Unknown ids are ignored.
	c.MarkBorrowed(1, 1, borrowed, due)
	c.MarkAvailable(1)
}

func TestCatalogIDCollisionRetry(t *testing.T) {
	// The item id space has 9000 slots; filling a large share of it forces
	// the generator through collisions.
	c := NewCatalog(nil)
	for i := 0; i < 2000; i++ {
		_, err := c.Add(fmt.Sprintf("Vol %d", i), "Anon", CategoryBook, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, 2000, c.Len())
}
