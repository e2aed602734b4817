package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry(nil)
	m, err := r.Register("Alice", "1 Main St", "555-0101")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, m.ID, int64(100000))
	assert.LessOrEqual(t, m.ID, int64(999999))
	assert.Empty(t, m.BorrowedItems)
	assert.Empty(t, m.Subscriptions)
	assert.Empty(t, m.History)
	assert.Zero(t, m.FineDue)
	assert.Same(t, m, r.Get(m.ID))
	assert.Nil(t, r.Get(1))
}

func TestRegistryBorrowedSet(t *testing.T) {
	r := NewRegistry(nil)
	m, _ := r.Register("Alice", "", "")

	r.AddBorrowedItem(m.ID, 1001)
	r.AddBorrowedItem(m.ID, 1002)
	r.AddBorrowedItem(m.ID, 1003)
	assert.Equal(t, []int64{1001, 1002, 1003}, m.BorrowedItems)

	r.RemoveBorrowedItem(m.ID, 1002)
	assert.Equal(t, []int64{1001, 1003}, m.BorrowedItems)

	// Removing something not held is a no-op.
	r.RemoveBorrowedItem(m.ID, 4242)
	assert.Equal(t, []int64{1001, 1003}, m.BorrowedItems)
}

func TestRegistryFines(t *testing.T) {
	r := NewRegistry(nil)
	m, _ := r.Register("Alice", "", "")

	r.AddFine(m.ID, 30)
	r.AddFine(m.ID, 20)
	assert.Equal(t, int64(50), m.FineDue)

	assert.Equal(t, int64(50), r.ClearFine(m.ID))
	assert.Zero(t, m.FineDue)
	assert.Zero(t, r.ClearFine(m.ID))
	assert.Zero(t, r.ClearFine(424242), "unknown member clears nothing")
}

func TestRegistrySubscriptions(t *testing.T) {
	r := NewRegistry(nil)
	m, _ := r.Register("Alice", "", "")

	require.NoError(t, r.AddSubscription(m.ID, "Time", "Weekly"))
	assert.ErrorIs(t, r.AddSubscription(m.ID, "Time", "Daily"), ErrDuplicateSubscription)
	require.NoError(t, r.AddSubscription(m.ID, "Forbes", "Monthly"))
	assert.Len(t, m.Subscriptions, 2)

	assert.ErrorIs(t, r.AddSubscription(424242, "Time", "Daily"), ErrUnknownMember)
}

func TestRegistryHistoryAppendOnly(t *testing.T) {
	r := NewRegistry(nil)
	m, _ := r.Register("Alice", "", "")

	first := HistoryEntry{Date: time.Now(), Action: "Borrowed", Item: "The Hobbit"}
	second := HistoryEntry{Date: time.Now(), Action: "Returned", Item: "The Hobbit"}
	r.AppendHistory(m.ID, first)
	r.AppendHistory(m.ID, second)

	require.Len(t, m.History, 2)
	assert.Equal(t, first, m.History[0])
	assert.Equal(t, second, m.History[1])

	r.AppendHistory(424242, first) // unknown member: no-op
}
