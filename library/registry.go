package library

// Registry owns the member records: borrowed-item sets, fines, subscriptions
// and the per-member history ledger. Like the Catalog it does no
// cross-entity validation and is written only by the Manager.
type Registry struct {
	members map[int64]*Member
}

// NewRegistry wraps an existing member map, allocating one when nil.
func NewRegistry(members map[int64]*Member) *Registry {
	if members == nil {
		members = make(map[int64]*Member)
	}
	return &Registry{members: members}
}

// Register creates a member with a fresh identifier, empty collections and a
// zero fine balance.
func (r *Registry) Register(name, address, mobile string) (*Member, error) {
	id, err := generateID(memberIDDigits, func(id int64) bool {
		_, ok := r.members[id]
		return ok
	})
	if err != nil {
		return nil, err
	}
	m := &Member{
		ID:            id,
		Name:          name,
		Address:       address,
		Mobile:        mobile,
		BorrowedItems: []int64{},
		Subscriptions: []Subscription{},
		History:       []HistoryEntry{},
	}
	r.members[id] = m
	return m, nil
}

// Get returns the member or nil when the identifier is unknown.
func (r *Registry) Get(id int64) *Member { return r.members[id] }

// AppendHistory adds an entry to the member's ledger. Entries are never
// mutated or removed afterwards.
func (r *Registry) AppendHistory(id int64, e HistoryEntry) {
	if m := r.members[id]; m != nil {
		m.History = append(m.History, e)
	}
}

// AddBorrowedItem records the item in the member's borrowed set.
func (r *Registry) AddBorrowedItem(id, itemID int64) {
	if m := r.members[id]; m != nil {
		m.BorrowedItems = append(m.BorrowedItems, itemID)
	}
}

// RemoveBorrowedItem drops the item from the member's borrowed set.
func (r *Registry) RemoveBorrowedItem(id, itemID int64) {
	m := r.members[id]
	if m == nil {
		return
	}
	for i, v := range m.BorrowedItems {
		if v == itemID {
			m.BorrowedItems = append(m.BorrowedItems[:i], m.BorrowedItems[i+1:]...)
			return
		}
	}
}

// AddFine increases the member's outstanding balance.
func (r *Registry) AddFine(id, amount int64) {
	if m := r.members[id]; m != nil {
		m.FineDue += amount
	}
}

// ClearFine zeroes the member's balance and returns what was owed.
func (r *Registry) ClearFine(id int64) int64 {
	m := r.members[id]
	if m == nil {
		return 0
	}
	amt := m.FineDue
	m.FineDue = 0
	return amt
}

// AddSubscription records a subscription. The name must be unique per
// member; a duplicate fails with ErrDuplicateSubscription.
func (r *Registry) AddSubscription(id int64, name, frequency string) error {
	m := r.members[id]
	if m == nil {
		return ErrUnknownMember
	}
	for _, s := range m.Subscriptions {
		if s.Name == name {
			return ErrDuplicateSubscription
		}
	}
	m.Subscriptions = append(m.Subscriptions, Subscription{Name: name, Frequency: frequency})
	return nil
}
