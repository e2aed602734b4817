package library

import "time"

// Category classifies an item and drives its lending rules: books accrue
// overdue fines, audiobooks are rented for an up-front fee and expire
// automatically, magazines behave like books. The string values are what
// gets written into snapshots.
type Category string

const (
	CategoryBook      Category = "Book"
	CategoryAudiobook Category = "Audiobook"
	CategoryMagazine  Category = "Magazine"
)

// Pseudo-categories used only in history entries, never on items.
const (
	historyCategoryPayment      = "Payment"
	historyCategorySubscription = "Subscription"
)

// ValidCategory reports whether c is one of the known item categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryBook, CategoryAudiobook, CategoryMagazine:
		return true
	}
	return false
}

// Member is a registered library member.
type Member struct {
	ID            int64          `json:"user_id"`
	Name          string         `json:"name"`
	Address       string         `json:"address"`
	Mobile        string         `json:"mobile"`
	BorrowedItems []int64        `json:"borrowed_items"`
	Subscriptions []Subscription `json:"subscriptions"`
	History       []HistoryEntry `json:"history"`
	FineDue       int64          `json:"fine_due"`
	PasswordHash  string         `json:"password_hash,omitempty"`
}

// Item is a single lendable catalog entry. When Available is true the
// borrow fields are all unset; when false they are all set. Preview holds
// raw mp3 bytes and is only ever populated for audiobooks.
type Item struct {
	ID         int64      `json:"item_id"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	Category   Category   `json:"category"`
	Available  bool       `json:"available"`
	BorrowedBy int64      `json:"borrowed_by,omitempty"`
	BorrowDate *time.Time `json:"borrow_date"`
	DueDate    *time.Time `json:"return_date"`
	Preview    []byte     `json:"preview_b64,omitempty"`
}

// HistoryEntry is an immutable line in a member's activity ledger. Entries
// are only ever appended, in chronological order.
type HistoryEntry struct {
	Date     time.Time `json:"date"`
	Action   string    `json:"action"`
	Item     string    `json:"item"`
	Category string    `json:"category"`
	Details  string    `json:"details"`
}

// Subscription is a periodical subscription. There is no cancel or update;
// the name is unique per member.
type Subscription struct {
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
}

// Snapshot is the complete library state, persisted as one unit after every
// mutation. JSON map keys are the decimal identifiers, timestamps serialize
// as RFC 3339 strings and previews as base64.
type Snapshot struct {
	Members map[int64]*Member `json:"users"`
	Items   map[int64]*Item   `json:"items"`
}

// NewSnapshot returns an empty snapshot with both maps allocated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Members: make(map[int64]*Member),
		Items:   make(map[int64]*Item),
	}
}
