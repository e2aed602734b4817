package library

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Lending rules. Fines apply to overdue books and magazines on return;
// audiobook rentals are paid up front per day and expire instead.
const (
	FineRatePerDay  = 10
	RentalFeePerDay = 50
	MinBorrowDays   = 1
	MaxBorrowDays   = 7
)

// dummyMP3 is a minimal valid mp3 byte sequence, served whenever an
// audiobook has no stored preview so callers always get playable bytes.
var dummyMP3 = []byte("ID3\x03\x00\x00\x00\x00\x00\x0fTIT2\x00\x00\x00\x05\x00\x00hey")

// DummyMP3Bytes returns a copy of the placeholder preview payload.
func DummyMP3Bytes() []byte { return append([]byte(nil), dummyMP3...) }

// Manager is the lending engine: the sole writer of the catalog and the
// member registry. Every mutating operation validates first, mutates both
// sides in lockstep, appends a history entry, and persists a snapshot as its
// final step. It assumes a single active session; callers serialize access.
type Manager struct {
	catalog  *Catalog
	registry *Registry
	store    Store
	clock    Clock
	log      *slog.Logger
	snapshot *Snapshot
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock substitutes the time source, mainly for tests.
func WithClock(c Clock) Option { return func(m *Manager) { m.clock = c } }

// WithLogger substitutes the logger.
func WithLogger(l *slog.Logger) Option { return func(m *Manager) { m.log = l } }

// NewManager loads the snapshot from the store, runs an expiry sweep over
// stale audiobook rentals, and persists the result.
func NewManager(store Store, opts ...Option) (*Manager, error) {
	snap, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	m := &Manager{
		catalog:  NewCatalog(snap.Items),
		registry: NewRegistry(snap.Members),
		store:    store,
		clock:    SystemClock(),
		log:      slog.Default(),
		snapshot: snap,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.SweepExpiredRentals()
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) save() error {
	if err := m.store.Save(m.snapshot); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

// ------------------ Members ------------------

// RegisterMember creates a member. A non-empty password is stored as a
// bcrypt hash and checked by Authenticate before circulation actions.
func (m *Manager) RegisterMember(name, address, mobile, password string) (*Member, error) {
	mem, err := m.registry.Register(name, address, mobile)
	if err != nil {
		return nil, err
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		mem.PasswordHash = string(hash)
	}
	if err := m.save(); err != nil {
		return nil, err
	}
	m.log.Info("member registered", "member", mem.ID, "name", mem.Name)
	return mem, nil
}

// GetMember fetches a single member.
func (m *Manager) GetMember(id int64) (*Member, error) {
	mem := m.registry.Get(id)
	if mem == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMember, id)
	}
	return mem, nil
}

// Authenticate verifies a member's password. Members registered without a
// password always pass.
func (m *Manager) Authenticate(memberID int64, password string) error {
	mem := m.registry.Get(memberID)
	if mem == nil {
		return fmt.Errorf("%w: %d", ErrUnknownMember, memberID)
	}
	if mem.PasswordHash == "" {
		return nil
	}
	if bcrypt.CompareHashAndPassword([]byte(mem.PasswordHash), []byte(password)) != nil {
		return ErrBadCredentials
	}
	return nil
}

// ------------------ Items ------------------

// AddItem adds a catalog entry. Preview bytes are kept only for audiobooks.
func (m *Manager) AddItem(title, author string, category Category, preview []byte) (*Item, error) {
	if !ValidCategory(category) {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	it, err := m.catalog.Add(title, author, category, preview)
	if err != nil {
		return nil, err
	}
	if err := m.save(); err != nil {
		return nil, err
	}
	return it, nil
}

// GetItem fetches a single item.
func (m *Manager) GetItem(id int64) (*Item, error) {
	it := m.catalog.Get(id)
	if it == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownItem, id)
	}
	return it, nil
}

// FindItems searches the catalog; see Catalog.Find.
func (m *Manager) FindItems(category Category, query string) []*Item {
	return m.catalog.Find(category, query)
}

// GetPreview returns the item's stored preview, or the placeholder mp3
// payload when none is stored.
func (m *Manager) GetPreview(itemID int64) ([]byte, error) {
	it := m.catalog.Get(itemID)
	if it == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownItem, itemID)
	}
	if len(it.Preview) > 0 {
		return it.Preview, nil
	}
	return DummyMP3Bytes(), nil
}

// ------------------ Circulation ------------------

// Borrow lends the item to the member for the given number of days and
// returns the due time. Audiobooks record an up-front rental fee of
// RentalFeePerDay per day in the member's history; the fee is informational
// and never added to the fine balance. Stale audiobook rentals are swept
// before availability is checked.
func (m *Manager) Borrow(memberID, itemID int64, days int) (time.Time, error) {
	if days < MinBorrowDays || days > MaxBorrowDays {
		return time.Time{}, fmt.Errorf("%w: %d days (allowed %d-%d)",
			ErrInvalidDuration, days, MinBorrowDays, MaxBorrowDays)
	}
	mem := m.registry.Get(memberID)
	if mem == nil {
		return time.Time{}, fmt.Errorf("%w: %d", ErrUnknownMember, memberID)
	}
	it := m.catalog.Get(itemID)
	if it == nil {
		return time.Time{}, fmt.Errorf("%w: %d", ErrUnknownItem, itemID)
	}

	// Reclaim expired rentals first so a stale audiobook borrow does not
	// block this one.
	m.SweepExpiredRentals()

	if !it.Available {
		return time.Time{}, fmt.Errorf("%w: %q", ErrItemUnavailable, it.Title)
	}

	borrowed := m.clock.Now()
	due := borrowed.AddDate(0, 0, days)
	m.catalog.MarkBorrowed(itemID, memberID, borrowed, due)
	m.registry.AddBorrowedItem(memberID, itemID)

	if it.Category == CategoryAudiobook {
		fee := int64(days) * RentalFeePerDay
		m.registry.AppendHistory(memberID, HistoryEntry{
			Date:     borrowed,
			Action:   "Rented",
			Item:     it.Title,
			Category: string(CategoryAudiobook),
			Details:  fmt.Sprintf("Paid Rs%d, due %s", fee, due.Format("2006-01-02")),
		})
	} else {
		m.registry.AppendHistory(memberID, HistoryEntry{
			Date:     borrowed,
			Action:   "Borrowed",
			Item:     it.Title,
			Category: string(it.Category),
			Details:  fmt.Sprintf("Due %s", due.Format("2006-01-02")),
		})
	}

	if err := m.save(); err != nil {
		return time.Time{}, err
	}
	m.log.Info("item borrowed", "member", memberID, "item", itemID, "days", days, "due", due)
	return due, nil
}

// CalculateFine previews the overdue fine for an item without mutating
// anything: whole days past the due date times FineRatePerDay, zero when the
// item has no due date or is not yet overdue.
func (m *Manager) CalculateFine(itemID int64) int64 {
	it := m.catalog.Get(itemID)
	if it == nil || it.DueDate == nil {
		return 0
	}
	delayDays := int64(m.clock.Now().Sub(*it.DueDate).Hours() / 24)
	if delayDays <= 0 {
		return 0
	}
	return delayDays * FineRatePerDay
}

// Return takes the item back from the member and returns the computed fine.
// With payNow the fine counts as settled at the counter and is only recorded
// in history; otherwise it is added to the member's outstanding balance.
func (m *Manager) Return(memberID, itemID int64, payNow bool) (int64, error) {
	mem := m.registry.Get(memberID)
	if mem == nil {
		return 0, fmt.Errorf("%w: %d", ErrUnknownMember, memberID)
	}
	it := m.catalog.Get(itemID)
	if it == nil {
		return 0, fmt.Errorf("%w: %d", ErrUnknownItem, itemID)
	}
	if it.Available || it.BorrowedBy != memberID {
		return 0, fmt.Errorf("%w: item %d, member %d", ErrNotBorrowed, itemID, memberID)
	}

	fine := m.CalculateFine(itemID)
	if fine > 0 && !payNow {
		m.registry.AddFine(memberID, fine)
	}

	details := "No fine"
	if fine > 0 {
		details = fmt.Sprintf("Fine Rs%d", fine)
	}
	m.registry.AppendHistory(memberID, HistoryEntry{
		Date:     m.clock.Now(),
		Action:   "Returned",
		Item:     it.Title,
		Category: string(it.Category),
		Details:  details,
	})

	m.catalog.MarkAvailable(itemID)
	m.registry.RemoveBorrowedItem(memberID, itemID)

	if err := m.save(); err != nil {
		return 0, err
	}
	m.log.Info("item returned", "member", memberID, "item", itemID, "fine", fine, "paid_now", payNow)
	return fine, nil
}

// SweepExpiredRentals reclaims every borrowed audiobook whose due date has
// passed: the item becomes available again and the borrower's history notes
// the expiry. No fine is charged; expiry is a hard cutoff, distinct from the
// overdue-fine flow for books and magazines. The sweep is best-effort
// housekeeping and never fails a caller: a failed snapshot save here is
// logged and picked up by the next successful save.
func (m *Manager) SweepExpiredRentals() int {
	now := m.clock.Now()
	reclaimed := 0
	for _, it := range m.catalog.Find(CategoryAudiobook, "") {
		if it.Available || it.DueDate == nil || !now.After(*it.DueDate) {
			continue
		}
		borrower := it.BorrowedBy
		m.registry.RemoveBorrowedItem(borrower, it.ID)
		m.registry.AppendHistory(borrower, HistoryEntry{
			Date:     now,
			Action:   "Audiobook expired",
			Item:     it.Title,
			Category: string(CategoryAudiobook),
			Details:  fmt.Sprintf("Expired %s", it.DueDate.Format("2006-01-02")),
		})
		m.catalog.MarkAvailable(it.ID)
		m.log.Debug("rental expired", "item", it.ID, "member", borrower)
		reclaimed++
	}
	if reclaimed > 0 {
		if err := m.save(); err != nil {
			m.log.Error("sweep snapshot save failed", "error", err)
		}
	}
	return reclaimed
}

// ------------------ Fines & subscriptions ------------------

// ClearFines zeroes the member's outstanding balance and returns the amount
// that was cleared.
func (m *Manager) ClearFines(memberID int64) (int64, error) {
	mem := m.registry.Get(memberID)
	if mem == nil {
		return 0, fmt.Errorf("%w: %d", ErrUnknownMember, memberID)
	}
	amt := m.registry.ClearFine(memberID)
	m.registry.AppendHistory(memberID, HistoryEntry{
		Date:     m.clock.Now(),
		Action:   "Paid fines",
		Category: historyCategoryPayment,
		Details:  fmt.Sprintf("Cleared Rs%d", amt),
	})
	if err := m.save(); err != nil {
		return 0, err
	}
	m.log.Info("fines cleared", "member", memberID, "amount", amt)
	return amt, nil
}

// Subscribe adds a periodical subscription for the member. The name must be
// unique per member.
func (m *Manager) Subscribe(memberID int64, name, frequency string) error {
	if m.registry.Get(memberID) == nil {
		return fmt.Errorf("%w: %d", ErrUnknownMember, memberID)
	}
	if err := m.registry.AddSubscription(memberID, name, frequency); err != nil {
		return err
	}
	m.registry.AppendHistory(memberID, HistoryEntry{
		Date:     m.clock.Now(),
		Action:   "Subscribed",
		Item:     name,
		Category: historyCategorySubscription,
		Details:  frequency,
	})
	return m.save()
}
