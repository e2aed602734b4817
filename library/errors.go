package library

import "errors"

// Sentinel errors returned by the lending engine. All of them are
// recoverable at the caller boundary; the engine never partially mutates
// state before returning one.
var (
	// ErrInvalidDuration means a borrow duration outside [MinBorrowDays, MaxBorrowDays].
	ErrInvalidDuration = errors.New("borrow duration out of range")

	// ErrItemUnavailable means the item is currently borrowed by someone.
	ErrItemUnavailable = errors.New("item is not available")

	// ErrNotBorrowed means a return was attempted for an item the member does not hold.
	ErrNotBorrowed = errors.New("item is not borrowed by this member")

	// ErrDuplicateSubscription means the member already has a subscription of that name.
	ErrDuplicateSubscription = errors.New("already subscribed")

	// ErrUnknownMember means the member identifier does not exist.
	ErrUnknownMember = errors.New("member not found")

	// ErrUnknownItem means the item identifier does not exist.
	ErrUnknownItem = errors.New("item not found")

	// ErrIDSpaceExhausted means identifier generation ran out of retries.
	ErrIDSpaceExhausted = errors.New("identifier space exhausted")

	// ErrBadCredentials means password authentication failed.
	ErrBadCredentials = errors.New("invalid credentials")
)
