package library

import "math/rand"

const (
	memberIDDigits = 6
	itemIDDigits   = 4

	// maxIDAttempts bounds the collision-retry loop so a nearly full
	// identifier space fails explicitly instead of spinning.
	maxIDAttempts = 10_000
)

// generateID draws random ids with the given number of decimal digits until
// one passes the taken predicate, or gives up with ErrIDSpaceExhausted.
func generateID(digits int, taken func(int64) bool) (int64, error) {
	lo := int64(1)
	for i := 1; i < digits; i++ {
		lo *= 10
	}
	hi := lo*10 - 1
	for i := 0; i < maxIDAttempts; i++ {
		id := lo + rand.Int63n(hi-lo+1)
		if !taken(id) {
			return id, nil
		}
	}
	return 0, ErrIDSpaceExhausted
}
