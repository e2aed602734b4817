package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIDRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		id, err := generateID(4, func(int64) bool { return false })
		require.NoError(t, err)
		assert.GreaterOrEqual(t, id, int64(1000))
		assert.LessOrEqual(t, id, int64(9999))
	}
}

func TestGenerateIDSkipsTaken(t *testing.T) {
	taken := map[int64]bool{}
	for i := 0; i < 500; i++ {
		id, err := generateID(4, func(id int64) bool { return taken[id] })
		require.NoError(t, err)
		assert.False(t, taken[id])
		taken[id] = true
	}
}

func TestGenerateIDExhaustion(t *testing.T) {
	// Every candidate is taken: the generator must give up, not spin.
	_, err := generateID(4, func(int64) bool { return true })
	assert.ErrorIs(t, err, ErrIDSpaceExhausted)
}
