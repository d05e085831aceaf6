package id

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stamp(t *testing.T, s string) time.Time {
	t.Helper()
	u, err := ulid.ParseStrict(s)
	require.NoError(t, err)
	return ulid.Time(u.Time()).UTC()
}

// Not parallel: NewAt with an older time reseeds the monotonic reader.
func TestNewIsValidAndIncreasing(t *testing.T) {
	prev := New()
	_, err := ulid.ParseStrict(prev)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		next := New()
		assert.True(t, next > prev, "%s <= %s", next, prev)
		prev = next
	}
}

func TestNewAtEmbedsTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	s := NewAt(at)

	assert.True(t, stamp(t, s).Equal(at))
}

func TestNewAtBeforeEpoch(t *testing.T) {
	t.Parallel()

	s := NewAt(time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, int64(0), stamp(t, s).Unix())
}
