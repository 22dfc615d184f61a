//go:build unit

package booking_test

import (
	"encoding/json"
	"testing"
	"time"

	"carshare-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) booking.Date {
	return booking.NewDate(y, m, d)
}

func mustRange(t *testing.T, from, to booking.Date) booking.DateRange {
	t.Helper()
	r, err := booking.NewDateRange(from, to)
	require.NoError(t, err)
	return r
}

func TestParseDate(t *testing.T) {
	t.Run("valid ISO date", func(t *testing.T) {
		d, err := booking.ParseDate("2024-07-20")
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.July, 20), d)
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		for _, s := range []string{"20/07/2024", "2024-7-20", "2024-07-20T00:00:00Z", "July 20, 2024", ""} {
			_, err := booking.ParseDate(s)
			assert.Error(t, err, "input %q", s)
		}
	})
}

func TestDateComparisons(t *testing.T) {
	earlier := date(2024, time.July, 19)
	later := date(2024, time.July, 20)

	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.True(t, later.Equal(date(2024, time.July, 20)))
	assert.False(t, earlier.Equal(later))

	t.Run("year and month dominate day", func(t *testing.T) {
		assert.True(t, date(2023, time.December, 31).Before(date(2024, time.January, 1)))
		assert.True(t, date(2024, time.June, 30).Before(date(2024, time.July, 1)))
	})
}

func TestDateArithmetic(t *testing.T) {
	t.Run("next rolls over month end", func(t *testing.T) {
		assert.Equal(t, date(2024, time.August, 1), date(2024, time.July, 31).Next())
	})

	t.Run("prev rolls back across month start", func(t *testing.T) {
		assert.Equal(t, date(2024, time.June, 30), date(2024, time.July, 1).Prev())
	})

	t.Run("leap year February", func(t *testing.T) {
		assert.Equal(t, date(2024, time.February, 29), date(2024, time.February, 28).Next())
		assert.Equal(t, date(2023, time.March, 1), date(2023, time.February, 28).Next())
	})
}

func TestDateJSON(t *testing.T) {
	d := date(2024, time.July, 5)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-07-05"`, string(raw))

	var decoded booking.Date
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, d.Equal(decoded))

	assert.Error(t, json.Unmarshal([]byte(`20240705`), &decoded))
}

func TestNewDateRange(t *testing.T) {
	t.Run("from after to is invalid", func(t *testing.T) {
		_, err := booking.NewDateRange(date(2024, time.July, 20), date(2024, time.July, 18))
		require.ErrorIs(t, err, booking.ErrInvalidDateRange)
	})

	t.Run("single day range is valid", func(t *testing.T) {
		r := mustRange(t, date(2024, time.July, 20), date(2024, time.July, 20))
		assert.Equal(t, 1, r.Days())
	})
}

func TestDateRangeOverlaps(t *testing.T) {
	base := mustRange(t, date(2024, time.July, 20), date(2024, time.July, 20))

	cases := []struct {
		name     string
		from, to booking.Date
		overlaps bool
	}{
		{"range ending on base start", date(2024, time.July, 18), date(2024, time.July, 20), true},
		{"range starting on base end", date(2024, time.July, 20), date(2024, time.July, 22), true},
		{"range strictly before", date(2024, time.July, 15), date(2024, time.July, 19), false},
		{"range strictly after", date(2024, time.July, 21), date(2024, time.July, 25), false},
		{"identical range", date(2024, time.July, 20), date(2024, time.July, 20), true},
		{"enclosing range", date(2024, time.July, 10), date(2024, time.July, 30), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			other := mustRange(t, tc.from, tc.to)
			assert.Equal(t, tc.overlaps, base.Overlaps(other))
			// The relation is symmetric.
			assert.Equal(t, tc.overlaps, other.Overlaps(base))
		})
	}
}

func TestDateRangeContains(t *testing.T) {
	r := mustRange(t, date(2024, time.July, 15), date(2024, time.July, 17))

	assert.True(t, r.Contains(date(2024, time.July, 15)))
	assert.True(t, r.Contains(date(2024, time.July, 16)))
	assert.True(t, r.Contains(date(2024, time.July, 17)))
	assert.False(t, r.Contains(date(2024, time.July, 14)))
	assert.False(t, r.Contains(date(2024, time.July, 18)))
}

func TestDateRangeDays(t *testing.T) {
	assert.Equal(t, 3, mustRange(t, date(2024, time.July, 15), date(2024, time.July, 17)).Days())
	assert.Equal(t, 31, mustRange(t, date(2024, time.July, 1), date(2024, time.July, 31)).Days())
	// Crosses a DST-style boundary without drifting because dates have no clock.
	assert.Equal(t, 2, mustRange(t, date(2024, time.March, 30), date(2024, time.March, 31)).Days())
}
