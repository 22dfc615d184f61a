//go:build unit

package booking_test

import (
	"testing"
	"time"

	"carshare-booking/internal/domain/booking"
	"carshare-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.True(t, actual.IsAccepted())
		assert.Equal(t, booking.StatusAccepted, actual.Status())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
		assert.Equal(t, "Weekend trip", actual.Comments().String())
	})

	t.Run("start date before today is rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithNow(time.Date(2024, time.July, 16, 9, 0, 0, 0, time.UTC))

		actual, err := b.BuildDomain()
		require.ErrorIs(t, err, booking.ErrPastDate)
		assert.Nil(t, actual)
	})

	t.Run("start date equal to today is allowed", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithNow(time.Date(2024, time.July, 15, 23, 59, 0, 0, time.UTC))

		actual, err := b.BuildDomain()
		require.NoError(t, err)
		assert.NotNil(t, actual)
	})

	t.Run("end date in the past does not matter when start is today", func(t *testing.T) {
		// Only the start is checked against today; the range itself already
		// guarantees to >= from.
		d := booking.NewDate(2024, time.July, 15)
		b := builder.NewBookingBuilder().AsSingleDay(d).WithNow(d.ToTime())

		actual, err := b.BuildDomain()
		require.NoError(t, err)
		assert.NotNil(t, actual)
	})

	t.Run("comments are trimmed", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().WithComments("  trip to the coast  ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "trip to the coast", actual.Comments().String())
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		first, err1 := b.BuildDomain()
		second, err2 := b.BuildDomain()
		require.NoError(t, err1)
		require.NoError(t, err2)

		assert.NotEqual(t, first.ID(), second.ID())
	})
}

func TestBookingTransitions(t *testing.T) {
	t.Run("reject flips status and bumps updatedAt", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		later := actual.CreatedAt().Add(time.Hour)
		actual.Reject(later)

		assert.False(t, actual.IsAccepted())
		assert.Equal(t, booking.StatusRejected, actual.Status())
		assert.Equal(t, later, actual.UpdatedAt())
		assert.NotEqual(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("accept restores a rejected booking", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		actual.Reject(actual.CreatedAt().Add(time.Hour))
		actual.Accept(actual.CreatedAt().Add(2 * time.Hour))

		assert.True(t, actual.IsAccepted())
	})
}

func TestReconstructBooking(t *testing.T) {
	t.Run("invalid status is rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.Status("pending"))

		actual, err := b.BuildReconstructed()
		require.ErrorIs(t, err, booking.ErrInvalidStatus)
		assert.Nil(t, actual)
	})

	t.Run("past periods can be reconstructed", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithNow(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))

		actual, err := b.BuildReconstructed()
		require.NoError(t, err)
		assert.NotNil(t, actual)
	})
}

func TestIsRequestedBy(t *testing.T) {
	requesterID := uuid.New()
	actual, err := builder.NewBookingBuilder().WithRequesterID(requesterID).BuildDomain()
	require.NoError(t, err)

	assert.True(t, actual.IsRequestedBy(requesterID))
	assert.False(t, actual.IsRequestedBy(uuid.New()))
}
