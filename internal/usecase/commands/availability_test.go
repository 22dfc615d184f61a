//go:build unit

package commands_test

import (
	"context"
	"testing"

	"carshare-booking/internal/usecase/commands"
	"carshare-booking/tests/common/builder"
	"carshare-booking/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstConflict(t *testing.T) {
	carID := uuid.New()

	t.Run("returns the colliding booking", func(t *testing.T) {
		store := fake.NewBookingStore()
		validator := commands.NewAvailabilityValidator(store)
		existing := seed(t, store, builder.NewBookingBuilder().WithCarID(carID).WithPeriod(day(15), day(17)))

		candidate, err := builder.NewBookingBuilder().WithPeriod(day(16), day(19)).BuildRange()
		require.NoError(t, err)

		conflict, err := validator.FirstConflict(context.Background(), nil, carID, candidate, nil)
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, existing.ID(), conflict.ID())
	})

	t.Run("nil when the range is free", func(t *testing.T) {
		store := fake.NewBookingStore()
		validator := commands.NewAvailabilityValidator(store)
		seed(t, store, builder.NewBookingBuilder().WithCarID(carID).WithPeriod(day(15), day(17)))

		candidate, err := builder.NewBookingBuilder().WithPeriod(day(18), day(20)).BuildRange()
		require.NoError(t, err)

		conflict, err := validator.FirstConflict(context.Background(), nil, carID, candidate, nil)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("excludeID skips the booking being re-validated", func(t *testing.T) {
		store := fake.NewBookingStore()
		validator := commands.NewAvailabilityValidator(store)
		existing := seed(t, store, builder.NewBookingBuilder().WithCarID(carID).WithPeriod(day(15), day(17)))

		id := existing.ID()
		conflict, err := validator.FirstConflict(context.Background(), nil, carID, existing.Period(), &id)
		require.NoError(t, err)
		assert.Nil(t, conflict)

		available, err := validator.IsAvailable(context.Background(), nil, carID, existing.Period(), nil)
		require.NoError(t, err)
		assert.False(t, available)

		// No intervening writes, so a repeat answers the same.
		again, err := validator.IsAvailable(context.Background(), nil, carID, existing.Period(), nil)
		require.NoError(t, err)
		assert.Equal(t, available, again)
	})
}
