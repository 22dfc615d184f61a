package commands

import (
	"context"
	"time"

	"carshare-booking/internal/domain/booking"
	"carshare-booking/internal/infra/db"

	"github.com/google/uuid"
)

// BookingRepository is the write side of the booking store. Methods take a
// DBTX so validate-then-write sequences stay inside one transaction.
type BookingRepository interface {
	Insert(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	ListAcceptedByCar(ctx context.Context, tx db.DBTX, carID uuid.UUID) ([]*booking.Booking, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status, now time.Time) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	// AcquireCarLock serializes mutations per car for the rest of the
	// transaction. Bounded wait; lock-timeout errors carry KindLockTimeout.
	AcquireCarLock(ctx context.Context, tx db.DBTX, carID uuid.UUID) error
}

// TxRunner hides the transaction mechanics (and their retry policy) from the
// lifecycle manager so usecases can run against an in-memory store in tests.
type TxRunner interface {
	Within(ctx context.Context, fn func(tx db.DBTX) error) error
}
