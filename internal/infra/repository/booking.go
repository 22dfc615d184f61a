package repository

import (
	"context"
	"fmt"
	"time"

	"carshare-booking/internal/domain/booking"
	"carshare-booking/internal/infra"
	"carshare-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingRepository is the write side of the booking store. Every method
// takes a DBTX so the lifecycle manager can keep validate-then-insert inside
// one transaction.
type BookingRepository struct {
	lockTimeout time.Duration
}

func NewBookingRepository(lockTimeout time.Duration) *BookingRepository {
	return &BookingRepository{lockTimeout: lockTimeout}
}

const insertBookingSQL = `
INSERT INTO bookings (id, car_id, requester_id, from_date, to_date, comments, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

func (r *BookingRepository) Insert(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	_, err := tx.Exec(ctx, insertBookingSQL,
		b.ID(),
		b.CarID(),
		b.RequesterID(),
		dateToPg(b.Period().From()),
		dateToPg(b.Period().To()),
		commentsToPg(b.Comments()),
		b.Status().String(),
		b.CreatedAt(),
		b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}
	return nil
}

const findBookingByIDSQL = `
SELECT id, car_id, requester_id, from_date, to_date, comments, status, created_at, updated_at
FROM bookings
WHERE id = $1
`

func (r *BookingRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	row := tx.QueryRow(ctx, findBookingByIDSQL, id)
	b, err := scanBooking(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by id", err)
	}
	return b, nil
}

const listAcceptedByCarSQL = `
SELECT id, car_id, requester_id, from_date, to_date, comments, status, created_at, updated_at
FROM bookings
WHERE car_id = $1 AND status = 'accepted'
ORDER BY from_date, id
`

// ListAcceptedByCar returns the accepted bookings the availability check runs
// against. Callers that mutate must hold the car lock first.
func (r *BookingRepository) ListAcceptedByCar(ctx context.Context, tx db.DBTX, carID uuid.UUID) ([]*booking.Booking, error) {
	rows, err := tx.Query(ctx, listAcceptedByCarSQL, carID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list accepted bookings", err)
	}
	defer rows.Close()

	var result []*booking.Booking
	for rows.Next() {
		b, scanErr := scanBooking(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", scanErr)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return result, nil
}

const updateBookingStatusSQL = `
UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1
`

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status, now time.Time) error {
	tag, err := tx.Exec(ctx, updateBookingStatusSQL, id, status.String(), now)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

const deleteBookingSQL = `
DELETE FROM bookings WHERE id = $1
`

func (r *BookingRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteBookingSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// AcquireCarLock serializes all booking mutations for one car. The advisory
// lock is transaction-scoped and released on commit/rollback. Lock waits are
// bounded by lock_timeout; exhaustion surfaces as KindLockTimeout so callers
// can return a retryable error instead of blocking.
func (r *BookingRepository) AcquireCarLock(ctx context.Context, tx db.DBTX, carID uuid.UUID) error {
	timeoutMs := r.lockTimeout.Milliseconds()
	if timeoutMs <= 0 {
		timeoutMs = 3000
	}
	// SET does not accept bind parameters; the value is an int64 we control.
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", timeoutMs)); err != nil {
		return infra.WrapRepoErr("failed to set lock timeout", err)
	}
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))", carID); err != nil {
		return infra.WrapRepoErr("failed to acquire car lock", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*booking.Booking, error) {
	var (
		id          uuid.UUID
		carID       uuid.UUID
		requesterID uuid.UUID
		fromDate    pgtype.Date
		toDate      pgtype.Date
		comments    pgtype.Text
		status      string
		createdAt   time.Time
		updatedAt   time.Time
	)
	if err := row.Scan(&id, &carID, &requesterID, &fromDate, &toDate, &comments, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	period, err := booking.NewDateRange(dateFromPg(fromDate), dateFromPg(toDate))
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		id,
		carID,
		requesterID,
		period,
		booking.NewComments(comments.String),
		booking.Status(status),
		createdAt,
		updatedAt,
	)
}

func dateToPg(d booking.Date) pgtype.Date {
	return pgtype.Date{Time: d.ToTime(), Valid: true}
}

func dateFromPg(d pgtype.Date) booking.Date {
	return booking.DateOf(d.Time.UTC())
}

func commentsToPg(c booking.Comments) pgtype.Text {
	if c.IsEmpty() {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: c.String(), Valid: true}
}
