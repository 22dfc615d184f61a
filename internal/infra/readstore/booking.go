package readstore

import (
	"context"
	"time"

	"carshare-booking/internal/domain/booking"
	"carshare-booking/internal/infra"
	"carshare-booking/internal/infra/db"
	"carshare-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingReadStore serves the query side. Reads run unsynchronized against
// the latest committed state; the authoritative conflict check happens at
// submission time under the car lock.
type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(pool db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: pool}
}

const bookingViewColumns = `
SELECT id, car_id, requester_id, from_date, to_date, comments, status, created_at, updated_at
FROM bookings
`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, bookingViewColumns+"WHERE id = $1", id)
	view, err := scanBookingView(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by id", err)
	}
	return view, nil
}

// ListByCar returns every booking for the car regardless of status, ordered
// by start date so calendar rendering is deterministic.
func (r *BookingReadStore) ListByCar(ctx context.Context, carID uuid.UUID) ([]*queries.BookingView, error) {
	return r.list(ctx, bookingViewColumns+"WHERE car_id = $1 ORDER BY from_date, id", carID)
}

func (r *BookingReadStore) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*queries.BookingView, error) {
	return r.list(ctx, bookingViewColumns+"WHERE requester_id = $1 ORDER BY from_date, id", requesterID)
}

func (r *BookingReadStore) list(ctx context.Context, sql string, arg any) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var result []*queries.BookingView
	for rows.Next() {
		view, scanErr := scanBookingView(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", scanErr)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingView(row rowScanner) (*queries.BookingView, error) {
	var (
		view      queries.BookingView
		fromDate  pgtype.Date
		toDate    pgtype.Date
		comments  pgtype.Text
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&view.ID, &view.CarID, &view.RequesterID, &fromDate, &toDate, &comments, &view.Status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	view.FromDate = booking.DateOf(fromDate.Time.UTC())
	view.ToDate = booking.DateOf(toDate.Time.UTC())
	if comments.Valid {
		view.Comments = &comments.String
	}
	view.CreatedAt = createdAt
	view.UpdatedAt = updatedAt
	return &view, nil
}
