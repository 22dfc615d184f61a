package queries

import (
	"context"

	"carshare-booking/internal/infra"
	"carshare-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBookingNotFound = errs.New("booking not found")

// BookingReadStore is the narrow persistence contract the query side needs.
type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByCar(ctx context.Context, carID uuid.UUID) ([]*BookingView, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByCar(ctx context.Context, carID uuid.UUID) ([]*BookingView, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByCar(ctx context.Context, carID uuid.UUID) ([]*BookingView, error) {
	views, err := q.store.ListByCar(ctx, carID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list car bookings")
	}
	return views, nil
}

func (q *bookingQueriesImpl) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*BookingView, error) {
	views, err := q.store.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list requester bookings")
	}
	return views, nil
}
