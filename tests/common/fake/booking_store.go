//go:build unit

package fake

import (
	"context"
	"sort"
	"sync"
	"time"

	"carshare-booking/internal/domain/booking"
	"carshare-booking/internal/infra"
	"carshare-booking/internal/infra/db"
	"carshare-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// BookingStore is an in-memory stand-in for the write repository, the read
// store and the transaction runner. Within serializes callers on one mutex,
// standing in for the per-car advisory lock; repository methods must only be
// called from inside Within.
type BookingStore struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*booking.Booking

	// LockErr, when set, is returned by every AcquireCarLock call.
	LockErr error
	// InsertErr, when set, is returned by every Insert call.
	InsertErr error
	// UpdateStatusErr, when set, is returned by every UpdateStatus call.
	UpdateStatusErr error
}

func NewBookingStore() *BookingStore {
	return &BookingStore{bookings: make(map[uuid.UUID]*booking.Booking)}
}

// Seed stores a booking directly, bypassing validation.
func (s *BookingStore) Seed(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID()] = b
}

// ListAcceptedByCarSnapshot takes the lock itself so assertions can run after
// concurrent Within calls have finished.
func (s *BookingStore) ListAcceptedByCarSnapshot(carID uuid.UUID) ([]*booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ListAcceptedByCar(context.Background(), nil, carID)
}

func (s *BookingStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

// --- commands.TxRunner ---

func (s *BookingStore) Within(_ context.Context, fn func(tx db.DBTX) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(fakeTx{})
}

// --- commands.BookingRepository ---

func (s *BookingStore) Insert(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	if s.InsertErr != nil {
		return s.InsertErr
	}
	// Mirror of the exclusion constraint backstop.
	if b.IsAccepted() {
		for _, other := range s.bookings {
			if other.CarID() == b.CarID() && other.IsAccepted() && other.Period().Overlaps(b.Period()) {
				return infra.WrapRepoErr("overlapping accepted booking", nil, infra.KindConflict)
			}
		}
	}
	s.bookings[b.ID()] = b
	return nil
}

func (s *BookingStore) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (s *BookingStore) ListAcceptedByCar(_ context.Context, _ db.DBTX, carID uuid.UUID) ([]*booking.Booking, error) {
	var result []*booking.Booking
	for _, b := range s.bookings {
		if b.CarID() == carID && b.IsAccepted() {
			result = append(result, b)
		}
	}
	sortBookings(result)
	return result, nil
}

func (s *BookingStore) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status booking.Status, now time.Time) error {
	if s.UpdateStatusErr != nil {
		return s.UpdateStatusErr
	}
	b, ok := s.bookings[id]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	if status == booking.StatusAccepted {
		b.Accept(now)
	} else {
		b.Reject(now)
	}
	return nil
}

func (s *BookingStore) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if _, ok := s.bookings[id]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	delete(s.bookings, id)
	return nil
}

func (s *BookingStore) AcquireCarLock(_ context.Context, _ db.DBTX, _ uuid.UUID) error {
	return s.LockErr
}

// --- queries.BookingReadStore ---

func (s *BookingStore) FindView(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return toView(b), nil
}

func (s *BookingStore) ListViewsByCar(ctx context.Context, carID uuid.UUID) ([]*queries.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []*booking.Booking
	for _, b := range s.bookings {
		if b.CarID() == carID {
			matched = append(matched, b)
		}
	}
	sortBookings(matched)
	return toViews(matched), nil
}

func (s *BookingStore) ListViewsByRequester(ctx context.Context, requesterID uuid.UUID) ([]*queries.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []*booking.Booking
	for _, b := range s.bookings {
		if b.IsRequestedBy(requesterID) {
			matched = append(matched, b)
		}
	}
	sortBookings(matched)
	return toViews(matched), nil
}

// ReadStore adapts the fake to the queries.BookingReadStore interface without
// colliding with the repository's FindByID signature.
func (s *BookingStore) ReadStore() *ReadStoreAdapter {
	return &ReadStoreAdapter{store: s}
}

type ReadStoreAdapter struct {
	store *BookingStore
}

func (a *ReadStoreAdapter) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return a.store.FindView(ctx, id)
}

func (a *ReadStoreAdapter) ListByCar(ctx context.Context, carID uuid.UUID) ([]*queries.BookingView, error) {
	return a.store.ListViewsByCar(ctx, carID)
}

func (a *ReadStoreAdapter) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*queries.BookingView, error) {
	return a.store.ListViewsByRequester(ctx, requesterID)
}

func sortBookings(bs []*booking.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		if !bs[i].Period().From().Equal(bs[j].Period().From()) {
			return bs[i].Period().From().Before(bs[j].Period().From())
		}
		return bs[i].ID().String() < bs[j].ID().String()
	})
}

func toViews(bs []*booking.Booking) []*queries.BookingView {
	views := make([]*queries.BookingView, len(bs))
	for i, b := range bs {
		views[i] = toView(b)
	}
	return views
}

func toView(b *booking.Booking) *queries.BookingView {
	var comments *string
	if !b.Comments().IsEmpty() {
		c := b.Comments().String()
		comments = &c
	}
	return &queries.BookingView{
		ID:          b.ID(),
		CarID:       b.CarID(),
		RequesterID: b.RequesterID(),
		FromDate:    b.Period().From(),
		ToDate:      b.Period().To(),
		Comments:    comments,
		Status:      b.Status().String(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
}

type fakeTx struct{}

func (fakeTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (fakeTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, nil
}

func (fakeTx) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}
