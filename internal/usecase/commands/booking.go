package commands

import (
	"context"
	"errors"
	"log/slog"

	"carshare-booking/internal/domain/booking"
	"carshare-booking/internal/infra"
	"carshare-booking/internal/infra/db"
	"carshare-booking/internal/pkg/clock"
	"carshare-booking/internal/pkg/errs"
	"carshare-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrInvalidRange             = errs.New("from date must not be after to date")
	ErrPastDate                 = errs.New("booking starts before today")
	ErrAlreadyBookedByRequester = errs.New("requester already holds these dates")
	ErrBookedByOther            = errs.New("dates are held by another shareholder")
	ErrBookingNotFound          = errs.New("booking not found")
	ErrForbidden                = errs.New("actor may not modify this booking")
	ErrCarBusy                  = errs.New("car is busy, retry the submission")

	// Error marker for categorization
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type SubmitBookingParams struct {
	CarID       uuid.UUID
	RequesterID uuid.UUID
	From        booking.Date
	To          booking.Date
	Comments    string
}

// BookingCommands is the booking lifecycle manager. All mutations for one car
// run serialized under the car lock inside a single transaction, so a
// successful accepted write can never violate the no-overlap invariant.
type BookingCommands interface {
	Submit(ctx context.Context, p SubmitBookingParams) (*queries.BookingView, error)
	Accept(ctx context.Context, id, actorID uuid.UUID) (*queries.BookingView, error)
	Reject(ctx context.Context, id, actorID uuid.UUID) (*queries.BookingView, error)
	Cancel(ctx context.Context, id, requesterID uuid.UUID) error
}

type bookingCommandsImpl struct {
	repo      BookingRepository
	validator *AvailabilityValidator
	tx        TxRunner
	clock     clock.Clock
}

func NewBookingCommands(
	repo BookingRepository,
	validator *AvailabilityValidator,
	tx TxRunner,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		repo:      repo,
		validator: validator,
		tx:        tx,
		clock:     clock,
	}
}

func (u *bookingCommandsImpl) Submit(ctx context.Context, p SubmitBookingParams) (*queries.BookingView, error) {
	period, err := booking.NewDateRange(p.From, p.To)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRange)
	}

	entity, err := booking.NewBooking(p.CarID, p.RequesterID, period, booking.NewComments(p.Comments), u.clock.Now())
	if err != nil {
		if errors.Is(err, booking.ErrPastDate) {
			return nil, errs.Mark(err, ErrPastDate)
		}
		return nil, err
	}

	err = u.tx.Within(ctx, func(tx db.DBTX) error {
		if lockErr := u.lockCar(ctx, tx, p.CarID); lockErr != nil {
			return lockErr
		}

		conflict, confErr := u.validator.FirstConflict(ctx, tx, p.CarID, period, nil)
		if confErr != nil {
			return errs.Mark(confErr, ErrDatabaseOperationFailed)
		}
		if conflict != nil {
			return u.classifyConflict(conflict, p.RequesterID)
		}

		if insErr := u.repo.Insert(ctx, tx, entity); insErr != nil {
			// Exclusion constraint is the storage-level backstop for the
			// same invariant; racing writers land here.
			if infra.IsKind(insErr, infra.KindConflict) {
				return ErrBookedByOther
			}
			return errs.Mark(insErr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking accepted",
		"booking_id", entity.ID(),
		"car_id", p.CarID,
		"requester_id", p.RequesterID,
		"period", period.String())

	return toBookingView(entity), nil
}

func (u *bookingCommandsImpl) Accept(ctx context.Context, id, actorID uuid.UUID) (*queries.BookingView, error) {
	var view *queries.BookingView

	err := u.tx.Within(ctx, func(tx db.DBTX) error {
		entity, err := u.findBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		if entity.IsAccepted() {
			view = toBookingView(entity)
			return nil
		}

		if lockErr := u.lockCar(ctx, tx, entity.CarID()); lockErr != nil {
			return lockErr
		}

		// Re-validate before flipping back to accepted so an administrative
		// transition cannot resurrect a conflict.
		bookingID := entity.ID()
		conflict, confErr := u.validator.FirstConflict(ctx, tx, entity.CarID(), entity.Period(), &bookingID)
		if confErr != nil {
			return errs.Mark(confErr, ErrDatabaseOperationFailed)
		}
		if conflict != nil {
			return u.classifyConflict(conflict, entity.RequesterID())
		}

		entity.Accept(u.clock.Now())
		if updErr := u.repo.UpdateStatus(ctx, tx, entity.ID(), entity.Status(), entity.UpdatedAt()); updErr != nil {
			// Same exclusion-constraint backstop as Submit's insert path.
			if infra.IsKind(updErr, infra.KindConflict) {
				return ErrBookedByOther
			}
			return errs.Mark(updErr, ErrDatabaseOperationFailed)
		}
		view = toBookingView(entity)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking accepted by admin", "booking_id", id, "actor_id", actorID)
	return view, nil
}

func (u *bookingCommandsImpl) Reject(ctx context.Context, id, actorID uuid.UUID) (*queries.BookingView, error) {
	var view *queries.BookingView

	err := u.tx.Within(ctx, func(tx db.DBTX) error {
		entity, err := u.findBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		if lockErr := u.lockCar(ctx, tx, entity.CarID()); lockErr != nil {
			return lockErr
		}

		entity.Reject(u.clock.Now())
		if updErr := u.repo.UpdateStatus(ctx, tx, entity.ID(), entity.Status(), entity.UpdatedAt()); updErr != nil {
			return errs.Mark(updErr, ErrDatabaseOperationFailed)
		}
		view = toBookingView(entity)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("booking rejected by admin", "booking_id", id, "actor_id", actorID)
	return view, nil
}

func (u *bookingCommandsImpl) Cancel(ctx context.Context, id, requesterID uuid.UUID) error {
	err := u.tx.Within(ctx, func(tx db.DBTX) error {
		entity, err := u.findBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		if !entity.IsRequestedBy(requesterID) {
			return ErrForbidden
		}

		if lockErr := u.lockCar(ctx, tx, entity.CarID()); lockErr != nil {
			return lockErr
		}

		if delErr := u.repo.Delete(ctx, tx, entity.ID()); delErr != nil {
			return errs.Mark(delErr, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("booking canceled", "booking_id", id, "requester_id", requesterID)
	return nil
}

func (u *bookingCommandsImpl) findBooking(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	entity, err := u.repo.FindByID(ctx, tx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return entity, nil
}

func (u *bookingCommandsImpl) lockCar(ctx context.Context, tx db.DBTX, carID uuid.UUID) error {
	if err := u.repo.AcquireCarLock(ctx, tx, carID); err != nil {
		if infra.IsKind(err, infra.KindLockTimeout) {
			return errs.Mark(err, ErrCarBusy)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (u *bookingCommandsImpl) classifyConflict(conflict *booking.Booking, requesterID uuid.UUID) error {
	if conflict.IsRequestedBy(requesterID) {
		return ErrAlreadyBookedByRequester
	}
	return ErrBookedByOther
}

func toBookingView(b *booking.Booking) *queries.BookingView {
	var comments *string
	if !b.Comments().IsEmpty() {
		s := b.Comments().String()
		comments = &s
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
