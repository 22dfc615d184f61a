package commands

import (
	"context"

	"carshare-booking/internal/domain/booking"
	"carshare-booking/internal/infra/db"
	"carshare-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// AvailabilityValidator answers whether a candidate range is free of
// conflicting accepted bookings for a car. Rejected bookings never
// participate. O(n) over the car's accepted bookings, which stays small; an
// interval index could replace the scan behind the same contract.
type AvailabilityValidator struct {
	repo BookingRepository
}

func NewAvailabilityValidator(repo BookingRepository) *AvailabilityValidator {
	return &AvailabilityValidator{repo: repo}
}

// FirstConflict returns the first accepted booking overlapping the candidate
// range, or nil if the range is free. excludeID skips one booking, needed
// when re-validating an existing booking against its siblings. Returning the
// colliding booking lets callers distinguish the requester's own hold from
// another shareholder's.
func (v *AvailabilityValidator) FirstConflict(
	ctx context.Context,
	tx db.DBTX,
	carID uuid.UUID,
	candidate booking.DateRange,
	excludeID *uuid.UUID,
) (*booking.Booking, error) {
	accepted, err := v.repo.ListAcceptedByCar(ctx, tx, carID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load accepted bookings")
	}

	for _, b := range accepted {
		if excludeID != nil && b.ID() == *excludeID {
			continue
		}
		if b.Period().Overlaps(candidate) {
			return b, nil
		}
	}
	return nil, nil
}

func (v *AvailabilityValidator) IsAvailable(
	ctx context.Context,
	tx db.DBTX,
	carID uuid.UUID,
	candidate booking.DateRange,
	excludeID *uuid.UUID,
) (bool, error) {
	conflict, err := v.FirstConflict(ctx, tx, carID, candidate, excludeID)
	if err != nil {
		return false, err
	}
	return conflict == nil, nil
}
