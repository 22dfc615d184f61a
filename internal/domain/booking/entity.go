package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPastDate      = errors.New("booking cannot start in the past")
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Booking is a hold on one car for an inclusive range of calendar dates.
// Car, requester and period are fixed at creation; only the status and audit
// timestamps change afterwards.
type Booking struct {
	id          uuid.UUID
	carID       uuid.UUID
	requesterID uuid.UUID
	period      DateRange
	comments    Comments
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

// NewBooking creates an accepted booking. The availability check against
// other holds on the car is the caller's responsibility; this only enforces
// the rules that need no storage access.
func NewBooking(
	carID, requesterID uuid.UUID,
	period DateRange,
	comments Comments,
	now time.Time,
) (*Booking, error) {
	if period.From().Before(DateOf(now)) {
		return nil, ErrPastDate
	}

	return &Booking{
		id:          uuid.New(),
		carID:       carID,
		requesterID: requesterID,
		period:      period,
		comments:    comments,
		status:      StatusAccepted,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructBooking(
	id, carID, requesterID uuid.UUID,
	period DateRange,
	comments Comments,
	status Status,
	createdAt, updatedAt time.Time,
) (*Booking, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Booking{
		id:          id,
		carID:       carID,
		requesterID: requesterID,
		period:      period,
		comments:    comments,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (b *Booking) Accept(now time.Time) {
	b.status = StatusAccepted
	b.updatedAt = now
}

func (b *Booking) Reject(now time.Time) {
	b.status = StatusRejected
	b.updatedAt = now
}

func (b *Booking) IsAccepted() bool {
	return b.status == StatusAccepted
}

func (b *Booking) IsRequestedBy(requesterID uuid.UUID) bool {
	return b.requesterID == requesterID
}

func (b *Booking) ID() uuid.UUID          { return b.id }
func (b *Booking) CarID() uuid.UUID       { return b.carID }
func (b *Booking) RequesterID() uuid.UUID { return b.requesterID }
func (b *Booking) Period() DateRange      { return b.period }
func (b *Booking) Comments() Comments     { return b.comments }
func (b *Booking) Status() Status         { return b.status }
func (b *Booking) CreatedAt() time.Time   { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time   { return b.updatedAt }

// Comments is optional free text attached to a booking. It has no effect on
// allocation.
type Comments struct {
	value string
}

func NewComments(value string) Comments {
	return Comments{value: strings.TrimSpace(value)}
}

func (c Comments) String() string {
	return c.value
}

func (c Comments) IsEmpty() bool {
	return c.value == ""
}
