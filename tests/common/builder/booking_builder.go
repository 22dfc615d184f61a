//go:build unit

package builder

import (
	"time"

	dombooking "carshare-booking/internal/domain/booking"
	reqdto "carshare-booking/internal/handler/dto/request"
	"carshare-booking/internal/usecase/commands"
	"carshare-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	CarID       uuid.UUID
	RequesterID uuid.UUID
	From        dombooking.Date
	To          dombooking.Date
	Comments    string
	Status      dombooking.Status
	Now         time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		CarID:       uuid.New(),
		RequesterID: uuid.New(),
		From:        dombooking.NewDate(2024, time.July, 15),
		To:          dombooking.NewDate(2024, time.July, 17),
		Comments:    "Weekend trip",
		Status:      dombooking.StatusAccepted,
		Now:         time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildRange() (dombooking.DateRange, error) {
	return dombooking.NewDateRange(b.From, b.To)
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	period, err := dombooking.NewDateRange(b.From, b.To)
	if err != nil {
		return nil, err
	}
	return dombooking.NewBooking(b.CarID, b.RequesterID, period, dombooking.NewComments(b.Comments), b.Now)
}

// BuildReconstructed bypasses the past-date rule so tests can seed history.
func (b *BookingBuilder) BuildReconstructed() (*dombooking.Booking, error) {
	period, err := dombooking.NewDateRange(b.From, b.To)
	if err != nil {
		return nil, err
	}
	return dombooking.ReconstructBooking(
		uuid.New(), b.CarID, b.RequesterID,
		period, dombooking.NewComments(b.Comments), b.Status,
		b.Now, b.Now,
	)
}

func (b *BookingBuilder) BuildSubmitParams() commands.SubmitBookingParams {
	return commands.SubmitBookingParams{
		CarID:       b.CarID,
		RequesterID: b.RequesterID,
		From:        b.From,
		To:          b.To,
		Comments:    b.Comments,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	comments := b.Comments
	return reqdto.CreateBookingRequest{
		CarID:    b.CarID,
		FromDate: b.From.String(),
		ToDate:   b.To.String(),
		Comments: &comments,
	}
}

func (b *BookingBuilder) BuildViewQuery() *queries.BookingView {
	var comments *string
	if b.Comments != "" {
		c := b.Comments
		comments = &c
	}
	return &queries.BookingView{
		ID:          uuid.New(),
		CarID:       b.CarID,
		RequesterID: b.RequesterID,
		FromDate:    b.From,
		ToDate:      b.To,
		Comments:    comments,
		Status:      b.Status.String(),
		CreatedAt:   b.Now,
		UpdatedAt:   b.Now,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithCarID(carID uuid.UUID) *BookingBuilder {
	b.CarID = carID
	return b
}

func (b *BookingBuilder) WithRequesterID(requesterID uuid.UUID) *BookingBuilder {
	b.RequesterID = requesterID
	return b
}

func (b *BookingBuilder) WithPeriod(from, to dombooking.Date) *BookingBuilder {
	b.From = from
	b.To = to
	return b
}

func (b *BookingBuilder) WithComments(comments string) *BookingBuilder {
	b.Comments = comments
	return b
}

func (b *BookingBuilder) WithStatus(status dombooking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithNow(now time.Time) *BookingBuilder {
	b.Now = now
	return b
}

func (b *BookingBuilder) AsRejected() *BookingBuilder {
	b.Status = dombooking.StatusRejected
	return b
}

func (b *BookingBuilder) AsSingleDay(d dombooking.Date) *BookingBuilder {
	b.From = d
	b.To = d
	return b
}
