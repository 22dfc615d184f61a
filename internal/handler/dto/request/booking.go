package request

import (
	"strings"

	"carshare-booking/internal/domain/booking"
	"carshare-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	CarID    uuid.UUID `json:"car_id" binding:"required"`
	FromDate string    `json:"from_date" binding:"required"`
	ToDate   string    `json:"to_date" binding:"required"`
	Comments *string   `json:"comments,omitempty"`
}

// ToParams parses the date strings; range ordering and past-date rules stay
// with the lifecycle manager.
func (r CreateBookingRequest) ToParams(requesterID uuid.UUID) (commands.SubmitBookingParams, error) {
	from, err := booking.ParseDate(r.FromDate)
	if err != nil {
		return commands.SubmitBookingParams{}, err
	}
	to, err := booking.ParseDate(r.ToDate)
	if err != nil {
		return commands.SubmitBookingParams{}, err
	}

	comments := ""
	if r.Comments != nil {
		comments = strings.TrimSpace(*r.Comments)
	}

	return commands.SubmitBookingParams{
		CarID:       r.CarID,
		RequesterID: requesterID,
		From:        from,
		To:          to,
		Comments:    comments,
	}, nil
}
