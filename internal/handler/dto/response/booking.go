package response

import (
	"time"

	"carshare-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID          uuid.UUID `json:"id"`
	CarID       uuid.UUID `json:"carId"`
	RequesterID uuid.UUID `json:"requesterId"`
	FromDate    string    `json:"fromDate"`
	ToDate      string    `json:"toDate"`
	Comments    *string   `json:"comments,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:          view.ID,
		CarID:       view.CarID,
		RequesterID: view.RequesterID,
		FromDate:    view.FromDate.String(),
		ToDate:      view.ToDate.String(),
		Comments:    view.Comments,
		Status:      view.Status,
		CreatedAt:   view.CreatedAt,
		UpdatedAt:   view.UpdatedAt,
	}
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	result := make([]*BookingResponse, len(views))
	for i, view := range views {
		result[i] = FromBookingView(view)
	}
	return result
}
