package queries

import (
	"time"

	"carshare-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID          uuid.UUID    `json:"id"`
	CarID       uuid.UUID    `json:"car_id"`
	RequesterID uuid.UUID    `json:"requester_id"`
	FromDate    booking.Date `json:"from_date"`
	ToDate      booking.Date `json:"to_date"`
	Comments    *string      `json:"comments,omitempty"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// DayCell classifies one slot of a month grid for a specific viewer. Leading
// alignment cells carry IsEmpty and nothing else.
type DayCell struct {
	Day             int          `json:"day"`
	Date            booking.Date `json:"date"`
	IsEmpty         bool         `json:"is_empty"`
	IsPast          bool         `json:"is_past"`
	BookedByViewer  bool         `json:"booked_by_viewer"`
	BookedByOther   bool         `json:"booked_by_other"`
	IsAvailable     bool         `json:"is_available"`
	IsRangeBoundary bool         `json:"is_range_boundary"`
}

type MonthView struct {
	CarID uuid.UUID `json:"car_id"`
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Cells []DayCell `json:"cells"`
}
