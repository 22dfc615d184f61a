package response

import (
	"carshare-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type DayCellResponse struct {
	Day             int    `json:"day"`
	Date            string `json:"date,omitempty"`
	IsEmpty         bool   `json:"isEmpty"`
	IsPast          bool   `json:"isPast"`
	BookedByViewer  bool   `json:"bookedByViewer"`
	BookedByOther   bool   `json:"bookedByOther"`
	IsAvailable     bool   `json:"isAvailable"`
	IsRangeBoundary bool   `json:"isRangeBoundary"`
}

type MonthViewResponse struct {
	CarID uuid.UUID         `json:"carId"`
	Year  int               `json:"year"`
	Month int               `json:"month"`
	Cells []DayCellResponse `json:"cells"`
}

func FromMonthView(view *queries.MonthView) *MonthViewResponse {
	cells := make([]DayCellResponse, len(view.Cells))
	for i, cell := range view.Cells {
		cells[i] = DayCellResponse{
			Day:             cell.Day,
			IsEmpty:         cell.IsEmpty,
			IsPast:          cell.IsPast,
			BookedByViewer:  cell.BookedByViewer,
			BookedByOther:   cell.BookedByOther,
			IsAvailable:     cell.IsAvailable,
			IsRangeBoundary: cell.IsRangeBoundary,
		}
		if !cell.IsEmpty {
			cells[i].Date = cell.Date.String()
		}
	}
	return &MonthViewResponse{
		CarID: view.CarID,
		Year:  view.Year,
		Month: view.Month,
		Cells: cells,
	}
}
