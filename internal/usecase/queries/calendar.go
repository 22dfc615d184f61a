package queries

import (
	"context"
	"time"

	"carshare-booking/internal/domain/booking"
	"carshare-booking/internal/pkg/clock"
	"carshare-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidMonth = errs.New("month must be between 1 and 12")

// CalendarQueries derives the month grid a calendar UI renders. The view is
// recomputed from the current booking set on every call; nothing is cached.
type CalendarQueries interface {
	MonthView(ctx context.Context, carID, viewerID uuid.UUID, year int, month time.Month) (*MonthView, error)
}

type calendarQueriesImpl struct {
	store BookingReadStore
	clock clock.Clock
}

func NewCalendarQueries(store BookingReadStore, clock clock.Clock) CalendarQueries {
	return &calendarQueriesImpl{store: store, clock: clock}
}

func (q *calendarQueriesImpl) MonthView(ctx context.Context, carID, viewerID uuid.UUID, year int, month time.Month) (*MonthView, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}

	views, err := q.store.ListByCar(ctx, carID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list car bookings")
	}

	today := booking.DateOf(q.clock.Now())
	return &MonthView{
		CarID: carID,
		Year:  year,
		Month: int(month),
		Cells: BuildMonthGrid(views, viewerID, year, month, today),
	}, nil
}

type acceptedBlock struct {
	period      booking.DateRange
	requesterID uuid.UUID
}

// BuildMonthGrid classifies every day of the month from the viewer's
// perspective, preceded by blank cells aligning day 1 to its weekday
// (Sunday-first grid). Only accepted bookings block dates.
func BuildMonthGrid(views []*BookingView, viewerID uuid.UUID, year int, month time.Month, today booking.Date) []DayCell {
	blocks := acceptedBlocks(views)

	firstOfMonth := booking.NewDate(year, month, 1)
	leading := int(firstOfMonth.ToTime().Weekday())
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	cells := make([]DayCell, 0, leading+daysInMonth)
	for i := 0; i < leading; i++ {
		cells = append(cells, DayCell{IsEmpty: true})
	}

	for day := 1; day <= daysInMonth; day++ {
		date := booking.NewDate(year, month, day)
		cell := DayCell{
			Day:    day,
			Date:   date,
			IsPast: date.Before(today),
		}

		if block := coveringBlock(blocks, date); block != nil {
			if block.requesterID == viewerID {
				cell.BookedByViewer = true
			} else {
				cell.BookedByOther = true
			}
			// Boundary if the neighbouring day falls outside the same block.
			cell.IsRangeBoundary = !block.period.Contains(date.Prev()) || !block.period.Contains(date.Next())
		}

		cell.IsAvailable = !cell.IsPast && !cell.BookedByViewer && !cell.BookedByOther
		cells = append(cells, cell)
	}

	return cells
}

func acceptedBlocks(views []*BookingView) []acceptedBlock {
	var blocks []acceptedBlock
	for _, v := range views {
		if v.Status != booking.StatusAccepted.String() {
			continue
		}
		period, err := booking.NewDateRange(v.FromDate, v.ToDate)
		if err != nil {
			// From > To cannot be persisted; skip rather than poison the grid.
			continue
		}
		blocks = append(blocks, acceptedBlock{period: period, requesterID: v.RequesterID})
	}
	return blocks
}

func coveringBlock(blocks []acceptedBlock, date booking.Date) *acceptedBlock {
	for i := range blocks {
		if blocks[i].period.Contains(date) {
			return &blocks[i]
		}
	}
	return nil
}
