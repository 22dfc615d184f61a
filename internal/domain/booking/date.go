package booking

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidDateRange = errors.New("from date must not be after to date")

const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component. Comparisons are
// independent of timezone and locale.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{year: year, month: month, day: day}
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

func (d Date) String() string {
	return d.ToTime().Format(dateLayout)
}

// ToTime returns midnight UTC of the date. Used only at the storage boundary.
func (d Date) ToTime() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return errors.New("date must be a JSON string")
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Compare(o Date) int {
	switch {
	case d.year != o.year:
		return cmpInt(d.year, o.year)
	case d.month != o.month:
		return cmpInt(int(d.month), int(o.month))
	default:
		return cmpInt(d.day, o.day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d.Compare(o) == 0 }

func (d Date) AddDays(n int) Date {
	return DateOf(d.ToTime().AddDate(0, 0, n))
}

func (d Date) Next() Date { return d.AddDays(1) }
func (d Date) Prev() Date { return d.AddDays(-1) }

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// DateRange is an inclusive range of calendar dates. A single-day booking has
// from == to.
type DateRange struct {
	from Date
	to   Date
}

func NewDateRange(from, to Date) (DateRange, error) {
	if from.After(to) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{from: from, to: to}, nil
}

func (r DateRange) From() Date { return r.from }
func (r DateRange) To() Date   { return r.to }

// Overlaps reports whether the two ranges share at least one calendar date.
// Both endpoints are inclusive, so a range ending the day another begins is
// an overlap: there is no same-day handover.
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.from.After(o.to) && !o.from.After(r.to)
}

func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.from) && !d.After(r.to)
}

// Days returns the number of calendar dates covered, at least 1.
func (r DateRange) Days() int {
	return int(r.to.ToTime().Sub(r.from.ToTime())/(24*time.Hour)) + 1
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s,%s]", r.from, r.to)
}
