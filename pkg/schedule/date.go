package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat is returned when an input cannot be interpreted as a calendar date.
var ErrInvalidDateFormat = errors.New("invalid date format")

// Date is a calendar date with no time-of-day and no timezone.
// Equality and ordering are by calendar day, so values are comparable
// and usable as map keys.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate creates a Date from its components. Out-of-range components are
// normalized the way time.Date does it (e.g. February 30 rolls into March).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf extracts the calendar date of t as seen in t's own location.
// The time-of-day is discarded.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a string starting with "YYYY-MM-DD" into a Date.
// The numeric components are split out directly instead of going through a
// UTC-based timestamp parser, so the visible calendar day is preserved no
// matter what timezone the host or the string suffix carries.
func ParseDate(s string) (Date, error) {
	if len(s) < 10 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	head := s[:10]
	parts := strings.Split(head, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	if month < 1 || month > 12 || day < 1 || day > daysInMonth(year, time.Month(month)) {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns the date as midnight UTC, for arithmetic only.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Compare returns -1 if d is before other, 0 if equal, +1 if after.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// DaysBetween returns the number of whole days from a to b (negative if b is
// before a). Computed over UTC midnights, so it is exact across DST and
// month/year boundaries.
func DaysBetween(a, b Date) int {
	return int(b.Time().Sub(a.Time()).Hours() / 24)
}

// Weekday returns the day of the week d falls on.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// IsWeekend reports whether d falls on a Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// NearestWeekday remaps a weekend date to the closest business day:
// Saturday moves back to Friday, Sunday moves forward to Monday.
// Weekdays are returned unchanged.
func (d Date) NearestWeekday() Date {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDays(-1)
	case time.Sunday:
		return d.AddDays(1)
	default:
		return d
	}
}

// LastBusinessDayOfMonth returns the last weekday of the given month.
// Unlike NearestWeekday the adjustment always goes backward: a Sunday
// month-end must not roll into the next month.
func LastBusinessDayOfMonth(year int, month time.Month) Date {
	d := Date{Year: year, Month: month, Day: daysInMonth(year, month)}
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDays(-1)
	case time.Sunday:
		return d.AddDays(-2)
	default:
		return d
	}
}

// LastDayOfMonth returns the final calendar day of the given month.
func LastDayOfMonth(year int, month time.Month) Date {
	return Date{Year: year, Month: month, Day: daysInMonth(year, month)}
}

// addMonthsClamped advances d by n calendar months, clamping the day-of-month
// to the last day of the target month instead of rolling over (January 31
// plus one month is February 28/29, not March 2/3).
func (d Date) addMonthsClamped(n int) Date {
	idx := d.Year*12 + int(d.Month) - 1 + n
	year := idx / 12
	month := time.Month(idx%12 + 1)
	day := d.Day
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return Date{Year: year, Month: month, Day: day}
}

// monthsBetween returns the signed month-index distance between two dates,
// ignoring the day-of-month.
func monthsBetween(a, b Date) int {
	return (b.Year-a.Year)*12 + int(b.Month) - int(a.Month)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
