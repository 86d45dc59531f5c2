/*
Package calendar provides the date primitives and the US federal holiday
calculator used by the payroll calendar engine.

PURPOSE:
  Everything in this package works on civil dates (year, month, day). There
  is no time-of-day and no timezone: a Date is always anchored at midnight
  UTC so that two dates built from the same y/m/d compare equal with ==.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: a day-granularity calendar date
  - ClampToMidnight: drop the time-of-day from a time.Time
  - Business-day arithmetic (weekends only, holidays are NOT skipped)
  - Month arithmetic with end-of-month clamping

USAGE:
  d, err := calendar.ParseDate("2025-01-20")
  deadline := calendar.SubtractBusinessDays(d, 5) // 2025-01-13

SEE ALSO:
  - holidays.go: Federal holiday rules and HolidayCache
  - errors.go: ErrInvalidDateFormat
*/
package calendar

import (
	"time"
)

// ISOLayout is the only accepted textual date format (yyyy-MM-dd).
const ISOLayout = "2006-01-02"

// =============================================================================
// DATE - Day-granularity calendar date
// =============================================================================

// Date is a calendar date with no time-of-day component.
type Date struct {
	Time time.Time
}

// NewDate builds a date; out-of-range days normalize the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ClampToMidnight keeps only the year, month and day of t.
func ClampToMidnight(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return ClampToMidnight(time.Now())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool         { return d.Time.After(other.Time) }
func (d Date) Equal(other Date) bool         { return d.Time.Equal(other.Time) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return NewDate(d.Year(), d.Month(), d.Day()+n) }

// AddMonths shifts by n calendar months keeping the day-of-month, clamped to
// the last day of the target month (Jan 31 + 1 month = Feb 28/29).
func (d Date) AddMonths(n int) Date {
	first := NewDate(d.Year(), d.Month()+time.Month(n), 1)
	last := EndOfMonth(first.Year(), first.Month())
	if d.Day() > last.Day() {
		return last
	}
	return NewDate(first.Year(), first.Month(), d.Day())
}

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsZero() bool          { return d.Time.IsZero() }
func (d Date) String() string        { return d.Time.Format(ISOLayout) }
func (d Date) StartOfMonth() Date    { return StartOfMonth(d.Year(), d.Month()) }
func (d Date) EndOfMonth() Date      { return EndOfMonth(d.Year(), d.Month()) }

// IsWeekend reports whether d is a Saturday or Sunday.
func IsWeekend(d Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) IsWeekend() bool { return IsWeekend(d) }

// =============================================================================
// BUSINESS DAYS
// =============================================================================

// SubtractBusinessDays walks backwards from d one calendar day at a time and
// counts only Monday-Friday until n business days have been passed. The
// starting date itself is never counted. Federal holidays are not skipped.
func SubtractBusinessDays(d Date, n int) Date {
	current := d
	for remaining := n; remaining > 0; {
		current = current.AddDays(-1)
		if !IsWeekend(current) {
			remaining--
		}
	}
	return current
}

// =============================================================================
// TIME UTILITIES
// =============================================================================

// DaysBetween returns the number of calendar days from `from` to `to`.
func DaysBetween(from, to Date) int {
	return int(to.Time.Sub(from.Time).Hours() / 24)
}

func StartOfMonth(year int, month time.Month) Date { return NewDate(year, month, 1) }

func EndOfMonth(year int, month time.Month) Date {
	return NewDate(year, month+1, 0)
}
