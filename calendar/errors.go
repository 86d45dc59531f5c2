/*
errors.go - Error types for date parsing

PURPOSE:
  Malformed date input is the one true failure class of the engine. It must
  be distinguishable from domain findings (which are data, not errors), so it
  is exposed as a sentinel usable with errors.Is.

USAGE:
  d, err := calendar.ParseField("pay_begin", raw)
  if errors.Is(err, calendar.ErrInvalidDateFormat) {
      // reject the input
  }
*/
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateFormat is returned when a date string is not a valid yyyy-MM-dd date.
var ErrInvalidDateFormat = errors.New("invalid date format")

// InvalidDateError carries the offending field and raw value.
type InvalidDateError struct {
	Field string
	Value string
	Cause error
}

func (e *InvalidDateError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid date format: %q (use YYYY-MM-DD)", e.Value)
	}
	return fmt.Sprintf("invalid date format for %s: %q (use YYYY-MM-DD)", e.Field, e.Value)
}

func (e *InvalidDateError) Unwrap() error {
	return ErrInvalidDateFormat
}

// ParseDate parses a strict yyyy-MM-dd string.
func ParseDate(s string) (Date, error) {
	return ParseField("", s)
}

// ParseField is ParseDate with the input field name recorded in the error.
func ParseField(field, s string) (Date, error) {
	if len(s) != len(ISOLayout) {
		return Date{}, &InvalidDateError{Field: field, Value: s}
	}
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return Date{}, &InvalidDateError{Field: field, Value: s, Cause: err}
	}
	return ClampToMidnight(t), nil
}
