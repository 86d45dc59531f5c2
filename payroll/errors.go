/*
errors.go - Input errors for the payroll engine

PURPOSE:
  Domain anomalies (end before begin, too many employees, ...) are NOT
  errors: they are reported as Findings on the Result. The errors in this
  file are for inputs the engine cannot interpret at all.

ERROR CATEGORIES:
  1. Malformed dates - calendar.ErrInvalidDateFormat
  2. Unknown enumerations - frequency, service model, early access
  3. Out-of-range scalars - negative employee count
  4. Configuration - invalid band tables
*/
package payroll

import (
	"errors"
	"fmt"

	"github.com/warp/paperwork-calendar/calendar"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	ErrUnknownFrequency     = errors.New("unknown payroll frequency")
	ErrUnknownServiceModel  = errors.New("unknown service model")
	ErrUnknownEarlyAccess   = errors.New("unknown early access option")
	ErrInvalidEmployeeCount = errors.New("invalid employee count")

	// ErrInvalidBandTable is returned when a band table has gaps, overlaps or
	// non-positive offsets.
	ErrInvalidBandTable = errors.New("invalid deadline band table")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// InputError identifies the input field that could not be interpreted.
type InputError struct {
	Field string
	Value any
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %v (%v)", e.Field, e.Err, e.Value)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// BandTableError describes why a band table was rejected.
type BandTableError struct {
	Model  ServiceModel
	Index  int
	Reason string
}

func (e *BandTableError) Error() string {
	return fmt.Sprintf("invalid deadline band table %s: band %d: %s", e.Model, e.Index, e.Reason)
}

func (e *BandTableError) Unwrap() error {
	return ErrInvalidBandTable
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, calendar.ErrInvalidDateFormat) ||
		errors.Is(err, ErrUnknownFrequency) ||
		errors.Is(err, ErrUnknownServiceModel) ||
		errors.Is(err, ErrUnknownEarlyAccess) ||
		errors.Is(err, ErrInvalidEmployeeCount)
}
