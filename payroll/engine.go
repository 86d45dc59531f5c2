package payroll

import (
	"errors"

	"github.com/warp/paperwork-calendar/calendar"
)

// =============================================================================
// OPTIONS
// =============================================================================

type options struct {
	bands    BandTables
	holidays calendar.HolidayCalendar
}

// Option configures Compute.
type Option func(*options)

// WithBandTables overrides the deadline band tables. Service models missing
// from bt fall back to the default table.
func WithBandTables(bt BandTables) Option {
	return func(o *options) { o.bands = bt }
}

// WithHolidayCalendar sets the calendar used for check date validation,
// typically a shared *calendar.HolidayCache.
func WithHolidayCalendar(cal calendar.HolidayCalendar) Option {
	return func(o *options) { o.holidays = cal }
}

func resolveOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	defaults := DefaultBandTables()
	if o.bands == nil {
		o.bands = defaults
	} else {
		merged := o.bands.Clone()
		for m, t := range defaults {
			if len(merged[m]) == 0 {
				merged[m] = t
			}
		}
		o.bands = merged
	}
	if o.holidays == nil {
		o.holidays = calendar.FederalCalendar{}
	}
	return o
}

// =============================================================================
// INPUT PARSING
// =============================================================================

// ParseInputs converts raw form values. Every problem is reported; the
// returned error joins one *InputError or *calendar.InvalidDateError per field.
func ParseInputs(raw RawInputs) (Inputs, error) {
	var (
		in   Inputs
		errs []error
		err  error
	)

	if in.Frequency, err = ParseFrequency(raw.Frequency); err != nil {
		errs = append(errs, err)
	}
	if in.PayBegin, err = calendar.ParseField("pay_begin", raw.PayBegin); err != nil {
		errs = append(errs, err)
	}
	if in.PayEnd, err = calendar.ParseField("pay_end", raw.PayEnd); err != nil {
		errs = append(errs, err)
	}
	if in.FirstCheck, err = calendar.ParseField("first_check", raw.FirstCheck); err != nil {
		errs = append(errs, err)
	}
	if in.BenefitsStart, err = calendar.ParseField("benefits_start", raw.BenefitsStart); err != nil {
		errs = append(errs, err)
	}
	if raw.EmployeeCount < 0 {
		errs = append(errs, &InputError{Field: "employee_count", Value: raw.EmployeeCount, Err: ErrInvalidEmployeeCount})
	}
	in.EmployeeCount = raw.EmployeeCount
	if in.ServiceModel, err = ParseServiceModel(raw.ServiceModel); err != nil {
		errs = append(errs, err)
	}
	if in.EarlyAccess, err = ParseEarlyAccess(raw.EarlyAccess); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return Inputs{}, errors.Join(errs...)
	}
	return in, nil
}

// =============================================================================
// COMPUTE
// =============================================================================

// Result is the full engine output for one input snapshot.
type Result struct {
	Inputs          Inputs
	Periods         []Period
	Labels          LabelMap
	Errors          []Finding
	Warnings        []Finding
	EarlyAccessDate *calendar.Date
	DeadlineSource  DeadlineSource
	Months          []calendar.Date
}

// Valid reports whether there are no blocking errors.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Deadline returns the paperwork deadline of the first period, if any.
func (r Result) Deadline() *calendar.Date {
	if len(r.Periods) == 0 {
		return nil
	}
	return r.Periods[0].Deadline
}

// Compute runs the whole engine on a parsed snapshot of the inputs.
func Compute(in Inputs, opts ...Option) Result {
	o := resolveOptions(opts)

	res := ResolveDeadline(in, o.bands)

	first := in.FirstPeriod()
	first.Deadline = res.Deadline
	periods := GeneratePeriods(first, in.Frequency)

	labels := BuildLabels(periods, res.EarlyAccessDate)

	return Result{
		Inputs:          in,
		Periods:         periods,
		Labels:          labels,
		Errors:          Validate(in, o.holidays, o.bands),
		Warnings:        Warnings(in.BenefitsStart),
		EarlyAccessDate: res.EarlyAccessDate,
		DeadlineSource:  res.Source,
		Months:          MonthWindow(in.PayBegin, labels),
	}
}

// ComputeRaw parses and computes in one step.
func ComputeRaw(raw RawInputs, opts ...Option) (Result, error) {
	in, err := ParseInputs(raw)
	if err != nil {
		return Result{}, err
	}
	return Compute(in, opts...), nil
}
