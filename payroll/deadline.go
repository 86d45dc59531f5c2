/*
deadline.go - Paperwork deadline and early access resolution

PRECEDENCE:
  1. Early access active      -> 12 business days before the early access date
  2. Tiered band offset found -> first check date minus the band offset,
                                 but never later than 8 business days before
                                 the pay period begins
  3. Otherwise                -> no deadline (custom timeline required)

EARLY ACCESS DATE:
  begin + option offset, then moved off weekends. "30 days" moves FORWARD to
  Monday; every other option moves BACK to Friday.

NOTE:
  Business-day subtraction skips weekends only. A deadline can therefore land
  on a federal holiday without being flagged.
*/
package payroll

import (
	"time"

	"github.com/warp/paperwork-calendar/calendar"
)

const (
	// EarlyAccessMinEmployees is the smallest headcount eligible for early access.
	EarlyAccessMinEmployees = 10

	// EarlyAccessLeadBusinessDays is the deadline lead before the early access date.
	EarlyAccessLeadBusinessDays = 12

	// MinLeadBusinessDays caps a tiered deadline at this many business days
	// before the first period begins.
	MinLeadBusinessDays = 8
)

// DeadlineSource records which rule produced the deadline.
type DeadlineSource string

const (
	DeadlineFromEarlyAccess DeadlineSource = "early_access"
	DeadlineFromBand        DeadlineSource = "band"
	DeadlineFromLeadTime    DeadlineSource = "lead_time"
	DeadlineNone            DeadlineSource = "none"
)

// =============================================================================
// EARLY ACCESS
// =============================================================================

// EarlyAccessActive reports whether early access applies.
func EarlyAccessActive(opt EarlyAccessOption, employees int) bool {
	return opt != EarlyAccessNone && opt != "" && employees >= EarlyAccessMinEmployees
}

// AdjustForWeekend moves a raw early access date off a weekend.
func (o EarlyAccessOption) AdjustForWeekend(raw calendar.Date) calendar.Date {
	wd := raw.Weekday()
	if o == EarlyAccessThirtyDays {
		switch wd {
		case time.Saturday:
			return raw.AddDays(2)
		case time.Sunday:
			return raw.AddDays(1)
		}
		return raw
	}
	switch wd {
	case time.Saturday:
		return raw.AddDays(-1)
	case time.Sunday:
		return raw.AddDays(-2)
	}
	return raw
}

// EarlyAccessDate returns the weekend-adjusted early access date, or false
// when early access is not active.
func EarlyAccessDate(begin calendar.Date, opt EarlyAccessOption, employees int) (calendar.Date, bool) {
	if !EarlyAccessActive(opt, employees) {
		return calendar.Date{}, false
	}
	return opt.AdjustForWeekend(begin.AddDays(opt.Offset())), true
}

// =============================================================================
// DEADLINE
// =============================================================================

// Resolution is the outcome of deadline resolution.
type Resolution struct {
	Deadline        *calendar.Date
	Source          DeadlineSource
	EarlyAccessDate *calendar.Date

	// BandOffset is the tiered business-day offset; HasBandOffset is false when
	// the employee count is outside every band.
	BandOffset    int
	HasBandOffset bool
}

// ResolveDeadline applies the deadline precedence to the parsed inputs.
func ResolveDeadline(in Inputs, bands BandTables) Resolution {
	var res Resolution
	res.BandOffset, res.HasBandOffset = bands.Offset(in.ServiceModel, in.EmployeeCount)

	if ea, ok := EarlyAccessDate(in.PayBegin, in.EarlyAccess, in.EmployeeCount); ok {
		deadline := calendar.SubtractBusinessDays(ea, EarlyAccessLeadBusinessDays)
		res.EarlyAccessDate = &ea
		res.Deadline = &deadline
		res.Source = DeadlineFromEarlyAccess
		return res
	}

	if !res.HasBandOffset {
		res.Source = DeadlineNone
		return res
	}

	deadline := calendar.SubtractBusinessDays(in.FirstCheck, res.BandOffset)
	res.Source = DeadlineFromBand
	if ceiling := calendar.SubtractBusinessDays(in.PayBegin, MinLeadBusinessDays); deadline.After(ceiling) {
		deadline = ceiling
		res.Source = DeadlineFromLeadTime
	}
	res.Deadline = &deadline
	return res
}

// =============================================================================
// BAND TABLE VALIDATION
// =============================================================================

// Validate checks that the table starts at zero, is contiguous and sorted,
// and has positive offsets.
func (t BandTable) Validate(model ServiceModel) error {
	if len(t) == 0 {
		return &BandTableError{Model: model, Index: -1, Reason: "no bands"}
	}
	for i, b := range t {
		switch {
		case b.MaxEmployees < b.MinEmployees:
			return &BandTableError{Model: model, Index: i, Reason: "max_employees below min_employees"}
		case b.BusinessDaysOffset <= 0:
			return &BandTableError{Model: model, Index: i, Reason: "business_days_offset must be positive"}
		case i == 0 && b.MinEmployees != 0:
			return &BandTableError{Model: model, Index: i, Reason: "first band must start at 0 employees"}
		case i > 0 && b.MinEmployees != t[i-1].MaxEmployees+1:
			return &BandTableError{Model: model, Index: i, Reason: "bands must be contiguous and non-overlapping"}
		}
	}
	return nil
}

// Validate checks every table and requires one per service model.
func (bt BandTables) Validate() error {
	for _, m := range ServiceModels {
		table, ok := bt[m]
		if !ok {
			return &BandTableError{Model: m, Index: -1, Reason: "missing table"}
		}
		if err := table.Validate(m); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy.
func (bt BandTables) Clone() BandTables {
	out := make(BandTables, len(bt))
	for m, t := range bt {
		out[m] = append(BandTable(nil), t...)
	}
	return out
}
