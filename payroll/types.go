/*
Package payroll computes payroll-cycle paperwork calendars.

PURPOSE:
  Given a payroll frequency and a handful of anchor dates, derives seven pay
  periods, check dates, the paperwork submission deadline, the optional early
  access date, a date->labels projection and the validation findings.

  Everything here is a pure function of its inputs. The caller decides when
  to recompute (on every input change, on submit, ...); there is no state
  carried between calls.

KEY CONCEPTS IN THIS FILE (types.go):
  - Frequency, ServiceModel, EarlyAccessOption: input enumerations
  - Period: one pay period (only the first carries a deadline)
  - DeadlineBand / BandTable: employee-count tiers -> business-day offsets
  - RawInputs / Inputs: the seven scalar inputs, unparsed and parsed

SEE ALSO:
  - rollover.go: Period transition and generation
  - deadline.go: Tiered deadline and early access resolution
  - validation.go: Blocking errors and warnings
  - labels.go: Calendar projection
  - engine.go: Compute entry point
*/
package payroll

import (
	"strings"

	"github.com/warp/paperwork-calendar/calendar"
)

// =============================================================================
// FREQUENCY
// =============================================================================

type Frequency string

const (
	FrequencyWeekly      Frequency = "weekly"
	FrequencyBiWeekly    Frequency = "bi-weekly"
	FrequencySemiMonthly Frequency = "semi monthly"
	FrequencyMonthly     Frequency = "monthly"
)

// Frequencies lists the supported frequencies in display order.
var Frequencies = []Frequency{FrequencyWeekly, FrequencyBiWeekly, FrequencySemiMonthly, FrequencyMonthly}

var frequencyAliases = map[string]Frequency{
	"weekly":       FrequencyWeekly,
	"bi-weekly":    FrequencyBiWeekly,
	"biweekly":     FrequencyBiWeekly,
	"semi monthly": FrequencySemiMonthly,
	"semi-monthly": FrequencySemiMonthly,
	"semimonthly":  FrequencySemiMonthly,
	"monthly":      FrequencyMonthly,
}

// ParseFrequency accepts the canonical names case-insensitively, plus the
// hyphen/space variants of the compound names.
func ParseFrequency(s string) (Frequency, error) {
	if f, ok := frequencyAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return "", &InputError{Field: "frequency", Value: s, Err: ErrUnknownFrequency}
}

// =============================================================================
// SERVICE MODEL
// =============================================================================

type ServiceModel string

const (
	ServiceCore      ServiceModel = "Core"
	ServicePreferred ServiceModel = "Preferred"
)

var ServiceModels = []ServiceModel{ServiceCore, ServicePreferred}

func ParseServiceModel(s string) (ServiceModel, error) {
	for _, m := range ServiceModels {
		if strings.EqualFold(strings.TrimSpace(s), string(m)) {
			return m, nil
		}
	}
	return "", &InputError{Field: "service_model", Value: s, Err: ErrUnknownServiceModel}
}

// =============================================================================
// EARLY ACCESS
// =============================================================================

type EarlyAccessOption string

const (
	EarlyAccessNone       EarlyAccessOption = "None"
	EarlyAccessOneWeek    EarlyAccessOption = "1 week"
	EarlyAccessTwoWeeks   EarlyAccessOption = "2 weeks"
	EarlyAccessThreeWeeks EarlyAccessOption = "3 weeks"
	EarlyAccessThirtyDays EarlyAccessOption = "30 days"
)

var EarlyAccessOptions = []EarlyAccessOption{
	EarlyAccessNone, EarlyAccessOneWeek, EarlyAccessTwoWeeks, EarlyAccessThreeWeeks, EarlyAccessThirtyDays,
}

// ParseEarlyAccess accepts the option labels; an empty string means None.
func ParseEarlyAccess(s string) (EarlyAccessOption, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return EarlyAccessNone, nil
	}
	for _, o := range EarlyAccessOptions {
		if strings.EqualFold(trimmed, string(o)) {
			return o, nil
		}
	}
	return "", &InputError{Field: "early_access", Value: s, Err: ErrUnknownEarlyAccess}
}

// Offset is the calendar-day shift applied to the first period's begin date.
// "30 days" maps to -28 (four weeks).
func (o EarlyAccessOption) Offset() int {
	switch o {
	case EarlyAccessOneWeek:
		return -7
	case EarlyAccessTwoWeeks:
		return -14
	case EarlyAccessThreeWeeks:
		return -21
	case EarlyAccessThirtyDays:
		return -28
	default:
		return 0
	}
}

// =============================================================================
// PERIOD
// =============================================================================

// Period is one pay period. Deadline is set on the first period only.
type Period struct {
	Begin         calendar.Date
	End           calendar.Date
	Check         calendar.Date
	BenefitsStart calendar.Date
	Deadline      *calendar.Date
}

// LengthDays is the inclusive calendar-day length of the period.
func (p Period) LengthDays() int {
	return calendar.DaysBetween(p.Begin, p.End) + 1
}

// =============================================================================
// DEADLINE BANDS
// =============================================================================

// DeadlineBand maps an inclusive employee-count range to a business-day offset.
type DeadlineBand struct {
	MinEmployees       int
	MaxEmployees       int
	BusinessDaysOffset int
}

func (b DeadlineBand) Contains(employees int) bool {
	return employees >= b.MinEmployees && employees <= b.MaxEmployees
}

// BandTable is an ordered, contiguous list of bands for one service model.
type BandTable []DeadlineBand

// Offset returns the business-day offset for the count, or false when no
// band covers it (the count requires custom handling).
func (t BandTable) Offset(employees int) (int, bool) {
	for _, b := range t {
		if b.Contains(employees) {
			return b.BusinessDaysOffset, true
		}
	}
	return 0, false
}

// CustomThreshold is the smallest count above every band.
func (t BandTable) CustomThreshold() int {
	max := -1
	for _, b := range t {
		if b.MaxEmployees > max {
			max = b.MaxEmployees
		}
	}
	return max + 1
}

// BandTables holds one table per service model.
type BandTables map[ServiceModel]BandTable

// DefaultBandTables returns the standard Core and Preferred tables.
// Counts of 500 and above have no offset.
func DefaultBandTables() BandTables {
	return BandTables{
		ServiceCore: {
			{MinEmployees: 0, MaxEmployees: 29, BusinessDaysOffset: 17},
			{MinEmployees: 30, MaxEmployees: 73, BusinessDaysOffset: 22},
			{MinEmployees: 74, MaxEmployees: 248, BusinessDaysOffset: 27},
			{MinEmployees: 249, MaxEmployees: 499, BusinessDaysOffset: 32},
		},
		ServicePreferred: {
			{MinEmployees: 0, MaxEmployees: 29, BusinessDaysOffset: 22},
			{MinEmployees: 30, MaxEmployees: 73, BusinessDaysOffset: 27},
			{MinEmployees: 74, MaxEmployees: 248, BusinessDaysOffset: 32},
			{MinEmployees: 249, MaxEmployees: 499, BusinessDaysOffset: 37},
		},
	}
}

// Offset looks up the band offset for a service model.
func (bt BandTables) Offset(model ServiceModel, employees int) (int, bool) {
	return bt[model].Offset(employees)
}

// =============================================================================
// INPUTS
// =============================================================================

// RawInputs are the scalar inputs as collected by a form.
type RawInputs struct {
	Frequency     string
	PayBegin      string
	PayEnd        string
	FirstCheck    string
	BenefitsStart string
	EmployeeCount int
	ServiceModel  string
	EarlyAccess   string
}

// Inputs are the parsed engine inputs.
type Inputs struct {
	Frequency     Frequency
	PayBegin      calendar.Date
	PayEnd        calendar.Date
	FirstCheck    calendar.Date
	BenefitsStart calendar.Date
	EmployeeCount int
	ServiceModel  ServiceModel
	EarlyAccess   EarlyAccessOption
}

// FirstPeriod is period 0 as supplied by the caller, without a deadline.
func (in Inputs) FirstPeriod() Period {
	return Period{
		Begin:         in.PayBegin,
		End:           in.PayEnd,
		Check:         in.FirstCheck,
		BenefitsStart: in.BenefitsStart,
	}
}
