package payroll

import (
	"github.com/warp/paperwork-calendar/calendar"
)

// BenefitsStartWindowDays is how far after the period begin benefits may start.
const BenefitsStartWindowDays = 30

// Level classifies a finding.
type Level string

const (
	LevelError   Level = "ERROR"
	LevelWarning Level = "WARNING"
)

// Finding codes.
const (
	CodePeriodEndBeforeBegin    = "period_end_before_begin"
	CodeBenefitsBeforeBegin     = "benefits_before_begin"
	CodeBenefitsBeyondWindow    = "benefits_beyond_30_days"
	CodeCheckDateNonBusiness    = "check_date_non_business"
	CodeEarlyAccessMinEmployees = "early_access_min_employees"
	CodeCustomTimelineRequired  = "custom_timeline_required"
	CodeBilledEntireMonth       = "billed_entire_month"
	CodeNoDeductibleCredit      = "no_deductible_credit"
)

// Finding is a validation error or warning. Findings are data: computation
// still runs when blocking errors are present.
type Finding struct {
	Level   Level
	Code    string
	Message string
}

// Messages extracts the message strings in order.
func Messages(findings []Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.Message
	}
	return out
}

func blocking(code, msg string) Finding { return Finding{Level: LevelError, Code: code, Message: msg} }
func warning(code, msg string) Finding  { return Finding{Level: LevelWarning, Code: code, Message: msg} }

// Validate returns the blocking errors in a fixed order. Holidays are looked
// up in cal; bands decide the custom-timeline threshold for the service model.
func Validate(in Inputs, cal calendar.HolidayCalendar, bands BandTables) []Finding {
	var errs []Finding

	if in.PayEnd.Before(in.PayBegin) {
		errs = append(errs, blocking(CodePeriodEndBeforeBegin,
			"Pay period end date cannot be before pay period begin date."))
	}
	if in.BenefitsStart.Before(in.PayBegin) {
		errs = append(errs, blocking(CodeBenefitsBeforeBegin,
			"Benefits start date cannot be before the first pay period begins."))
	}
	if calendar.DaysBetween(in.PayBegin, in.BenefitsStart) > BenefitsStartWindowDays {
		errs = append(errs, blocking(CodeBenefitsBeyondWindow,
			"Benefits start date must be within 30 days of the pay period begin date."))
	}
	if calendar.IsWeekend(in.FirstCheck) || cal.IsHoliday(in.FirstCheck) {
		errs = append(errs, blocking(CodeCheckDateNonBusiness,
			"Check date cannot fall on a weekend or federal holiday."))
	}
	if in.EarlyAccess != EarlyAccessNone && in.EarlyAccess != "" && in.EmployeeCount < EarlyAccessMinEmployees {
		errs = append(errs, blocking(CodeEarlyAccessMinEmployees,
			"Early Access requires at least 10 employees."))
	}
	table := bands[in.ServiceModel]
	if len(table) == 0 {
		table = DefaultBandTables()[in.ServiceModel]
	}
	if in.EmployeeCount >= table.CustomThreshold() {
		errs = append(errs, blocking(CodeCustomTimelineRequired,
			"Custom Timeline Required! - please submit sales support case"))
	}
	return errs
}

// Warnings returns the non-blocking notices about the benefits start date.
func Warnings(benefitsStart calendar.Date) []Finding {
	var msgs []Finding
	day := benefitsStart.Day()
	if day > 1 && day < 16 {
		msgs = append(msgs, warning(CodeBilledEntireMonth, "Client will be billed for the entire month."))
	}
	if day != 1 {
		msgs = append(msgs, warning(CodeNoDeductibleCredit, "Client will not be eligible for deductible credit."))
	}
	return msgs
}
