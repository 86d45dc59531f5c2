package payroll

import "github.com/warp/paperwork-calendar/calendar"

// AdditionalPeriods is how many periods are rolled forward after the first.
const AdditionalPeriods = 6

// =============================================================================
// PERIOD TRANSITION
// =============================================================================

// Cadence is what the transition needs to know about the first period.
type Cadence struct {
	Frequency Frequency

	// LagDays is the calendar-day distance from the first end to the first check.
	LagDays int

	// LengthDays is the inclusive length of the first period.
	LengthDays int
}

// CadenceOf derives the cadence from the caller-supplied first period.
func CadenceOf(first Period, freq Frequency) Cadence {
	return Cadence{
		Frequency:  freq,
		LagDays:    calendar.DaysBetween(first.End, first.Check),
		LengthDays: first.LengthDays(),
	}
}

// NextPeriod derives the period after prior.
//
//   - weekly / bi-weekly: begin, end and check all move +7 / +14 days.
//   - semi monthly: 1st-15th or 16th-end of month, picked by the day after
//     prior.End; check = end + LagDays.
//   - monthly: begin +1 month (clamped), end = begin + LengthDays - 1
//     clamped to the new begin's month end; check = end + LagDays.
//
// The returned period never carries a deadline.
func NextPeriod(prior Period, c Cadence) Period {
	next := Period{BenefitsStart: prior.BenefitsStart}

	switch c.Frequency {
	case FrequencyWeekly:
		next.Begin, next.End, next.Check = prior.Begin.AddDays(7), prior.End.AddDays(7), prior.Check.AddDays(7)
	case FrequencyBiWeekly:
		next.Begin, next.End, next.Check = prior.Begin.AddDays(14), prior.End.AddDays(14), prior.Check.AddDays(14)
	case FrequencySemiMonthly:
		next.Begin, next.End = nextSemiMonthly(prior.End)
		next.Check = next.End.AddDays(c.LagDays)
	case FrequencyMonthly:
		next.Begin, next.End = nextMonthly(prior.Begin, c.LengthDays)
		next.Check = next.End.AddDays(c.LagDays)
	default:
		// Unknown frequencies are rejected by ParseFrequency; keep the prior dates.
		next.Begin, next.End, next.Check = prior.Begin, prior.End, prior.Check
	}
	return next
}

func nextSemiMonthly(priorEnd calendar.Date) (begin, end calendar.Date) {
	nextDay := priorEnd.AddDays(1)
	y, m := nextDay.Year(), nextDay.Month()
	if nextDay.Day() <= 15 {
		return calendar.NewDate(y, m, 1), calendar.NewDate(y, m, 15)
	}
	return calendar.NewDate(y, m, 16), calendar.EndOfMonth(y, m)
}

func nextMonthly(priorBegin calendar.Date, length int) (begin, end calendar.Date) {
	begin = priorBegin.AddMonths(1)
	end = begin.AddDays(length - 1)
	if eom := begin.EndOfMonth(); end.After(eom) {
		end = eom
	}
	return begin, end
}

// =============================================================================
// GENERATION
// =============================================================================

// GeneratePeriods returns first followed by AdditionalPeriods rolled-forward
// periods. Deadlines are cleared on every rolled period; first keeps its own.
func GeneratePeriods(first Period, freq Frequency) []Period {
	c := CadenceOf(first, freq)

	periods := make([]Period, 0, AdditionalPeriods+1)
	periods = append(periods, first)
	prior := first
	for i := 0; i < AdditionalPeriods; i++ {
		prior = NextPeriod(prior, c)
		periods = append(periods, prior)
	}
	return periods
}
