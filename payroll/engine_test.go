package payroll_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/paperwork-calendar/calendar"
	"github.com/warp/paperwork-calendar/payroll"
)

// biWeeklyCore is a Monday-start bi-weekly payroll with a Friday check.
func biWeeklyCore() payroll.Inputs {
	return payroll.Inputs{
		Frequency:     payroll.FrequencyBiWeekly,
		PayBegin:      date(2025, time.March, 3),
		PayEnd:        date(2025, time.March, 16),
		FirstCheck:    date(2025, time.March, 21),
		BenefitsStart: date(2025, time.April, 1),
		EmployeeCount: 25,
		ServiceModel:  payroll.ServiceCore,
		EarlyAccess:   payroll.EarlyAccessNone,
	}
}

// =============================================================================
// TIERED BANDS
// =============================================================================

func TestBandTables_DefaultOffsets(t *testing.T) {
	bands := payroll.DefaultBandTables()
	require.NoError(t, bands.Validate())

	tests := []struct {
		model     payroll.ServiceModel
		employees int
		want      int
	}{
		{payroll.ServiceCore, 0, 17},
		{payroll.ServiceCore, 29, 17},
		{payroll.ServiceCore, 30, 22},
		{payroll.ServiceCore, 73, 22},
		{payroll.ServiceCore, 74, 27},
		{payroll.ServiceCore, 248, 27},
		{payroll.ServiceCore, 249, 32},
		{payroll.ServiceCore, 499, 32},
		{payroll.ServicePreferred, 1, 22},
		{payroll.ServicePreferred, 50, 27},
		{payroll.ServicePreferred, 100, 32},
		{payroll.ServicePreferred, 499, 37},
	}
	for _, tt := range tests {
		got, ok := bands.Offset(tt.model, tt.employees)
		assert.True(t, ok, "%s %d", tt.model, tt.employees)
		assert.Equal(t, tt.want, got, "%s %d", tt.model, tt.employees)
	}

	for _, m := range payroll.ServiceModels {
		_, ok := bands.Offset(m, 500)
		assert.False(t, ok, "500 employees has no offset for %s", m)
		assert.Equal(t, 500, bands[m].CustomThreshold())
	}
}

func TestBandTable_ValidateRejectsGapsAndOverlaps(t *testing.T) {
	gap := payroll.BandTable{
		{MinEmployees: 0, MaxEmployees: 29, BusinessDaysOffset: 17},
		{MinEmployees: 31, MaxEmployees: 73, BusinessDaysOffset: 22},
	}
	overlap := payroll.BandTable{
		{MinEmployees: 0, MaxEmployees: 29, BusinessDaysOffset: 17},
		{MinEmployees: 29, MaxEmployees: 73, BusinessDaysOffset: 22},
	}
	notFromZero := payroll.BandTable{{MinEmployees: 1, MaxEmployees: 29, BusinessDaysOffset: 17}}
	zeroOffset := payroll.BandTable{{MinEmployees: 0, MaxEmployees: 29, BusinessDaysOffset: 0}}
	inverted := payroll.BandTable{{MinEmployees: 0, MaxEmployees: -1, BusinessDaysOffset: 5}}

	for name, table := range map[string]payroll.BandTable{
		"gap": gap, "overlap": overlap, "not from zero": notFromZero, "zero offset": zeroOffset,
		"inverted": inverted, "empty": nil,
	} {
		err := table.Validate(payroll.ServiceCore)
		assert.ErrorIs(t, err, payroll.ErrInvalidBandTable, name)
	}

	missing := payroll.BandTables{payroll.ServiceCore: payroll.DefaultBandTables()[payroll.ServiceCore]}
	var bandErr *payroll.BandTableError
	require.ErrorAs(t, missing.Validate(), &bandErr)
	assert.Equal(t, payroll.ServicePreferred, bandErr.Model)
}

// =============================================================================
// EARLY ACCESS
// =============================================================================

func TestEarlyAccessOption_Offsets(t *testing.T) {
	assert.Equal(t, 0, payroll.EarlyAccessNone.Offset())
	assert.Equal(t, -7, payroll.EarlyAccessOneWeek.Offset())
	assert.Equal(t, -14, payroll.EarlyAccessTwoWeeks.Offset())
	assert.Equal(t, -21, payroll.EarlyAccessThreeWeeks.Offset())
	assert.Equal(t, -28, payroll.EarlyAccessThirtyDays.Offset())
}

func TestEarlyAccessDate_WeekendAdjustment(t *testing.T) {
	tests := []struct {
		name  string
		begin calendar.Date
		opt   payroll.EarlyAccessOption
		want  calendar.Date
	}{
		// raw Sat Feb 1 -> Mon Feb 3
		{"30 days saturday forward", date(2025, time.March, 1), payroll.EarlyAccessThirtyDays, date(2025, time.February, 3)},
		// raw Sun Feb 2 -> Mon Feb 3
		{"30 days sunday forward", date(2025, time.March, 2), payroll.EarlyAccessThirtyDays, date(2025, time.February, 3)},
		// raw Sun Mar 2 -> Fri Feb 28
		{"1 week sunday back", date(2025, time.March, 9), payroll.EarlyAccessOneWeek, date(2025, time.February, 28)},
		// raw Sat Feb 15 -> Fri Feb 14
		{"2 weeks saturday back", date(2025, time.March, 1), payroll.EarlyAccessTwoWeeks, date(2025, time.February, 14)},
		// raw Mon Feb 10 stays
		{"3 weeks weekday unchanged", date(2025, time.March, 3), payroll.EarlyAccessThreeWeeks, date(2025, time.February, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := payroll.EarlyAccessDate(tt.begin, tt.opt, 25)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.False(t, calendar.IsWeekend(got))
		})
	}
}

func TestEarlyAccessDate_Inactive(t *testing.T) {
	_, ok := payroll.EarlyAccessDate(date(2025, time.March, 3), payroll.EarlyAccessNone, 25)
	assert.False(t, ok, "None is never active")

	_, ok = payroll.EarlyAccessDate(date(2025, time.March, 3), payroll.EarlyAccessOneWeek, 9)
	assert.False(t, ok, "fewer than 10 employees")

	_, ok = payroll.EarlyAccessDate(date(2025, time.March, 3), payroll.EarlyAccessOneWeek, 10)
	assert.True(t, ok)
}

// =============================================================================
// DEADLINE PRECEDENCE
// =============================================================================

func TestResolveDeadline_ClampedToLeadTime(t *testing.T) {
	// GIVEN: Core, 25 employees -> 17 business days before Fri Mar 21 = Wed Feb 26
	// AND:   8 business days before Mon Mar 3 = Wed Feb 19
	// THEN:  the earlier Feb 19 wins
	res := payroll.ResolveDeadline(biWeeklyCore(), payroll.DefaultBandTables())

	require.NotNil(t, res.Deadline)
	assert.Equal(t, date(2025, time.February, 19), *res.Deadline)
	assert.Equal(t, payroll.DeadlineFromLeadTime, res.Source)
	assert.True(t, res.HasBandOffset)
	assert.Equal(t, 17, res.BandOffset)
	assert.Nil(t, res.EarlyAccessDate)
}

func TestResolveDeadline_BandWhenEarlierThanLeadTime(t *testing.T) {
	// GIVEN: weekly payroll paying Fri Mar 7 for the week starting Mon Mar 3
	// THEN:  Mar 7 - 17 business days = Wed Feb 12, earlier than Feb 19
	in := biWeeklyCore()
	in.Frequency = payroll.FrequencyWeekly
	in.PayEnd = date(2025, time.March, 9)
	in.FirstCheck = date(2025, time.March, 7)

	res := payroll.ResolveDeadline(in, payroll.DefaultBandTables())
	require.NotNil(t, res.Deadline)
	assert.Equal(t, date(2025, time.February, 12), *res.Deadline)
	assert.Equal(t, payroll.DeadlineFromBand, res.Source)
}

func TestResolveDeadline_EarlyAccessOverridesBand(t *testing.T) {
	// GIVEN: 1 week early access -> Mon Feb 24
	// THEN:  12 business days before = Thu Feb 6, not the tiered Feb 19
	in := biWeeklyCore()
	in.EarlyAccess = payroll.EarlyAccessOneWeek

	res := payroll.ResolveDeadline(in, payroll.DefaultBandTables())
	require.NotNil(t, res.EarlyAccessDate)
	assert.Equal(t, date(2025, time.February, 24), *res.EarlyAccessDate)
	require.NotNil(t, res.Deadline)
	assert.Equal(t, date(2025, time.February, 6), *res.Deadline)
	assert.Equal(t, payroll.DeadlineFromEarlyAccess, res.Source)
	assert.NotEqual(t, date(2025, time.February, 19), *res.Deadline)
}

func TestResolveDeadline_CustomTimeline(t *testing.T) {
	in := biWeeklyCore()
	in.EmployeeCount = 500

	res := payroll.ResolveDeadline(in, payroll.DefaultBandTables())
	assert.Nil(t, res.Deadline)
	assert.False(t, res.HasBandOffset)
	assert.Equal(t, payroll.DeadlineNone, res.Source)

	// early access still yields a deadline for large employers
	in.EarlyAccess = payroll.EarlyAccessTwoWeeks
	res = payroll.ResolveDeadline(in, payroll.DefaultBandTables())
	require.NotNil(t, res.Deadline)
	assert.Equal(t, payroll.DeadlineFromEarlyAccess, res.Source)
}

func TestResolveDeadline_EarlyAccessIgnoredBelowTenEmployees(t *testing.T) {
	in := biWeeklyCore()
	in.EmployeeCount = 9
	in.EarlyAccess = payroll.EarlyAccessOneWeek

	res := payroll.ResolveDeadline(in, payroll.DefaultBandTables())
	assert.Nil(t, res.EarlyAccessDate)
	require.NotNil(t, res.Deadline)
	assert.Equal(t, date(2025, time.February, 19), *res.Deadline)
}

// =============================================================================
// VALIDATION
// =============================================================================

func codes(findings []payroll.Finding) []string {
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.Code
	}
	return out
}

func TestValidate_CleanInputs(t *testing.T) {
	assert.Empty(t, payroll.Validate(biWeeklyCore(), calendar.FederalCalendar{}, payroll.DefaultBandTables()))
}

func TestValidate_OrderAndMessages(t *testing.T) {
	// GIVEN: end before begin, benefits before begin, Saturday check,
	//        early access with 5 employees
	in := biWeeklyCore()
	in.PayEnd = date(2025, time.March, 2)
	in.BenefitsStart = date(2025, time.March, 1)
	in.FirstCheck = date(2025, time.March, 22)
	in.EmployeeCount = 5
	in.EarlyAccess = payroll.EarlyAccessOneWeek

	errs := payroll.Validate(in, calendar.FederalCalendar{}, payroll.DefaultBandTables())
	assert.Equal(t, []string{
		payroll.CodePeriodEndBeforeBegin,
		payroll.CodeBenefitsBeforeBegin,
		payroll.CodeCheckDateNonBusiness,
		payroll.CodeEarlyAccessMinEmployees,
	}, codes(errs))
	assert.Equal(t, []string{
		"Pay period end date cannot be before pay period begin date.",
		"Benefits start date cannot be before the first pay period begins.",
		"Check date cannot fall on a weekend or federal holiday.",
		"Early Access requires at least 10 employees.",
	}, payroll.Messages(errs))
	for _, e := range errs {
		assert.Equal(t, payroll.LevelError, e.Level)
	}
}

func TestValidate_BenefitsWindow(t *testing.T) {
	in := biWeeklyCore()

	in.BenefitsStart = in.PayBegin.AddDays(30)
	assert.NotContains(t, codes(payroll.Validate(in, calendar.FederalCalendar{}, payroll.DefaultBandTables())), payroll.CodeBenefitsBeyondWindow)

	in.BenefitsStart = in.PayBegin.AddDays(31)
	errs := payroll.Validate(in, calendar.FederalCalendar{}, payroll.DefaultBandTables())
	assert.Contains(t, payroll.Messages(errs), "Benefits start date must be within 30 days of the pay period begin date.")
}

func TestValidate_CheckDateOnHoliday(t *testing.T) {
	in := biWeeklyCore()
	in.FirstCheck = date(2025, time.July, 4)

	errs := payroll.Validate(in, calendar.NewHolidayCache(), payroll.DefaultBandTables())
	assert.Contains(t, codes(errs), payroll.CodeCheckDateNonBusiness)
}

func TestValidate_CustomTimeline(t *testing.T) {
	in := biWeeklyCore()
	in.EmployeeCount = 500
	for _, m := range payroll.ServiceModels {
		in.ServiceModel = m
		errs := payroll.Validate(in, calendar.FederalCalendar{}, payroll.DefaultBandTables())
		assert.Equal(t, []string{"Custom Timeline Required! - please submit sales support case"}, payroll.Messages(errs))
	}
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		day  int
		want []string
	}{
		{1, nil},
		{2, []string{payroll.CodeBilledEntireMonth, payroll.CodeNoDeductibleCredit}},
		{15, []string{payroll.CodeBilledEntireMonth, payroll.CodeNoDeductibleCredit}},
		{16, []string{payroll.CodeNoDeductibleCredit}},
		{31, []string{payroll.CodeNoDeductibleCredit}},
	}
	for _, tt := range tests {
		got := payroll.Warnings(date(2025, time.January, tt.day))
		if tt.want == nil {
			assert.Empty(t, got, "day %d", tt.day)
			continue
		}
		assert.Equal(t, tt.want, codes(got), "day %d", tt.day)
		for _, w := range got {
			assert.Equal(t, payroll.LevelWarning, w.Level)
		}
	}
}

// =============================================================================
// LABELS
// =============================================================================

func TestLabelMap_DeduplicatesFirstWins(t *testing.T) {
	m := payroll.LabelMap{}
	d := date(2025, time.March, 3)
	m.Add(d, payroll.LabelPayPeriodStart)
	m.Add(d, payroll.LabelBenefitsStart)
	m.Add(d, payroll.LabelPayPeriodStart)

	assert.Equal(t, []string{payroll.LabelPayPeriodStart, payroll.LabelBenefitsStart}, m.On(d))
}

func TestBuildLabels(t *testing.T) {
	// GIVEN: benefits start on the first begin date, early access active
	in := biWeeklyCore()
	in.BenefitsStart = in.PayBegin
	in.EarlyAccess = payroll.EarlyAccessOneWeek

	result := payroll.Compute(in)
	labels := result.Labels

	assert.Equal(t, []string{payroll.LabelPayPeriodStart, payroll.LabelBenefitsStart}, labels.On(in.PayBegin))
	assert.Equal(t, []string{payroll.LabelPaperwork}, labels.On(date(2025, time.February, 6)))
	assert.Equal(t, []string{payroll.LabelEarlyAccessStart}, labels.On(date(2025, time.February, 24)))
	assert.Equal(t, []string{payroll.LabelCheckDate}, labels.On(date(2025, time.June, 13)))

	deadlines := 0
	for _, iso := range labels.Dates() {
		for _, l := range labels[iso] {
			if l == payroll.LabelPaperwork {
				deadlines++
			}
		}
	}
	assert.Equal(t, 1, deadlines)

	dates := labels.Dates()
	for i := 1; i < len(dates); i++ {
		assert.Less(t, dates[i-1], dates[i])
	}
}

func TestMonthWindow(t *testing.T) {
	// no labels before the begin month -> 7 months from March
	months := payroll.MonthWindow(date(2025, time.March, 3), payroll.LabelMap{})
	require.Len(t, months, 7)
	assert.Equal(t, date(2025, time.March, 1), months[0])
	assert.Equal(t, date(2025, time.September, 1), months[6])

	// deadline in February -> one prior month
	result := payroll.Compute(biWeeklyCore())
	require.Len(t, result.Months, 8)
	assert.Equal(t, date(2025, time.February, 1), result.Months[0])

	// 30 days early access: deadline Thu Jan 16 -> two prior months
	in := biWeeklyCore()
	in.EarlyAccess = payroll.EarlyAccessThirtyDays
	result = payroll.Compute(in)
	require.NotNil(t, result.Deadline())
	assert.Equal(t, date(2025, time.January, 16), *result.Deadline())
	require.Len(t, result.Months, 9)
	assert.Equal(t, date(2025, time.January, 1), result.Months[0])
	assert.Equal(t, date(2025, time.September, 1), result.Months[8])
}

// =============================================================================
// COMPUTE
// =============================================================================

func TestCompute_BiWeeklyCore(t *testing.T) {
	result := payroll.Compute(biWeeklyCore())

	assert.True(t, result.Valid())
	assert.Empty(t, result.Warnings)
	require.Len(t, result.Periods, 7)
	require.NotNil(t, result.Deadline())
	assert.Equal(t, date(2025, time.February, 19), *result.Deadline())
	assert.Equal(t, payroll.DeadlineFromLeadTime, result.DeadlineSource)
	assert.Nil(t, result.EarlyAccessDate)
	for _, p := range result.Periods {
		assert.Equal(t, date(2025, time.April, 1), p.BenefitsStart)
	}
}

func TestCompute_IsIdempotent(t *testing.T) {
	in := biWeeklyCore()
	in.EarlyAccess = payroll.EarlyAccessThreeWeeks
	assert.Equal(t, payroll.Compute(in), payroll.Compute(in))
}

func TestCompute_WithBandTablesOverride(t *testing.T) {
	// a single Core band up to 99 employees with a 3 day offset
	custom := payroll.BandTables{
		payroll.ServiceCore: {{MinEmployees: 0, MaxEmployees: 99, BusinessDaysOffset: 3}},
	}
	in := biWeeklyCore()
	in.FirstCheck = date(2025, time.March, 7)

	// Fri Mar 7 - 3 business days = Tue Mar 4, clamped to Feb 19
	result := payroll.Compute(in, payroll.WithBandTables(custom))
	require.NotNil(t, result.Deadline())
	assert.Equal(t, date(2025, time.February, 19), *result.Deadline())

	in.EmployeeCount = 100
	result = payroll.Compute(in, payroll.WithBandTables(custom))
	assert.Nil(t, result.Deadline())
	assert.Contains(t, codes(result.Errors), payroll.CodeCustomTimelineRequired)

	// Preferred falls back to the default table
	in.ServiceModel = payroll.ServicePreferred
	result = payroll.Compute(in, payroll.WithBandTables(custom))
	assert.NotContains(t, codes(result.Errors), payroll.CodeCustomTimelineRequired)
}

func TestComputeRaw_ParsesInputs(t *testing.T) {
	result, err := payroll.ComputeRaw(payroll.RawInputs{
		Frequency:     "semi monthly",
		PayBegin:      "2025-01-01",
		PayEnd:        "2025-01-15",
		FirstCheck:    "2025-01-20",
		BenefitsStart: "2025-01-01",
		EmployeeCount: 40,
		ServiceModel:  "Preferred",
		EarlyAccess:   "None",
	})
	require.NoError(t, err)

	// Jan 20 2025 is MLK Day
	assert.Equal(t, []string{payroll.CodeCheckDateNonBusiness}, codes(result.Errors))
	assert.Equal(t, date(2025, time.January, 16), result.Periods[1].Begin)
}

func TestParseInputs_ReportsEveryBadField(t *testing.T) {
	_, err := payroll.ParseInputs(payroll.RawInputs{
		Frequency:     "fortnightly",
		PayBegin:      "03/03/2025",
		PayEnd:        "2025-03-16",
		FirstCheck:    "2025-03-21",
		BenefitsStart: "2025-04-01",
		EmployeeCount: -1,
		ServiceModel:  "Gold",
		EarlyAccess:   "2 months",
	})
	require.Error(t, err)

	assert.True(t, errors.Is(err, calendar.ErrInvalidDateFormat))
	assert.True(t, errors.Is(err, payroll.ErrUnknownFrequency))
	assert.True(t, errors.Is(err, payroll.ErrUnknownServiceModel))
	assert.True(t, errors.Is(err, payroll.ErrUnknownEarlyAccess))
	assert.True(t, errors.Is(err, payroll.ErrInvalidEmployeeCount))
	assert.True(t, payroll.IsClientError(err))
}

func TestParseInputs_Aliases(t *testing.T) {
	in, err := payroll.ParseInputs(payroll.RawInputs{
		Frequency:     "Semi-Monthly",
		PayBegin:      "2025-01-01",
		PayEnd:        "2025-01-15",
		FirstCheck:    "2025-01-21",
		BenefitsStart: "2025-01-01",
		EmployeeCount: 12,
		ServiceModel:  "core",
	})
	require.NoError(t, err)
	assert.Equal(t, payroll.FrequencySemiMonthly, in.Frequency)
	assert.Equal(t, payroll.ServiceCore, in.ServiceModel)
	assert.Equal(t, payroll.EarlyAccessNone, in.EarlyAccess)
}
