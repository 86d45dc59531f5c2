package calendar_test

import (
	"errors"
	"testing"
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/paperwork-calendar/calendar"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) calendar.Date {
	return calendar.NewDate(year, month, day)
}

// =============================================================================
// PRIMITIVES
// =============================================================================

func TestClampToMidnight_DropsTimeOfDay(t *testing.T) {
	in := time.Date(2025, time.March, 9, 17, 45, 12, 99, time.UTC)
	assert.Equal(t, date(2025, time.March, 9), calendar.ClampToMidnight(in))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, calendar.IsWeekend(date(2025, time.January, 5)), "Sunday")
	assert.True(t, calendar.IsWeekend(date(2025, time.January, 4)), "Saturday")
	assert.False(t, calendar.IsWeekend(date(2025, time.January, 6)), "Monday")
	assert.False(t, calendar.IsWeekend(date(2025, time.January, 10)), "Friday")
}

func TestSubtractBusinessDays(t *testing.T) {
	tests := []struct {
		name string
		from calendar.Date
		n    int
		want calendar.Date
	}{
		{"zero returns input", date(2025, time.January, 20), 0, date(2025, time.January, 20)},
		{"zero on a weekend stays on the weekend", date(2025, time.January, 5), 0, date(2025, time.January, 5)},
		{"monday minus five", date(2025, time.January, 20), 5, date(2025, time.January, 13)},
		{"monday minus one skips weekend", date(2025, time.January, 20), 1, date(2025, time.January, 17)},
		{"sunday minus one is friday", date(2025, time.January, 5), 1, date(2025, time.January, 3)},
		{"saturday minus one is friday", date(2025, time.January, 4), 1, date(2025, time.January, 3)},
		{"holidays are not skipped", date(2025, time.January, 21), 1, date(2025, time.January, 20)},
		{"negative treated as zero", date(2025, time.January, 20), -3, date(2025, time.January, 20)},
		{"crosses year boundary", date(2025, time.January, 2), 3, date(2024, time.December, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.SubtractBusinessDays(tt.from, tt.n))
		})
	}
}

func TestAddMonths_ClampsToMonthEnd(t *testing.T) {
	assert.Equal(t, date(2025, time.February, 28), date(2025, time.January, 31).AddMonths(1))
	assert.Equal(t, date(2024, time.February, 29), date(2024, time.January, 31).AddMonths(1))
	assert.Equal(t, date(2025, time.April, 30), date(2025, time.March, 31).AddMonths(1))
	assert.Equal(t, date(2026, time.January, 15), date(2025, time.December, 15).AddMonths(1))
}

func TestEndOfMonth(t *testing.T) {
	assert.Equal(t, 31, calendar.EndOfMonth(2025, time.January).Day())
	assert.Equal(t, 28, calendar.EndOfMonth(2025, time.February).Day())
	assert.Equal(t, 29, calendar.EndOfMonth(2024, time.February).Day())
	assert.Equal(t, 31, calendar.EndOfMonth(2025, time.December).Day())
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 7, calendar.DaysBetween(date(2025, time.January, 14), date(2025, time.January, 21)))
	assert.Equal(t, -7, calendar.DaysBetween(date(2025, time.January, 21), date(2025, time.January, 14)))
	// DST-free: dates are UTC anchored
	assert.Equal(t, 31, calendar.DaysBetween(date(2025, time.March, 1), date(2025, time.April, 1)))
}

func TestParseDate(t *testing.T) {
	d, err := calendar.ParseDate("2025-01-20")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.January, 20), d)

	for _, bad := range []string{"", "2025-1-20", "20-01-2025", "2025/01/20", "2025-02-30", "2025-01-20T00:00:00", "tomorrow", " 2025-01-20 ", "2025-01-20\n", "2025-01-2 "} {
		_, err := calendar.ParseField("pay_begin", bad)
		assert.Error(t, err, bad)
		assert.True(t, errors.Is(err, calendar.ErrInvalidDateFormat), bad)

		var dateErr *calendar.InvalidDateError
		require.ErrorAs(t, err, &dateErr)
		assert.Equal(t, "pay_begin", dateErr.Field)
	}
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func TestNthWeekdayOfMonth(t *testing.T) {
	assert.Equal(t, date(2025, time.January, 20), calendar.NthWeekdayOfMonth(2025, time.January, time.Monday, 3))
	assert.Equal(t, date(2025, time.September, 1), calendar.NthWeekdayOfMonth(2025, time.September, time.Monday, 1))
	assert.Equal(t, date(2025, time.November, 27), calendar.NthWeekdayOfMonth(2025, time.November, time.Thursday, 4))
}

func TestLastWeekdayOfMonth(t *testing.T) {
	assert.Equal(t, date(2025, time.May, 26), calendar.LastWeekdayOfMonth(2025, time.May, time.Monday))
	// May 31 2027 is itself a Monday
	assert.Equal(t, date(2027, time.May, 31), calendar.LastWeekdayOfMonth(2027, time.May, time.Monday))
}

func TestFederalHolidays_2026ObservedShifts(t *testing.T) {
	// GIVEN: 2026, where Jul 4 is a Saturday
	// THEN: Independence Day is observed Friday Jul 3
	holidays := calendar.FederalHolidays(2026)
	require.Len(t, holidays, 11)

	byName := map[string]calendar.Holiday{}
	for _, h := range holidays {
		byName[h.Name] = h
	}
	ind := byName["Independence Day"]
	assert.Equal(t, date(2026, time.July, 4), ind.Actual)
	assert.Equal(t, date(2026, time.July, 3), ind.Observed)
	assert.True(t, ind.Shifted())

	// Nov 11 2023 was a Saturday -> Friday Nov 10
	assert.True(t, calendar.IsFederalHolidayObserved(date(2023, time.November, 10)))
	assert.False(t, calendar.IsFederalHolidayObserved(date(2023, time.November, 11)))

	// Jun 19 2022 was a Sunday -> Monday Jun 20
	assert.True(t, calendar.IsFederalHolidayObserved(date(2022, time.June, 20)))
}

func TestFederalHolidays_NewYearObservedInPriorYearNotReported(t *testing.T) {
	// Jan 1 2022 was a Saturday; its observed date Dec 31 2021 belongs to the
	// 2022 set, and lookups only consult the date's own year.
	assert.True(t, calendar.FederalHolidaySet(2022).Has(date(2021, time.December, 31)))
	assert.False(t, calendar.IsFederalHolidayObserved(date(2021, time.December, 31)))
}

func TestFederalHolidays_ObservedNeverOnWeekend(t *testing.T) {
	for year := 1990; year <= 2060; year++ {
		for _, h := range calendar.FederalHolidays(year) {
			assert.False(t, calendar.IsWeekend(h.Observed), "%s %d observed on %s", h.Name, year, h.Observed)
		}
	}
}

func TestFederalHolidays_MatchIndependentCalendar(t *testing.T) {
	oracle := cal.NewBusinessCalendar()
	oracle.AddHoliday(
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)

	for _, year := range []int{2024, 2025, 2026} {
		for _, h := range calendar.FederalHolidays(year) {
			actual, observed, _ := oracle.IsHoliday(h.Observed.Time)
			assert.True(t, actual || observed, "%s %s", h.Name, h.Observed)
		}

		set := calendar.FederalHolidaySet(year)
		for d := date(year, time.January, 1); d.Year() == year; d = d.AddDays(1) {
			if _, observed, _ := oracle.IsHoliday(d.Time); observed {
				assert.True(t, set.Has(d), "oracle observes %s", d)
			}
		}
	}
}

func TestHolidayCache(t *testing.T) {
	c := calendar.NewHolidayCache()
	assert.Empty(t, c.Years())

	assert.True(t, c.IsHoliday(date(2025, time.December, 25)))
	assert.False(t, c.IsHoliday(date(2025, time.December, 26)))
	assert.Equal(t, []int{2025}, c.Years())

	c.Warm(2026, 2027, 2026)
	assert.Equal(t, []int{2025, 2026, 2027}, c.Years())

	hs := c.Holidays(2026)
	require.Len(t, hs, 11)
	for i := 1; i < len(hs); i++ {
		assert.True(t, hs[i-1].Observed.Before(hs[i].Observed))
	}

	// callers get a copy
	hs[0].Name = "mutated"
	assert.NotEqual(t, "mutated", c.Holidays(2026)[0].Name)
}

func TestHolidayCache_AgreesWithDirectLookup(t *testing.T) {
	c := calendar.NewHolidayCache()
	for d := date(2024, time.January, 1); d.Before(date(2027, time.January, 1)); d = d.AddDays(1) {
		assert.Equal(t, calendar.IsFederalHolidayObserved(d), c.IsHoliday(d), d.String())
	}
}
