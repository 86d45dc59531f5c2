/*
holidays.go - US federal holiday calculator

PURPOSE:
  Computes the observed dates of the 11 US federal holidays for a year and
  answers "is this date an observed federal holiday?".

RULES:
  Fixed-date holidays (New Year's Day, Juneteenth, Independence Day,
  Veterans Day, Christmas) shift off weekends: Saturday is observed on the
  preceding Friday, Sunday on the following Monday.
  Weekday-rule holidays (MLK, Presidents', Memorial, Labor, Columbus,
  Thanksgiving) always land on a weekday and never shift.

LOOKUP:
  IsFederalHolidayObserved recomputes the year on every call. Callers doing
  repeated lookups own a HolidayCache instead; there is no package-level cache.

  A date is tested against the set of ITS OWN year only. New Year's Day
  observed on Dec 31 of the previous year is therefore part of the next
  year's set and is not reported for Dec 31.

SEE ALSO:
  - date.go: Date, IsWeekend
*/
package calendar

import (
	"sort"
	"sync"
	"time"
)

// Holiday is one federal holiday occurrence.
type Holiday struct {
	Name     string
	Actual   Date // the nominal date (e.g. Jul 4)
	Observed Date // the non-working date after weekend shifting
}

// Shifted reports whether the observed date differs from the nominal date.
func (h Holiday) Shifted() bool { return !h.Actual.Equal(h.Observed) }

// HolidayCalendar provides holiday lookup functionality.
type HolidayCalendar interface {
	// IsHoliday reports whether d is an observed holiday.
	IsHoliday(d Date) bool

	// Holidays returns the holidays of a year ordered by observed date.
	Holidays(year int) []Holiday
}

// =============================================================================
// WEEKDAY RULES
// =============================================================================

// NthWeekdayOfMonth returns the n-th (1-indexed) occurrence of weekday in month.
func NthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int) Date {
	first := NewDate(year, month, 1)
	offset := (7 + int(weekday) - int(first.Weekday())) % 7
	return NewDate(year, month, 1+offset+7*(n-1))
}

// LastWeekdayOfMonth returns the last occurrence of weekday in month.
func LastWeekdayOfMonth(year int, month time.Month, weekday time.Weekday) Date {
	last := EndOfMonth(year, month)
	offset := (7 + int(last.Weekday()) - int(weekday)) % 7
	return last.AddDays(-offset)
}

// ObservedDate moves a Saturday back to Friday and a Sunday forward to Monday.
func ObservedDate(d Date) Date {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDays(-1)
	case time.Sunday:
		return d.AddDays(1)
	default:
		return d
	}
}

// =============================================================================
// FEDERAL HOLIDAYS
// =============================================================================

type holidayRule struct {
	name string
	date func(year int) Date
	// fixed-date holidays are weekend-shifted
	fixed bool
}

var federalRules = []holidayRule{
	{"New Year's Day", func(y int) Date { return NewDate(y, time.January, 1) }, true},
	{"Martin Luther King Jr. Day", func(y int) Date { return NthWeekdayOfMonth(y, time.January, time.Monday, 3) }, false},
	{"Presidents' Day", func(y int) Date { return NthWeekdayOfMonth(y, time.February, time.Monday, 3) }, false},
	{"Memorial Day", func(y int) Date { return LastWeekdayOfMonth(y, time.May, time.Monday) }, false},
	{"Juneteenth", func(y int) Date { return NewDate(y, time.June, 19) }, true},
	{"Independence Day", func(y int) Date { return NewDate(y, time.July, 4) }, true},
	{"Labor Day", func(y int) Date { return NthWeekdayOfMonth(y, time.September, time.Monday, 1) }, false},
	{"Columbus Day", func(y int) Date { return NthWeekdayOfMonth(y, time.October, time.Monday, 2) }, false},
	{"Veterans Day", func(y int) Date { return NewDate(y, time.November, 11) }, true},
	{"Thanksgiving Day", func(y int) Date { return NthWeekdayOfMonth(y, time.November, time.Thursday, 4) }, false},
	{"Christmas Day", func(y int) Date { return NewDate(y, time.December, 25) }, true},
}

// FederalHolidays returns the 11 federal holidays of year in calendar order.
func FederalHolidays(year int) []Holiday {
	out := make([]Holiday, 0, len(federalRules))
	for _, r := range federalRules {
		actual := r.date(year)
		observed := actual
		if r.fixed {
			observed = ObservedDate(actual)
		}
		out = append(out, Holiday{Name: r.name, Actual: actual, Observed: observed})
	}
	return out
}

// HolidaySet is a set of ISO dates for O(1) membership tests.
type HolidaySet map[string]struct{}

func (s HolidaySet) Has(d Date) bool {
	_, ok := s[d.String()]
	return ok
}

func newHolidaySet(holidays []Holiday) HolidaySet {
	set := make(HolidaySet, len(holidays))
	for _, h := range holidays {
		set[h.Observed.String()] = struct{}{}
	}
	return set
}

// FederalHolidaySet returns the observed holiday dates of year.
func FederalHolidaySet(year int) HolidaySet {
	return newHolidaySet(FederalHolidays(year))
}

// IsFederalHolidayObserved computes the holiday set of d's year and tests membership.
func IsFederalHolidayObserved(d Date) bool {
	return FederalHolidaySet(d.Year()).Has(d)
}

// FederalCalendar is the uncached HolidayCalendar: every lookup recomputes the year.
type FederalCalendar struct{}

func (FederalCalendar) IsHoliday(d Date) bool { return IsFederalHolidayObserved(d) }

func (FederalCalendar) Holidays(year int) []Holiday {
	holidays := FederalHolidays(year)
	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].Observed.Before(holidays[j].Observed)
	})
	return holidays
}

// =============================================================================
// HOLIDAY CACHE - Caller-owned, lazily populated per year
// =============================================================================

type yearEntry struct {
	holidays []Holiday
	set      HolidaySet
}

// HolidayCache memoizes federal holidays per year. Safe for concurrent use.
// The zero value is not usable; call NewHolidayCache.
type HolidayCache struct {
	mu    sync.RWMutex
	years map[int]yearEntry
}

func NewHolidayCache() *HolidayCache {
	return &HolidayCache{years: make(map[int]yearEntry)}
}

func (c *HolidayCache) entry(year int) yearEntry {
	c.mu.RLock()
	e, ok := c.years[year]
	c.mu.RUnlock()
	if ok {
		return e
	}

	holidays := FederalCalendar{}.Holidays(year)
	e = yearEntry{holidays: holidays, set: newHolidaySet(holidays)}

	c.mu.Lock()
	if existing, ok := c.years[year]; ok {
		e = existing
	} else {
		c.years[year] = e
	}
	c.mu.Unlock()
	return e
}

// IsHoliday reports whether d is an observed federal holiday of d's year.
func (c *HolidayCache) IsHoliday(d Date) bool {
	return c.entry(d.Year()).set.Has(d)
}

// Holidays returns a copy of the year's holidays ordered by observed date.
func (c *HolidayCache) Holidays(year int) []Holiday {
	e := c.entry(year)
	out := make([]Holiday, len(e.holidays))
	copy(out, e.holidays)
	return out
}

// Warm populates the given years.
func (c *HolidayCache) Warm(years ...int) {
	for _, y := range years {
		c.entry(y)
	}
}

// Years returns the cached years in ascending order.
func (c *HolidayCache) Years() []int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]int, 0, len(c.years))
	for y := range c.years {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

var (
	_ HolidayCalendar = (*HolidayCache)(nil)
	_ HolidayCalendar = FederalCalendar{}
)
