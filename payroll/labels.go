/*
labels.go - Calendar projection of computed dates

PURPOSE:
  Folds the periods into a date -> labels map for a calendar grid, and works
  out which months the grid has to show.

ORDERING:
  Labels on a day keep insertion order; a label already present on a day is
  not added again. Periods are folded in order, then the early access date.
*/
package payroll

import (
	"sort"

	"github.com/warp/paperwork-calendar/calendar"
)

// Label names.
const (
	LabelPayPeriodStart   = "Pay Period Start"
	LabelPayPeriodEnd     = "Pay Period End"
	LabelCheckDate        = "Check Date"
	LabelPaperwork        = "Paperwork Deadline"
	LabelBenefitsStart    = "Benefits Start Date"
	LabelEarlyAccessStart = "Early Access Start Date"
)

// Legend lists every label in display order.
var Legend = []string{
	LabelPayPeriodStart,
	LabelPayPeriodEnd,
	LabelCheckDate,
	LabelPaperwork,
	LabelBenefitsStart,
	LabelEarlyAccessStart,
}

// MonthsShown is the minimum number of months in the grid.
const MonthsShown = 7

// maxPriorMonths bounds how far before the first period the grid extends.
const maxPriorMonths = 2

// =============================================================================
// LABEL MAP
// =============================================================================

// LabelMap maps ISO dates to an ordered, de-duplicated list of labels.
type LabelMap map[string][]string

// Add appends label to d unless it is already there.
func (m LabelMap) Add(d calendar.Date, label string) {
	k := d.String()
	for _, existing := range m[k] {
		if existing == label {
			return
		}
	}
	m[k] = append(m[k], label)
}

// On returns the labels of d.
func (m LabelMap) On(d calendar.Date) []string {
	return m[d.String()]
}

// Dates returns the labelled ISO dates in ascending order.
func (m LabelMap) Dates() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BuildLabels projects periods and the optional early access date.
func BuildLabels(periods []Period, earlyAccess *calendar.Date) LabelMap {
	m := LabelMap{}
	for i, p := range periods {
		m.Add(p.Begin, LabelPayPeriodStart)
		m.Add(p.End, LabelPayPeriodEnd)
		m.Add(p.Check, LabelCheckDate)
		if i == 0 && p.Deadline != nil {
			m.Add(*p.Deadline, LabelPaperwork)
		}
		m.Add(p.BenefitsStart, LabelBenefitsStart)
	}
	if earlyAccess != nil {
		m.Add(*earlyAccess, LabelEarlyAccessStart)
	}
	return m
}

// =============================================================================
// MONTH WINDOW
// =============================================================================

// MonthWindow returns the first day of every month the grid shows: the
// begin date's month plus the six after it, extended back by up to two
// months when those months hold a label (an early deadline, for example).
func MonthWindow(begin calendar.Date, labels LabelMap) []calendar.Date {
	base := begin.StartOfMonth()

	prior := 0
	for k := 1; k <= maxPriorMonths; k++ {
		start := base.AddMonths(-k)
		end := start.EndOfMonth()
		for iso := range labels {
			d, err := calendar.ParseDate(iso)
			if err != nil {
				continue
			}
			if d.AfterOrEqual(start) && d.BeforeOrEqual(end) {
				prior = k
				break
			}
		}
	}

	first := base.AddMonths(-prior)
	months := make([]calendar.Date, 0, MonthsShown+prior)
	for i := 0; i < MonthsShown+prior; i++ {
		months = append(months, first.AddMonths(i))
	}
	return months
}
