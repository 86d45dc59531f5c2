/*
scenarios.go - Demo input sets for testing and demonstrations

PURPOSE:
  Provides canned calendar inputs that exercise the interesting paths of
  the engine: the 8 business day clamp, early access, month-end monthly
  payroll, holiday check dates and the custom timeline threshold.

AVAILABLE SCENARIOS:
  biweekly-core:                 Tiered deadline clamped to the lead time
  semimonthly-preferred-early:   Early access date moved off a Sunday
  monthly-month-end:             Monthly periods keeping the first length
  holiday-check-date:            Check date on Independence Day (error)
  large-employer:                500+ employees, custom timeline required

USAGE VIA API:
  GET  /api/scenarios
  POST /api/scenarios/biweekly-core/compute

ADDING NEW SCENARIOS:
  Append to the 'scenarios' slice; IDs must be unique.

SEE ALSO:
  - handlers.go: ListScenarios, ComputeScenario handlers
*/
package api

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "biweekly-core",
		Name:        "Bi-weekly, Core",
		Description: "25 employees paid every other Friday. The tiered deadline (Feb 26) is later than 8 business days before the first period, so it is pulled back to Feb 19.",
		Inputs: CalendarRequest{
			Frequency:     "bi-weekly",
			PayBegin:      "2025-03-03",
			PayEnd:        "2025-03-16",
			FirstCheck:    "2025-03-21",
			BenefitsStart: "2025-04-01",
			EmployeeCount: 25,
			ServiceModel:  "Core",
			EarlyAccess:   "None",
		},
	},
	{
		ID:          "semimonthly-preferred-early",
		Name:        "Semi-monthly, Preferred, 2 weeks early access",
		Description: "45 employees with two weeks of early access. The raw early access date falls on Sunday May 18 and moves back to Friday May 16; paperwork is due 12 business days before.",
		Inputs: CalendarRequest{
			Frequency:     "semi monthly",
			PayBegin:      "2025-06-01",
			PayEnd:        "2025-06-15",
			FirstCheck:    "2025-06-20",
			BenefitsStart: "2025-07-01",
			EmployeeCount: 45,
			ServiceModel:  "Preferred",
			EarlyAccess:   "2 weeks",
		},
	},
	{
		ID:          "monthly-month-end",
		Name:        "Monthly, calendar month",
		Description: "12 employees paid monthly for full calendar months; February is clamped to its last day.",
		Inputs: CalendarRequest{
			Frequency:     "monthly",
			PayBegin:      "2025-01-01",
			PayEnd:        "2025-01-31",
			FirstCheck:    "2025-02-05",
			BenefitsStart: "2025-01-01",
			EmployeeCount: 12,
			ServiceModel:  "Core",
			EarlyAccess:   "None",
		},
	},
	{
		ID:          "holiday-check-date",
		Name:        "Check date on a federal holiday",
		Description: "Weekly payroll whose first check lands on July 4th, which blocks submission. Benefits start mid-month, which adds both warnings.",
		Inputs: CalendarRequest{
			Frequency:     "weekly",
			PayBegin:      "2025-06-23",
			PayEnd:        "2025-06-29",
			FirstCheck:    "2025-07-04",
			BenefitsStart: "2025-07-10",
			EmployeeCount: 80,
			ServiceModel:  "Core",
			EarlyAccess:   "None",
		},
	},
	{
		ID:          "large-employer",
		Name:        "Large employer",
		Description: "650 employees is above every deadline band: no deadline is computed and a custom timeline is required.",
		Inputs: CalendarRequest{
			Frequency:     "weekly",
			PayBegin:      "2025-09-01",
			PayEnd:        "2025-09-07",
			FirstCheck:    "2025-09-12",
			BenefitsStart: "2025-09-01",
			EmployeeCount: 650,
			ServiceModel:  "Core",
			EarlyAccess:   "None",
		},
	},
}

func findScenario(id string) (ScenarioDTO, bool) {
	for _, sc := range scenarios {
		if sc.ID == id {
			return sc, true
		}
	}
	return ScenarioDTO{}, false
}
