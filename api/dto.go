/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Dates travel as
  "YYYY-MM-DD" strings; months as "YYYY-MM".

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Response wrappers

VALIDATION:
  Validation is done by payroll.ParseInputs, not in DTOs. DTOs are pure
  data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/bands.go: BandTablesJSON
*/
package api

import (
	"github.com/warp/paperwork-calendar/calendar"
	"github.com/warp/paperwork-calendar/factory"
	"github.com/warp/paperwork-calendar/payroll"
)

// =============================================================================
// CALENDAR
// =============================================================================

// CalendarRequest carries the seven scalar inputs.
type CalendarRequest struct {
	Frequency     string `json:"frequency"`
	PayBegin      string `json:"pay_begin"`
	PayEnd        string `json:"pay_end"`
	FirstCheck    string `json:"first_check"`
	BenefitsStart string `json:"benefits_start"`
	EmployeeCount int    `json:"employee_count"`
	ServiceModel  string `json:"service_model"`
	EarlyAccess   string `json:"early_access,omitempty"`
}

// Raw converts the request to engine inputs.
func (r CalendarRequest) Raw() payroll.RawInputs {
	return payroll.RawInputs{
		Frequency:     r.Frequency,
		PayBegin:      r.PayBegin,
		PayEnd:        r.PayEnd,
		FirstCheck:    r.FirstCheck,
		BenefitsStart: r.BenefitsStart,
		EmployeeCount: r.EmployeeCount,
		ServiceModel:  r.ServiceModel,
		EarlyAccess:   r.EarlyAccess,
	}
}

// PeriodDTO is one pay period.
type PeriodDTO struct {
	Index         int     `json:"index"`
	Begin         string  `json:"begin"`
	End           string  `json:"end"`
	Check         string  `json:"check"`
	BenefitsStart string  `json:"benefits_start"`
	Deadline      *string `json:"deadline,omitempty"`
}

// FindingDTO is a validation error or warning.
type FindingDTO struct {
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CalendarResponse is the computed paperwork calendar.
type CalendarResponse struct {
	CalculationID   string              `json:"calculation_id"`
	Valid           bool                `json:"valid"`
	Periods         []PeriodDTO         `json:"periods"`
	Deadline        *string             `json:"deadline,omitempty"`
	DeadlineSource  string              `json:"deadline_source"`
	EarlyAccessDate *string             `json:"early_access_date,omitempty"`
	Labels          map[string][]string `json:"labels"`
	Months          []string            `json:"months"`
	Errors          []FindingDTO        `json:"errors"`
	Warnings        []FindingDTO        `json:"warnings"`
}

func datePtr(d *calendar.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func toFindingDTOs(findings []payroll.Finding) []FindingDTO {
	out := make([]FindingDTO, 0, len(findings))
	for _, f := range findings {
		out = append(out, FindingDTO{Level: string(f.Level), Code: f.Code, Message: f.Message})
	}
	return out
}

// NewCalendarResponse converts an engine result for the wire.
func NewCalendarResponse(id string, res payroll.Result) CalendarResponse {
	resp := CalendarResponse{
		CalculationID:   id,
		Valid:           res.Valid(),
		Periods:         make([]PeriodDTO, 0, len(res.Periods)),
		Deadline:        datePtr(res.Deadline()),
		DeadlineSource:  string(res.DeadlineSource),
		EarlyAccessDate: datePtr(res.EarlyAccessDate),
		Labels:          map[string][]string(res.Labels),
		Months:          make([]string, 0, len(res.Months)),
		Errors:          toFindingDTOs(res.Errors),
		Warnings:        toFindingDTOs(res.Warnings),
	}
	for i, p := range res.Periods {
		resp.Periods = append(resp.Periods, PeriodDTO{
			Index:         i,
			Begin:         p.Begin.String(),
			End:           p.End.String(),
			Check:         p.Check.String(),
			BenefitsStart: p.BenefitsStart.String(),
			Deadline:      datePtr(p.Deadline),
		})
	}
	for _, m := range res.Months {
		resp.Months = append(resp.Months, m.Time.Format("2006-01"))
	}
	return resp
}

// =============================================================================
// REFERENCE DATA
// =============================================================================

// HolidayDTO is one observed federal holiday.
type HolidayDTO struct {
	Name    string `json:"name"`
	Date    string `json:"date"` // observed date
	Actual  string `json:"actual"`
	Shifted bool   `json:"shifted"`
}

type HolidaysResponse struct {
	Year     int          `json:"year"`
	Holidays []HolidayDTO `json:"holidays"`
}

// BandsResponse lists the active deadline bands per service model.
type BandsResponse struct {
	Bands           factory.BandTablesJSON `json:"bands"`
	CustomThreshold map[string]int         `json:"custom_threshold"`
}

type LegendResponse struct {
	Labels []string `json:"labels"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO describes a canned input set.
type ScenarioDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Inputs      CalendarRequest `json:"inputs"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// FieldErrorDTO names one input that could not be parsed.
type FieldErrorDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
