/*
handlers.go - HTTP API handlers for the paperwork calendar

PURPOSE:
  Exposes the payroll engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to payroll.Compute.

ENDPOINTS:
  Calendar:
    POST   /api/calendar                 Compute periods, deadline, labels

  Reference data:
    GET    /api/holidays?year=YYYY       Observed federal holidays
    GET    /api/bands                    Active deadline band tables
    GET    /api/labels                   Label legend in display order

  Scenarios:
    GET    /api/scenarios                List demo input sets
    POST   /api/scenarios/{id}/compute   Compute a demo input set

  Health:
    GET    /healthz

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Holidays: the shared, caller-owned holiday cache
  - Bands: the active band tables, swapped atomically on config reload

ERROR HANDLING:
  Errors are returned as JSON ErrorResponse with appropriate HTTP status:
  - 400: Malformed body, unparseable inputs (code invalid_date_format or
         invalid_input), bad query parameters
  - 404: Unknown scenario
  - 429: Rate limited (server.go)
  Business-rule violations are NOT HTTP errors: they come back with 200 as
  errors/warnings in the calendar response.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo input sets
  - server.go: Router setup and middleware
*/
package api

import (
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/warp/paperwork-calendar/calendar"
	"github.com/warp/paperwork-calendar/factory"
	"github.com/warp/paperwork-calendar/payroll"
)

const (
	minYear = 1
	maxYear = 9999
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Holidays    *calendar.HolidayCache
	BandFactory *factory.BandFactory
	Log         zerolog.Logger

	bands atomic.Pointer[payroll.BandTables]
	now   func() time.Time
}

// NewHandler creates a handler sharing cache with the rest of the process.
// The default band tables are active until SetBandTables is called.
func NewHandler(cache *calendar.HolidayCache, log zerolog.Logger) *Handler {
	if cache == nil {
		cache = calendar.NewHolidayCache()
	}
	h := &Handler{
		Holidays:    cache,
		BandFactory: factory.NewBandFactory(),
		Log:         log,
		now:         time.Now,
	}
	h.SetBandTables(payroll.DefaultBandTables())
	return h
}

// SetBandTables swaps the active band tables. In-flight requests keep the
// tables they started with.
func (h *Handler) SetBandTables(bt payroll.BandTables) {
	clone := bt.Clone()
	h.bands.Store(&clone)
}

// BandTables returns the active band tables.
func (h *Handler) BandTables() payroll.BandTables {
	return *h.bands.Load()
}

// =============================================================================
// CALENDAR
// =============================================================================

// ComputeCalendar computes the paperwork calendar for the posted inputs.
// POST /api/calendar
func (h *Handler) ComputeCalendar(w http.ResponseWriter, r *http.Request) {
	var req CalendarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "invalid_request", err.Error())
		return
	}
	h.compute(w, r, req)
}

func (h *Handler) compute(w http.ResponseWriter, r *http.Request, req CalendarRequest) {
	in, err := payroll.ParseInputs(req.Raw())
	if err != nil {
		if !payroll.IsClientError(err) {
			hlog.FromRequest(r).Error().Err(err).Msg("parse calendar inputs")
			writeError(w, http.StatusInternalServerError, "Internal error", "internal", nil)
			return
		}
		code := "invalid_input"
		if errors.Is(err, calendar.ErrInvalidDateFormat) {
			code = "invalid_date_format"
		}
		writeError(w, http.StatusBadRequest, "Invalid calendar inputs", code, fieldErrors(err))
		return
	}

	res := payroll.Compute(in,
		payroll.WithBandTables(h.BandTables()),
		payroll.WithHolidayCalendar(h.Holidays),
	)
	resp := NewCalendarResponse(uuid.NewString(), res)

	hlog.FromRequest(r).Debug().
		Str("calculation_id", resp.CalculationID).
		Str("frequency", string(in.Frequency)).
		Int("employees", in.EmployeeCount).
		Str("deadline_source", resp.DeadlineSource).
		Int("errors", len(resp.Errors)).
		Msg("calendar computed")

	writeJSON(w, http.StatusOK, resp)
}

// fieldErrors flattens the joined parse error into one entry per field.
func fieldErrors(err error) []FieldErrorDTO {
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}

	out := make([]FieldErrorDTO, 0, len(errs))
	for _, e := range errs {
		var (
			dateErr  *calendar.InvalidDateError
			inputErr *payroll.InputError
		)
		switch {
		case errors.As(e, &dateErr):
			out = append(out, FieldErrorDTO{Field: dateErr.Field, Message: e.Error()})
		case errors.As(e, &inputErr):
			out = append(out, FieldErrorDTO{Field: inputErr.Field, Message: e.Error()})
		default:
			out = append(out, FieldErrorDTO{Message: e.Error()})
		}
	}
	return out
}

// =============================================================================
// REFERENCE DATA
// =============================================================================

// ListHolidays returns the observed federal holidays of a year; the current
// year when none is given.
// GET /api/holidays?year=2026
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := h.now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < minYear || y > maxYear {
			writeError(w, http.StatusBadRequest, "Invalid year", "invalid_year", raw)
			return
		}
		year = y
	}

	holidays := h.Holidays.Holidays(year)
	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, hol := range holidays {
		dtos = append(dtos, HolidayDTO{
			Name:    hol.Name,
			Date:    hol.Observed.String(),
			Actual:  hol.Actual.String(),
			Shifted: hol.Shifted(),
		})
	}
	writeJSON(w, http.StatusOK, HolidaysResponse{Year: year, Holidays: dtos})
}

// GetBands returns the active band tables.
// GET /api/bands
func (h *Handler) GetBands(w http.ResponseWriter, r *http.Request) {
	bt := h.BandTables()
	thresholds := make(map[string]int, len(bt))
	for model, table := range bt {
		thresholds[string(model)] = table.CustomThreshold()
	}
	writeJSON(w, http.StatusOK, BandsResponse{
		Bands:           h.BandFactory.ToJSON(bt),
		CustomThreshold: thresholds,
	})
}

// GetLegend returns the label names in display order.
// GET /api/labels
func (h *Handler) GetLegend(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LegendResponse{Labels: payroll.Legend})
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ListScenarios returns the demo input sets.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"scenarios": scenarios})
}

// ComputeScenario computes one demo input set.
// POST /api/scenarios/{id}/compute
func (h *Handler) ComputeScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sc, ok := findScenario(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Scenario not found", "not_found", id)
		return
	}
	h.compute(w, r, sc.Inputs)
}

// =============================================================================
// HEALTH
// =============================================================================

// Health reports liveness and the years currently cached.
// GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"holiday_years": h.Holidays.Years(),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message, code string, details any) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code, Details: details})
}
