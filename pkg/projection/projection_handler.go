package projection

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/penna/penna/internal/rest"
	"github.com/penna/penna/internal/utils"
	"github.com/penna/penna/pkg/recurring"
	"github.com/penna/penna/pkg/schedule"
)

type UpcomingPaymentDTO struct {
	Payment   recurring.RecurringPaymentDTO `json:"payment"`
	Date      string                        `json:"date"`
	DaysUntil int                           `json:"daysUntil"`
}

// MonthlyProjectionDTO is the JSON shape of a monthly projection. The nested
// occurrences report daysUntil relative to the first day of the month.
type MonthlyProjectionDTO struct {
	Year        int                  `json:"year"`
	Month       int                  `json:"month"`
	Income      string               `json:"income"`
	Expenses    string               `json:"expenses"`
	Net         string               `json:"net"`
	Occurrences []UpcomingPaymentDTO `json:"occurrences"`
}

type Handler struct {
	service     Service
	icsRenderer Renderer
	clock       utils.Clock
	defaultDays int
}

type Renderer interface {
	RenderUpcoming(upcoming []UpcomingPayment) (string, error)
}

func NewHandler(service Service, icsRenderer Renderer, clock utils.Clock, defaultDays int) *Handler {
	return &Handler{service, icsRenderer, clock, defaultDays}
}

// GetUpcoming handles GET requests to retrieve projected payment occurrences
// @Summary List upcoming payment occurrences
// @Tags Projection
// @Produce json
// @Param days query int false "Number of days ahead to project"
// @Param from query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} UpcomingPaymentDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/projection/upcoming [get]
func (h *Handler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	from, days, err := h.upcomingParams(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid query parameters",
			Details: err.Error(),
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	upcoming, err := h.service.Upcoming(r.Context(), from, days)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	upcomingDTO := make([]UpcomingPaymentDTO, 0, len(upcoming))
	for _, occurrence := range upcoming {
		upcomingDTO = append(upcomingDTO, upcomingToDTO(occurrence))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(upcomingDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetUpcomingIcs handles GET requests for the iCalendar feed of upcoming occurrences
// @Summary Upcoming payment occurrences as an iCalendar feed
// @Tags Projection
// @Produce text/calendar
// @Param days query int false "Number of days ahead to project"
// @Param from query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {string} string
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/projection/upcoming/ics [get]
func (h *Handler) GetUpcomingIcs(w http.ResponseWriter, r *http.Request) {
	from, days, err := h.upcomingParams(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid query parameters",
			Details: err.Error(),
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	upcoming, err := h.service.Upcoming(r.Context(), from, days)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	feed, err := h.icsRenderer.RenderUpcoming(upcoming)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(feed)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetMonthly handles GET requests for a monthly income and expense projection
// @Summary Monthly projection of recurring payments
// @Tags Projection
// @Produce json
// @Param month query string true "Month to project (YYYY-MM)"
// @Success 200 {object} MonthlyProjectionDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/projection/monthly [get]
func (h *Handler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	monthString := r.URL.Query().Get("month")
	monthStart, err := time.Parse("2006-01", monthString)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid month format",
			Details: "month must be in YYYY-MM format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	monthly, err := h.service.Monthly(r.Context(), monthStart.Year(), monthStart.Month())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(monthlyToDTO(monthly)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// upcomingParams resolves the reference date and horizon for projection
// requests. The reference date defaults to the clock's current day, so the
// service itself never has to know what "today" is.
func (h *Handler) upcomingParams(r *http.Request) (schedule.Date, int, error) {
	from := schedule.DateOf(h.clock.Now())
	if fromString := r.URL.Query().Get("from"); fromString != "" {
		parsed, err := schedule.ParseDate(fromString)
		if err != nil {
			return schedule.Date{}, 0, err
		}
		from = parsed
	}

	days := h.defaultDays
	if daysString := r.URL.Query().Get("days"); daysString != "" {
		parsed, err := strconv.Atoi(daysString)
		if err != nil {
			return schedule.Date{}, 0, err
		}
		days = parsed
	}
	return from, days, nil
}

func upcomingToDTO(occurrence UpcomingPayment) UpcomingPaymentDTO {
	return UpcomingPaymentDTO{
		Payment:   recurring.PaymentToDTO(occurrence.Payment),
		Date:      occurrence.Date.String(),
		DaysUntil: occurrence.DaysUntil,
	}
}

func monthlyToDTO(monthly MonthlyProjection) MonthlyProjectionDTO {
	occurrencesDTO := make([]UpcomingPaymentDTO, 0, len(monthly.Occurrences))
	for _, occurrence := range monthly.Occurrences {
		occurrencesDTO = append(occurrencesDTO, upcomingToDTO(occurrence))
	}
	return MonthlyProjectionDTO{
		Year:        monthly.Year,
		Month:       int(monthly.Month),
		Income:      monthly.Income.StringFixed(2),
		Expenses:    monthly.Expenses.StringFixed(2),
		Net:         monthly.Net.StringFixed(2),
		Occurrences: occurrencesDTO,
	}
}
