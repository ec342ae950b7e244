package recurring

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/penna/penna/internal/rest"
	"github.com/penna/penna/pkg/schedule"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type RecurringPaymentDTO struct {
	Id                string  `json:"id,omitempty"`
	Name              string  `json:"name"`
	Amount            string  `json:"amount"`
	Kind              string  `json:"kind"`
	Frequency         string  `json:"frequency"`
	StartDate         string  `json:"startDate"`
	EndDate           *string `json:"endDate,omitempty"`
	BusinessDayPolicy string  `json:"businessDayPolicy,omitempty"`
	Active            bool    `json:"active"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Register godoc
// @Summary Create a recurring payment
// @Tags Recurring
// @Accept json
// @Produce json
// @Param payment body RecurringPaymentDTO true "Recurring payment"
// @Success 201 {object} RecurringPaymentDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/recurring [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new recurring payment")
	w.Header().Set("Content-Type", "application/json")

	var dto RecurringPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payment, err := dtoToPayment(dto)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), payment)
	if err != nil {
		if errors.Is(err, ErrPaymentDataInvalid) {
			writeBadRequest(w, err)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(PaymentToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetAll godoc
// @Summary List recurring payments
// @Tags Recurring
// @Produce json
// @Param includeInactive query bool false "Include inactive payments"
// @Success 200 {array} RecurringPaymentDTO
// @Router /api/recurring [get]
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	includeInactive := r.URL.Query().Has("includeInactive")

	payments, err := h.service.GetAll(r.Context(), includeInactive)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	paymentsDTO := make([]RecurringPaymentDTO, 0, len(payments))
	for _, payment := range payments {
		paymentsDTO = append(paymentsDTO, PaymentToDTO(payment))
	}

	if err := json.NewEncoder(w).Encode(paymentsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Get godoc
// @Summary Get one recurring payment
// @Tags Recurring
// @Produce json
// @Param id path string true "Payment id"
// @Success 200 {object} RecurringPaymentDTO
// @Failure 404 {string} string "Not found"
// @Router /api/recurring/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["id"]

	payment, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			http.Error(w, "recurring payment not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(PaymentToDTO(payment)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Update godoc
// @Summary Update a recurring payment
// @Tags Recurring
// @Accept json
// @Produce json
// @Param id path string true "Payment id"
// @Param payment body RecurringPaymentDTO true "Recurring payment"
// @Success 200 {object} RecurringPaymentDTO
// @Router /api/recurring/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["id"]

	var dto RecurringPaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Id != "" && dto.Id != id {
		http.Error(w, "payment id in request body does not match the path", http.StatusBadRequest)
		return
	}
	payment, err := dtoToPayment(dto)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	payment.Id = id

	updated, err := h.service.Update(r.Context(), payment)
	if err != nil {
		switch {
		case errors.Is(err, ErrPaymentNotFound):
			http.Error(w, "recurring payment not found", http.StatusNotFound)
		case errors.Is(err, ErrPaymentDataInvalid):
			writeBadRequest(w, err)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := json.NewEncoder(w).Encode(PaymentToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Delete godoc
// @Summary Delete a recurring payment
// @Tags Recurring
// @Param id path string true "Payment id"
// @Success 204
// @Failure 404 {string} string "Not found"
// @Router /api/recurring/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			http.Error(w, "recurring payment not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeBadRequest(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	if encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid recurring payment", Details: err.Error()}); encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

func PaymentToDTO(p RecurringPayment) RecurringPaymentDTO {
	dto := RecurringPaymentDTO{
		Id:                p.Id,
		Name:              p.Name,
		Amount:            p.Amount.String(),
		Kind:              string(p.Kind),
		Frequency:         string(p.Schedule.Frequency),
		StartDate:         p.Schedule.Start.String(),
		BusinessDayPolicy: string(p.Schedule.Policy),
		Active:            p.Active,
	}
	if p.Schedule.End != nil {
		end := p.Schedule.End.String()
		dto.EndDate = &end
	}
	return dto
}

func dtoToPayment(dto RecurringPaymentDTO) (RecurringPayment, error) {
	amount, err := decimal.NewFromString(dto.Amount)
	if err != nil {
		return RecurringPayment{}, fmt.Errorf("%w: amount %q is not a decimal", ErrPaymentDataInvalid, dto.Amount)
	}
	start, err := schedule.ParseDate(dto.StartDate)
	if err != nil {
		return RecurringPayment{}, fmt.Errorf("%w: %v", ErrPaymentDataInvalid, err)
	}

	payment := RecurringPayment{
		Id:     dto.Id,
		Name:   dto.Name,
		Amount: amount,
		Kind:   Kind(dto.Kind),
		Schedule: schedule.Schedule{
			Start:     start,
			Frequency: schedule.Frequency(dto.Frequency),
			Policy:    schedule.BusinessDayPolicy(dto.BusinessDayPolicy),
		},
		Active: dto.Active,
	}
	if payment.Schedule.Policy == "" {
		payment.Schedule.Policy = schedule.PolicyNone
	}
	if dto.EndDate != nil {
		end, err := schedule.ParseDate(*dto.EndDate)
		if err != nil {
			return RecurringPayment{}, fmt.Errorf("%w: %v", ErrPaymentDataInvalid, err)
		}
		payment.Schedule.End = &end
	}
	return payment, nil
}
