package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/stacksolutions/estimator/internal/handler/validator"
	"github.com/stacksolutions/estimator/internal/model"
	"github.com/stacksolutions/estimator/internal/service"
)

// ConsultationHandler serves consultation availability and bookings.
type ConsultationHandler struct {
	consultationService service.ConsultationService
	validator           *validator.Validator
	now                 func() time.Time
}

func NewConsultationHandler(consultationService service.ConsultationService) *ConsultationHandler {
	v := validator.NewValidator()
	v.Register(validator.NewConsultationValidationRules()...)
	return &ConsultationHandler{consultationService: consultationService, validator: v, now: time.Now}
}

type datesResponse struct {
	Dates []model.AvailableDate `json:"dates"`
	Slots []string              `json:"slots"`
}

// Dates handles GET /api/consultation/dates?days=N.
func (h *ConsultationHandler) Dates(w http.ResponseWriter, r *http.Request) {
	days := 0
	if d := r.URL.Query().Get("days"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid_input", "days must be a positive integer")
			return
		}
		days = n
	}
	writeJSON(w, http.StatusOK, datesResponse{
		Dates: h.consultationService.AvailableDates(h.now(), days),
		Slots: h.consultationService.ListSlots(),
	})
}

type slotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// Slots handles GET /api/consultation/slots?date=YYYY-MM-DD and lists the
// slots still open on that day.
func (h *ConsultationHandler) Slots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if err := h.validator.Var(date, "required,datetime=2006-01-02"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "date must be YYYY-MM-DD")
		return
	}

	slots, err := h.consultationService.OpenSlots(r.Context(), date)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, slotsResponse{Date: date, Slots: slots})
	case errors.Is(err, service.ErrUnavailableDate):
		writeError(w, http.StatusUnprocessableEntity, "unavailable_date", err.Error())
	default:
		slog.Error("list open slots failed", "date", date, "error", err)
		writeError(w, http.StatusInternalServerError, "slots_failed", "")
	}
}

// Book handles POST /api/consultation/bookings.
func (h *ConsultationHandler) Book(w http.ResponseWriter, r *http.Request) {
	var input model.ConsultationBookingInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Trim()
	if err := h.validator.Struct(input); err != nil {
		writeValidationError(w, err)
		return
	}

	booking, err := h.consultationService.Book(r.Context(), input)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, booking)
	case errors.Is(err, service.ErrUnknownSlot):
		writeError(w, http.StatusUnprocessableEntity, "unknown_slot", err.Error())
	case errors.Is(err, service.ErrUnavailableDate):
		writeError(w, http.StatusUnprocessableEntity, "unavailable_date", err.Error())
	case errors.Is(err, service.ErrSlotTaken):
		writeError(w, http.StatusConflict, "slot_taken", err.Error())
	default:
		slog.Error("booking failed", "error", err)
		writeError(w, http.StatusInternalServerError, "booking_failed", "")
	}
}
