package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/stacksolutions/estimator/internal/estimation"
	"github.com/stacksolutions/estimator/internal/handler/validator"
	"github.com/stacksolutions/estimator/internal/model"
	"github.com/stacksolutions/estimator/internal/repository"
	"github.com/stacksolutions/estimator/internal/service"
)

// EstimateHandler exposes the project and ROI calculators.
type EstimateHandler struct {
	estimateService service.EstimateService
	validator       *validator.Validator
}

func NewEstimateHandler(estimateService service.EstimateService) *EstimateHandler {
	v := validator.NewValidator()
	v.Register(validator.NewEstimateValidationRules()...)
	return &EstimateHandler{estimateService: estimateService, validator: v}
}

// projectRequest is the JSON body for POST /api/estimates/project.
type projectRequest struct {
	Type       string   `json:"type" validate:"required,rate_id"`
	Complexity string   `json:"complexity" validate:"required,rate_id"`
	Features   []string `json:"features" validate:"max=32,dive,rate_id"`
}

// roiRequest is the JSON body for POST /api/estimates/roi. Numeric fields are
// pointers so a missing field is told apart from zero; sign checks are left
// to the calculator.
type roiRequest struct {
	CurrentRevenue    *float64 `json:"current_revenue" validate:"required"`
	TeamSize          *int     `json:"team_size" validate:"required"`
	HourlyRate        *float64 `json:"hourly_rate" validate:"required"`
	InefficiencyHours *float64 `json:"inefficiency_hours" validate:"required"`
	Category          string   `json:"category" validate:"required,rate_id"`
}

type estimateListResponse struct {
	Estimates []*model.EstimateRecord `json:"estimates"`
}

// Project handles POST /api/estimates/project.
func (h *EstimateHandler) Project(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	quote, err := h.estimateService.EstimateProject(r.Context(), model.ProjectEstimateRequest{
		Type:       req.Type,
		Complexity: req.Complexity,
		Features:   req.Features,
	})
	if err != nil {
		writeEstimateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// ROI handles POST /api/estimates/roi.
func (h *EstimateHandler) ROI(w http.ResponseWriter, r *http.Request) {
	var req roiRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	quote, err := h.estimateService.EstimateROI(r.Context(), model.ROIEstimateRequest{
		CurrentRevenue:    *req.CurrentRevenue,
		TeamSize:          *req.TeamSize,
		HourlyRate:        *req.HourlyRate,
		InefficiencyHours: *req.InefficiencyHours,
		Category:          req.Category,
	})
	if err != nil {
		writeEstimateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// Get handles GET /api/estimates/{id}.
func (h *EstimateHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.estimateService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeEstimateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// List handles GET /api/estimates?kind=project|roi&limit=N.
func (h *EstimateHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "limit must be an integer")
			return
		}
		limit = n
	}

	records, err := h.estimateService.Recent(r.Context(), model.EstimateKind(r.URL.Query().Get("kind")), limit)
	if err != nil {
		writeEstimateError(w, err)
		return
	}

	// Return [] not null for empty lists
	if records == nil {
		records = []*model.EstimateRecord{}
	}
	writeJSON(w, http.StatusOK, estimateListResponse{Estimates: records})
}

func writeValidationError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:  "invalid_input",
		Fields: validator.Fields(err),
	})
}

func writeEstimateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, estimation.ErrInvalidSelection):
		writeError(w, http.StatusUnprocessableEntity, "invalid_selection", err.Error())
	case errors.Is(err, estimation.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, estimation.ErrInvalidConfiguration):
		slog.Error("rate table misconfigured", "error", err)
		writeError(w, http.StatusInternalServerError, "invalid_configuration", "")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "")
	default:
		slog.Error("estimate failed", "error", err)
		writeError(w, http.StatusInternalServerError, "estimate_failed", "")
	}
}
