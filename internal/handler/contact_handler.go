package handler

import (
	"log/slog"
	"net/http"

	"github.com/stacksolutions/estimator/internal/handler/validator"
	"github.com/stacksolutions/estimator/internal/model"
	"github.com/stacksolutions/estimator/internal/service"
)

const contactReplyNotice = "We'll get back to you within 2-4 hours."

// ContactHandler accepts contact form submissions.
type ContactHandler struct {
	contactService service.ContactService
	validator      *validator.Validator
}

func NewContactHandler(contactService service.ContactService) *ContactHandler {
	v := validator.NewValidator()
	v.Register(validator.NewContactValidationRules()...)
	return &ContactHandler{contactService: contactService, validator: v}
}

type contactResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Submit handles POST /api/contact.
// first_name, last_name (2+ chars), email, project_type, budget and a description
// of at least 20 characters are required; phone, company and timeline are optional.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input model.ContactInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Trim()
	if err := h.validator.Struct(input); err != nil {
		writeValidationError(w, err)
		return
	}

	msg, err := h.contactService.Submit(r.Context(), input)
	if err != nil {
		slog.Error("contact submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, "submit_failed", "")
		return
	}
	writeJSON(w, http.StatusCreated, contactResponse{ID: msg.ID, Status: msg.Status, Message: contactReplyNotice})
}
