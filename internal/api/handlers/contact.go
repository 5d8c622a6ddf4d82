package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bistro-gourmand/ordering-platform/internal/api/middleware"
	"github.com/bistro-gourmand/ordering-platform/internal/models"
	service "github.com/bistro-gourmand/ordering-platform/internal/services"
	"github.com/bistro-gourmand/ordering-platform/internal/utils"
	"github.com/bistro-gourmand/ordering-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ContactHandler struct {
	contactService *service.ContactService
	validator      *validator.Validate
}

func NewContactHandler(contactService *service.ContactService, validate *validator.Validate) *ContactHandler {
	return &ContactHandler{contactService: contactService, validator: validate}
}

// Submit accepts a contact-form message. Field validation failures come back
// as inline per-field messages; the acknowledgment mail goes out after a
// fixed delay and its outcome never affects this response.
func (h *ContactHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ContactRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid contact input")

			return
		}

		msg, _, err := h.contactService.Submit(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to submit contact message", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Contact message received", slog.String("messageId", msg.ID.String()))
		response.Success(w, http.StatusAccepted, models.ContactResponse{
			ID:      msg.ID,
			Message: "Votre message a bien été envoyé",
		})
	}
}
