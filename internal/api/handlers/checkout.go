package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bistro-gourmand/ordering-platform/internal/api/middleware"
	"github.com/bistro-gourmand/ordering-platform/internal/errors"
	"github.com/bistro-gourmand/ordering-platform/internal/models"
	service "github.com/bistro-gourmand/ordering-platform/internal/services"
	"github.com/bistro-gourmand/ordering-platform/internal/utils"
	"github.com/bistro-gourmand/ordering-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService *service.CheckoutService, validate *validator.Validate) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validate}
}

// Checkout validates the customer details against the current cart and
// returns the summary plus a confirmation token. The cart is not touched.
func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			logger.Warn("Checkout without session")
			response.Error(w, errors.UnauthorizedError("Session required"))

			return
		}

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid checkout input")

			return
		}

		pending, err := h.checkoutService.Checkout(r.Context(), sessionID, &req.Customer)
		if err != nil {
			logger.Warn("Checkout refused", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Checkout summary composed", slog.String("token", pending.Token.String()))
		response.Success(w, http.StatusOK, models.CheckoutResponse{
			Token:   pending.Token,
			Summary: pending.Summary,
		})
	}
}

// Confirm finalizes the pending order: archives it, clears the cart and
// resets the transient customer details.
func (h *CheckoutHandler) Confirm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			logger.Warn("Confirmation without session")
			response.Error(w, errors.UnauthorizedError("Session required"))

			return
		}

		var req models.ConfirmOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid confirmation input")

			return
		}

		order, err := h.checkoutService.Confirm(r.Context(), sessionID, req.Token)
		if err != nil {
			logger.Error("Failed to confirm order", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Order confirmed", slog.String("orderId", order.ID.String()), slog.Int("totalItems", order.Summary.TotalItems))
		response.Success(w, http.StatusCreated, order)
	}
}
