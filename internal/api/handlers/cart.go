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

type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService, validate *validator.Validate) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validate}
}

func cartResponse(cart *models.Cart) models.CartResponse {
	return models.CartResponse{
		Cart:       cart,
		Total:      cart.Total(),
		TotalItems: cart.TotalItems(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			logger.Warn("Cart access without session")
			response.Error(w, errors.UnauthorizedError("Session required"))

			return
		}

		cart, err := h.cartService.GetCart(r.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to load cart", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cartResponse(cart))
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			logger.Warn("Cart mutation without session")
			response.Error(w, errors.UnauthorizedError("Session required"))

			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")

			return
		}

		cart, err := h.cartService.AddItem(r.Context(), sessionID, &req)
		if err != nil {
			logger.Error("Failed to add item", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Item added to cart", slog.String("menuItemId", req.MenuItemID.String()), slog.Int("totalItems", cart.TotalItems()))
		response.Success(w, http.StatusOK, cartResponse(cart))
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			logger.Warn("Cart mutation without session")
			response.Error(w, errors.UnauthorizedError("Session required"))

			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update quantity input")

			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), sessionID, &req)
		if err != nil {
			logger.Error("Failed to update quantity", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cartResponse(cart))
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			logger.Warn("Cart mutation without session")
			response.Error(w, errors.UnauthorizedError("Session required"))

			return
		}

		lineID := r.PathValue("id")
		if lineID == "" {
			response.Error(w, errors.BadRequestError("Line id is required"))

			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), sessionID, lineID)
		if err != nil {
			logger.Error("Failed to remove item", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cartResponse(cart))
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			logger.Warn("Cart mutation without session")
			response.Error(w, errors.UnauthorizedError("Session required"))

			return
		}

		cart, err := h.cartService.ClearCart(r.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cartResponse(cart))
	}
}
