package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bistro-gourmand/ordering-platform/internal/api/middleware"
	service "github.com/bistro-gourmand/ordering-platform/internal/services"
	"github.com/bistro-gourmand/ordering-platform/internal/utils"
	"github.com/bistro-gourmand/ordering-platform/internal/utils/response"
)

type MenuHandler struct {
	menuService *service.MenuService
}

func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

func (h *MenuHandler) ListMenu() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		items, err := h.menuService.ListMenu(r.Context())
		if err != nil {
			logger.Error("Failed to list menu", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, items)
	}
}

func (h *MenuHandler) GetMenuItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid menu item id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		item, err := h.menuService.GetMenuItem(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get menu item", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, item)
	}
}
