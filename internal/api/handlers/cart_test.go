package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bistro-gourmand/ordering-platform/internal/api/handlers"
	apperrors "github.com/bistro-gourmand/ordering-platform/internal/errors"
	"github.com/bistro-gourmand/ordering-platform/internal/models"
	service "github.com/bistro-gourmand/ordering-platform/internal/services"
	"github.com/bistro-gourmand/ordering-platform/internal/testutils"
	"github.com/bistro-gourmand/ordering-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartHandler(store *mockCartStore, menuRepo *mockMenuRepository) *handlers.CartHandler {
	svc := service.NewCartService(store, menuRepo)

	return handlers.NewCartHandler(svc, validator.New())
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()

	var envelope response.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))

	return envelope
}

func TestCartHandler_GetCart(t *testing.T) {
	t.Run("Returns the cart with its totals", func(t *testing.T) {
		// Arrange
		store := new(mockCartStore)
		handler := newCartHandler(store, new(mockMenuRepository))

		sessionID := uuid.New()
		cart := &models.Cart{
			SessionID: sessionID,
			Items:     []models.CartLineItem{{ID: "plat-a-10.00", Name: "Plat A", Price: 10, Quantity: 2}},
		}
		store.On("Get", mock.Anything, sessionID).Return(cart, nil)

		req := testutils.CreateTestRequestWithSession(http.MethodGet, "/api/v1/cart", nil, sessionID, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.GetCart().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)

		envelope := decodeEnvelope(t, rec)
		assert.True(t, envelope.Success)

		data, err := json.Marshal(envelope.Data)
		require.NoError(t, err)

		var body models.CartResponse
		require.NoError(t, json.Unmarshal(data, &body))
		assert.InDelta(t, 20.0, body.Total, 1e-9)
		assert.Equal(t, 2, body.TotalItems)
	})

	t.Run("Missing session is unauthorized", func(t *testing.T) {
		handler := newCartHandler(new(mockCartStore), new(mockMenuRepository))

		req := testutils.CreateTestRequestWithoutSession(http.MethodGet, "/api/v1/cart", nil, nil)
		rec := httptest.NewRecorder()

		handler.GetCart().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		envelope := decodeEnvelope(t, rec)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, envelope.Error.Code)
	})
}

func TestCartHandler_AddItem(t *testing.T) {
	t.Run("Adds the item and returns the updated cart", func(t *testing.T) {
		// Arrange
		store := new(mockCartStore)
		menuRepo := new(mockMenuRepository)
		handler := newCartHandler(store, menuRepo)

		sessionID := uuid.New()
		menuItem := &models.MenuItem{ID: uuid.New(), Name: "Pizza Margherita", Price: 12.5}

		menuRepo.On("GetMenuItemByID", mock.Anything, menuItem.ID).Return(menuItem, nil)
		store.On("Get", mock.Anything, sessionID).Return(&models.Cart{SessionID: sessionID}, nil)
		store.On("Save", mock.Anything, mock.AnythingOfType("*models.Cart")).Return(nil)

		payload := fmt.Sprintf(`{"menu_item_id": %q}`, menuItem.ID)
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString(payload), sessionID, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.AddItem().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		store.AssertExpectations(t)
	})

	t.Run("Invalid option selection maps to 422 with offending keys", func(t *testing.T) {
		store := new(mockCartStore)
		menuRepo := new(mockMenuRepository)
		handler := newCartHandler(store, menuRepo)

		sessionID := uuid.New()
		menuItem := &models.MenuItem{
			ID:         uuid.New(),
			Name:       "Burger",
			Price:      11.5,
			HasOptions: true,
			Options: &models.OptionConfig{
				Mode: models.OptionModeButtons,
				Groups: []models.OptionGroup{{
					Key:       "size",
					Label:     "Taille",
					Selection: models.SelectionSingle,
					Required:  true,
					Choices:   []models.OptionChoice{{Value: "normale", Label: "Normale"}},
				}},
			},
		}
		menuRepo.On("GetMenuItemByID", mock.Anything, menuItem.ID).Return(menuItem, nil)

		payload := fmt.Sprintf(`{"menu_item_id": %q}`, menuItem.ID)
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString(payload), sessionID, nil)
		rec := httptest.NewRecorder()

		handler.AddItem().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		envelope := decodeEnvelope(t, rec)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, apperrors.ErrCodeOptionInvalid, envelope.Error.Code)
		assert.Equal(t, []string{"size"}, envelope.Error.Details)
	})

	t.Run("Malformed body is a bad request", func(t *testing.T) {
		handler := newCartHandler(new(mockCartStore), new(mockMenuRepository))

		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString("{not json"), uuid.New(), nil)
		rec := httptest.NewRecorder()

		handler.AddItem().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCartHandler_RemoveItem(t *testing.T) {
	t.Run("Removes the line by path id", func(t *testing.T) {
		store := new(mockCartStore)
		handler := newCartHandler(store, new(mockMenuRepository))

		sessionID := uuid.New()
		cart := &models.Cart{
			SessionID: sessionID,
			Items:     []models.CartLineItem{{ID: "plat-a-10.00", Name: "Plat A", Price: 10, Quantity: 1}},
		}
		store.On("Get", mock.Anything, sessionID).Return(cart, nil)
		store.On("Save", mock.Anything, mock.AnythingOfType("*models.Cart")).Return(nil)

		req := testutils.CreateTestRequestWithSession(http.MethodDelete, "/api/v1/cart/items/plat-a-10.00", nil, sessionID,
			map[string]string{"id": "plat-a-10.00"})
		rec := httptest.NewRecorder()

		handler.RemoveItem().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		envelope := decodeEnvelope(t, rec)
		data, err := json.Marshal(envelope.Data)
		require.NoError(t, err)

		var body models.CartResponse
		require.NoError(t, json.Unmarshal(data, &body))
		assert.Zero(t, body.TotalItems)
	})
}

type mockCartStore struct {
	mock.Mock
}

func (m *mockCartStore) Get(ctx context.Context, sessionID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, sessionID)

	if cart := args.Get(0); cart != nil {
		return cart.(*models.Cart), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCartStore) Save(ctx context.Context, cart *models.Cart) error {
	return m.Called(ctx, cart).Error(0)
}

func (m *mockCartStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *mockCartStore) SavePending(ctx context.Context, pending *models.PendingOrder) error {
	return m.Called(ctx, pending).Error(0)
}

func (m *mockCartStore) GetPending(ctx context.Context, sessionID uuid.UUID) (*models.PendingOrder, error) {
	args := m.Called(ctx, sessionID)

	if pending := args.Get(0); pending != nil {
		return pending.(*models.PendingOrder), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCartStore) DeletePending(ctx context.Context, sessionID uuid.UUID) error {
	return m.Called(ctx, sessionID).Error(0)
}

type mockMenuRepository struct {
	mock.Mock
}

func (m *mockMenuRepository) GetMenuItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	args := m.Called(ctx, id)

	if item := args.Get(0); item != nil {
		return item.(*models.MenuItem), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockMenuRepository) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	args := m.Called(ctx)

	if items := args.Get(0); items != nil {
		return items.([]models.MenuItem), args.Error(1)
	}

	return nil, args.Error(1)
}
