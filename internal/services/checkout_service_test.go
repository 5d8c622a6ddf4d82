package service_test

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/bistro-gourmand/ordering-platform/internal/errors"
	"github.com/bistro-gourmand/ordering-platform/internal/models"
	"github.com/bistro-gourmand/ordering-platform/internal/rules"
	service "github.com/bistro-gourmand/ordering-platform/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testMinimumOrder = 15.0

func newCheckoutService(t *testing.T, store *MockCartStore, orderRepo *MockOrderRepository, m *MockMailer) *service.CheckoutService {
	t.Helper()

	v := validator.New()
	require.NoError(t, rules.Register(v))

	return service.NewCheckoutService(store, orderRepo, m, v, testMinimumOrder)
}

func validCustomer() *models.CustomerDetails {
	return &models.CustomerDetails{
		LastName:      "Dupont",
		FirstName:     "Marie",
		Address:       "12 rue des Lilas",
		City:          "Lyon",
		Phone:         "06 12 34 56 78",
		PaymentMethod: "card",
	}
}

func filledCart(sessionID uuid.UUID) *models.Cart {
	return &models.Cart{
		SessionID: sessionID,
		Items: []models.CartLineItem{
			{ID: "plat-a-10.00", Name: "Plat A", Price: 10, Quantity: 2},
			{ID: "plat-b-6.00", Name: "Plat B", Price: 6, Quantity: 1},
		},
	}
}

func TestCheckoutService_Checkout(t *testing.T) {
	t.Run("Composes a pending order awaiting confirmation", func(t *testing.T) {
		// Arrange
		store := new(MockCartStore)
		orderRepo := new(MockOrderRepository)
		m := new(MockMailer)
		svc := newCheckoutService(t, store, orderRepo, m)

		sessionID := uuid.New()
		store.On("Get", mock.Anything, sessionID).Return(filledCart(sessionID), nil)
		store.On("SavePending", mock.Anything, mock.AnythingOfType("*models.PendingOrder")).Return(nil)

		// Act
		pending, err := svc.Checkout(context.Background(), sessionID, validCustomer())

		// Assert
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, pending.Token)
		assert.Equal(t, sessionID, pending.SessionID)
		assert.InDelta(t, 26.0, pending.Summary.Total, 1e-9)
		assert.Equal(t, 3, pending.Summary.TotalItems)
		assert.Len(t, pending.Summary.Items, 2)
		store.AssertExpectations(t)
		orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("Empty cart cannot check out", func(t *testing.T) {
		store := new(MockCartStore)
		svc := newCheckoutService(t, store, new(MockOrderRepository), new(MockMailer))

		sessionID := uuid.New()
		store.On("Get", mock.Anything, sessionID).Return(&models.Cart{SessionID: sessionID}, nil)

		_, err := svc.Checkout(context.Background(), sessionID, validCustomer())

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeEmptyCart, appErr.Code)
	})

	t.Run("Invalid customer details are rejected", func(t *testing.T) {
		store := new(MockCartStore)
		svc := newCheckoutService(t, store, new(MockOrderRepository), new(MockMailer))

		sessionID := uuid.New()
		store.On("Get", mock.Anything, sessionID).Return(filledCart(sessionID), nil)

		customer := validCustomer()
		customer.Phone = "12345"

		_, err := svc.Checkout(context.Background(), sessionID, customer)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
		store.AssertNotCalled(t, "SavePending", mock.Anything, mock.Anything)
	})

	t.Run("Total below the minimum is rejected", func(t *testing.T) {
		store := new(MockCartStore)
		svc := newCheckoutService(t, store, new(MockOrderRepository), new(MockMailer))

		sessionID := uuid.New()
		small := &models.Cart{
			SessionID: sessionID,
			Items:     []models.CartLineItem{{ID: "plat-b-6.00", Name: "Plat B", Price: 6, Quantity: 1}},
		}
		store.On("Get", mock.Anything, sessionID).Return(small, nil)

		_, err := svc.Checkout(context.Background(), sessionID, validCustomer())

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeMinimumOrder, appErr.Code)
	})

	t.Run("Total exactly at the minimum passes", func(t *testing.T) {
		store := new(MockCartStore)
		svc := newCheckoutService(t, store, new(MockOrderRepository), new(MockMailer))

		sessionID := uuid.New()
		exact := &models.Cart{
			SessionID: sessionID,
			Items:     []models.CartLineItem{{ID: "formule-15.00", Name: "Formule", Price: 15, Quantity: 1}},
		}
		store.On("Get", mock.Anything, sessionID).Return(exact, nil)
		store.On("SavePending", mock.Anything, mock.AnythingOfType("*models.PendingOrder")).Return(nil)

		pending, err := svc.Checkout(context.Background(), sessionID, validCustomer())

		require.NoError(t, err)
		assert.InDelta(t, testMinimumOrder, pending.Summary.Total, 1e-9)
	})
}

func TestCheckoutService_Confirm(t *testing.T) {
	t.Run("Archives the order and clears the cart", func(t *testing.T) {
		// Arrange
		store := new(MockCartStore)
		orderRepo := new(MockOrderRepository)
		m := new(MockMailer)
		svc := newCheckoutService(t, store, orderRepo, m)

		sessionID := uuid.New()
		token := uuid.New()
		pending := &models.PendingOrder{
			Token:     token,
			SessionID: sessionID,
			Summary: models.OrderSummary{
				Customer:   *validCustomer(),
				Items:      filledCart(sessionID).Items,
				Total:      26,
				TotalItems: 3,
			},
		}

		store.On("GetPending", mock.Anything, sessionID).Return(pending, nil)
		orderRepo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)
		store.On("Delete", mock.Anything, sessionID).Return(nil)
		store.On("DeletePending", mock.Anything, sessionID).Return(nil)

		// Act
		order, err := svc.Confirm(context.Background(), sessionID, token)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusConfirmed, order.Status)
		assert.Equal(t, pending.Summary, order.Summary)
		store.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
	})

	t.Run("Mismatched token is rejected and the cart untouched", func(t *testing.T) {
		store := new(MockCartStore)
		orderRepo := new(MockOrderRepository)
		svc := newCheckoutService(t, store, orderRepo, new(MockMailer))

		sessionID := uuid.New()
		pending := &models.PendingOrder{Token: uuid.New(), SessionID: sessionID}
		store.On("GetPending", mock.Anything, sessionID).Return(pending, nil)

		_, err := svc.Confirm(context.Background(), sessionID, uuid.New())

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
		orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Expired pending order is rejected", func(t *testing.T) {
		store := new(MockCartStore)
		orderRepo := new(MockOrderRepository)
		svc := newCheckoutService(t, store, orderRepo, new(MockMailer))

		sessionID := uuid.New()
		store.On("GetPending", mock.Anything, sessionID).Return(nil, nil)

		_, err := svc.Confirm(context.Background(), sessionID, uuid.New())

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
	})

	t.Run("Archive failure surfaces and keeps the cart", func(t *testing.T) {
		store := new(MockCartStore)
		orderRepo := new(MockOrderRepository)
		svc := newCheckoutService(t, store, orderRepo, new(MockMailer))

		sessionID := uuid.New()
		token := uuid.New()
		pending := &models.PendingOrder{Token: token, SessionID: sessionID}

		store.On("GetPending", mock.Anything, sessionID).Return(pending, nil)
		orderRepo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*models.Order")).Return(errors.New("pg down"))

		_, err := svc.Confirm(context.Background(), sessionID, token)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeDatabaseError, appErr.Code)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestComposeOrderText(t *testing.T) {
	order := &models.Order{
		ID:     uuid.New(),
		Status: models.OrderStatusConfirmed,
		Summary: models.OrderSummary{
			Customer: *validCustomer(),
			Items: []models.CartLineItem{
				{Name: "Pizza Margherita", Price: 12.5, Quantity: 2, Options: []models.LineItemOption{
					{Key: "size", Label: "Taille", Value: "grande"},
				}},
				{Name: "Tiramisu", Price: 6, Quantity: 1},
			},
			Total:      31.0,
			TotalItems: 3,
		},
	}

	text := service.ComposeOrderText(order)

	assert.Contains(t, text, "Marie Dupont")
	assert.Contains(t, text, "2 x Pizza Margherita (12.50)")
	assert.Contains(t, text, "[Taille: grande]")
	assert.Contains(t, text, "1 x Tiramisu (6.00)")
	assert.Contains(t, text, "Total: 31.00 (3 articles)")
	assert.Contains(t, text, "Paiement: card")
}
