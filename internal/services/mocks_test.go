package service_test

import (
	"context"
	"time"

	"github.com/bistro-gourmand/ordering-platform/internal/models"
	"github.com/bistro-gourmand/ordering-platform/pkg/mailer"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCartStore struct {
	mock.Mock
}

func (m *MockCartStore) Get(ctx context.Context, sessionID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, sessionID)

	if cart := args.Get(0); cart != nil {
		return cart.(*models.Cart), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartStore) Save(ctx context.Context, cart *models.Cart) error {
	args := m.Called(ctx, cart)

	return args.Error(0)
}

func (m *MockCartStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)

	return args.Error(0)
}

func (m *MockCartStore) SavePending(ctx context.Context, pending *models.PendingOrder) error {
	args := m.Called(ctx, pending)

	return args.Error(0)
}

func (m *MockCartStore) GetPending(ctx context.Context, sessionID uuid.UUID) (*models.PendingOrder, error) {
	args := m.Called(ctx, sessionID)

	if pending := args.Get(0); pending != nil {
		return pending.(*models.PendingOrder), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartStore) DeletePending(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)

	return args.Error(0)
}

type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) GetMenuItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	args := m.Called(ctx, id)

	if item := args.Get(0); item != nil {
		return item.(*models.MenuItem), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockMenuRepository) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	args := m.Called(ctx)

	if items := args.Get(0); items != nil {
		return items.([]models.MenuItem), args.Error(1)
	}

	return nil, args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)

	if order := args.Get(0); order != nil {
		return order.(*models.Order), args.Error(1)
	}

	return nil, args.Error(1)
}

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) CreateMessage(ctx context.Context, msg *models.ContactMessage) error {
	args := m.Called(ctx, msg)

	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, email *mailer.Email) error {
	args := m.Called(ctx, email)

	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, value any) (bool, error) {
	args := m.Called(ctx, key, value)

	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)

	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)

	return args.Error(0)
}

func (m *MockCache) Close() error {
	args := m.Called()

	return args.Error(0)
}
