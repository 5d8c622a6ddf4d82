package service

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/bistro-gourmand/ordering-platform/internal/errors"
	"github.com/bistro-gourmand/ordering-platform/internal/metrics"
	"github.com/bistro-gourmand/ordering-platform/internal/models"
	repository "github.com/bistro-gourmand/ordering-platform/internal/repositories"
	"github.com/google/uuid"
)

type CartService struct {
	store    repository.CartStore
	menuRepo repository.MenuRepository
}

func NewCartService(store repository.CartStore, menuRepo repository.MenuRepository) *CartService {
	return &CartService{store: store, menuRepo: menuRepo}
}

// GetCart restores the session's cart. A session with no saved cart, or a
// corrupt payload, yields an empty cart.
func (s *CartService) GetCart(ctx context.Context, sessionID uuid.UUID) (*models.Cart, error) {

	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	return cart, nil
}

// AddItem resolves the menu item, validates and collects the selected
// options, then merge-adds one unit into the cart. An invalid option
// selection aborts before any cart mutation.
func (s *CartService) AddItem(ctx context.Context, sessionID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {

	menuItem, err := s.menuRepo.GetMenuItemByID(ctx, req.MenuItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Menu item not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to load menu item").WithError(err)
	}

	options, err := CollectOptions(menuItem, req.Options)
	if err != nil {
		return nil, err
	}

	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	item := models.CartLineItem{
		Name:     menuItem.Name,
		Price:    menuItem.Price,
		Category: menuItem.Category,
		Options:  options,
	}
	item.ID = models.LineItemID(item.Name, item.Price, item.Options)

	cart.Add(item)

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, apperrors.ThirdPartyError("Failed to save cart").WithError(err)
	}

	metrics.CartMutations.WithLabelValues("add").Inc()

	return cart, nil
}

// UpdateQuantity sets a line's quantity; zero or negative removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error) {

	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	cart.SetQuantity(req.LineID, req.Quantity)

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, apperrors.ThirdPartyError("Failed to save cart").WithError(err)
	}

	metrics.CartMutations.WithLabelValues("update_quantity").Inc()

	return cart, nil
}

// RemoveItem deletes a line; an absent id is not an error.
func (s *CartService) RemoveItem(ctx context.Context, sessionID uuid.UUID, lineID string) (*models.Cart, error) {

	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	cart.Remove(lineID)

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, apperrors.ThirdPartyError("Failed to save cart").WithError(err)
	}

	metrics.CartMutations.WithLabelValues("remove").Inc()

	return cart, nil
}

func (s *CartService) ClearCart(ctx context.Context, sessionID uuid.UUID) (*models.Cart, error) {

	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	cart.Clear()

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, apperrors.ThirdPartyError("Failed to save cart").WithError(err)
	}

	metrics.CartMutations.WithLabelValues("clear").Inc()

	return cart, nil
}
