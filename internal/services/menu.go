package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/bistro-gourmand/ordering-platform/internal/cache"
	apperrors "github.com/bistro-gourmand/ordering-platform/internal/errors"
	"github.com/bistro-gourmand/ordering-platform/internal/models"
	repository "github.com/bistro-gourmand/ordering-platform/internal/repositories"
	"github.com/google/uuid"
)

const menuCacheKey = "legourmand:menu:all"

type MenuService struct {
	repo    repository.MenuRepository
	cache   cache.Cache
	menuTTL time.Duration
}

func NewMenuService(repo repository.MenuRepository, c cache.Cache, menuTTL time.Duration) *MenuService {
	return &MenuService{repo: repo, cache: c, menuTTL: menuTTL}
}

// ListMenu serves the full menu, cached. Cache failures degrade to the
// database, they never fail the request.
func (s *MenuService) ListMenu(ctx context.Context) ([]models.MenuItem, error) {

	var items []models.MenuItem

	hit, err := s.cache.Get(ctx, menuCacheKey, &items)
	if err != nil {
		slog.Warn("Menu cache read failed", slog.String("error", err.Error()))
	}

	if hit {
		return items, nil
	}

	items, err = s.repo.ListMenuItems(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to load menu").WithError(err)
	}

	if err := s.cache.Set(ctx, menuCacheKey, items, s.menuTTL); err != nil {
		slog.Warn("Menu cache write failed", slog.String("error", err.Error()))
	}

	return items, nil
}

func (s *MenuService) GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {

	item, err := s.repo.GetMenuItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Menu item not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to load menu item").WithError(err)
	}

	return item, nil
}
