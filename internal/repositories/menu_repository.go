package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/bistro-gourmand/ordering-platform/internal/models"
	"github.com/bistro-gourmand/ordering-platform/internal/utils"
	"github.com/google/uuid"
)

type MenuRepository interface {
	GetMenuItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
}

type menuRepository struct {
	DB *sql.DB
}

func NewMenuRepo(db *sql.DB) MenuRepository {
	return &menuRepository{DB: db}
}

func (r *menuRepository) GetMenuItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, price, category, has_options, options, created_at, updated_at
		FROM menu_items
		WHERE id = $1
	`

	item := &models.MenuItem{}

	var optionsJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&item.ID, &item.Name, &item.Price, &item.Category, &item.HasOptions, &optionsJSON, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying menu item: %w", err)
	}

	if len(optionsJSON) > 0 {
		item.Options = &models.OptionConfig{}
		if err := json.Unmarshal(optionsJSON, item.Options); err != nil {
			return nil, fmt.Errorf("failed to unmarshal option config: %w", err)
		}
	}

	return item, nil
}

func (r *menuRepository) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, price, category, has_options, options, created_at, updated_at
		FROM menu_items
		ORDER BY category, name
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("querying menu items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem

	for rows.Next() {

		var item models.MenuItem
		var optionsJSON []byte

		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Category, &item.HasOptions, &optionsJSON, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning menu item: %w", err)
		}

		if len(optionsJSON) > 0 {
			item.Options = &models.OptionConfig{}
			if err := json.Unmarshal(optionsJSON, item.Options); err != nil {
				return nil, fmt.Errorf("failed to unmarshal option config: %w", err)
			}
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu items: %w", err)
	}

	return items, nil
}
