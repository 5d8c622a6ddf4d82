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

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	summaryJSON, err := json.Marshal(order.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal order summary: %w", err)
	}

	query := `
		INSERT INTO orders (id, session_id, status, summary, total, total_items, placed_at)
		VALUES($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.DB.ExecContext(dbCtx, query,
		order.ID, order.SessionID, order.Status, summaryJSON,
		order.Summary.Total, order.Summary.TotalItems, order.PlacedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, session_id, status, summary, placed_at
		FROM orders
		WHERE id = $1
	`

	order := &models.Order{}

	var summaryJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&order.ID, &order.SessionID, &order.Status, &summaryJSON, &order.PlacedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying order: %w", err)
	}

	if err := json.Unmarshal(summaryJSON, &order.Summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order summary: %w", err)
	}

	return order, nil
}
