package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bistro-gourmand/ordering-platform/internal/models"
	"github.com/bistro-gourmand/ordering-platform/internal/utils"
)

type ContactRepository interface {
	CreateMessage(ctx context.Context, msg *models.ContactMessage) error
}

type contactRepository struct {
	DB *sql.DB
}

func NewContactRepo(db *sql.DB) ContactRepository {
	return &contactRepository{DB: db}
}

func (r *contactRepository) CreateMessage(ctx context.Context, msg *models.ContactMessage) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO contact_messages (id, name, email, phone, subject, message, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(dbCtx, query,
		msg.ID, msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}

	return nil
}
