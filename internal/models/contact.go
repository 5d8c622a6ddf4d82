package models

import (
	"time"

	"github.com/google/uuid"
)

type ContactRequest struct {
	Name    string `json:"name" validate:"required,customer_name"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,phone_fr"`
	Subject string `json:"subject" validate:"required,min=2,max=120"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactResponse struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}
