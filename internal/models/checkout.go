package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// CustomerDetails is transient checkout input; it is validated, folded into
// the order summary and never stored on its own.
type CustomerDetails struct {
	LastName      string `json:"last_name" validate:"required,customer_name"`
	FirstName     string `json:"first_name" validate:"required,customer_name"`
	Address       string `json:"address" validate:"required,min=5,max=200"`
	City          string `json:"city" validate:"required,customer_name"`
	Phone         string `json:"phone" validate:"required,phone_fr"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=card cash ticket"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
}

type CheckoutRequest struct {
	Customer CustomerDetails `json:"customer" validate:"required"`
}

// OrderSummary is what the customer is asked to confirm: their details, the
// itemized cart with options, the total and the item count.
type OrderSummary struct {
	Customer   CustomerDetails `json:"customer"`
	Items      []CartLineItem  `json:"items"`
	Total      float64         `json:"total"`
	TotalItems int             `json:"total_items"`
}

// PendingOrder holds a composed summary awaiting explicit confirmation.
// The token binds the confirm call to this exact summary.
type PendingOrder struct {
	Token     uuid.UUID    `json:"token"`
	SessionID uuid.UUID    `json:"session_id"`
	Summary   OrderSummary `json:"summary"`
	CreatedAt time.Time    `json:"created_at"`
}

type ConfirmOrderRequest struct {
	Token uuid.UUID `json:"token" validate:"required"`
}

type Order struct {
	ID        uuid.UUID    `json:"id"`
	SessionID uuid.UUID    `json:"session_id"`
	Status    OrderStatus  `json:"status"`
	Summary   OrderSummary `json:"summary"`
	PlacedAt  time.Time    `json:"placed_at"`
}

type CheckoutResponse struct {
	Token   uuid.UUID    `json:"token"`
	Summary OrderSummary `json:"summary"`
}
