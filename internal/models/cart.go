package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LineItemOption is one collected customization, e.g. {size, Taille, grande}.
type LineItemOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type CartLineItem struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Price    float64          `json:"price"`
	Category string           `json:"category,omitempty"`
	Options  []LineItemOption `json:"options,omitempty"`
	Quantity int              `json:"quantity"`
	AddedAt  time.Time        `json:"added_at"`
}

// Cart keeps line items in insertion order; IDs are unique within a cart.
type Cart struct {
	SessionID uuid.UUID      `json:"session_id"`
	Items     []CartLineItem `json:"items"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// LineItemID derives the merge key from name, price and the collected options.
// Everything is lower-cased and whitespace runs become hyphens, so the same
// logical item always maps onto the same line. Two visually distinct options
// that normalize to the same string will merge.
func LineItemID(name string, price float64, options []LineItemOption) string {
	parts := make([]string, 0, len(options)+2)
	parts = append(parts, normalizeIDPart(name), fmt.Sprintf("%.2f", price))

	for _, opt := range options {
		parts = append(parts, normalizeIDPart(opt.Key)+":"+normalizeIDPart(opt.Value))
	}

	return strings.Join(parts, "-")
}

func normalizeIDPart(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), "-")
}

// Find returns the index of the line with the given id, or -1.
func (c *Cart) Find(id string) int {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}

	return -1
}

// Add merges an item into the cart: an existing line with the same derived ID
// gets its quantity incremented, otherwise the item is appended with quantity 1.
func (c *Cart) Add(item CartLineItem) {
	if i := c.Find(item.ID); i >= 0 {
		c.Items[i].Quantity++
		return
	}

	item.Quantity = 1
	item.AddedAt = time.Now()
	c.Items = append(c.Items, item)
}

// Remove deletes the line with the given id; absent ids are a no-op.
func (c *Cart) Remove(id string) {
	if i := c.Find(id); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// SetQuantity sets the quantity of a line; zero or negative removes it.
func (c *Cart) SetQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.Remove(id)
		return
	}

	if i := c.Find(id); i >= 0 {
		c.Items[i].Quantity = quantity
	}
}

func (c *Cart) Clear() {
	c.Items = nil
}

// Total is the sum of price*quantity over all lines. No rounding happens
// here; two-decimal formatting is a display-time concern.
func (c *Cart) Total() float64 {
	var total float64

	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}

	return total
}

// TotalItems is the sum of quantities over all lines.
func (c *Cart) TotalItems() int {
	var count int

	for _, item := range c.Items {
		count += item.Quantity
	}

	return count
}

type AddItemRequest struct {
	MenuItemID uuid.UUID         `json:"menu_item_id" validate:"required"`
	Options    []OptionSelection `json:"options,omitempty" validate:"dive"`
}

// OptionSelection is the raw per-group choice coming from the client,
// before it is validated against the menu item's option metadata.
type OptionSelection struct {
	Key    string   `json:"key" validate:"required"`
	Values []string `json:"values"`
}

type UpdateQuantityRequest struct {
	LineID   string `json:"line_id" validate:"required"`
	Quantity int    `json:"quantity"`
}

type CartResponse struct {
	Cart       *Cart   `json:"cart"`
	Total      float64 `json:"total"`
	TotalItems int     `json:"total_items"`
}
