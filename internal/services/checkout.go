package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/bistro-gourmand/ordering-platform/internal/errors"
	"github.com/bistro-gourmand/ordering-platform/internal/metrics"
	"github.com/bistro-gourmand/ordering-platform/internal/models"
	repository "github.com/bistro-gourmand/ordering-platform/internal/repositories"
	"github.com/bistro-gourmand/ordering-platform/pkg/mailer"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CheckoutService struct {
	store        repository.CartStore
	orderRepo    repository.OrderRepository
	mailer       mailer.Mailer
	validate     *validator.Validate
	minimumOrder float64
}

func NewCheckoutService(store repository.CartStore, orderRepo repository.OrderRepository, m mailer.Mailer, validate *validator.Validate, minimumOrder float64) *CheckoutService {
	return &CheckoutService{
		store:        store,
		orderRepo:    orderRepo,
		mailer:       m,
		validate:     validate,
		minimumOrder: minimumOrder,
	}
}

// Checkout validates the cart and the customer details and composes the
// order summary the customer must confirm. Nothing is archived and the cart
// is untouched until Confirm is called with the returned token.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID uuid.UUID, details *models.CustomerDetails) (*models.PendingOrder, error) {

	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ThirdPartyError("Failed to load cart").WithError(err)
	}

	if len(cart.Items) == 0 {
		return nil, apperrors.EmptyCartError()
	}

	if err := s.validate.Struct(details); err != nil {
		return nil, apperrors.ValidationError("Customer details are invalid").WithError(err)
	}

	total := cart.Total()
	if total < s.minimumOrder {
		return nil, apperrors.MinimumOrderError(s.minimumOrder)
	}

	pending := &models.PendingOrder{
		Token:     uuid.New(),
		SessionID: sessionID,
		Summary: models.OrderSummary{
			Customer:   *details,
			Items:      cart.Items,
			Total:      total,
			TotalItems: cart.TotalItems(),
		},
		CreatedAt: time.Now(),
	}

	if err := s.store.SavePending(ctx, pending); err != nil {
		return nil, apperrors.ThirdPartyError("Failed to hold order for confirmation").WithError(err)
	}

	return pending, nil
}

// Confirm archives the pending order matching the token, clears the cart and
// sends the confirmation mail. An expired or mismatched token is rejected
// and leaves the cart as it was.
func (s *CheckoutService) Confirm(ctx context.Context, sessionID uuid.UUID, token uuid.UUID) (*models.Order, error) {

	pending, err := s.store.GetPending(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ThirdPartyError("Failed to load pending order").WithError(err)
	}

	if pending == nil || pending.Token != token {
		return nil, apperrors.BadRequestError("No pending order matches this confirmation")
	}

	order := &models.Order{
		ID:        uuid.New(),
		SessionID: sessionID,
		Status:    models.OrderStatusConfirmed,
		Summary:   pending.Summary,
		PlacedAt:  time.Now(),
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, apperrors.DatabaseError("Failed to archive order").WithError(err)
	}

	// The order is placed; cleanup failures are logged, not surfaced.
	if err := s.store.Delete(ctx, sessionID); err != nil {
		slog.Warn("Failed to clear cart after confirmation", slog.String("sessionId", sessionID.String()), slog.String("error", err.Error()))
	}

	if err := s.store.DeletePending(ctx, sessionID); err != nil {
		slog.Warn("Failed to discard pending order", slog.String("sessionId", sessionID.String()), slog.String("error", err.Error()))
	}

	metrics.OrdersPlaced.Inc()

	if email := order.Summary.Customer.Email; email != "" {
		go s.sendConfirmationMail(order, email)
	}

	return order, nil
}

func (s *CheckoutService) sendConfirmationMail(order *models.Order, to string) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.mailer.Send(ctx, &mailer.Email{
		To:      to,
		Subject: "Votre commande Le Gourmand est confirmée",
		Content: ComposeOrderText(order),
	})
	if err != nil {
		slog.Error("Failed to send order confirmation mail",
			slog.String("orderId", order.ID.String()),
			slog.String("error", err.Error()))
	}
}

// ComposeOrderText renders the confirmation summary: customer info, itemized
// order with options, total and item count. Prices get their two-decimal
// formatting here, at display time.
func ComposeOrderText(order *models.Order) string {

	var b strings.Builder

	customer := order.Summary.Customer
	fmt.Fprintf(&b, "Commande %s\n", order.ID)
	fmt.Fprintf(&b, "%s %s\n%s, %s\n%s\n\n", customer.FirstName, customer.LastName, customer.Address, customer.City, customer.Phone)

	for _, item := range order.Summary.Items {
		fmt.Fprintf(&b, "%d x %s (%.2f)", item.Quantity, item.Name, item.Price)

		if len(item.Options) > 0 {
			var opts []string
			for _, opt := range item.Options {
				opts = append(opts, fmt.Sprintf("%s: %s", opt.Label, opt.Value))
			}
			fmt.Fprintf(&b, " [%s]", strings.Join(opts, ", "))
		}

		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nTotal: %.2f (%d articles)\n", order.Summary.Total, order.Summary.TotalItems)
	fmt.Fprintf(&b, "Paiement: %s\n", customer.PaymentMethod)

	return b.String()
}
