package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/bistro-gourmand/ordering-platform/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CartStore persists one cart per guest session under a namespaced key.
// Absent or malformed data is treated as an empty cart, never as an error:
// the worst outcome of a corrupt payload is that the customer starts over.
type CartStore interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, sessionID uuid.UUID) error

	SavePending(ctx context.Context, pending *models.PendingOrder) error
	GetPending(ctx context.Context, sessionID uuid.UUID) (*models.PendingOrder, error)
	DeletePending(ctx context.Context, sessionID uuid.UUID) error
}

const (
	cartKeyPrefix    = "legourmand:cart:"
	pendingKeyPrefix = "legourmand:checkout:"
)

type cartStore struct {
	client     *redis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

func NewCartStore(client *redis.Client, ttl, pendingTTL time.Duration) CartStore {
	return &cartStore{client: client, ttl: ttl, pendingTTL: pendingTTL}
}

func cartKey(sessionID uuid.UUID) string {
	return cartKeyPrefix + sessionID.String()
}

func pendingKey(sessionID uuid.UUID) string {
	return pendingKeyPrefix + sessionID.String()
}

func (s *cartStore) Get(ctx context.Context, sessionID uuid.UUID) (*models.Cart, error) {

	empty := &models.Cart{
		SessionID: sessionID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	data, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err != nil {

		if err == redis.Nil {
			return empty, nil
		}

		return nil, fmt.Errorf("failed to read cart %s: %w", sessionID, err)
	}

	cart := &models.Cart{}
	if err := json.Unmarshal(data, cart); err != nil {
		// Corrupt payload: log and fall back to an empty cart.
		slog.Warn("Discarding malformed cart payload",
			slog.String("sessionId", sessionID.String()),
			slog.String("error", err.Error()))

		return empty, nil
	}

	cart.SessionID = sessionID

	return cart, nil
}

func (s *cartStore) Save(ctx context.Context, cart *models.Cart) error {

	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart %s: %w", cart.SessionID, err)
	}

	if err := s.client.Set(ctx, cartKey(cart.SessionID), string(data), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", cart.SessionID, err)
	}

	return nil
}

func (s *cartStore) Delete(ctx context.Context, sessionID uuid.UUID) error {

	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", sessionID, err)
	}

	return nil
}

func (s *cartStore) SavePending(ctx context.Context, pending *models.PendingOrder) error {

	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to marshal pending order %s: %w", pending.SessionID, err)
	}

	if err := s.client.Set(ctx, pendingKey(pending.SessionID), data, s.pendingTTL).Err(); err != nil {
		return fmt.Errorf("failed to save pending order %s: %w", pending.SessionID, err)
	}

	return nil
}

func (s *cartStore) GetPending(ctx context.Context, sessionID uuid.UUID) (*models.PendingOrder, error) {

	data, err := s.client.Get(ctx, pendingKey(sessionID)).Bytes()
	if err != nil {

		if err == redis.Nil {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read pending order %s: %w", sessionID, err)
	}

	pending := &models.PendingOrder{}
	if err := json.Unmarshal(data, pending); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending order %s: %w", sessionID, err)
	}

	return pending, nil
}

func (s *cartStore) DeletePending(ctx context.Context, sessionID uuid.UUID) error {

	if err := s.client.Del(ctx, pendingKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete pending order %s: %w", sessionID, err)
	}

	return nil
}
