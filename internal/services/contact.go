package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/bistro-gourmand/ordering-platform/internal/errors"
	"github.com/bistro-gourmand/ordering-platform/internal/models"
	repository "github.com/bistro-gourmand/ordering-platform/internal/repositories"
	"github.com/bistro-gourmand/ordering-platform/pkg/clock"
	"github.com/bistro-gourmand/ordering-platform/pkg/mailer"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type ContactService struct {
	repo      repository.ContactRepository
	mailer    mailer.Mailer
	clock     clock.Clock
	ackDelay  time.Duration
	sanitizer *bluemonday.Policy
}

func NewContactService(repo repository.ContactRepository, m mailer.Mailer, clk clock.Clock, ackDelay time.Duration) *ContactService {
	return &ContactService{
		repo:      repo,
		mailer:    m,
		clock:     clk,
		ackDelay:  ackDelay,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Submit stores a sanitized contact message and schedules the delayed
// acknowledgment mail. The ack is fire and forget: its cancel function is
// returned so a caller (or test) can abort it, but submission succeeds
// regardless of what later happens to the mail.
func (s *ContactService) Submit(ctx context.Context, req *models.ContactRequest) (*models.ContactMessage, func(), error) {

	msg := &models.ContactMessage{
		ID:        uuid.New(),
		Name:      s.sanitizer.Sanitize(req.Name),
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   s.sanitizer.Sanitize(req.Subject),
		Message:   s.sanitizer.Sanitize(req.Message),
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, nil, apperrors.DatabaseError("Failed to store contact message").WithError(err)
	}

	cancel := s.clock.AfterFunc(s.ackDelay, func() {
		s.sendAck(msg)
	})

	return msg, cancel, nil
}

func (s *ContactService) sendAck(msg *models.ContactMessage) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.mailer.Send(ctx, &mailer.Email{
		To:      msg.Email,
		Subject: "Nous avons bien reçu votre message",
		Content: fmt.Sprintf("Bonjour %s,\n\nMerci pour votre message « %s ». Nous revenons vers vous au plus vite.\n\nLe Gourmand", msg.Name, msg.Subject),
	})
	if err != nil {
		slog.Error("Failed to send contact acknowledgment",
			slog.String("messageId", msg.ID.String()),
			slog.String("error", err.Error()))
	}
}
