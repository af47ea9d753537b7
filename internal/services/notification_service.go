package services

import (
	"context"
	"fmt"
	"time"

	"smartrental/internal/logging"
	"smartrental/internal/metrics"
	"smartrental/internal/models"
	"smartrental/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultEmailSubject = "Smart Rental Notification"

// Notifier delivers messages to people. Every delivery is best-effort: the
// caller logs a returned error and carries on.
type Notifier interface {
	SendSMS(ctx context.Context, to, message string) error
	SendEmail(ctx context.Context, to, subject, text string) error
	// Notify stores an in-app notification and fans out to SMS and email
	// according to the user's preferences.
	Notify(ctx context.Context, user *models.User, kind, message string) error
}

// Dispatcher hands an outbound SMS or email to a delivery backend.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg models.OutboundMessage) error
}

// NotificationService handles all notification-related operations
type NotificationService interface {
	Notifier
	List(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error)
	MarkAllSeen(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, userID, notificationID uuid.UUID) error
}

type notificationService struct {
	repo       repositories.NotificationRepository
	dispatcher Dispatcher
	now        func() time.Time
	logger     zerolog.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo repositories.NotificationRepository, dispatcher Dispatcher) NotificationService {
	return &notificationService{
		repo:       repo,
		dispatcher: dispatcher,
		now:        time.Now,
		logger:     logging.WithComponent("notifier"),
	}
}

func (s *notificationService) SendSMS(ctx context.Context, to, message string) error {
	if to == "" {
		return newError(ErrValidation, "SMS recipient is required")
	}
	err := s.dispatcher.Dispatch(ctx, models.OutboundMessage{
		Channel: "sms",
		To:      to,
		Body:    message,
		SentAt:  s.now(),
	})
	if err != nil {
		metrics.NotificationFailures.WithLabelValues("sms").Inc()
		return fmt.Errorf("sms to %s: %w", to, err)
	}
	return nil
}

func (s *notificationService) SendEmail(ctx context.Context, to, subject, text string) error {
	if to == "" {
		return newError(ErrValidation, "email recipient is required")
	}
	err := s.dispatcher.Dispatch(ctx, models.OutboundMessage{
		Channel: "email",
		To:      to,
		Subject: subject,
		Body:    text,
		SentAt:  s.now(),
	})
	if err != nil {
		metrics.NotificationFailures.WithLabelValues("email").Inc()
		return fmt.Errorf("email to %s: %w", to, err)
	}
	return nil
}

// Notify attempts every enabled channel and returns the first failure.
func (s *notificationService) Notify(ctx context.Context, user *models.User, kind, message string) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if user.NotificationPrefs.InApp {
		err := s.repo.Create(ctx, &models.Notification{
			ID:      uuid.New(),
			UserID:  user.ID,
			Type:    kind,
			Message: message,
		})
		if err != nil {
			metrics.NotificationFailures.WithLabelValues("in_app").Inc()
		}
		keep(err)
	}
	if user.NotificationPrefs.SMS && user.Phone != "" {
		keep(s.SendSMS(ctx, user.Phone, message))
	}
	if user.NotificationPrefs.Email && user.Email != "" {
		keep(s.SendEmail(ctx, user.Email, defaultEmailSubject, message))
	}
	return firstErr
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *notificationService) MarkAllSeen(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.MarkAllSeen(ctx, userID)
}

func (s *notificationService) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	n, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		if isNotFound(err) {
			return newError(ErrNotFound, "Notification not found")
		}
		return err
	}
	if n.UserID != userID {
		return newError(ErrForbidden, "Not authorized to delete this notification")
	}
	return s.repo.Delete(ctx, notificationID)
}

// LogDispatcher writes outbound messages to the log instead of a gateway.
type LogDispatcher struct {
	logger zerolog.Logger
}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{logger: logging.WithComponent("dispatch")}
}

func (d *LogDispatcher) Dispatch(_ context.Context, msg models.OutboundMessage) error {
	d.logger.Info().
		Str("channel", msg.Channel).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("outbound message")
	return nil
}
