package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smartrental/internal/logging"
	"smartrental/internal/metrics"
	"smartrental/internal/models"
	"smartrental/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	visitActionApprove = "approve"
	visitActionDecline = "decline"
)

type VisitService interface {
	Request(ctx context.Context, tenantID uuid.UUID, in *VisitInput) (*models.VisitRequest, error)
	ListMine(ctx context.Context, tenantID uuid.UUID) ([]*models.VisitRequest, error)
	ListReceived(ctx context.Context, userID uuid.UUID) ([]*models.VisitRequest, error)
	Respond(ctx context.Context, actor Actor, id uuid.UUID, action string) (*models.VisitRequest, error)
}

type VisitInput struct {
	HouseID       string     `json:"houseId"`
	Message       string     `json:"message"`
	ScheduledDate *time.Time `json:"scheduledDate"`
}

type visitService struct {
	visits   repositories.VisitRepository
	houses   repositories.HouseRepository
	notifier Notifier
	now      func() time.Time
	logger   zerolog.Logger
}

func NewVisitService(visits repositories.VisitRepository, houses repositories.HouseRepository, notifier Notifier) VisitService {
	return &visitService{
		visits:   visits,
		houses:   houses,
		notifier: notifier,
		now:      time.Now,
		logger:   logging.WithComponent("visits"),
	}
}

// Request addresses the visit to the landlord who listed the house.
func (s *visitService) Request(ctx context.Context, tenantID uuid.UUID, in *VisitInput) (*models.VisitRequest, error) {
	if in == nil || strings.TrimSpace(in.HouseID) == "" {
		return nil, newError(ErrValidation, "houseId is required")
	}
	houseID, err := uuid.Parse(strings.TrimSpace(in.HouseID))
	if err != nil {
		return nil, newError(ErrValidation, "Invalid house ID")
	}
	if in.ScheduledDate != nil && in.ScheduledDate.Before(s.now()) {
		return nil, newError(ErrValidation, "scheduledDate must be in the future")
	}

	house, err := s.houses.GetByID(ctx, houseID)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "House not found")
		}
		return nil, fmt.Errorf("failed to load house: %w", err)
	}

	visit := &models.VisitRequest{
		ID:            uuid.New(),
		HouseID:       house.ID,
		TenantID:      tenantID,
		RequestedTo:   house.LandlordID,
		Message:       strings.TrimSpace(in.Message),
		Status:        models.VisitPending,
		ScheduledDate: in.ScheduledDate,
	}
	if err := s.visits.Create(ctx, visit); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("visit_id", visit.ID.String()).
		Str("house_id", house.ID.String()).
		Msg("visit requested")
	return visit, nil
}

func (s *visitService) ListMine(ctx context.Context, tenantID uuid.UUID) ([]*models.VisitRequest, error) {
	return s.visits.ListByTenant(ctx, tenantID)
}

func (s *visitService) ListReceived(ctx context.Context, userID uuid.UUID) ([]*models.VisitRequest, error) {
	return s.visits.ListByRecipient(ctx, userID)
}

// Respond approves or declines a visit addressed to the caller and tells the
// tenant by email and SMS. A visit may be answered again.
func (s *visitService) Respond(ctx context.Context, actor Actor, id uuid.UUID, action string) (*models.VisitRequest, error) {
	visit, err := s.visits.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Visit not found")
		}
		return nil, err
	}
	if visit.RequestedTo != actor.ID {
		return nil, newError(ErrForbidden, "Unauthorized action")
	}

	var status models.VisitStatus
	switch action {
	case visitActionApprove:
		status = models.VisitApproved
	case visitActionDecline:
		status = models.VisitDeclined
	default:
		return nil, newError(ErrValidation, "Invalid action")
	}

	if err := s.visits.SetStatus(ctx, id, status); err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Visit not found")
		}
		return nil, err
	}
	visit.Status = status
	metrics.VisitResponses.WithLabelValues(string(status)).Inc()

	s.notifyTenant(ctx, visit)
	return visit, nil
}

func (s *visitService) notifyTenant(ctx context.Context, visit *models.VisitRequest) {
	if visit.Tenant == nil {
		return
	}
	logger := s.logger.With().Str("visit_id", visit.ID.String()).Logger()
	tenant := visit.Tenant

	title := ""
	if visit.House != nil {
		title = visit.House.Title
	}

	if tenant.Email != "" {
		subject := fmt.Sprintf("Your Visit Request has been %s", visit.Status)
		text := fmt.Sprintf("Dear %s,\n\nYour request to visit the house \"%s\" has been %s.\n\nRegards,\nSmart Rental Management Team",
			tenant.FullName, title, visit.Status)
		if err := s.notifier.SendEmail(ctx, tenant.Email, subject, text); err != nil {
			logger.Error().Err(err).Msg("visit response email failed")
		}
	}
	if tenant.Phone != "" {
		message := fmt.Sprintf("Hi %s, your site visit request has been %s. - Smart Rentals", tenant.FullName, visit.Status)
		if err := s.notifier.SendSMS(ctx, tenant.Phone, message); err != nil {
			logger.Error().Err(err).Msg("visit response SMS failed")
		}
	}
}
