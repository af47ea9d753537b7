package services

import (
	"context"
	"fmt"
	"strings"

	"smartrental/internal/logging"
	"smartrental/internal/metrics"
	"smartrental/internal/models"
	"smartrental/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type MaintenanceService interface {
	Create(ctx context.Context, tenantID uuid.UUID, in *MaintenanceInput) (*models.MaintenanceRequest, error)
	List(ctx context.Context, status string) ([]*models.MaintenanceRequest, error)
	ListMine(ctx context.Context, tenantID uuid.UUID) ([]*models.MaintenanceRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.MaintenanceRequest, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type MaintenanceInput struct {
	HouseID     string `json:"houseId"`
	Issue       string `json:"issue"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type maintenanceService struct {
	requests repositories.MaintenanceRepository
	houses   repositories.HouseRepository
	users    repositories.UserRepository
	notifier Notifier
	logger   zerolog.Logger
}

func NewMaintenanceService(
	requests repositories.MaintenanceRepository,
	houses repositories.HouseRepository,
	users repositories.UserRepository,
	notifier Notifier,
) MaintenanceService {
	return &maintenanceService{
		requests: requests,
		houses:   houses,
		users:    users,
		notifier: notifier,
		logger:   logging.WithComponent("maintenance"),
	}
}

func (s *maintenanceService) Create(ctx context.Context, tenantID uuid.UUID, in *MaintenanceInput) (*models.MaintenanceRequest, error) {
	if in == nil || strings.TrimSpace(in.HouseID) == "" || strings.TrimSpace(in.Issue) == "" {
		return nil, newError(ErrValidation, "houseId and issue are required")
	}
	houseID, err := uuid.Parse(strings.TrimSpace(in.HouseID))
	if err != nil {
		return nil, newError(ErrValidation, "Invalid house ID")
	}

	priority := models.PriorityMedium
	if in.Priority != "" {
		priority = models.MaintenancePriority(strings.ToLower(in.Priority))
		if !priority.IsValid() {
			return nil, newError(ErrValidation, "priority must be one of low, medium, high")
		}
	}

	if _, err := s.houses.GetByID(ctx, houseID); err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "House not found")
		}
		return nil, fmt.Errorf("failed to load house: %w", err)
	}

	req := &models.MaintenanceRequest{
		ID:          uuid.New(),
		TenantID:    tenantID,
		HouseID:     houseID,
		Issue:       strings.TrimSpace(in.Issue),
		Description: strings.TrimSpace(in.Description),
		Priority:    priority,
		Status:      models.MaintenancePending,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	metrics.MaintenanceRequestsCreated.WithLabelValues(string(priority)).Inc()
	s.logger.Info().
		Str("request_id", req.ID.String()).
		Str("house_id", houseID.String()).
		Str("priority", string(priority)).
		Msg("maintenance request filed")
	return req, nil
}

func (s *maintenanceService) List(ctx context.Context, status string) ([]*models.MaintenanceRequest, error) {
	if status == "" {
		return s.requests.List(ctx, nil)
	}
	st := models.MaintenanceStatus(status)
	if !st.IsValid() {
		return nil, newError(ErrValidation, "Invalid status value")
	}
	return s.requests.List(ctx, &st)
}

func (s *maintenanceService) ListMine(ctx context.Context, tenantID uuid.UUID) ([]*models.MaintenanceRequest, error) {
	return s.requests.ListByTenant(ctx, tenantID)
}

func (s *maintenanceService) Get(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Not found")
		}
		return nil, err
	}
	return req, nil
}

// UpdateStatus accepts any whitelisted status and tells the tenant through
// their notification preferences. A failed notification is only logged.
func (s *maintenanceService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.MaintenanceRequest, error) {
	newStatus := models.MaintenanceStatus(status)
	if !newStatus.IsValid() {
		return nil, newError(ErrValidation, "Invalid status value")
	}

	if err := s.requests.UpdateStatus(ctx, id, newStatus); err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Not found")
		}
		return nil, err
	}

	req, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifyTenant(ctx, req)
	return req, nil
}

func (s *maintenanceService) notifyTenant(ctx context.Context, req *models.MaintenanceRequest) {
	logger := s.logger.With().Str("request_id", req.ID.String()).Logger()

	tenant, err := s.users.GetByID(ctx, req.TenantID)
	if err != nil {
		logger.Warn().Err(err).Msg("could not load tenant for maintenance update")
		return
	}

	message := fmt.Sprintf("Your maintenance request \"%s\" is now %s.", req.Issue, req.Status)
	if err := s.notifier.Notify(ctx, tenant, models.NotificationMaintenance, message); err != nil {
		logger.Error().Err(err).Msg("maintenance update notification failed")
	}
}

// Delete lets tenants remove only their own requests; staff may remove any.
func (s *maintenanceService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if actor.Role == models.RoleTenant {
		if err := s.requests.DeleteForTenant(ctx, id, actor.ID); err != nil {
			if isNotFound(err) {
				return newError(ErrDenied, "Not found or unauthorized")
			}
			return err
		}
		return nil
	}

	if err := s.requests.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return newError(ErrNotFound, "Not found")
		}
		return err
	}
	return nil
}
