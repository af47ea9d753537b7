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

// Relocation pricing, in KES.
const (
	relocationBaseCost      = 1000
	relocationCostPerKm     = 100
	relocationCostPerFloor  = 200
	relocationMediumSurplus = 1000
	relocationLargeSurplus  = 2000
)

type RelocationService interface {
	Request(ctx context.Context, tenantID uuid.UUID, req *RelocationInput) (*models.RelocationRequest, error)
	ListMine(ctx context.Context, tenantID uuid.UUID) ([]*models.RelocationRequest, error)
	ListAll(ctx context.Context) ([]*models.RelocationRequest, error)
	ListFiltered(ctx context.Context, filter models.RelocationFilter) ([]*models.RelocationRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*models.RelocationRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, driverID *uuid.UUID) (*models.RelocationRequest, error)
	AssignDriver(ctx context.Context, id, driverID uuid.UUID) (*models.RelocationRequest, error)
	Complete(ctx context.Context, id uuid.UUID) (*models.RelocationRequest, error)
	Rate(ctx context.Context, tenantID, id uuid.UUID, rating int, feedback string) error
	Delete(ctx context.Context, id uuid.UUID) error
	NotifyTenant(ctx context.Context, id uuid.UUID) error
}

// RelocationInput is the tenant's request body. Pointers distinguish a
// missing number from zero.
type RelocationInput struct {
	HouseID     string `json:"houseId"`
	DistanceKm  *int   `json:"distanceKm"`
	FloorNumber *int   `json:"floorNumber"`
	HouseSize   string `json:"houseSize"`
}

type relocationService struct {
	relocations repositories.RelocationRepository
	houses      repositories.HouseRepository
	users       repositories.UserRepository
	notifier    Notifier
	logger      zerolog.Logger
}

func NewRelocationService(
	relocations repositories.RelocationRepository,
	houses repositories.HouseRepository,
	users repositories.UserRepository,
	notifier Notifier,
) RelocationService {
	return &relocationService{
		relocations: relocations,
		houses:      houses,
		users:       users,
		notifier:    notifier,
		logger:      logging.WithComponent("relocation"),
	}
}

// EstimateRelocationCost prices a move. The result is fixed at creation and
// never recomputed.
func EstimateRelocationCost(distanceKm, floorNumber int, size models.HouseSize) int64 {
	cost := int64(relocationBaseCost) +
		int64(distanceKm)*relocationCostPerKm +
		int64(floorNumber)*relocationCostPerFloor

	switch size {
	case models.HouseSizeMedium:
		cost += relocationMediumSurplus
	case models.HouseSizeLarge:
		cost += relocationLargeSurplus
	}
	return cost
}

func (s *relocationService) Request(ctx context.Context, tenantID uuid.UUID, in *RelocationInput) (*models.RelocationRequest, error) {
	if in == nil || strings.TrimSpace(in.HouseID) == "" || in.DistanceKm == nil || in.FloorNumber == nil || in.HouseSize == "" {
		return nil, newError(ErrValidation, "All fields are required")
	}

	houseID, err := uuid.Parse(strings.TrimSpace(in.HouseID))
	if err != nil {
		return nil, newError(ErrValidation, "Invalid house ID")
	}
	size := models.HouseSize(strings.ToLower(in.HouseSize))
	if !size.IsValid() {
		return nil, newError(ErrValidation, "houseSize must be one of small, medium, large")
	}
	if *in.DistanceKm < 0 || *in.FloorNumber < 0 {
		return nil, newError(ErrValidation, "distanceKm and floorNumber cannot be negative")
	}

	if _, err := s.houses.GetByID(ctx, houseID); err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "House not found")
		}
		return nil, fmt.Errorf("failed to load house: %w", err)
	}

	req := &models.RelocationRequest{
		ID:            uuid.New(),
		TenantID:      tenantID,
		HouseID:       houseID,
		DistanceKm:    *in.DistanceKm,
		FloorNumber:   *in.FloorNumber,
		HouseSize:     size,
		EstimatedCost: EstimateRelocationCost(*in.DistanceKm, *in.FloorNumber, size),
		Status:        models.RelocationPending,
	}
	if err := s.relocations.Create(ctx, req); err != nil {
		return nil, err
	}

	metrics.RelocationRequestsCreated.WithLabelValues(string(size)).Inc()
	s.logger.Info().
		Str("request_id", req.ID.String()).
		Str("tenant_id", tenantID.String()).
		Int64("estimated_cost", req.EstimatedCost).
		Msg("relocation requested")

	return req, nil
}

func (s *relocationService) ListMine(ctx context.Context, tenantID uuid.UUID) ([]*models.RelocationRequest, error) {
	return s.relocations.ListByTenant(ctx, tenantID)
}

func (s *relocationService) ListAll(ctx context.Context) ([]*models.RelocationRequest, error) {
	return s.relocations.List(ctx, models.RelocationFilter{})
}

func (s *relocationService) ListFiltered(ctx context.Context, filter models.RelocationFilter) ([]*models.RelocationRequest, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, newError(ErrValidation, "Invalid status value")
	}
	return s.relocations.List(ctx, filter)
}

func (s *relocationService) Get(ctx context.Context, id uuid.UUID) (*models.RelocationRequest, error) {
	req, err := s.relocations.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Request not found")
		}
		return nil, err
	}
	return req, nil
}

// UpdateStatus accepts any whitelisted status regardless of the current one.
// The status and driver are written together; the driver SMS follows the
// write and a failed SMS is only logged, so a caller that needs the driver
// told can repeat the update.
func (s *relocationService) UpdateStatus(ctx context.Context, id uuid.UUID, status string, driverID *uuid.UUID) (*models.RelocationRequest, error) {
	newStatus := models.RelocationStatus(status)
	if !newStatus.IsValid() {
		return nil, newError(ErrValidation, "Invalid status value")
	}

	if driverID != nil {
		if err := s.ensureUserExists(ctx, *driverID); err != nil {
			return nil, err
		}
	}

	if err := s.relocations.UpdateStatus(ctx, id, newStatus, driverID); err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Relocation not found")
		}
		return nil, err
	}
	metrics.RelocationStatusChanges.WithLabelValues(string(newStatus)).Inc()

	req, err := s.relocations.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Relocation not found")
		}
		return nil, err
	}

	if newStatus == models.RelocationAssigned && req.DriverID != nil {
		s.notifyDriver(ctx, req)
	}

	return req, nil
}

func (s *relocationService) notifyDriver(ctx context.Context, req *models.RelocationRequest) {
	logger := s.logger.With().Str("request_id", req.ID.String()).Str("driver_id", req.DriverID.String()).Logger()

	driver, err := s.users.GetByID(ctx, *req.DriverID)
	if err != nil {
		logger.Warn().Err(err).Msg("could not load driver for assignment SMS")
		return
	}
	if driver.Phone == "" {
		return
	}

	tenantName, houseTitle := "", ""
	if req.Tenant != nil {
		tenantName = req.Tenant.FullName
	}
	if req.House != nil {
		houseTitle = req.House.Title
	}
	message := fmt.Sprintf("New relocation assignment: move %s from house \"%s\".", tenantName, houseTitle)

	if err := s.notifier.SendSMS(ctx, driver.Phone, message); err != nil {
		logger.Error().Err(err).Msg("driver assignment SMS failed")
	}
}

func (s *relocationService) AssignDriver(ctx context.Context, id, driverID uuid.UUID) (*models.RelocationRequest, error) {
	if err := s.ensureUserExists(ctx, driverID); err != nil {
		return nil, err
	}
	if err := s.relocations.AssignDriver(ctx, id, driverID); err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Request not found")
		}
		return nil, err
	}
	metrics.RelocationStatusChanges.WithLabelValues(string(models.RelocationAssigned)).Inc()
	return s.Get(ctx, id)
}

// Complete does not require a driver to have been assigned.
func (s *relocationService) Complete(ctx context.Context, id uuid.UUID) (*models.RelocationRequest, error) {
	if err := s.relocations.UpdateStatus(ctx, id, models.RelocationCompleted, nil); err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Request not found")
		}
		return nil, err
	}
	metrics.RelocationStatusChanges.WithLabelValues(string(models.RelocationCompleted)).Inc()
	return s.Get(ctx, id)
}

// Rate is write-once and owner-only. The request's status is not checked.
func (s *relocationService) Rate(ctx context.Context, tenantID, id uuid.UUID, rating int, feedback string) error {
	if rating < 1 || rating > 5 {
		return newError(ErrValidation, "Rating must be between 1 and 5")
	}

	req, err := s.relocations.GetForTenant(ctx, id, tenantID)
	if err != nil {
		if isNotFound(err) {
			return newError(ErrDenied, "Not found or unauthorized")
		}
		return err
	}
	if req.RatedByTenant {
		return newError(ErrConflict, "Already rated")
	}

	if err := s.relocations.Rate(ctx, id, tenantID, rating, feedback); err != nil {
		// The guarded update lost a race with another rating.
		if isNotFound(err) {
			return newError(ErrConflict, "Already rated")
		}
		return err
	}
	return nil
}

func (s *relocationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.relocations.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return newError(ErrNotFound, "Request not found")
		}
		return err
	}
	return nil
}

// NotifyTenant re-sends the generic update email. It changes no state.
func (s *relocationService) NotifyTenant(ctx context.Context, id uuid.UUID) error {
	req, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if req.Tenant == nil || req.Tenant.Email == "" {
		return newError(ErrValidation, "Tenant has no email address")
	}

	title := ""
	if req.House != nil {
		title = req.House.Title
	}
	text := fmt.Sprintf("Dear %s, your relocation request for house \"%s\" has been processed.", req.Tenant.FullName, title)

	if err := s.notifier.SendEmail(ctx, req.Tenant.Email, "Relocation Request Update", text); err != nil {
		return fmt.Errorf("failed to notify tenant: %w", err)
	}
	return nil
}

func (s *relocationService) ensureUserExists(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			return newError(ErrValidation, "Driver not found")
		}
		return fmt.Errorf("failed to load driver: %w", err)
	}
	return nil
}
