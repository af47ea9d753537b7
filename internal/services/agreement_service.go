package services

import (
	"context"
	"strings"
	"time"

	"smartrental/internal/logging"
	"smartrental/internal/models"
	"smartrental/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   uuid.UUID
	Role models.Role
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

type AgreementService interface {
	Create(ctx context.Context, landlordID uuid.UUID, in *AgreementInput) (*models.RentalAgreement, error)
	Get(ctx context.Context, id uuid.UUID) (*models.RentalAgreement, error)
	ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.RentalAgreement, error)
	ListForLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.RentalAgreement, error)
	ListForHouse(ctx context.Context, houseID uuid.UUID) ([]*models.RentalAgreement, error)
	ListAll(ctx context.Context) ([]*models.RentalAgreement, error)
	Sign(ctx context.Context, actor Actor, id uuid.UUID) (*models.RentalAgreement, error)
	MarkDepositPaid(ctx context.Context, actor Actor, id uuid.UUID) (*models.RentalAgreement, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, in *AgreementUpdate) (*models.RentalAgreement, error)
	Terminate(ctx context.Context, actor Actor, id uuid.UUID) error
}

type AgreementInput struct {
	TenantID    string     `json:"tenantId"`
	HouseID     string     `json:"houseId"`
	LeaseStart  *time.Time `json:"leaseStart"`
	LeaseEnd    *time.Time `json:"leaseEnd"`
	MonthlyRent int64      `json:"monthlyRent"`
}

// AgreementUpdate changes the commercial terms. Nil fields keep their value.
type AgreementUpdate struct {
	MonthlyRent *int64     `json:"monthlyRent"`
	LeaseEnd    *time.Time `json:"leaseEnd"`
}

type agreementService struct {
	agreements repositories.AgreementRepository
	houses     repositories.HouseRepository
	users      repositories.UserRepository
	logger     zerolog.Logger
}

func NewAgreementService(
	agreements repositories.AgreementRepository,
	houses repositories.HouseRepository,
	users repositories.UserRepository,
) AgreementService {
	return &agreementService{
		agreements: agreements,
		houses:     houses,
		users:      users,
		logger:     logging.WithComponent("agreements"),
	}
}

func (s *agreementService) Create(ctx context.Context, landlordID uuid.UUID, in *AgreementInput) (*models.RentalAgreement, error) {
	if in == nil || strings.TrimSpace(in.TenantID) == "" || strings.TrimSpace(in.HouseID) == "" ||
		in.LeaseStart == nil || in.LeaseEnd == nil || in.MonthlyRent <= 0 {
		return nil, newError(ErrValidation, "tenantId, houseId, leaseStart, leaseEnd and monthlyRent are required")
	}
	tenantID, err := uuid.Parse(strings.TrimSpace(in.TenantID))
	if err != nil {
		return nil, newError(ErrValidation, "Invalid tenant ID")
	}
	houseID, err := uuid.Parse(strings.TrimSpace(in.HouseID))
	if err != nil {
		return nil, newError(ErrValidation, "Invalid house ID")
	}
	if !in.LeaseEnd.After(*in.LeaseStart) {
		return nil, newError(ErrValidation, "leaseEnd must be after leaseStart")
	}

	house, err := s.houses.GetByID(ctx, houseID)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if house == nil || house.LandlordID != landlordID {
		return nil, newError(ErrForbidden, "Only the landlord can assign this house")
	}

	tenant, err := s.users.GetByID(ctx, tenantID)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(ErrValidation, "Tenant not found")
		}
		return nil, err
	}
	if tenant.Role != models.RoleTenant {
		return nil, newError(ErrValidation, "User is not a tenant")
	}

	agreement := &models.RentalAgreement{
		ID:          uuid.New(),
		TenantID:    tenantID,
		HouseID:     houseID,
		LandlordID:  landlordID,
		LeaseStart:  *in.LeaseStart,
		LeaseEnd:    *in.LeaseEnd,
		MonthlyRent: in.MonthlyRent,
	}
	if err := s.agreements.Create(ctx, agreement); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("agreement_id", agreement.ID.String()).
		Str("house_id", houseID.String()).
		Str("tenant_id", tenantID.String()).
		Msg("rental agreement created")
	return agreement, nil
}

func (s *agreementService) Get(ctx context.Context, id uuid.UUID) (*models.RentalAgreement, error) {
	agreement, err := s.agreements.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Agreement not found")
		}
		return nil, err
	}
	return agreement, nil
}

func (s *agreementService) ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.RentalAgreement, error) {
	return s.agreements.ListByTenant(ctx, tenantID)
}

func (s *agreementService) ListForLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.RentalAgreement, error) {
	return s.agreements.ListByLandlord(ctx, landlordID)
}

func (s *agreementService) ListForHouse(ctx context.Context, houseID uuid.UUID) ([]*models.RentalAgreement, error) {
	return s.agreements.ListByHouse(ctx, houseID)
}

func (s *agreementService) ListAll(ctx context.Context) ([]*models.RentalAgreement, error) {
	return s.agreements.ListAll(ctx)
}

// Sign records the signature of whichever party the actor is.
func (s *agreementService) Sign(ctx context.Context, actor Actor, id uuid.UUID) (*models.RentalAgreement, error) {
	agreement, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actor.ID {
	case agreement.TenantID:
		err = s.agreements.SignByTenant(ctx, id)
	case agreement.LandlordID:
		err = s.agreements.SignByLandlord(ctx, id)
	default:
		return nil, newError(ErrForbidden, "Only a party to the agreement can sign it")
	}
	if err != nil {
		return nil, s.mapMissing(err)
	}
	return s.Get(ctx, id)
}

func (s *agreementService) MarkDepositPaid(ctx context.Context, actor Actor, id uuid.UUID) (*models.RentalAgreement, error) {
	if _, err := s.ownedByLandlord(ctx, actor, id); err != nil {
		return nil, err
	}
	if err := s.agreements.MarkDepositPaid(ctx, id); err != nil {
		return nil, s.mapMissing(err)
	}
	return s.Get(ctx, id)
}

func (s *agreementService) Update(ctx context.Context, actor Actor, id uuid.UUID, in *AgreementUpdate) (*models.RentalAgreement, error) {
	agreement, err := s.ownedByLandlord(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return agreement, nil
	}

	rent, leaseEnd := agreement.MonthlyRent, agreement.LeaseEnd
	if in.MonthlyRent != nil {
		if *in.MonthlyRent <= 0 {
			return nil, newError(ErrValidation, "monthlyRent must be positive")
		}
		rent = *in.MonthlyRent
	}
	if in.LeaseEnd != nil {
		if !in.LeaseEnd.After(agreement.LeaseStart) {
			return nil, newError(ErrValidation, "leaseEnd must be after leaseStart")
		}
		leaseEnd = *in.LeaseEnd
	}

	if err := s.agreements.UpdateTerms(ctx, id, rent, leaseEnd); err != nil {
		return nil, s.mapMissing(err)
	}
	return s.Get(ctx, id)
}

func (s *agreementService) Terminate(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.ownedByLandlord(ctx, actor, id); err != nil {
		return err
	}
	if err := s.agreements.Delete(ctx, id); err != nil {
		return s.mapMissing(err)
	}
	s.logger.Info().Str("agreement_id", id.String()).Str("by", actor.ID.String()).Msg("agreement terminated")
	return nil
}

func (s *agreementService) ownedByLandlord(ctx context.Context, actor Actor, id uuid.UUID) (*models.RentalAgreement, error) {
	agreement, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && agreement.LandlordID != actor.ID {
		return nil, newError(ErrForbidden, "Only the landlord can change this agreement")
	}
	return agreement, nil
}

func (s *agreementService) mapMissing(err error) error {
	if isNotFound(err) {
		return newError(ErrNotFound, "Agreement not found")
	}
	return err
}
