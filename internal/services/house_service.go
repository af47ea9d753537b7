package services

import (
	"context"
	"strings"

	"smartrental/internal/logging"
	"smartrental/internal/models"
	"smartrental/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type HouseService interface {
	Create(ctx context.Context, landlordID uuid.UUID, in *HouseInput) (*models.House, error)
	Get(ctx context.Context, id uuid.UUID) (*models.House, error)
	List(ctx context.Context, status string) ([]*models.House, error)
	ListMine(ctx context.Context, landlordID uuid.UUID) ([]*models.House, error)
	UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (*models.House, error)
	AssignCaretaker(ctx context.Context, actor Actor, id uuid.UUID, caretakerID uuid.UUID) (*models.House, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type HouseInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Location    models.Location `json:"location"`
	Rent        int64           `json:"rent"`
	Size        string          `json:"size"`
	Amenities   []string        `json:"amenities"`
}

type houseService struct {
	houses repositories.HouseRepository
	users  repositories.UserRepository
	logger zerolog.Logger
}

func NewHouseService(houses repositories.HouseRepository, users repositories.UserRepository) HouseService {
	return &houseService{
		houses: houses,
		users:  users,
		logger: logging.WithComponent("houses"),
	}
}

func (s *houseService) Create(ctx context.Context, landlordID uuid.UUID, in *HouseInput) (*models.House, error) {
	if in == nil || strings.TrimSpace(in.Title) == "" || in.Rent <= 0 {
		return nil, newError(ErrValidation, "title and rent are required")
	}

	amenities := in.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	house := &models.House{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Location:    in.Location,
		Rent:        in.Rent,
		Size:        in.Size,
		Amenities:   amenities,
		Status:      models.HouseVacant,
		LandlordID:  landlordID,
	}
	if err := s.houses.Create(ctx, house); err != nil {
		return nil, err
	}

	s.logger.Info().Str("house_id", house.ID.String()).Str("landlord_id", landlordID.String()).Msg("house created")
	return house, nil
}

func (s *houseService) Get(ctx context.Context, id uuid.UUID) (*models.House, error) {
	house, err := s.houses.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "House not found")
		}
		return nil, err
	}
	return house, nil
}

func (s *houseService) List(ctx context.Context, status string) ([]*models.House, error) {
	if status == "" {
		return s.houses.List(ctx, nil)
	}
	st := models.HouseStatus(status)
	if !st.IsValid() {
		return nil, newError(ErrValidation, "Invalid status value")
	}
	return s.houses.List(ctx, &st)
}

func (s *houseService) ListMine(ctx context.Context, landlordID uuid.UUID) ([]*models.House, error) {
	return s.houses.ListByLandlord(ctx, landlordID)
}

func (s *houseService) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (*models.House, error) {
	st := models.HouseStatus(status)
	if !st.IsValid() {
		return nil, newError(ErrValidation, "Invalid status value")
	}
	if _, err := s.owned(ctx, actor, id, "Not authorized to update this house"); err != nil {
		return nil, err
	}
	if err := s.houses.UpdateStatus(ctx, id, st); err != nil {
		return nil, s.mapMissing(err)
	}
	return s.Get(ctx, id)
}

func (s *houseService) AssignCaretaker(ctx context.Context, actor Actor, id uuid.UUID, caretakerID uuid.UUID) (*models.House, error) {
	if _, err := s.owned(ctx, actor, id, "Only the owner can assign a caretaker"); err != nil {
		return nil, err
	}

	caretaker, err := s.users.GetByID(ctx, caretakerID)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if caretaker == nil || caretaker.Role != models.RoleCaretaker {
		return nil, newError(ErrValidation, "Invalid caretaker")
	}

	if err := s.houses.SetCaretaker(ctx, id, &caretakerID); err != nil {
		return nil, s.mapMissing(err)
	}
	return s.Get(ctx, id)
}

func (s *houseService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.owned(ctx, actor, id, "Not authorized to delete this house"); err != nil {
		return err
	}
	if err := s.houses.Delete(ctx, id); err != nil {
		return s.mapMissing(err)
	}
	s.logger.Info().Str("house_id", id.String()).Str("by", actor.ID.String()).Msg("house deleted")
	return nil
}

func (s *houseService) owned(ctx context.Context, actor Actor, id uuid.UUID, denial string) (*models.House, error) {
	house, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && house.LandlordID != actor.ID {
		return nil, newError(ErrForbidden, "%s", denial)
	}
	return house, nil
}

func (s *houseService) mapMissing(err error) error {
	if isNotFound(err) {
		return newError(ErrNotFound, "House not found")
	}
	return err
}
