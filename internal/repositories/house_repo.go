package repositories

import (
	"context"
	"fmt"

	"smartrental/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type HouseRepository interface {
	Create(ctx context.Context, house *models.House) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.House, error)
	List(ctx context.Context, status *models.HouseStatus) ([]*models.House, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.House, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.HouseStatus) error
	SetCaretaker(ctx context.Context, id uuid.UUID, caretakerID *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type houseRepo struct {
	db DBTX
}

func NewHouseRepo(db DBTX) HouseRepository {
	return &houseRepo{db: db}
}

const houseColumns = `id, title, description, county, town, street, rent, size, amenities, status,
		landlord_id, caretaker_id, created_at, updated_at`

func scanHouse(row pgx.Row) (*models.House, error) {
	h := &models.House{}
	err := row.Scan(
		&h.ID,
		&h.Title,
		&h.Description,
		&h.Location.County,
		&h.Location.Town,
		&h.Location.Street,
		&h.Rent,
		&h.Size,
		&h.Amenities,
		&h.Status,
		&h.LandlordID,
		&h.CaretakerID,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return h, nil
}

func (r *houseRepo) Create(ctx context.Context, house *models.House) error {
	query := `
		INSERT INTO houses (id, title, description, county, town, street, rent, size, amenities, status,
			landlord_id, caretaker_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		house.ID,
		house.Title,
		house.Description,
		house.Location.County,
		house.Location.Town,
		house.Location.Street,
		house.Rent,
		house.Size,
		house.Amenities,
		string(house.Status),
		house.LandlordID,
		house.CaretakerID,
	)
	if err != nil {
		return fmt.Errorf("failed to create house: %w", err)
	}
	return nil
}

func (r *houseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.House, error) {
	query := `SELECT ` + houseColumns + ` FROM houses WHERE id = $1`
	return scanHouse(r.db.QueryRow(ctx, query, id))
}

func (r *houseRepo) List(ctx context.Context, status *models.HouseStatus) ([]*models.House, error) {
	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}
	query := `SELECT ` + houseColumns + `
		FROM houses
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC`
	return r.list(ctx, query, statusArg)
}

func (r *houseRepo) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.House, error) {
	query := `SELECT ` + houseColumns + ` FROM houses WHERE landlord_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, landlordID)
}

func (r *houseRepo) list(ctx context.Context, query string, args ...any) ([]*models.House, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var houses []*models.House
	for rows.Next() {
		h, err := scanHouse(rows)
		if err != nil {
			return nil, err
		}
		houses = append(houses, h)
	}
	return houses, rows.Err()
}

func (r *houseRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.HouseStatus) error {
	query := `UPDATE houses SET status = $1, updated_at = NOW() WHERE id = $2`
	return affectedOne(r.db.Exec(ctx, query, string(status), id))
}

func (r *houseRepo) SetCaretaker(ctx context.Context, id uuid.UUID, caretakerID *uuid.UUID) error {
	query := `UPDATE houses SET caretaker_id = $1, updated_at = NOW() WHERE id = $2`
	return affectedOne(r.db.Exec(ctx, query, caretakerID, id))
}

func (r *houseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM houses WHERE id = $1`
	return affectedOne(r.db.Exec(ctx, query, id))
}
