package repositories

import (
	"context"
	"fmt"
	"time"

	"smartrental/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RelocationRepository interface {
	Create(ctx context.Context, req *models.RelocationRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.RelocationRequest, error)
	GetForTenant(ctx context.Context, id, tenantID uuid.UUID) (*models.RelocationRequest, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.RelocationRequest, error)
	List(ctx context.Context, filter models.RelocationFilter) ([]*models.RelocationRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.RelocationStatus, driverID *uuid.UUID) error
	AssignDriver(ctx context.Context, id, driverID uuid.UUID) error
	Rate(ctx context.Context, id, tenantID uuid.UUID, rating int, feedback string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type relocationRepo struct {
	db DBTX
}

func NewRelocationRepo(db DBTX) RelocationRepository {
	return &relocationRepo{db: db}
}

const relocationSelect = `
		SELECT r.id, r.tenant_id, r.house_id, r.distance_km, r.floor_number, r.house_size, r.estimated_cost,
			r.driver_id, r.status, r.rating, r.feedback, r.rated_by_tenant, r.created_at, r.updated_at,
			u.full_name, u.email, u.phone, h.title, h.county, h.town, h.street
		FROM relocation_requests r
		JOIN users u ON u.id = r.tenant_id
		JOIN houses h ON h.id = r.house_id`

func scanRelocation(row pgx.Row) (*models.RelocationRequest, error) {
	req := &models.RelocationRequest{}
	tenant := &models.UserContact{}
	house := &models.HouseRef{}
	err := row.Scan(
		&req.ID,
		&req.TenantID,
		&req.HouseID,
		&req.DistanceKm,
		&req.FloorNumber,
		&req.HouseSize,
		&req.EstimatedCost,
		&req.DriverID,
		&req.Status,
		&req.Rating,
		&req.Feedback,
		&req.RatedByTenant,
		&req.CreatedAt,
		&req.UpdatedAt,
		&tenant.FullName,
		&tenant.Email,
		&tenant.Phone,
		&house.Title,
		&house.Location.County,
		&house.Location.Town,
		&house.Location.Street,
	)
	if err != nil {
		return nil, notFound(err)
	}
	tenant.ID = req.TenantID
	house.ID = req.HouseID
	req.Tenant = tenant
	req.House = house
	return req, nil
}

func (r *relocationRepo) Create(ctx context.Context, req *models.RelocationRequest) error {
	query := `
		INSERT INTO relocation_requests (id, tenant_id, house_id, distance_km, floor_number, house_size,
			estimated_cost, driver_id, status, rated_by_tenant, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		req.ID,
		req.TenantID,
		req.HouseID,
		req.DistanceKm,
		req.FloorNumber,
		string(req.HouseSize),
		req.EstimatedCost,
		req.DriverID,
		string(req.Status),
		req.RatedByTenant,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create relocation request: %w", err)
	}
	return nil
}

func (r *relocationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.RelocationRequest, error) {
	return scanRelocation(r.db.QueryRow(ctx, relocationSelect+` WHERE r.id = $1`, id))
}

// GetForTenant matches on both id and owner so a foreign request is
// indistinguishable from a missing one.
func (r *relocationRepo) GetForTenant(ctx context.Context, id, tenantID uuid.UUID) (*models.RelocationRequest, error) {
	return scanRelocation(r.db.QueryRow(ctx, relocationSelect+` WHERE r.id = $1 AND r.tenant_id = $2`, id, tenantID))
}

func (r *relocationRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.RelocationRequest, error) {
	return r.list(ctx, relocationSelect+` WHERE r.tenant_id = $1 ORDER BY r.created_at DESC, r.id`, tenantID)
}

func (r *relocationRepo) List(ctx context.Context, filter models.RelocationFilter) ([]*models.RelocationRequest, error) {
	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}
	var from, to *time.Time = filter.From, filter.To
	query := relocationSelect + `
		WHERE ($1::text IS NULL OR r.status = $1)
			AND ($2::timestamptz IS NULL OR r.created_at >= $2)
			AND ($3::timestamptz IS NULL OR r.created_at <= $3)
		ORDER BY r.created_at DESC, r.id`
	return r.list(ctx, query, status, from, to)
}

func (r *relocationRepo) list(ctx context.Context, query string, args ...any) ([]*models.RelocationRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []*models.RelocationRequest{}
	for rows.Next() {
		req, err := scanRelocation(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// UpdateStatus writes status and the optional driver in one statement.
func (r *relocationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.RelocationStatus, driverID *uuid.UUID) error {
	query := `
		UPDATE relocation_requests
		SET status = $1, driver_id = COALESCE($2, driver_id), updated_at = NOW()
		WHERE id = $3
	`
	return affectedOne(r.db.Exec(ctx, query, string(status), driverID, id))
}

func (r *relocationRepo) AssignDriver(ctx context.Context, id, driverID uuid.UUID) error {
	query := `
		UPDATE relocation_requests
		SET driver_id = $1, status = $2, updated_at = NOW()
		WHERE id = $3
	`
	return affectedOne(r.db.Exec(ctx, query, driverID, string(models.RelocationAssigned), id))
}

// Rate only touches a request that has not been rated yet; ErrNotFound means
// the guard rejected the write.
func (r *relocationRepo) Rate(ctx context.Context, id, tenantID uuid.UUID, rating int, feedback string) error {
	query := `
		UPDATE relocation_requests
		SET rating = $1, feedback = $2, rated_by_tenant = true, updated_at = NOW()
		WHERE id = $3 AND tenant_id = $4 AND rated_by_tenant = false
	`
	return affectedOne(r.db.Exec(ctx, query, rating, feedback, id, tenantID))
}

func (r *relocationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM relocation_requests WHERE id = $1`
	return affectedOne(r.db.Exec(ctx, query, id))
}
