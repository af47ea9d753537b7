package repositories

import (
	"context"
	"fmt"

	"smartrental/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, req *models.MaintenanceRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.MaintenanceRequest, error)
	List(ctx context.Context, status *models.MaintenanceStatus) ([]*models.MaintenanceRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.MaintenanceStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error
}

type maintenanceRepo struct {
	db DBTX
}

func NewMaintenanceRepo(db DBTX) MaintenanceRepository {
	return &maintenanceRepo{db: db}
}

const maintenanceSelect = `
		SELECT m.id, m.tenant_id, m.house_id, m.issue, m.description, m.priority, m.status,
			m.created_at, m.updated_at,
			u.full_name, u.email, u.phone, h.title, h.county, h.town, h.street
		FROM maintenance_requests m
		JOIN users u ON u.id = m.tenant_id
		JOIN houses h ON h.id = m.house_id`

func scanMaintenance(row pgx.Row) (*models.MaintenanceRequest, error) {
	req := &models.MaintenanceRequest{}
	tenant := &models.UserContact{}
	house := &models.HouseRef{}
	err := row.Scan(
		&req.ID,
		&req.TenantID,
		&req.HouseID,
		&req.Issue,
		&req.Description,
		&req.Priority,
		&req.Status,
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

func (r *maintenanceRepo) Create(ctx context.Context, req *models.MaintenanceRequest) error {
	query := `
		INSERT INTO maintenance_requests (id, tenant_id, house_id, issue, description, priority, status,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		req.ID,
		req.TenantID,
		req.HouseID,
		req.Issue,
		req.Description,
		string(req.Priority),
		string(req.Status),
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create maintenance request: %w", err)
	}
	return nil
}

func (r *maintenanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	return scanMaintenance(r.db.QueryRow(ctx, maintenanceSelect+` WHERE m.id = $1`, id))
}

func (r *maintenanceRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.MaintenanceRequest, error) {
	return r.list(ctx, maintenanceSelect+` WHERE m.tenant_id = $1 ORDER BY m.created_at DESC, m.id`, tenantID)
}

// List returns every request, optionally narrowed to one status.
func (r *maintenanceRepo) List(ctx context.Context, status *models.MaintenanceStatus) ([]*models.MaintenanceRequest, error) {
	var s *string
	if status != nil {
		v := string(*status)
		s = &v
	}
	query := maintenanceSelect + `
		WHERE ($1::text IS NULL OR m.status = $1)
		ORDER BY m.created_at DESC, m.id`
	return r.list(ctx, query, s)
}

func (r *maintenanceRepo) list(ctx context.Context, query string, args ...any) ([]*models.MaintenanceRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []*models.MaintenanceRequest{}
	for rows.Next() {
		req, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *maintenanceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MaintenanceStatus) error {
	query := `UPDATE maintenance_requests SET status = $1, updated_at = NOW() WHERE id = $2`
	return affectedOne(r.db.Exec(ctx, query, string(status), id))
}

func (r *maintenanceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM maintenance_requests WHERE id = $1`
	return affectedOne(r.db.Exec(ctx, query, id))
}

// DeleteForTenant removes a request only when tenantID filed it.
func (r *maintenanceRepo) DeleteForTenant(ctx context.Context, id, tenantID uuid.UUID) error {
	query := `DELETE FROM maintenance_requests WHERE id = $1 AND tenant_id = $2`
	return affectedOne(r.db.Exec(ctx, query, id, tenantID))
}
