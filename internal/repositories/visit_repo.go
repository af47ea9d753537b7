package repositories

import (
	"context"
	"fmt"

	"smartrental/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VisitRepository interface {
	Create(ctx context.Context, visit *models.VisitRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.VisitRequest, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.VisitRequest, error)
	ListByRecipient(ctx context.Context, userID uuid.UUID) ([]*models.VisitRequest, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.VisitStatus) error
}

type visitRepo struct {
	db DBTX
}

func NewVisitRepo(db DBTX) VisitRepository {
	return &visitRepo{db: db}
}

const visitSelect = `
		SELECT v.id, v.house_id, v.tenant_id, v.requested_to, v.message, v.status, v.scheduled_date,
			v.created_at, v.updated_at,
			u.full_name, u.email, u.phone, h.title, h.county, h.town, h.street
		FROM visit_requests v
		JOIN users u ON u.id = v.tenant_id
		JOIN houses h ON h.id = v.house_id`

func scanVisit(row pgx.Row) (*models.VisitRequest, error) {
	visit := &models.VisitRequest{}
	tenant := &models.UserContact{}
	house := &models.HouseRef{}
	err := row.Scan(
		&visit.ID,
		&visit.HouseID,
		&visit.TenantID,
		&visit.RequestedTo,
		&visit.Message,
		&visit.Status,
		&visit.ScheduledDate,
		&visit.CreatedAt,
		&visit.UpdatedAt,
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
	tenant.ID = visit.TenantID
	house.ID = visit.HouseID
	visit.Tenant = tenant
	visit.House = house
	return visit, nil
}

func (r *visitRepo) Create(ctx context.Context, visit *models.VisitRequest) error {
	query := `
		INSERT INTO visit_requests (id, house_id, tenant_id, requested_to, message, status, scheduled_date,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		visit.ID,
		visit.HouseID,
		visit.TenantID,
		visit.RequestedTo,
		visit.Message,
		string(visit.Status),
		visit.ScheduledDate,
	).Scan(&visit.CreatedAt, &visit.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create visit request: %w", err)
	}
	return nil
}

func (r *visitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.VisitRequest, error) {
	return scanVisit(r.db.QueryRow(ctx, visitSelect+` WHERE v.id = $1`, id))
}

func (r *visitRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.VisitRequest, error) {
	return r.list(ctx, visitSelect+` WHERE v.tenant_id = $1 ORDER BY v.created_at DESC, v.id`, tenantID)
}

// ListByRecipient returns the visits addressed to userID.
func (r *visitRepo) ListByRecipient(ctx context.Context, userID uuid.UUID) ([]*models.VisitRequest, error) {
	return r.list(ctx, visitSelect+` WHERE v.requested_to = $1 ORDER BY v.created_at DESC, v.id`, userID)
}

func (r *visitRepo) list(ctx context.Context, query string, args ...any) ([]*models.VisitRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visits := []*models.VisitRequest{}
	for rows.Next() {
		visit, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		visits = append(visits, visit)
	}
	return visits, rows.Err()
}

func (r *visitRepo) SetStatus(ctx context.Context, id uuid.UUID, status models.VisitStatus) error {
	query := `UPDATE visit_requests SET status = $1, updated_at = NOW() WHERE id = $2`
	return affectedOne(r.db.Exec(ctx, query, string(status), id))
}
