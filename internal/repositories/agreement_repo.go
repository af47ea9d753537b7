package repositories

import (
	"context"
	"fmt"
	"time"

	"smartrental/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AgreementRepository interface {
	Create(ctx context.Context, agreement *models.RentalAgreement) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.RentalAgreement, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.RentalAgreement, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.RentalAgreement, error)
	ListByHouse(ctx context.Context, houseID uuid.UUID) ([]*models.RentalAgreement, error)
	ListAll(ctx context.Context) ([]*models.RentalAgreement, error)
	SignByTenant(ctx context.Context, id uuid.UUID) error
	SignByLandlord(ctx context.Context, id uuid.UUID) error
	MarkDepositPaid(ctx context.Context, id uuid.UUID) error
	UpdateTerms(ctx context.Context, id uuid.UUID, monthlyRent int64, leaseEnd time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type agreementRepo struct {
	db DBTX
}

func NewAgreementRepo(db DBTX) AgreementRepository {
	return &agreementRepo{db: db}
}

const agreementColumns = `id, tenant_id, house_id, landlord_id, lease_start, lease_end, monthly_rent,
		deposit_paid, signed_by_tenant, signed_by_landlord, created_at, updated_at`

func scanAgreement(row pgx.Row) (*models.RentalAgreement, error) {
	a := &models.RentalAgreement{}
	err := row.Scan(
		&a.ID,
		&a.TenantID,
		&a.HouseID,
		&a.LandlordID,
		&a.LeaseStart,
		&a.LeaseEnd,
		&a.MonthlyRent,
		&a.DepositPaid,
		&a.SignedByTenant,
		&a.SignedByLandlord,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (r *agreementRepo) Create(ctx context.Context, a *models.RentalAgreement) error {
	query := `
		INSERT INTO rental_agreements (id, tenant_id, house_id, landlord_id, lease_start, lease_end, monthly_rent,
			deposit_paid, signed_by_tenant, signed_by_landlord, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		a.ID, a.TenantID, a.HouseID, a.LandlordID, a.LeaseStart, a.LeaseEnd, a.MonthlyRent,
		a.DepositPaid, a.SignedByTenant, a.SignedByLandlord,
	)
	if err != nil {
		return fmt.Errorf("failed to create agreement: %w", err)
	}
	return nil
}

func (r *agreementRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.RentalAgreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM rental_agreements WHERE id = $1`
	return scanAgreement(r.db.QueryRow(ctx, query, id))
}

// ListByLandlord returns agreements in creation order. The defaulter scan
// reports in this order.
func (r *agreementRepo) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.RentalAgreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM rental_agreements WHERE landlord_id = $1 ORDER BY created_at`
	return r.list(ctx, query, landlordID)
}

func (r *agreementRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.RentalAgreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM rental_agreements WHERE tenant_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, tenantID)
}

func (r *agreementRepo) ListByHouse(ctx context.Context, houseID uuid.UUID) ([]*models.RentalAgreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM rental_agreements WHERE house_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, houseID)
}

func (r *agreementRepo) ListAll(ctx context.Context) ([]*models.RentalAgreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM rental_agreements ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *agreementRepo) list(ctx context.Context, query string, args ...any) ([]*models.RentalAgreement, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agreements []*models.RentalAgreement
	for rows.Next() {
		a, err := scanAgreement(rows)
		if err != nil {
			return nil, err
		}
		agreements = append(agreements, a)
	}
	return agreements, rows.Err()
}

func (r *agreementRepo) SignByTenant(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE rental_agreements SET signed_by_tenant = true, updated_at = NOW() WHERE id = $1`
	return affectedOne(r.db.Exec(ctx, query, id))
}

func (r *agreementRepo) SignByLandlord(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE rental_agreements SET signed_by_landlord = true, updated_at = NOW() WHERE id = $1`
	return affectedOne(r.db.Exec(ctx, query, id))
}

func (r *agreementRepo) MarkDepositPaid(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE rental_agreements SET deposit_paid = true, updated_at = NOW() WHERE id = $1`
	return affectedOne(r.db.Exec(ctx, query, id))
}

func (r *agreementRepo) UpdateTerms(ctx context.Context, id uuid.UUID, monthlyRent int64, leaseEnd time.Time) error {
	query := `UPDATE rental_agreements SET monthly_rent = $1, lease_end = $2, updated_at = NOW() WHERE id = $3`
	return affectedOne(r.db.Exec(ctx, query, monthlyRent, leaseEnd, id))
}

func (r *agreementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM rental_agreements WHERE id = $1`
	return affectedOne(r.db.Exec(ctx, query, id))
}
