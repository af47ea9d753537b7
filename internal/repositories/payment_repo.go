package repositories

import (
	"context"
	"fmt"
	"time"

	"smartrental/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.RentPayment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.RentPayment, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.RentPayment, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.RentPayment, error)
	ListByHouse(ctx context.Context, houseID uuid.UUID) ([]*models.RentPayment, error)
	ExistsInRange(ctx context.Context, agreementID uuid.UUID, start, end time.Time) (bool, error)
	MonthlyTotals(ctx context.Context, landlordID uuid.UUID) ([]models.MonthlyEarnings, error)
}

type paymentRepo struct {
	db DBTX
}

func NewPaymentRepo(db DBTX) PaymentRepository {
	return &paymentRepo{db: db}
}

const paymentColumns = `p.id, p.agreement_id, p.tenant_id, p.house_id, p.amount_paid, p.payment_date,
		p.payment_method, p.receipt_id, p.created_at, h.title, u.full_name`

const paymentFrom = `
		FROM rent_payments p
		JOIN houses h ON h.id = p.house_id
		JOIN users u ON u.id = p.tenant_id`

func scanPayment(row pgx.Row) (*models.RentPayment, error) {
	p := &models.RentPayment{}
	err := row.Scan(
		&p.ID,
		&p.AgreementID,
		&p.TenantID,
		&p.HouseID,
		&p.AmountPaid,
		&p.PaymentDate,
		&p.PaymentMethod,
		&p.ReceiptID,
		&p.CreatedAt,
		&p.HouseTitle,
		&p.TenantName,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *paymentRepo) Create(ctx context.Context, p *models.RentPayment) error {
	query := `
		INSERT INTO rent_payments (id, agreement_id, tenant_id, house_id, amount_paid, payment_date,
			payment_method, receipt_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.AgreementID, p.TenantID, p.HouseID, p.AmountPaid, p.PaymentDate, p.PaymentMethod, p.ReceiptID,
	)
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	return nil
}

func (r *paymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.RentPayment, error) {
	query := `SELECT ` + paymentColumns + paymentFrom + ` WHERE p.id = $1`
	return scanPayment(r.db.QueryRow(ctx, query, id))
}

func (r *paymentRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.RentPayment, error) {
	query := `SELECT ` + paymentColumns + paymentFrom + ` WHERE p.tenant_id = $1 ORDER BY p.payment_date DESC`
	return r.list(ctx, query, tenantID)
}

func (r *paymentRepo) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.RentPayment, error) {
	query := `SELECT ` + paymentColumns + paymentFrom + ` WHERE h.landlord_id = $1 ORDER BY p.payment_date DESC`
	return r.list(ctx, query, landlordID)
}

func (r *paymentRepo) ListByHouse(ctx context.Context, houseID uuid.UUID) ([]*models.RentPayment, error) {
	query := `SELECT ` + paymentColumns + paymentFrom + ` WHERE p.house_id = $1 ORDER BY p.payment_date DESC`
	return r.list(ctx, query, houseID)
}

func (r *paymentRepo) list(ctx context.Context, query string, args ...any) ([]*models.RentPayment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.RentPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// ExistsInRange reports whether the agreement has a payment dated within
// [start, end], both bounds inclusive.
func (r *paymentRepo) ExistsInRange(ctx context.Context, agreementID uuid.UUID, start, end time.Time) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM rent_payments
			WHERE agreement_id = $1 AND payment_date >= $2 AND payment_date <= $3
		)
	`
	if err := r.db.QueryRow(ctx, query, agreementID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to look up payment for agreement %s: %w", agreementID, err)
	}
	return exists, nil
}

func (r *paymentRepo) MonthlyTotals(ctx context.Context, landlordID uuid.UUID) ([]models.MonthlyEarnings, error) {
	query := `
		SELECT to_char(date_trunc('month', p.payment_date), 'Mon YYYY') AS month,
			SUM(p.amount_paid)::bigint AS total,
			COUNT(*) AS count
		FROM rent_payments p
		JOIN houses h ON h.id = p.house_id
		WHERE h.landlord_id = $1
		GROUP BY date_trunc('month', p.payment_date)
		ORDER BY date_trunc('month', p.payment_date)
	`
	rows, err := r.db.Query(ctx, query, landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summary []models.MonthlyEarnings
	for rows.Next() {
		var m models.MonthlyEarnings
		if err := rows.Scan(&m.Month, &m.Total, &m.Count); err != nil {
			return nil, err
		}
		summary = append(summary, m)
	}
	return summary, rows.Err()
}
