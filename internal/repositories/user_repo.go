package repositories

import (
	"context"
	"fmt"

	"smartrental/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailOrPhone(ctx context.Context, emailOrPhone string) (*models.User, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	List(ctx context.Context, role *models.Role, limit, offset int) ([]*models.User, error)
	ListIDsByRole(ctx context.Context, role models.Role) ([]uuid.UUID, error)
	SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) error
	SetRole(ctx context.Context, id uuid.UUID, role models.Role) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	UpdateNotificationPrefs(ctx context.Context, id uuid.UUID, prefs models.NotificationPrefs) error
}

type userRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, full_name, email, phone, password_hash, role, is_suspended, active, landlord_id,
		notify_sms, notify_email, notify_in_app, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.Suspended,
		&user.Active,
		&user.LandlordID,
		&user.NotificationPrefs.SMS,
		&user.NotificationPrefs.Email,
		&user.NotificationPrefs.InApp,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, full_name, email, phone, password_hash, role, is_suspended, active, landlord_id,
			notify_sms, notify_email, notify_in_app, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.Phone,
		user.PasswordHash,
		string(user.Role),
		user.Suspended,
		user.Active,
		user.LandlordID,
		user.NotificationPrefs.SMS,
		user.NotificationPrefs.Email,
		user.NotificationPrefs.InApp,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmailOrPhone(ctx context.Context, emailOrPhone string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR phone = $1`
	return scanUser(r.db.QueryRow(ctx, query, emailOrPhone))
}

func (r *userRepo) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE email = $1 OR phone = $2`
	if err := r.db.QueryRow(ctx, query, email, phone).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check user uniqueness: %w", err)
	}
	return count > 0, nil
}

func (r *userRepo) List(ctx context.Context, role *models.Role, limit, offset int) ([]*models.User, error) {
	var roleArg *string
	if role != nil {
		s := string(*role)
		roleArg = &s
	}
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE ($1::text IS NULL OR role = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, roleArg, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepo) ListIDsByRole(ctx context.Context, role models.Role) ([]uuid.UUID, error) {
	query := `SELECT id FROM users WHERE role = $1 AND active = true AND is_suspended = false ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *userRepo) SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) error {
	query := `UPDATE users SET is_suspended = $1, updated_at = NOW() WHERE id = $2`
	return affectedOne(r.db.Exec(ctx, query, suspended, id))
}

func (r *userRepo) SetRole(ctx context.Context, id uuid.UUID, role models.Role) error {
	query := `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`
	return affectedOne(r.db.Exec(ctx, query, string(role), id))
}

func (r *userRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET active = false, updated_at = NOW() WHERE id = $1`
	return affectedOne(r.db.Exec(ctx, query, id))
}

func (r *userRepo) UpdateNotificationPrefs(ctx context.Context, id uuid.UUID, prefs models.NotificationPrefs) error {
	query := `
		UPDATE users
		SET notify_sms = $1, notify_email = $2, notify_in_app = $3, updated_at = NOW()
		WHERE id = $4
	`
	return affectedOne(r.db.Exec(ctx, query, prefs.SMS, prefs.Email, prefs.InApp, id))
}
