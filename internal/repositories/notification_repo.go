package repositories

import (
	"context"
	"fmt"

	"smartrental/internal/models"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error)
	MarkAllSeen(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type notificationRepo struct {
	db DBTX
}

func NewNotificationRepo(db DBTX) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, message, seen, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	if _, err := r.db.Exec(ctx, query, n.ID, n.UserID, n.Type, n.Message, n.Seen); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}

func (r *notificationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	n := &models.Notification{}
	query := `SELECT id, user_id, type, message, seen, created_at FROM notifications WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.Seen, &n.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return n, nil
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error) {
	query := `
		SELECT id, user_id, type, message, seen, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []*models.Notification{}
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.Seen, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *notificationRepo) MarkAllSeen(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `UPDATE notifications SET seen = true WHERE user_id = $1 AND seen = false`
	tag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *notificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notifications WHERE id = $1`
	return affectedOne(r.db.Exec(ctx, query, id))
}
