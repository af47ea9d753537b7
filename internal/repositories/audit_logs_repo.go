package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"smartrental/internal/models"

	"github.com/google/uuid"
)

type AuditLogsRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AuditLog, error)
	// List returns one page, newest first, and the number of entries the
	// filter matches in total.
	List(ctx context.Context, filter models.AuditLogFilter) ([]*models.AuditLog, int64, error)
	// Purge deletes entries older than before, or every entry when before is nil.
	Purge(ctx context.Context, before *time.Time) (int64, error)
}

type auditLogsRepo struct {
	db DBTX
}

func NewAuditLogsRepo(db DBTX) AuditLogsRepository {
	return &auditLogsRepo{db: db}
}

func (r *auditLogsRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal audit details: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO audit_logs (id, action_by, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.ActionBy, entry.Action, details, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}

func (r *auditLogsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.AuditLog, error) {
	var raw []byte
	entry := &models.AuditLog{}
	err := r.db.QueryRow(ctx,
		`SELECT id, action_by, action, details, created_at FROM audit_logs WHERE id = $1`, id,
	).Scan(&entry.ID, &entry.ActionBy, &entry.Action, &raw, &entry.Timestamp)
	if err != nil {
		return nil, notFound(err)
	}
	if err := decodeDetails(raw, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Optional filters are passed as NULLs so the statement text never changes.
const auditWhere = `
	WHERE ($1::text IS NULL OR action LIKE $1 || '%')
		AND ($2::uuid IS NULL OR action_by = $2)
		AND ($3::timestamptz IS NULL OR created_at >= $3)
		AND ($4::timestamptz IS NULL OR created_at <= $4)`

const auditListQuery = `
	SELECT id, action_by, action, details, created_at, COUNT(*) OVER () AS total
	FROM audit_logs` + auditWhere + `
	ORDER BY created_at DESC, id
	LIMIT $5 OFFSET $6`

func (r *auditLogsRepo) List(ctx context.Context, filter models.AuditLogFilter) ([]*models.AuditLog, int64, error) {
	var action *string
	if a := strings.TrimSpace(filter.Action); a != "" {
		a = escapeLike(a)
		action = &a
	}

	rows, err := r.db.Query(ctx, auditListQuery,
		action, filter.ActionBy, filter.Since, filter.Until, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var total int64
	entries := []*models.AuditLog{}
	for rows.Next() {
		var raw []byte
		entry := &models.AuditLog{}
		if err := rows.Scan(&entry.ID, &entry.ActionBy, &entry.Action, &raw, &entry.Timestamp, &total); err != nil {
			return nil, 0, err
		}
		if err := decodeDetails(raw, entry); err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// An offset past the end yields no rows and so no window count.
	if len(entries) == 0 && filter.Offset > 0 {
		err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs`+auditWhere,
			action, filter.ActionBy, filter.Since, filter.Until).Scan(&total)
		if err != nil {
			return nil, 0, err
		}
	}
	return entries, total, nil
}

func (r *auditLogsRepo) Purge(ctx context.Context, before *time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM audit_logs WHERE $1::timestamptz IS NULL OR created_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func decodeDetails(raw []byte, entry *models.AuditLog) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &entry.Details); err != nil {
		return fmt.Errorf("failed to decode audit details: %w", err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
