package services

import (
	"context"
	"strings"
	"time"

	"smartrental/internal/models"
	"smartrental/internal/repositories"

	"github.com/google/uuid"
)

type AuditLogsService interface {
	// LogActivity is called by the audit middleware after a successful write.
	LogActivity(ctx context.Context, actionBy uuid.UUID, action string, details models.JSONB) error
	GetAuditLog(ctx context.Context, id uuid.UUID) (*models.AuditLog, error)
	ListAuditLogs(ctx context.Context, filter models.AuditLogFilter) (*models.AuditLogPage, error)
	// ClearAuditLogs removes entries older than before (all when nil) and
	// returns how many were deleted.
	ClearAuditLogs(ctx context.Context, before *time.Time) (int64, error)
}

type auditLogsService struct {
	entries repositories.AuditLogsRepository
	now     func() time.Time
}

func NewAuditLogsService(entries repositories.AuditLogsRepository) AuditLogsService {
	return &auditLogsService{
		entries: entries,
		now:     time.Now,
	}
}

func (s *auditLogsService) LogActivity(ctx context.Context, actionBy uuid.UUID, action string, details models.JSONB) error {
	action = strings.TrimSpace(action)
	if action == "" {
		return newError(ErrValidation, "action is required")
	}
	if actionBy == uuid.Nil {
		return newError(ErrValidation, "action_by is required")
	}
	if details == nil {
		details = models.JSONB{}
	}

	return s.entries.Create(ctx, &models.AuditLog{
		ID:        uuid.New(),
		ActionBy:  actionBy,
		Action:    action,
		Details:   details,
		Timestamp: s.now(),
	})
}

func (s *auditLogsService) GetAuditLog(ctx context.Context, id uuid.UUID) (*models.AuditLog, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(ErrNotFound, "Audit log not found")
		}
		return nil, err
	}
	return entry, nil
}

func (s *auditLogsService) ListAuditLogs(ctx context.Context, filter models.AuditLogFilter) (*models.AuditLogPage, error) {
	if filter.Since != nil && filter.Until != nil && filter.Until.Before(*filter.Since) {
		return nil, newError(ErrValidation, "from must not be after to")
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	filter.Limit = min(filter.Limit, maxListLimit)
	filter.Offset = max(filter.Offset, 0)

	entries, total, err := s.entries.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &models.AuditLogPage{
		Entries: entries,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}

func (s *auditLogsService) ClearAuditLogs(ctx context.Context, before *time.Time) (int64, error) {
	if before != nil && before.After(s.now()) {
		return 0, newError(ErrValidation, "before must not be in the future")
	}
	return s.entries.Purge(ctx, before)
}
