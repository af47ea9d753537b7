package models

import (
	"time"

	"github.com/google/uuid"
)

// JSONB holds free-form audit details.
type JSONB map[string]interface{}

// AuditLog records one state-changing action.
type AuditLog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ActionBy  uuid.UUID `json:"actionBy" db:"action_by"`
	Action    string    `json:"action" db:"action"`
	Details   JSONB     `json:"details" db:"details"`
	Timestamp time.Time `json:"timestamp" db:"created_at"`
}

// AuditLogFilter narrows the admin listing. Action matches as a prefix so
// "PATCH /api/relocations" finds every relocation update.
type AuditLogFilter struct {
	Action   string
	ActionBy *uuid.UUID
	Since    *time.Time
	Until    *time.Time
	Limit    int
	Offset   int
}

// AuditLogPage is one window of a filtered listing plus the filter's total.
type AuditLogPage struct {
	Entries []*AuditLog `json:"data"`
	Total   int64       `json:"total"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
}
