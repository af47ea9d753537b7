package models

import (
	"time"

	"github.com/google/uuid"
)

type VisitStatus string

const (
	VisitPending  VisitStatus = "pending"
	VisitApproved VisitStatus = "approved"
	VisitDeclined VisitStatus = "declined"
)

// VisitRequest asks the landlord who listed a house for a site visit.
type VisitRequest struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	HouseID       uuid.UUID   `json:"houseId" db:"house_id"`
	TenantID      uuid.UUID   `json:"tenantId" db:"tenant_id"`
	RequestedTo   uuid.UUID   `json:"requestedTo" db:"requested_to"`
	Message       string      `json:"message,omitempty" db:"message"`
	Status        VisitStatus `json:"status" db:"status"`
	ScheduledDate *time.Time  `json:"scheduledDate,omitempty" db:"scheduled_date"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" db:"updated_at"`

	Tenant *UserContact `json:"tenant,omitempty" db:"-"`
	House  *HouseRef    `json:"house,omitempty" db:"-"`
}
