package models

import (
	"time"

	"github.com/google/uuid"
)

type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in-progress"
	MaintenanceResolved   MaintenanceStatus = "resolved"
)

func (s MaintenanceStatus) IsValid() bool {
	switch s {
	case MaintenancePending, MaintenanceInProgress, MaintenanceResolved:
		return true
	}
	return false
}

type MaintenancePriority string

const (
	PriorityLow    MaintenancePriority = "low"
	PriorityMedium MaintenancePriority = "medium"
	PriorityHigh   MaintenancePriority = "high"
)

func (p MaintenancePriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type MaintenanceRequest struct {
	ID          uuid.UUID           `json:"id" db:"id"`
	TenantID    uuid.UUID           `json:"tenantId" db:"tenant_id"`
	HouseID     uuid.UUID           `json:"houseId" db:"house_id"`
	Issue       string              `json:"issue" db:"issue"`
	Description string              `json:"description,omitempty" db:"description"`
	Priority    MaintenancePriority `json:"priority" db:"priority"`
	Status      MaintenanceStatus   `json:"status" db:"status"`
	CreatedAt   time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time           `json:"updatedAt" db:"updated_at"`

	Tenant *UserContact `json:"tenant,omitempty" db:"-"`
	House  *HouseRef    `json:"house,omitempty" db:"-"`
}
