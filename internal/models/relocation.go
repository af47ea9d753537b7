package models

import (
	"time"

	"github.com/google/uuid"
)

type RelocationStatus string

const (
	RelocationPending   RelocationStatus = "pending"
	RelocationApproved  RelocationStatus = "approved"
	RelocationAssigned  RelocationStatus = "assigned"
	RelocationCompleted RelocationStatus = "completed"
	RelocationDeclined  RelocationStatus = "declined"
)

// relocationStatuses is read-only after init.
var relocationStatuses = map[RelocationStatus]struct{}{
	RelocationPending:   {},
	RelocationApproved:  {},
	RelocationAssigned:  {},
	RelocationCompleted: {},
	RelocationDeclined:  {},
}

// IsValid checks the status against the whitelist. Transitions between
// whitelisted values are not restricted.
func (s RelocationStatus) IsValid() bool {
	_, ok := relocationStatuses[s]
	return ok
}

type HouseSize string

const (
	HouseSizeSmall  HouseSize = "small"
	HouseSizeMedium HouseSize = "medium"
	HouseSizeLarge  HouseSize = "large"
)

func (s HouseSize) IsValid() bool {
	switch s {
	case HouseSizeSmall, HouseSizeMedium, HouseSizeLarge:
		return true
	}
	return false
}

type RelocationRequest struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	TenantID      uuid.UUID        `json:"tenantId" db:"tenant_id"`
	HouseID       uuid.UUID        `json:"houseId" db:"house_id"`
	DistanceKm    int              `json:"distanceKm" db:"distance_km"`
	FloorNumber   int              `json:"floorNumber" db:"floor_number"`
	HouseSize     HouseSize        `json:"houseSize" db:"house_size"`
	EstimatedCost int64            `json:"estimatedCost" db:"estimated_cost"`
	DriverID      *uuid.UUID       `json:"driverId" db:"driver_id"`
	Status        RelocationStatus `json:"status" db:"status"`
	Rating        *int             `json:"rating,omitempty" db:"rating"`
	Feedback      *string          `json:"feedback,omitempty" db:"feedback"`
	RatedByTenant bool             `json:"ratedByTenant" db:"rated_by_tenant"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time        `json:"updatedAt" db:"updated_at"`

	// Populated by joined reads.
	Tenant *UserContact `json:"tenant,omitempty" db:"-"`
	House  *HouseRef    `json:"house,omitempty" db:"-"`
}

// RelocationFilter narrows the admin listing. Zero values match everything.
type RelocationFilter struct {
	Status *RelocationStatus
	From   *time.Time
	To     *time.Time
}
