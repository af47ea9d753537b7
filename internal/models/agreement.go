package models

import (
	"time"

	"github.com/google/uuid"
)

// RentalAgreement binds one tenant, one house and one landlord.
type RentalAgreement struct {
	ID               uuid.UUID `json:"id" db:"id"`
	TenantID         uuid.UUID `json:"tenantId" db:"tenant_id"`
	HouseID          uuid.UUID `json:"houseId" db:"house_id"`
	LandlordID       uuid.UUID `json:"landlordId" db:"landlord_id"`
	LeaseStart       time.Time `json:"leaseStart" db:"lease_start"`
	LeaseEnd         time.Time `json:"leaseEnd" db:"lease_end"`
	MonthlyRent      int64     `json:"monthlyRent" db:"monthly_rent"`
	DepositPaid      bool      `json:"depositPaid" db:"deposit_paid"`
	SignedByTenant   bool      `json:"signedByTenant" db:"signed_by_tenant"`
	SignedByLandlord bool      `json:"signedByLandlord" db:"signed_by_landlord"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}
