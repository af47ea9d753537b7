package models

import (
	"time"

	"github.com/google/uuid"
)

// RentPayment is append-only.
type RentPayment struct {
	ID            uuid.UUID `json:"id" db:"id"`
	AgreementID   uuid.UUID `json:"agreementId" db:"agreement_id"`
	TenantID      uuid.UUID `json:"tenantId" db:"tenant_id"`
	HouseID       uuid.UUID `json:"houseId" db:"house_id"`
	AmountPaid    int64     `json:"amountPaid" db:"amount_paid"`
	PaymentDate   time.Time `json:"paymentDate" db:"payment_date"`
	PaymentMethod string    `json:"paymentMethod" db:"payment_method"`
	ReceiptID     string    `json:"receiptId" db:"receipt_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	// Populated by joined reads.
	HouseTitle string `json:"houseTitle,omitempty" db:"-"`
	TenantName string `json:"tenantName,omitempty" db:"-"`
}

// MonthlyEarnings is one bucket of a landlord's earnings summary.
type MonthlyEarnings struct {
	Month string `json:"month"`
	Total int64  `json:"total"`
	Count int    `json:"count"`
}
