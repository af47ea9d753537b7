package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification kinds stored with in-app notifications.
const (
	NotificationRentDue          = "rent_due"
	NotificationRelocationStatus = "relocation_status"
	NotificationPayment          = "payment"
	NotificationAgreement        = "agreement"
	NotificationMaintenance      = "maintenance"
)

type Notification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Type      string    `json:"type" db:"type"`
	Message   string    `json:"message" db:"message"`
	Seen      bool      `json:"seen" db:"seen"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// OutboundMessage is an SMS or email handed to a delivery backend.
type OutboundMessage struct {
	Channel string    `json:"channel"`
	To      string    `json:"to"`
	Subject string    `json:"subject,omitempty"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sentAt"`
}
