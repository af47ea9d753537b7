package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleTenant    Role = "tenant"
	RoleLandlord  Role = "landlord"
	RoleCaretaker Role = "caretaker"
	RoleAgent     Role = "agent"
	RoleAdmin     Role = "admin"
)

var validRoles = map[Role]struct{}{
	RoleTenant:    {},
	RoleLandlord:  {},
	RoleCaretaker: {},
	RoleAgent:     {},
	RoleAdmin:     {},
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := validRoles[r]
	return ok
}

// NotificationPrefs controls which channels a user is reached on.
type NotificationPrefs struct {
	SMS   bool `json:"sms" db:"notify_sms"`
	Email bool `json:"email" db:"notify_email"`
	InApp bool `json:"inApp" db:"notify_in_app"`
}

// DefaultNotificationPrefs enables every channel.
func DefaultNotificationPrefs() NotificationPrefs {
	return NotificationPrefs{SMS: true, Email: true, InApp: true}
}

type User struct {
	ID                uuid.UUID         `json:"id" db:"id"`
	FullName          string            `json:"fullName" db:"full_name"`
	Email             string            `json:"email" db:"email"`
	Phone             string            `json:"phone" db:"phone"`
	PasswordHash      string            `json:"-" db:"password_hash"` // Never serialize in JSON
	Role              Role              `json:"role" db:"role"`
	Suspended         bool              `json:"isSuspended" db:"is_suspended"`
	Active            bool              `json:"active" db:"active"`
	LandlordID        *uuid.UUID        `json:"landlordId,omitempty" db:"landlord_id"`
	NotificationPrefs NotificationPrefs `json:"notificationPrefs"`
	CreatedAt         time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time         `json:"updatedAt" db:"updated_at"`
}

// UserContact is the subset of a user embedded in listings.
type UserContact struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
}

func (u *User) Contact() UserContact {
	return UserContact{ID: u.ID, FullName: u.FullName, Email: u.Email, Phone: u.Phone}
}
