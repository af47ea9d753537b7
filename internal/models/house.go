package models

import (
	"time"

	"github.com/google/uuid"
)

type HouseStatus string

const (
	HouseVacant   HouseStatus = "vacant"
	HouseOccupied HouseStatus = "occupied"
	HouseReserved HouseStatus = "reserved"
)

func (s HouseStatus) IsValid() bool {
	switch s {
	case HouseVacant, HouseOccupied, HouseReserved:
		return true
	}
	return false
}

type Location struct {
	County string `json:"county" db:"county"`
	Town   string `json:"town" db:"town"`
	Street string `json:"street" db:"street"`
}

type House struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	Location    Location    `json:"location"`
	Rent        int64       `json:"rent" db:"rent"`
	Size        string      `json:"size" db:"size"`
	Amenities   []string    `json:"amenities" db:"amenities"`
	Status      HouseStatus `json:"status" db:"status"`
	LandlordID  uuid.UUID   `json:"landlordId" db:"landlord_id"`
	CaretakerID *uuid.UUID  `json:"caretakerId,omitempty" db:"caretaker_id"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
}

// HouseRef is the subset of a house embedded in listings.
type HouseRef struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Location Location  `json:"location"`
}

func (h *House) Ref() HouseRef {
	return HouseRef{ID: h.ID, Title: h.Title, Location: h.Location}
}
