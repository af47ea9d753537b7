package models

import "time"

// Defaulter is an agreement with no payment in the current billing month.
type Defaulter struct {
	Tenant      UserContact `json:"tenant"`
	House       HouseRef    `json:"house"`
	MonthlyRent int64       `json:"monthlyRent"`
	LeaseStart  time.Time   `json:"leaseStart"`
	LeaseEnd    time.Time   `json:"leaseEnd"`
}

// Reminded confirms one reminder SMS.
type Reminded struct {
	Tenant string `json:"tenant"`
	Phone  string `json:"phone"`
	House  string `json:"house"`
}
