package model

import "time"

// Vehicle is a household vehicle with statutory renewal dates.
type Vehicle struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Registration    string     `gorm:"size:20;uniqueIndex" json:"registration"`
	Make            string     `json:"make"`
	Model           string     `json:"model"`
	MOTExpiry       *time.Time `json:"mot_expiry,omitempty"`
	TaxExpiry       *time.Time `json:"tax_expiry,omitempty"`
	InsuranceExpiry *time.Time `json:"insurance_expiry,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Subscription is a recurring payment with a renewal date.
type Subscription struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Provider    string     `json:"provider,omitempty"`
	AmountCents int        `json:"amount_cents"`
	Currency    string     `gorm:"size:3;default:GBP" json:"currency"`
	RenewalDate *time.Time `json:"renewal_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// InsurancePolicy covers home, contents, pet or life insurance.
type InsurancePolicy struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Provider     string     `gorm:"not null" json:"provider"`
	PolicyType   string     `json:"policy_type"`
	PolicyNumber string     `json:"policy_number,omitempty"`
	RenewalDate  *time.Time `json:"renewal_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Document is an identity or household document that expires.
type Document struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Title      string     `gorm:"not null" json:"title"`
	Kind       string     `json:"kind,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Entity type names used in reminder source references.
const (
	EntityVehicle      = "vehicle"
	EntitySubscription = "subscription"
	EntityInsurance    = "insurance_policy"
	EntityDocument     = "document"
)
