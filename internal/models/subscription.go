package models

import "github.com/google/uuid"

// Subscription statuses. A subscription is created active and may only move
// to cancelled, which is terminal.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
)

// Subscription types and frequencies accepted by the plan catalog.
const (
	SubscriptionTypeLaundry        = "laundry"
	SubscriptionTypeShirtsTrousers = "shirts_trousers"

	FrequencyWeekly      = "weekly"
	FrequencyFortnightly = "fortnightly"
)

// Subscription is a recurring booking owned by a single account.
type Subscription struct {
	BaseModel
	AccountID            uuid.UUID `gorm:"type:uuid;index;not null" json:"account_id"`
	Account              *Account  `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	SubscriptionType     string    `gorm:"not null" json:"subscription_type"`
	Tier                 int       `gorm:"not null" json:"tier"`
	Frequency            string    `gorm:"not null" json:"frequency"`
	Status               string    `gorm:"default:'active'" json:"status"`
	StripeSubscriptionID string    `json:"stripe_subscription_id,omitempty"`
	NextPickupDate       string    `gorm:"size:10" json:"next_pickup_date,omitempty"`
}
