package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Order statuses. Admins may set any status from any state; no forward-only
// ordering is enforced.
const (
	OrderStatusPending    = "pending"
	OrderStatusPickedUp   = "picked_up"
	OrderStatusProcessing = "processing"
	OrderStatusReady      = "ready"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

var orderStatuses = map[string]bool{
	OrderStatusPending:    true,
	OrderStatusPickedUp:   true,
	OrderStatusProcessing: true,
	OrderStatusReady:      true,
	OrderStatusDelivered:  true,
	OrderStatusCancelled:  true,
}

// IsValidOrderStatus reports whether s is one of the six order statuses.
func IsValidOrderStatus(s string) bool {
	return orderStatuses[s]
}

// OrderLine is one priced line of an order. Lines are stored on the order row
// as a typed JSON sequence; their order is preserved.
type OrderLine struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// Order is a one-off priced transaction owned by a single account. Status and
// delivery date are mutable by admins.
type Order struct {
	BaseModel
	AccountID           uuid.UUID                      `gorm:"type:uuid;index;not null" json:"account_id"`
	Account             *Account                       `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	OrderType           string                         `gorm:"not null" json:"order_type"`
	Items               datatypes.JSONSlice[OrderLine] `json:"items"`
	TotalPrice          float64                        `gorm:"not null" json:"total_price"`
	PickupDate          string                         `gorm:"size:10;not null" json:"pickup_date"`
	DeliveryDate        string                         `gorm:"size:10" json:"delivery_date,omitempty"`
	Status              string                         `gorm:"default:'pending'" json:"status"`
	StripePaymentID     string                         `json:"stripe_payment_id,omitempty"`
	SubscriptionID      *uuid.UUID                     `gorm:"type:uuid" json:"subscription_id,omitempty"`
	SpecialInstructions string                         `json:"special_instructions,omitempty"`
}
