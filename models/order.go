package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order status values. Transitions only move forward; there is no path
// back from paid or delivered.
const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order records a charge that succeeded at the gateway. Rows are only
// created after Stripe confirms the payment intent.
type Order struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	Name        string `gorm:"type:varchar(120);not null" json:"name"`
	OrderedItem string `gorm:"type:varchar(200);default:'Not specified'" json:"ordered_item"`

	// CardNumber is display-only, not a reference to StoredCard.
	CardNumber string  `gorm:"type:varchar(16)" json:"card_number"`
	TotalPrice float64 `gorm:"type:numeric(10,2);not null" json:"total_price"`
	PaidStatus bool    `gorm:"default:false" json:"paid_status"`
	PaidAt     *time.Time `json:"paid_at"`

	Address     string     `gorm:"type:varchar(500);not null" json:"address"`
	IsDelivered bool       `gorm:"default:false" json:"is_delivered"`
	DeliveredAt *time.Time `json:"delivered_at"`

	Status string `gorm:"type:varchar(20);default:'pending'" json:"status"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarkPaid returns a copy of the order in the paid state. Persistence is
// the caller's job; the transition itself never touches the database.
func (o Order) MarkPaid(now time.Time) Order {
	o.PaidStatus = true
	o.PaidAt = &now
	o.Status = OrderStatusPaid
	return o
}

// MarkDelivered returns a copy of the order in the delivered state.
func (o Order) MarkDelivered(now time.Time) Order {
	o.IsDelivered = true
	o.DeliveredAt = &now
	o.Status = OrderStatusDelivered
	return o
}
