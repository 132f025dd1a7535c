package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BillingAddress is a delivery/billing address owned by a user. Its
// lifecycle is independent of any stored card.
type BillingAddress struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	PhoneNumber string `gorm:"type:varchar(15);not null" json:"phone_number"`
	HouseNo     string `gorm:"type:varchar(300);not null" json:"house_no"`
	Landmark    string `gorm:"type:varchar(120)" json:"landmark"`
	City        string `gorm:"type:varchar(120);not null" json:"city"`
	State       string `gorm:"type:varchar(120);not null" json:"state"`
	PinCode     string `gorm:"type:varchar(6);not null" json:"pin_code"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// FullAddress returns the single-line form used on orders.
func (a *BillingAddress) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s, %s - %s", a.HouseNo, a.Landmark, a.City, a.State, a.PinCode)
}
