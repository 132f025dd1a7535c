package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoredCard caches a subset of a Stripe card locally. Stripe owns the
// actual payment instrument; CustomerID and CardID point back at it.
type StoredCard struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Email      string    `gorm:"type:varchar(254);not null" json:"email"`
	CustomerID string    `gorm:"type:varchar(200);not null" json:"customer_id"`

	NameOnCard string `gorm:"type:varchar(200)" json:"name_on_card"`
	CardNumber string `gorm:"type:varchar(16);uniqueIndex;not null" json:"card_number"`
	ExpMonth   string `gorm:"type:varchar(2)" json:"exp_month"`
	ExpYear    string `gorm:"type:varchar(4)" json:"exp_year"`
	CardID     string `gorm:"type:varchar(100)" json:"card_id"`

	AddressCity    string `gorm:"type:varchar(120)" json:"address_city"`
	AddressCountry string `gorm:"type:varchar(120)" json:"address_country"`
	AddressState   string `gorm:"type:varchar(120)" json:"address_state"`
	AddressZip     string `gorm:"type:varchar(6)" json:"address_zip"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Last4 returns the display suffix of the card number.
func (c *StoredCard) Last4() string {
	if len(c.CardNumber) < 4 {
		return c.CardNumber
	}
	return c.CardNumber[len(c.CardNumber)-4:]
}
