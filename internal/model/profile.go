package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the public-facing identity linked 1:1 to an account. Donor and
// organization profiles share the table; Role mirrors the owning account's
// role. Listings and claims reference profiles, never accounts.
type Profile struct {
	ID           uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	AccountID    uuid.UUID      `json:"account_id" gorm:"type:char(36);uniqueIndex;not null"`
	Role         Role           `json:"role" gorm:"type:varchar(20);not null;index"`
	Name         string         `json:"name" gorm:"size:255;not null"`
	City         string         `json:"city" gorm:"size:255;not null"`
	ContactEmail string         `json:"contact_email" gorm:"size:255;not null"`
	ContactPhone string         `json:"phone,omitempty" gorm:"size:32"`
	Address      string         `json:"address,omitempty" gorm:"size:512"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Account Account `json:"-" gorm:"foreignKey:AccountID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
