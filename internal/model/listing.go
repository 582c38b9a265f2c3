package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListingStatus represents the lifecycle state of a listing.
type ListingStatus string

const (
	ListingStatusOpen      ListingStatus = "OPEN"
	ListingStatusClaimed   ListingStatus = "CLAIMED"
	ListingStatusCollected ListingStatus = "COLLECTED"
	ListingStatusCancelled ListingStatus = "CANCELLED"
)

// NormalizeCity produces the comparison key used for city matching:
// trimmed and lower-cased, so search is case-insensitive exact match.
func NormalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// Listing is a donor's offer of surplus food. It is owned exclusively by its
// donor profile and mutable by the owner only while OPEN.
//
// Legal transitions: OPEN -> CLAIMED | CANCELLED, CLAIMED -> COLLECTED | OPEN.
// OPEN is re-enterable only through claim cancellation; COLLECTED and
// CANCELLED are terminal. Expiry never changes the stored status: a listing
// past ExpiresAt simply stops accepting claims.
type Listing struct {
	ID             uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	DonorProfileID uuid.UUID       `json:"donor_id" gorm:"type:char(36);not null;index"`
	Title          string          `json:"title" gorm:"size:255;not null"`
	Description    string          `json:"description,omitempty" gorm:"type:text"`
	Quantity       decimal.Decimal `json:"quantity" gorm:"type:decimal(20,2);not null"`
	Unit           string          `json:"unit" gorm:"size:32;not null"`
	City           string          `json:"city" gorm:"size:255;not null"`
	CityKey        string          `json:"-" gorm:"size:255;not null;index"`
	Address        string          `json:"address,omitempty" gorm:"size:512"`
	ExpiresAt      time.Time       `json:"expires_at" gorm:"not null;index"`
	Status         ListingStatus   `json:"status" gorm:"type:varchar(20);not null;default:'OPEN';index"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	DonorProfile Profile `json:"-" gorm:"foreignKey:DonorProfileID"`
}

// BeforeCreate sets UUID and the normalized city key before creating the record.
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.CityKey = NormalizeCity(l.City)
	return nil
}

// BeforeSave keeps the city key in sync with the city on updates.
func (l *Listing) BeforeSave(tx *gorm.DB) error {
	l.CityKey = NormalizeCity(l.City)
	return nil
}

// Expired reports whether the listing is past its expiry at the given time.
func (l *Listing) Expired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}
