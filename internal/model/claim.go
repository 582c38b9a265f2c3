package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClaimStatus represents the lifecycle state of a claim.
type ClaimStatus string

const (
	ClaimStatusActive    ClaimStatus = "ACTIVE"
	ClaimStatusCompleted ClaimStatus = "COMPLETED"
	ClaimStatusCancelled ClaimStatus = "CANCELLED"
)

// Claim is an organization's commitment to collect a listing.
//
// ActiveListingID enforces the single-live-claim rule at the storage level:
// it equals ListingID while the claim is ACTIVE or COMPLETED and is NULLed
// when the claim is cancelled. MySQL exempts NULLs from unique indexes, so
// at most one non-cancelled claim can ever exist per listing, independent of
// any status check in application code.
type Claim struct {
	ID                    uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	ListingID             uuid.UUID      `json:"listing_id" gorm:"type:char(36);not null;index"`
	OrganizationProfileID uuid.UUID      `json:"ngo_id" gorm:"type:char(36);not null;index"`
	Status                ClaimStatus    `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	Note                  string         `json:"note,omitempty" gorm:"type:text"`
	ActiveListingID       *uuid.UUID     `json:"-" gorm:"type:char(36);uniqueIndex"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Listing             Listing `json:"-" gorm:"foreignKey:ListingID"`
	OrganizationProfile Profile `json:"-" gorm:"foreignKey:OrganizationProfileID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Claim) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
