package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role identifies which side of a donation an account acts on.
// The set is closed: authorization checks switch exhaustively over it
// instead of comparing raw strings.
type Role string

const (
	RoleDonor        Role = "donor"
	RoleOrganization Role = "ngo"
)

// ParseRole validates a role string from an untrusted source.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleDonor:
		return RoleDonor, nil
	case RoleOrganization:
		return RoleOrganization, nil
	default:
		return "", fmt.Errorf("role must be %q or %q", RoleDonor, RoleOrganization)
	}
}

// Account represents a registered login identity. The role is fixed at
// registration and never changes afterwards.
type Account struct {
	ID           uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role           `json:"role" gorm:"type:varchar(20);not null;index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:AccountID"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
