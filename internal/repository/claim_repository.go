package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Giftmbatha/food-rescue/internal/model"
)

// ClaimRepository defines claim persistence operations.
type ClaimRepository interface {
	Create(ctx context.Context, claim *model.Claim) error
	Update(ctx context.Context, claim *model.Claim) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Claim, error)
	FindActiveByListingID(ctx context.Context, listingID uuid.UUID) (*model.Claim, error)
	ListByOrganizationProfile(ctx context.Context, organizationProfileID uuid.UUID) ([]model.Claim, error)
	// UpdateStatusIf performs a conditional claim status transition,
	// reporting whether the row moved. Transitions to CANCELLED also clear
	// active_listing_id so the unique index frees the listing for reclaiming.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to model.ClaimStatus) (bool, error)
	// WithTransaction runs fn inside a single database transaction, with both
	// repositories rebound to it. Claim creation and the listing status flip
	// must land in the same transaction or the claim-race guarantee is gone.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, claims ClaimRepository, listings ListingRepository) error) error
}

type claimRepository struct {
	db *gorm.DB
}

// NewClaimRepository creates a new claim repository.
func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &claimRepository{db: db}
}

// Create creates a new claim record.
func (r *claimRepository) Create(ctx context.Context, claim *model.Claim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

// Update updates an existing claim.
func (r *claimRepository) Update(ctx context.Context, claim *model.Claim) error {
	return r.db.WithContext(ctx).Save(claim).Error
}

// FindByID finds a claim by ID.
func (r *claimRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Claim, error) {
	var claim model.Claim
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&claim).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}

// FindActiveByListingID finds the ACTIVE claim for a listing, if any.
func (r *claimRepository) FindActiveByListingID(ctx context.Context, listingID uuid.UUID) (*model.Claim, error) {
	var claim model.Claim
	err := r.db.WithContext(ctx).
		Where("listing_id = ? AND status = ?", listingID, model.ClaimStatusActive).
		First(&claim).Error
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// ListByOrganizationProfile lists an organization's claims, newest first.
func (r *claimRepository) ListByOrganizationProfile(ctx context.Context, organizationProfileID uuid.UUID) ([]model.Claim, error) {
	var claims []model.Claim
	err := r.db.WithContext(ctx).
		Where("organization_profile_id = ?", organizationProfileID).
		Order("created_at DESC").
		Find(&claims).Error
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// UpdateStatusIf transitions status only when the current value still matches.
func (r *claimRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to model.ClaimStatus) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if to == model.ClaimStatusCancelled {
		updates["active_listing_id"] = nil
	}
	res := r.db.WithContext(ctx).Model(&model.Claim{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// WithTransaction executes fn within a database transaction.
func (r *claimRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, claims ClaimRepository, listings ListingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &claimRepository{db: tx}, &listingRepository{db: tx})
	})
}
