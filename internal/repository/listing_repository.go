package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Giftmbatha/food-rescue/internal/model"
)

// ListingFilter narrows a listing search. Zero values mean "no filter".
// City is matched case-insensitively against the normalized city key.
type ListingFilter struct {
	City   string
	Status model.ListingStatus
}

// ListingRepository defines listing persistence operations.
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	// UpdateIfOpen writes the donor-editable columns only while the listing
	// is still OPEN, reporting whether a row moved. Status is never among the
	// written columns, so an edit can't resurrect a concurrently claimed
	// listing back to OPEN.
	UpdateIfOpen(ctx context.Context, listing *model.Listing) (bool, error)
	// DeleteIfOpen soft-deletes a listing only while it is still OPEN,
	// reporting whether a row was removed. The status condition keeps a
	// delete from racing a concurrent claim.
	DeleteIfOpen(ctx context.Context, id uuid.UUID) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Listing, error)
	ListByDonorProfile(ctx context.Context, donorProfileID uuid.UUID) ([]model.Listing, error)
	Search(ctx context.Context, filter ListingFilter) ([]model.Listing, error)
	// UpdateStatusIf performs a conditional status transition. It reports
	// whether the row was actually moved: false means another writer got
	// there first (or the listing is gone), and the caller must treat the
	// transition as lost, not retry blindly.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to model.ListingStatus) (bool, error)
}

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository.
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

// Create creates a new listing.
func (r *listingRepository) Create(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

// UpdateIfOpen updates editable columns under the same status condition the
// lifecycle transitions use.
func (r *listingRepository) UpdateIfOpen(ctx context.Context, listing *model.Listing) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("id = ? AND status = ?", listing.ID, model.ListingStatusOpen).
		Updates(map[string]interface{}{
			"title":       listing.Title,
			"description": listing.Description,
			"quantity":    listing.Quantity,
			"unit":        listing.Unit,
			"city":        listing.City,
			"city_key":    model.NormalizeCity(listing.City),
			"address":     listing.Address,
			"expires_at":  listing.ExpiresAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeleteIfOpen soft-deletes a listing while it is still OPEN.
func (r *listingRepository) DeleteIfOpen(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, model.ListingStatusOpen).
		Delete(&model.Listing{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// FindByID finds a listing by ID.
func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	var listing model.Listing
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// ListByDonorProfile lists a donor's own listings, newest first.
func (r *listingRepository) ListByDonorProfile(ctx context.Context, donorProfileID uuid.UUID) ([]model.Listing, error) {
	var listings []model.Listing
	err := r.db.WithContext(ctx).
		Where("donor_profile_id = ?", donorProfileID).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// Search returns listings matching the filter, newest first.
func (r *listingRepository) Search(ctx context.Context, filter ListingFilter) ([]model.Listing, error) {
	query := r.db.WithContext(ctx).Model(&model.Listing{})
	if filter.City != "" {
		query = query.Where("city_key = ?", model.NormalizeCity(filter.City))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var listings []model.Listing
	if err := query.Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// UpdateStatusIf transitions status only when the current value still matches.
func (r *listingRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to model.ListingStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
