package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Giftmbatha/food-rescue/internal/auth"
	apperrors "github.com/Giftmbatha/food-rescue/internal/errors"
	"github.com/Giftmbatha/food-rescue/internal/model"
	"github.com/Giftmbatha/food-rescue/internal/repository"
)

// ListingInput carries the donor-editable listing fields.
type ListingInput struct {
	Title       string
	Description string
	Quantity    decimal.Decimal
	Unit        string
	City        string
	Address     string
	ExpiresAt   time.Time
}

// ListingView is a listing projected for public search results. Contact
// fields are derived from the donor profile and only attached while the
// listing is OPEN.
type ListingView struct {
	model.Listing
	DonorName    string `json:"donor_name,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

// ListingService handles the listing lifecycle and public search.
type ListingService interface {
	CreateListing(ctx context.Context, subject auth.Subject, donorProfileID uuid.UUID, input ListingInput) (*model.Listing, error)
	UpdateListing(ctx context.Context, subject auth.Subject, listingID uuid.UUID, input ListingInput) (*model.Listing, error)
	CancelListing(ctx context.Context, subject auth.Subject, listingID uuid.UUID) (*model.Listing, error)
	DeleteListing(ctx context.Context, subject auth.Subject, listingID uuid.UUID) error
	GetListing(ctx context.Context, id uuid.UUID) (*model.Listing, error)
	SearchListings(ctx context.Context, filter repository.ListingFilter) ([]ListingView, error)
	MyListings(ctx context.Context, subject auth.Subject) ([]model.Listing, error)
}

type listingService struct {
	listingRepo repository.ListingRepository
	profileRepo repository.ProfileRepository
	now         func() time.Time
}

// NewListingService creates a new listing service.
func NewListingService(listingRepo repository.ListingRepository, profileRepo repository.ProfileRepository) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		profileRepo: profileRepo,
		now:         time.Now,
	}
}

// CreateListing creates an OPEN listing owned by the donor profile.
func (s *listingService) CreateListing(ctx context.Context, subject auth.Subject, donorProfileID uuid.UUID, input ListingInput) (*model.Listing, error) {
	switch subject.Role {
	case model.RoleDonor:
	case model.RoleOrganization:
		return nil, apperrors.ErrForbidden
	default:
		return nil, apperrors.ErrForbidden
	}

	profile, err := s.profileRepo.FindByID(ctx, donorProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find donor profile: %w", err)
	}
	if profile.AccountID != subject.AccountID || profile.Role != model.RoleDonor {
		return nil, apperrors.ErrForbidden
	}
	if err := s.validateListingInput(input); err != nil {
		return nil, err
	}

	listing := &model.Listing{
		DonorProfileID: donorProfileID,
		Title:          input.Title,
		Description:    input.Description,
		Quantity:       input.Quantity,
		Unit:           input.Unit,
		City:           input.City,
		Address:        input.Address,
		ExpiresAt:      input.ExpiresAt,
		Status:         model.ListingStatusOpen,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return listing, nil
}

// UpdateListing edits a listing. Only the owning donor may edit, and only
// while the listing is still OPEN; ownership is checked first so a
// non-owner gets Forbidden regardless of status. The write itself is
// conditional on OPEN, so an edit racing a claim loses cleanly instead of
// saving a stale status over CLAIMED.
func (s *listingService) UpdateListing(ctx context.Context, subject auth.Subject, listingID uuid.UUID, input ListingInput) (*model.Listing, error) {
	listing, err := s.ownedListing(ctx, subject, listingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != model.ListingStatusOpen {
		return nil, apperrors.ErrListingNotOpen
	}
	if err := s.validateListingInput(input); err != nil {
		return nil, err
	}

	listing.Title = input.Title
	listing.Description = input.Description
	listing.Quantity = input.Quantity
	listing.Unit = input.Unit
	listing.City = input.City
	listing.Address = input.Address
	listing.ExpiresAt = input.ExpiresAt

	moved, err := s.listingRepo.UpdateIfOpen(ctx, listing)
	if err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	if !moved {
		// The listing left OPEN between our read and the write.
		return nil, apperrors.ErrListingNotOpen
	}
	return listing, nil
}

// CancelListing transitions OPEN -> CANCELLED. The conditional update makes
// a cancel racing a claim lose cleanly instead of clobbering CLAIMED.
func (s *listingService) CancelListing(ctx context.Context, subject auth.Subject, listingID uuid.UUID) (*model.Listing, error) {
	listing, err := s.ownedListing(ctx, subject, listingID)
	if err != nil {
		return nil, err
	}

	moved, err := s.listingRepo.UpdateStatusIf(ctx, listing.ID, model.ListingStatusOpen, model.ListingStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel listing: %w", err)
	}
	if !moved {
		return nil, apperrors.ErrListingNotOpen
	}
	listing.Status = model.ListingStatusCancelled
	return listing, nil
}

// DeleteListing removes a listing that is still OPEN and unclaimed.
func (s *listingService) DeleteListing(ctx context.Context, subject auth.Subject, listingID uuid.UUID) error {
	listing, err := s.ownedListing(ctx, subject, listingID)
	if err != nil {
		return err
	}

	deleted, err := s.listingRepo.DeleteIfOpen(ctx, listing.ID)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if !deleted {
		return apperrors.ErrListingNotOpen
	}
	return nil
}

// GetListing retrieves a listing by ID.
func (s *listingService) GetListing(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	return listing, nil
}

// SearchListings returns listings matching the filter, newest first,
// straight from the authoritative store. OPEN rows carry the donor's
// contact details so organizations can arrange pickup.
func (s *listingService) SearchListings(ctx context.Context, filter repository.ListingFilter) ([]ListingView, error) {
	listings, err := s.listingRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}

	donors := make(map[uuid.UUID]*model.Profile)
	views := make([]ListingView, 0, len(listings))
	for _, listing := range listings {
		view := ListingView{Listing: listing}
		if listing.Status == model.ListingStatusOpen {
			donor, ok := donors[listing.DonorProfileID]
			if !ok {
				donor, err = s.profileRepo.FindByID(ctx, listing.DonorProfileID)
				if err != nil {
					donor = nil
				}
				donors[listing.DonorProfileID] = donor
			}
			if donor != nil {
				view.DonorName = donor.Name
				view.ContactEmail = donor.ContactEmail
				view.ContactPhone = donor.ContactPhone
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// MyListings returns the subject donor's own listings for management views.
func (s *listingService) MyListings(ctx context.Context, subject auth.Subject) ([]model.Listing, error) {
	switch subject.Role {
	case model.RoleDonor:
	case model.RoleOrganization:
		return nil, apperrors.ErrForbidden
	default:
		return nil, apperrors.ErrForbidden
	}

	profile, err := s.profileRepo.FindByAccountID(ctx, subject.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find donor profile: %w", err)
	}
	return s.listingRepo.ListByDonorProfile(ctx, profile.ID)
}

// ownedListing loads a listing and enforces donor ownership.
func (s *listingService) ownedListing(ctx context.Context, subject auth.Subject, listingID uuid.UUID) (*model.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}

	switch subject.Role {
	case model.RoleDonor:
	case model.RoleOrganization:
		return nil, apperrors.ErrForbidden
	default:
		return nil, apperrors.ErrForbidden
	}

	owner, err := s.profileRepo.FindByID(ctx, listing.DonorProfileID)
	if err != nil {
		return nil, fmt.Errorf("find listing owner: %w", err)
	}
	if owner.AccountID != subject.AccountID {
		return nil, apperrors.ErrForbidden
	}
	return listing, nil
}

func (s *listingService) validateListingInput(input ListingInput) error {
	if input.Title == "" {
		return apperrors.NewValidationError("title is required")
	}
	if input.Quantity.LessThanOrEqual(decimal.Zero) {
		return apperrors.NewValidationError("quantity must be positive")
	}
	if input.Unit == "" {
		return apperrors.NewValidationError("unit is required")
	}
	if input.City == "" {
		return apperrors.NewValidationError("city is required")
	}
	if !input.ExpiresAt.After(s.now()) {
		return apperrors.NewValidationError("expires_at must be in the future")
	}
	return nil
}
