package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Giftmbatha/food-rescue/internal/auth"
	apperrors "github.com/Giftmbatha/food-rescue/internal/errors"
	"github.com/Giftmbatha/food-rescue/internal/model"
	"github.com/Giftmbatha/food-rescue/internal/repository"
)

// ClaimService drives the claim lifecycle and the listing transitions it
// implies. All status flips happen through conditional updates inside a
// single transaction, so concurrent claimers of the same listing resolve to
// exactly one winner; everyone else gets ErrAlreadyClaimed.
type ClaimService interface {
	CreateClaim(ctx context.Context, subject auth.Subject, listingID uuid.UUID, note string) (*model.Claim, error)
	CompleteClaim(ctx context.Context, subject auth.Subject, claimID uuid.UUID) (*model.Claim, error)
	CancelClaim(ctx context.Context, subject auth.Subject, claimID uuid.UUID) (*model.Claim, error)
	MyClaims(ctx context.Context, subject auth.Subject) ([]model.Claim, error)
}

type claimService struct {
	claimRepo   repository.ClaimRepository
	listingRepo repository.ListingRepository
	profileRepo repository.ProfileRepository
	now         func() time.Time
}

// NewClaimService creates a new claim service.
func NewClaimService(
	claimRepo repository.ClaimRepository,
	listingRepo repository.ListingRepository,
	profileRepo repository.ProfileRepository,
) ClaimService {
	return &claimService{
		claimRepo:   claimRepo,
		listingRepo: listingRepo,
		profileRepo: profileRepo,
		now:         time.Now,
	}
}

// CreateClaim claims an OPEN, unexpired listing for the subject's
// organization profile.
//
// The OPEN -> CLAIMED flip and the claim insert form one atomic unit: the
// conditional update serializes racing claimers, and a failed transaction
// rolls back leaving the listing OPEN with no orphan claim row. No ordering
// among racers is promised, only mutual exclusion.
func (s *claimService) CreateClaim(ctx context.Context, subject auth.Subject, listingID uuid.UUID, note string) (*model.Claim, error) {
	switch subject.Role {
	case model.RoleOrganization:
	case model.RoleDonor:
		return nil, apperrors.ErrForbidden
	default:
		return nil, apperrors.ErrForbidden
	}

	profile, err := s.profileRepo.FindByAccountID(ctx, subject.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, fmt.Errorf("find organization profile: %w", err)
	}
	if profile.Role != model.RoleOrganization {
		return nil, apperrors.ErrForbidden
	}

	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}

	// Expiry is a read-time condition: the stored status may still say OPEN.
	if listing.Expired(s.now()) {
		return nil, apperrors.ErrListingExpired
	}
	if listing.Status == model.ListingStatusClaimed {
		return nil, apperrors.ErrAlreadyClaimed
	}
	if listing.Status != model.ListingStatusOpen {
		return nil, apperrors.ErrListingNotOpen
	}

	claim := &model.Claim{
		ListingID:             listingID,
		OrganizationProfileID: profile.ID,
		Status:                model.ClaimStatusActive,
		Note:                  note,
		ActiveListingID:       &listingID,
	}

	err = s.claimRepo.WithTransaction(ctx, func(ctx context.Context, claims repository.ClaimRepository, listings repository.ListingRepository) error {
		won, err := listings.UpdateStatusIf(ctx, listingID, model.ListingStatusOpen, model.ListingStatusClaimed)
		if err != nil {
			return fmt.Errorf("claim listing: %w", err)
		}
		if !won {
			// Someone else moved the listing out of OPEN between our read
			// and this update.
			return apperrors.ErrAlreadyClaimed
		}
		if err := claims.Create(ctx, claim); err != nil {
			return fmt.Errorf("create claim: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claim, nil
}

// CompleteClaim marks a claim as collected. Collection is donor-confirmed:
// only the donor who owns the claimed listing may complete, since the donor
// is the party physically handing over the food.
func (s *claimService) CompleteClaim(ctx context.Context, subject auth.Subject, claimID uuid.UUID) (*model.Claim, error) {
	claim, listing, err := s.loadClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}

	switch subject.Role {
	case model.RoleDonor:
		owner, err := s.profileRepo.FindByID(ctx, listing.DonorProfileID)
		if err != nil {
			return nil, fmt.Errorf("find listing owner: %w", err)
		}
		if owner.AccountID != subject.AccountID {
			return nil, apperrors.ErrForbidden
		}
	case model.RoleOrganization:
		return nil, apperrors.ErrForbidden
	default:
		return nil, apperrors.ErrForbidden
	}

	err = s.claimRepo.WithTransaction(ctx, func(ctx context.Context, claims repository.ClaimRepository, listings repository.ListingRepository) error {
		moved, err := claims.UpdateStatusIf(ctx, claim.ID, model.ClaimStatusActive, model.ClaimStatusCompleted)
		if err != nil {
			return fmt.Errorf("complete claim: %w", err)
		}
		if !moved {
			return apperrors.ErrClaimNotActive
		}
		moved, err = listings.UpdateStatusIf(ctx, listing.ID, model.ListingStatusClaimed, model.ListingStatusCollected)
		if err != nil {
			return fmt.Errorf("collect listing: %w", err)
		}
		if !moved {
			return fmt.Errorf("listing %s not in CLAIMED state for active claim %s", listing.ID, claim.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	claim.Status = model.ClaimStatusCompleted
	return claim, nil
}

// CancelClaim voids an active claim and reopens the listing. Either party
// may cancel: the donor or the claiming organization. This is the only path
// that ever returns a listing to OPEN.
func (s *claimService) CancelClaim(ctx context.Context, subject auth.Subject, claimID uuid.UUID) (*model.Claim, error) {
	claim, listing, err := s.loadClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}

	switch subject.Role {
	case model.RoleDonor:
		owner, err := s.profileRepo.FindByID(ctx, listing.DonorProfileID)
		if err != nil {
			return nil, fmt.Errorf("find listing owner: %w", err)
		}
		if owner.AccountID != subject.AccountID {
			return nil, apperrors.ErrForbidden
		}
	case model.RoleOrganization:
		claimant, err := s.profileRepo.FindByID(ctx, claim.OrganizationProfileID)
		if err != nil {
			return nil, fmt.Errorf("find claimant profile: %w", err)
		}
		if claimant.AccountID != subject.AccountID {
			return nil, apperrors.ErrForbidden
		}
	default:
		return nil, apperrors.ErrForbidden
	}

	err = s.claimRepo.WithTransaction(ctx, func(ctx context.Context, claims repository.ClaimRepository, listings repository.ListingRepository) error {
		moved, err := claims.UpdateStatusIf(ctx, claim.ID, model.ClaimStatusActive, model.ClaimStatusCancelled)
		if err != nil {
			return fmt.Errorf("cancel claim: %w", err)
		}
		if !moved {
			return apperrors.ErrClaimNotActive
		}
		moved, err = listings.UpdateStatusIf(ctx, listing.ID, model.ListingStatusClaimed, model.ListingStatusOpen)
		if err != nil {
			return fmt.Errorf("reopen listing: %w", err)
		}
		if !moved {
			return fmt.Errorf("listing %s not in CLAIMED state for active claim %s", listing.ID, claim.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	claim.Status = model.ClaimStatusCancelled
	claim.ActiveListingID = nil
	return claim, nil
}

// MyClaims returns the subject organization's claims, newest first.
func (s *claimService) MyClaims(ctx context.Context, subject auth.Subject) ([]model.Claim, error) {
	switch subject.Role {
	case model.RoleOrganization:
	case model.RoleDonor:
		return nil, apperrors.ErrForbidden
	default:
		return nil, apperrors.ErrForbidden
	}

	profile, err := s.profileRepo.FindByAccountID(ctx, subject.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find organization profile: %w", err)
	}
	return s.claimRepo.ListByOrganizationProfile(ctx, profile.ID)
}

func (s *claimService) loadClaim(ctx context.Context, claimID uuid.UUID) (*model.Claim, *model.Listing, error) {
	claim, err := s.claimRepo.FindByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrClaimNotFound
		}
		return nil, nil, fmt.Errorf("find claim: %w", err)
	}

	listing, err := s.listingRepo.FindByID(ctx, claim.ListingID)
	if err != nil {
		return nil, nil, fmt.Errorf("find claimed listing: %w", err)
	}
	return claim, listing, nil
}
