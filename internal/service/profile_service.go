package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Giftmbatha/food-rescue/internal/auth"
	"github.com/Giftmbatha/food-rescue/internal/cache"
	apperrors "github.com/Giftmbatha/food-rescue/internal/errors"
	"github.com/Giftmbatha/food-rescue/internal/model"
	"github.com/Giftmbatha/food-rescue/internal/repository"
)

const defaultProfileCacheTTL = 5 * time.Minute

// ProfileInput carries the caller-editable profile fields.
type ProfileInput struct {
	Name         string
	City         string
	ContactEmail string
	ContactPhone string
	Address      string
}

// ProfileService handles donor and organization profile operations.
// Reads are public; every mutation takes the request's subject explicitly.
type ProfileService interface {
	CreateProfile(ctx context.Context, subject auth.Subject, role model.Role, input ProfileInput) (*model.Profile, error)
	UpdateProfile(ctx context.Context, subject auth.Subject, profileID uuid.UUID, input ProfileInput) (*model.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	GetOwnProfile(ctx context.Context, subject auth.Subject) (*model.Profile, error)
	ListProfiles(ctx context.Context, role model.Role) ([]model.Profile, error)
}

type profileService struct {
	repo     repository.ProfileRepository
	cache    *cache.Client
	cacheTTL time.Duration
}

// NewProfileService creates a new profile service. A non-positive cacheTTL
// falls back to the default.
func NewProfileService(repo repository.ProfileRepository, cache *cache.Client, cacheTTL time.Duration) ProfileService {
	if cacheTTL <= 0 {
		cacheTTL = defaultProfileCacheTTL
	}
	return &profileService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func (s *profileService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("profile:%s", id.String())
}

// CreateProfile creates the subject's profile. An account owns at most one
// profile, and its variant must match the account's role.
func (s *profileService) CreateProfile(ctx context.Context, subject auth.Subject, role model.Role, input ProfileInput) (*model.Profile, error) {
	if subject.Role != role {
		return nil, apperrors.ErrForbidden
	}
	if err := validateProfileInput(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByAccountID(ctx, subject.AccountID)
	if err == nil && existing != nil {
		return nil, apperrors.ErrProfileExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check profile existence: %w", err)
	}

	profile := &model.Profile{
		AccountID:    subject.AccountID,
		Role:         role,
		Name:         input.Name,
		City:         input.City,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Address:      input.Address,
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		// The account_id unique index catches creations racing past the
		// pre-check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrProfileExists
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile updates a profile owned by the subject.
func (s *profileService) UpdateProfile(ctx context.Context, subject auth.Subject, profileID uuid.UUID, input ProfileInput) (*model.Profile, error) {
	profile, err := s.repo.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if profile.AccountID != subject.AccountID {
		return nil, apperrors.ErrForbidden
	}
	if err := validateProfileInput(input); err != nil {
		return nil, err
	}

	profile.Name = input.Name
	profile.City = input.City
	profile.ContactEmail = input.ContactEmail
	profile.ContactPhone = input.ContactPhone
	profile.Address = input.Address

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(profile.ID))
	return profile, nil
}

// GetProfile retrieves a profile by ID with caching. Profiles are
// deliberately public: they are the contact surface for pickups.
func (s *profileService) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Profile
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	if payload, err := json.Marshal(profile); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, s.cacheTTL)
	}
	return profile, nil
}

// GetOwnProfile retrieves the subject's own profile.
func (s *profileService) GetOwnProfile(ctx context.Context, subject auth.Subject) (*model.Profile, error) {
	profile, err := s.repo.FindByAccountID(ctx, subject.AccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return profile, nil
}

// ListProfiles lists all profiles of the given role.
func (s *profileService) ListProfiles(ctx context.Context, role model.Role) ([]model.Profile, error) {
	return s.repo.ListByRole(ctx, role)
}

func validateProfileInput(input ProfileInput) error {
	if input.Name == "" {
		return apperrors.NewValidationError("name is required")
	}
	if input.City == "" {
		return apperrors.NewValidationError("city is required")
	}
	if input.ContactEmail == "" {
		return apperrors.NewValidationError("contact_email is required")
	}
	return nil
}
