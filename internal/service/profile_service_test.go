package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/Giftmbatha/food-rescue/internal/auth"
	apperrors "github.com/Giftmbatha/food-rescue/internal/errors"
	"github.com/Giftmbatha/food-rescue/internal/model"
)

// MockProfileRepository is a mock implementation of ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepository) ListByRole(ctx context.Context, role model.Role) ([]model.Profile, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Profile), args.Error(1)
}

func validProfileInput() ProfileInput {
	return ProfileInput{
		Name:         "Corner Bakery",
		City:         "Cape Town",
		ContactEmail: "bakery@example.com",
		ContactPhone: "+27 21 555 0101",
		Address:      "12 Long Street",
	}
}

func TestProfileService_CreateProfile(t *testing.T) {
	accountID := uuid.New()

	tests := []struct {
		name          string
		subject       auth.Subject
		role          model.Role
		input         ProfileInput
		setupMock     func(*MockProfileRepository)
		expectedError error
	}{
		{
			name:    "donor creates donor profile",
			subject: auth.Subject{AccountID: accountID, Role: model.RoleDonor},
			role:    model.RoleDonor,
			input:   validProfileInput(),
			setupMock: func(m *MockProfileRepository) {
				m.On("FindByAccountID", mock.Anything, accountID).Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Profile")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "ngo cannot create donor profile",
			subject:       auth.Subject{AccountID: accountID, Role: model.RoleOrganization},
			role:          model.RoleDonor,
			input:         validProfileInput(),
			setupMock:     func(m *MockProfileRepository) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:    "second profile rejected",
			subject: auth.Subject{AccountID: accountID, Role: model.RoleDonor},
			role:    model.RoleDonor,
			input:   validProfileInput(),
			setupMock: func(m *MockProfileRepository) {
				m.On("FindByAccountID", mock.Anything, accountID).Return(&model.Profile{AccountID: accountID}, nil)
			},
			expectedError: apperrors.ErrProfileExists,
		},
		{
			name:    "duplicate caught at insert",
			subject: auth.Subject{AccountID: accountID, Role: model.RoleDonor},
			role:    model.RoleDonor,
			input:   validProfileInput(),
			setupMock: func(m *MockProfileRepository) {
				m.On("FindByAccountID", mock.Anything, accountID).Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Profile")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrProfileExists,
		},
		{
			name:    "missing name rejected",
			subject: auth.Subject{AccountID: accountID, Role: model.RoleDonor},
			role:    model.RoleDonor,
			input: ProfileInput{
				City:         "Cape Town",
				ContactEmail: "bakery@example.com",
			},
			setupMock:     func(m *MockProfileRepository) {},
			expectedError: apperrors.NewValidationError("name is required"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProfileRepository)
			tt.setupMock(mockRepo)

			service := NewProfileService(mockRepo, nil, 0)
			profile, err := service.CreateProfile(context.Background(), tt.subject, tt.role, tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, profile)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, profile)
				assert.Equal(t, tt.subject.AccountID, profile.AccountID)
				assert.Equal(t, tt.role, profile.Role)
				assert.Equal(t, tt.input.Name, profile.Name)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProfileService_UpdateProfile(t *testing.T) {
	ownerAccountID := uuid.New()
	profileID := uuid.New()

	existing := func() *model.Profile {
		return &model.Profile{
			ID:        profileID,
			AccountID: ownerAccountID,
			Role:      model.RoleDonor,
			Name:      "Corner Bakery",
			City:      "Cape Town",
		}
	}

	t.Run("owner updates profile", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("FindByID", mock.Anything, profileID).Return(existing(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Profile")).Return(nil)

		service := NewProfileService(mockRepo, nil, 0)
		input := validProfileInput()
		input.Name = "Corner Bakery & Deli"

		profile, err := service.UpdateProfile(context.Background(), auth.Subject{AccountID: ownerAccountID, Role: model.RoleDonor}, profileID, input)

		assert.NoError(t, err)
		assert.Equal(t, "Corner Bakery & Deli", profile.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-owner gets forbidden", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("FindByID", mock.Anything, profileID).Return(existing(), nil)

		service := NewProfileService(mockRepo, nil, 0)
		_, err := service.UpdateProfile(context.Background(), auth.Subject{AccountID: uuid.New(), Role: model.RoleDonor}, profileID, validProfileInput())

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing profile", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("FindByID", mock.Anything, profileID).Return(nil, gorm.ErrRecordNotFound)

		service := NewProfileService(mockRepo, nil, 0)
		_, err := service.UpdateProfile(context.Background(), auth.Subject{AccountID: ownerAccountID, Role: model.RoleDonor}, profileID, validProfileInput())

		assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestProfileService_GetOwnProfile(t *testing.T) {
	accountID := uuid.New()

	t.Run("profile found", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("FindByAccountID", mock.Anything, accountID).Return(&model.Profile{AccountID: accountID, Name: "Hope Shelter"}, nil)

		service := NewProfileService(mockRepo, nil, 0)
		profile, err := service.GetOwnProfile(context.Background(), auth.Subject{AccountID: accountID, Role: model.RoleOrganization})

		assert.NoError(t, err)
		assert.Equal(t, "Hope Shelter", profile.Name)
	})

	t.Run("no profile yet", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("FindByAccountID", mock.Anything, accountID).Return(nil, gorm.ErrRecordNotFound)

		service := NewProfileService(mockRepo, nil, 0)
		_, err := service.GetOwnProfile(context.Background(), auth.Subject{AccountID: accountID, Role: model.RoleOrganization})

		assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
	})
}

func TestProfileService_GetProfile(t *testing.T) {
	profileID := uuid.New()

	t.Run("missing profile maps to not found", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		mockRepo.On("FindByID", mock.Anything, profileID).Return(nil, gorm.ErrRecordNotFound)

		service := NewProfileService(mockRepo, nil, 0)
		_, err := service.GetProfile(context.Background(), profileID)

		assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
	})
}
