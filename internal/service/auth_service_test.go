package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Giftmbatha/food-rescue/internal/auth"
	apperrors "github.com/Giftmbatha/food-rescue/internal/errors"
	"github.com/Giftmbatha/food-rescue/internal/model"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, accountID uuid.UUID, role model.Role, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, accountID, role, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uuid.UUID, model.Role, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uuid.UUID), args.Get(1).(model.Role), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		role          string
		setupMock     func(*MockAccountRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful donor registration",
			email:    "donor@example.com",
			password: "password123",
			role:     "donor",
			setupMock: func(mRepo *MockAccountRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "donor@example.com").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Account")).Return(nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, model.RoleDonor, mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "successful ngo registration",
			email:    "ngo@example.com",
			password: "password123",
			role:     "ngo",
			setupMock: func(mRepo *MockAccountRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "ngo@example.com").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Account")).Return(nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, model.RoleOrganization, mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "unknown role rejected",
			email:         "admin@example.com",
			password:      "password123",
			role:          "admin",
			setupMock:     func(mRepo *MockAccountRepository, mToken *MockTokenStore) {},
			expectedError: apperrors.ErrInvalidRole,
		},
		{
			name:          "short password rejected",
			email:         "donor@example.com",
			password:      "12345",
			role:          "donor",
			setupMock:     func(mRepo *MockAccountRepository, mToken *MockTokenStore) {},
			expectedError: apperrors.NewValidationError("password must be at least 6 characters"),
		},
		{
			name:     "duplicate email rejected",
			email:    "existing@example.com",
			password: "password123",
			role:     "donor",
			setupMock: func(mRepo *MockAccountRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.Account{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrDuplicateAccount,
		},
		{
			name:     "duplicate caught at insert",
			email:    "racer@example.com",
			password: "password123",
			role:     "donor",
			setupMock: func(mRepo *MockAccountRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "racer@example.com").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Account")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrDuplicateAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAccountRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockTokenStore)

			accessToken, refreshToken, account, err := service.Register(context.Background(), tt.email, tt.password, tt.role)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, account)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, account)
				assert.Equal(t, tt.email, account.Email)
				assert.NotEmpty(t, account.PasswordHash)
				assert.NotEqual(t, tt.password, account.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockAccountRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "donor@example.com",
			password: "password123",
			setupMock: func(mRepo *MockAccountRepository, mToken *MockTokenStore) {
				accountID := uuid.New()
				mRepo.On("FindByEmail", mock.Anything, "donor@example.com").Return(&model.Account{
					ID:           accountID,
					Email:        "donor@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleDonor,
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, accountID, model.RoleDonor, mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(mRepo *MockAccountRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "donor@example.com",
			password: "wrong-password",
			setupMock: func(mRepo *MockAccountRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "donor@example.com").Return(&model.Account{
					Email:        "donor@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleDonor,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAccountRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockTokenStore)

			accessToken, refreshToken, account, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, account)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, account)
				assert.Equal(t, tt.email, account.Email)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	accountID := uuid.New()

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(accountID, model.RoleOrganization)
	assert.NoError(t, err)

	t.Run("valid refresh token issues new access token", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(accountID, model.RoleOrganization, nil)

		service := NewAuthService(mockRepo, jwtService, mockTokenStore)
		accessToken, err := service.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)

		claims, err := jwtService.ValidateToken(accessToken)
		assert.NoError(t, err)
		assert.Equal(t, accountID, claims.AccountID)
		assert.Equal(t, model.RoleOrganization, claims.Role)

		mockTokenStore.AssertExpectations(t)
	})

	t.Run("revoked refresh token rejected", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uuid.Nil, model.Role(""), assert.AnError)

		service := NewAuthService(mockRepo, jwtService, mockTokenStore)
		_, err := service.RefreshToken(context.Background(), refreshToken)

		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
		mockTokenStore.AssertExpectations(t)
	})

	t.Run("store mismatch rejected", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uuid.New(), model.RoleOrganization, nil)

		service := NewAuthService(mockRepo, jwtService, mockTokenStore)
		_, err := service.RefreshToken(context.Background(), refreshToken)

		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
		mockTokenStore.AssertExpectations(t)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		mockTokenStore := new(MockTokenStore)

		service := NewAuthService(mockRepo, jwtService, mockTokenStore)
		_, err := service.RefreshToken(context.Background(), "garbage")

		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	accountID := uuid.New()

	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(accountID, model.RoleDonor)
	assert.NoError(t, err)

	mockRepo := new(MockAccountRepository)
	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	service := NewAuthService(mockRepo, jwtService, mockTokenStore)
	assert.NoError(t, service.Logout(context.Background(), refreshToken))

	mockTokenStore.AssertExpectations(t)
}
