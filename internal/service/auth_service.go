package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Giftmbatha/food-rescue/internal/auth"
	apperrors "github.com/Giftmbatha/food-rescue/internal/errors"
	"github.com/Giftmbatha/food-rescue/internal/model"
	"github.com/Giftmbatha/food-rescue/internal/repository"
)

const bcryptCost = 10

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, email, password, role string) (accessToken, refreshToken string, account *model.Account, err error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, account *model.Account, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	accountRepo repository.AccountRepository
	jwtService  *auth.JWTService
	tokenStore  auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(accountRepo repository.AccountRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		accountRepo: accountRepo,
		jwtService:  jwtService,
		tokenStore:  tokenStore,
	}
}

// Register creates a new account with hashed password and issues tokens.
// The role is fixed here for the lifetime of the account.
func (s *authService) Register(ctx context.Context, email, password, role string) (string, string, *model.Account, error) {
	parsedRole, err := model.ParseRole(role)
	if err != nil {
		return "", "", nil, apperrors.ErrInvalidRole
	}
	if email == "" {
		return "", "", nil, apperrors.NewValidationError("email is required")
	}
	if len(password) < 6 {
		return "", "", nil, apperrors.NewValidationError("password must be at least 6 characters")
	}

	existing, err := s.accountRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", "", nil, apperrors.ErrDuplicateAccount
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", nil, fmt.Errorf("check account existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", "", nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         parsedRole,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		// Concurrent registrations with the same email can both pass the
		// pre-check; the unique index settles it and the loser gets the
		// same conflict error as a sequential duplicate.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", "", nil, apperrors.ErrDuplicateAccount
		}
		return "", "", nil, fmt.Errorf("create account: %w", err)
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, account)
	if err != nil {
		return "", "", nil, err
	}
	return accessToken, refreshToken, account, nil
}

// Login authenticates an account and returns access and refresh tokens.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (string, string, *model.Account, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, account)
	if err != nil {
		return "", "", nil, err
	}
	return accessToken, refreshToken, account, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", err
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", err
	}

	// The token must still be present in the store: logout revokes it there.
	storedAccountID, storedRole, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", apperrors.ErrTokenInvalid
	}
	if storedAccountID != claims.AccountID || storedRole != claims.Role {
		return "", apperrors.ErrTokenInvalid
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.AccountID, claims.Role)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout revokes a refresh token. Outstanding access tokens stay valid
// until their 15 minute expiry; stateless verification has no recall.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return err
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

func (s *authService) issueTokens(ctx context.Context, account *model.Account) (string, string, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(account.ID, account.Role)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(account.ID, account.Role)
	if err != nil {
		return "", "", fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, account.ID, account.Role, auth.RefreshTokenExpiry); err != nil {
		return "", "", fmt.Errorf("store refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}
