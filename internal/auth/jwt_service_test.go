package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/Giftmbatha/food-rescue/internal/errors"
	"github.com/Giftmbatha/food-rescue/internal/model"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")
	accountID := uuid.New()

	token, err := service.GenerateAccessToken(accountID, model.RoleDonor)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, model.RoleDonor, claims.Role)
	assert.Empty(t, claims.ID, "access tokens carry no JTI")
}

func TestJWTService_RefreshTokenCarriesID(t *testing.T) {
	service := NewJWTService("test-secret")
	accountID := uuid.New()

	tokenID, token, err := service.GenerateRefreshToken(accountID, model.RoleOrganization)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	extracted, err := service.ExtractTokenID(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	service := NewJWTService("test-secret")

	// Sign a token that expired an hour ago with the same secret.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		AccountID: uuid.New(),
		Role:      model.RoleDonor,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	})
	tokenString, err := expired.SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, err = service.ValidateToken(tokenString)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestJWTService_TamperedToken(t *testing.T) {
	service := NewJWTService("test-secret")

	other := NewJWTService("other-secret")
	token, err := other.GenerateAccessToken(uuid.New(), model.RoleDonor)
	assert.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = service.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestJWTService_Authorize(t *testing.T) {
	service := NewJWTService("test-secret")
	accountID := uuid.New()

	token, err := service.GenerateAccessToken(accountID, model.RoleOrganization)
	assert.NoError(t, err)

	subject, err := service.Authorize(token)
	assert.NoError(t, err)
	assert.Equal(t, accountID, subject.AccountID)
	assert.Equal(t, model.RoleOrganization, subject.Role)
}

func TestJWTService_AuthorizeRejectsUnknownRole(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.GenerateAccessToken(uuid.New(), model.Role("admin"))
	assert.NoError(t, err)

	_, err = service.Authorize(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestJWTService_ExtractTokenIDRejectsAccessToken(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.GenerateAccessToken(uuid.New(), model.RoleDonor)
	assert.NoError(t, err)

	_, err = service.ExtractTokenID(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}
