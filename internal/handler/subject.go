package handler

import (
	"net/http"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Giftmbatha/food-rescue/internal/auth"
	"github.com/Giftmbatha/food-rescue/internal/errors"
	"github.com/Giftmbatha/food-rescue/internal/model"
)

// currentSubject resolves the request-scoped credential placed in the
// context by the JWT middleware. The middleware verifies signature and
// expiry; this only decodes identity and role out of the claims.
func currentSubject(c echo.Context) (auth.Subject, error) {
	token, ok := c.Get("user").(*jwtv5.Token)
	if !ok {
		return auth.Subject{}, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Detail: errors.ErrTokenInvalid.Error(),
			Code:   "TOKEN_INVALID",
		})
	}
	claims, ok := token.Claims.(jwtv5.MapClaims)
	if !ok {
		return auth.Subject{}, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Detail: errors.ErrTokenInvalid.Error(),
			Code:   "TOKEN_INVALID",
		})
	}

	accountIDStr, _ := claims["account_id"].(string)
	accountID, err := uuid.Parse(accountIDStr)
	if err != nil {
		return auth.Subject{}, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Detail: errors.ErrTokenInvalid.Error(),
			Code:   "TOKEN_INVALID",
		})
	}

	roleStr, _ := claims["role"].(string)
	role, err := model.ParseRole(roleStr)
	if err != nil {
		return auth.Subject{}, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Detail: errors.ErrTokenInvalid.Error(),
			Code:   "TOKEN_INVALID",
		})
	}

	return auth.Subject{AccountID: accountID, Role: role}, nil
}
