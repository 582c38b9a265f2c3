package router

import (
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Giftmbatha/food-rescue/internal/config"
	"github.com/Giftmbatha/food-rescue/internal/errors"
	"github.com/Giftmbatha/food-rescue/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	listingHandler *handler.ListingHandler,
	claimHandler *handler.ClaimHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout)

	e.GET("/donors", profileHandler.ListDonors)
	e.GET("/donors/:id", profileHandler.GetProfile)
	e.GET("/ngos", profileHandler.ListNGOs)
	e.GET("/ngos/:id", profileHandler.GetProfile)

	e.GET("/listings", listingHandler.SearchListings)
	e.GET("/listings/search", listingHandler.SearchListings)
	e.GET("/listings/:id", listingHandler.GetListing)

	// Secured routes (require JWT authentication)
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:   []byte(cfg.JWTSecret),
		TokenLookup:  "header:" + echo.HeaderAuthorization,
		ErrorHandler: jwtErrorHandler,
	}))

	secured.POST("/donors", profileHandler.CreateDonor)
	secured.PUT("/donors/:id", profileHandler.UpdateDonor)
	secured.POST("/ngos", profileHandler.CreateNGO)
	secured.PUT("/ngos/:id", profileHandler.UpdateNGO)
	secured.GET("/profiles/me", profileHandler.GetOwnProfile)

	secured.POST("/listings", listingHandler.CreateListing)
	secured.GET("/listings/my", listingHandler.MyListings)
	secured.PUT("/listings/:id", listingHandler.UpdateListing)
	secured.DELETE("/listings/:id", listingHandler.DeleteListing)
	secured.POST("/listings/:id/cancel", listingHandler.CancelListing)

	secured.POST("/claims", claimHandler.CreateClaim)
	secured.GET("/claims/my", claimHandler.MyClaims)
	secured.POST("/claims/:id/complete", claimHandler.CompleteClaim)
	secured.POST("/claims/:id/cancel", claimHandler.CancelClaim)
}

// jwtErrorHandler keeps the error body shape of the rest of the API and
// lets clients distinguish an expired token from a malformed one.
func jwtErrorHandler(c echo.Context, err error) error {
	if stderrors.Is(err, jwtv5.ErrTokenExpired) {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Detail: errors.ErrTokenExpired.Error(),
			Code:   "TOKEN_EXPIRED",
		})
	}
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Detail: errors.ErrTokenInvalid.Error(),
		Code:   "TOKEN_INVALID",
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
