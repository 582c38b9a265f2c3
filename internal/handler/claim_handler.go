package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Giftmbatha/food-rescue/internal/errors"
	"github.com/Giftmbatha/food-rescue/internal/service"
)

// ClaimHandler handles claim endpoints.
type ClaimHandler struct {
	claimService service.ClaimService
}

// NewClaimHandler creates a new claim handler.
func NewClaimHandler(claimService service.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

// ClaimRequest represents a claim creation request.
type ClaimRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid"`
	Note      string `json:"note,omitempty"`
}

// CreateClaim godoc
// @Summary Claim an open listing
// @Tags claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ClaimRequest true "Claim data"
// @Success 201 {object} model.Claim
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /claims [post]
func (h *ClaimHandler) CreateClaim(c echo.Context) error {
	subject, err := currentSubject(c)
	if err != nil {
		return err
	}

	var req ClaimRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Detail: "invalid request body",
			Code:   "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Detail: err.Error(),
			Code:   "VALIDATION_ERROR",
		})
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Detail: "invalid listing_id",
			Code:   "INVALID_UUID",
		})
	}

	claim, err := h.claimService.CreateClaim(c.Request().Context(), subject, listingID, req.Note)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, claim)
}

// CompleteClaim godoc
// @Summary Mark a claim as collected (donor-confirmed)
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Param id path string true "Claim ID"
// @Success 200 {object} model.Claim
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /claims/{id}/complete [post]
func (h *ClaimHandler) CompleteClaim(c echo.Context) error {
	subject, err := currentSubject(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Detail: "invalid claim ID",
			Code:   "INVALID_UUID",
		})
	}

	claim, err := h.claimService.CompleteClaim(c.Request().Context(), subject, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, claim)
}

// CancelClaim godoc
// @Summary Cancel an active claim, reopening the listing
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Param id path string true "Claim ID"
// @Success 200 {object} model.Claim
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /claims/{id}/cancel [post]
func (h *ClaimHandler) CancelClaim(c echo.Context) error {
	subject, err := currentSubject(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Detail: "invalid claim ID",
			Code:   "INVALID_UUID",
		})
	}

	claim, err := h.claimService.CancelClaim(c.Request().Context(), subject, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, claim)
}

// MyClaims godoc
// @Summary List the caller's claims
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Claim
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /claims/my [get]
func (h *ClaimHandler) MyClaims(c echo.Context) error {
	subject, err := currentSubject(c)
	if err != nil {
		return err
	}

	claims, err := h.claimService.MyClaims(c.Request().Context(), subject)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, claims)
}
