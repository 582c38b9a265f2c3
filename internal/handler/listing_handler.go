package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Giftmbatha/food-rescue/internal/errors"
	"github.com/Giftmbatha/food-rescue/internal/model"
	"github.com/Giftmbatha/food-rescue/internal/repository"
	"github.com/Giftmbatha/food-rescue/internal/service"
)

// ListingHandler handles listing endpoints.
type ListingHandler struct {
	listingService service.ListingService
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(listingService service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// ListingRequest represents a listing create/update request.
type ListingRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Unit        string          `json:"unit" validate:"required"`
	City        string          `json:"city" validate:"required"`
	Address     string          `json:"address,omitempty"`
	ExpiresAt   time.Time       `json:"expires_at" validate:"required"`
}

func (r ListingRequest) toInput() service.ListingInput {
	return service.ListingInput{
		Title:       r.Title,
		Description: r.Description,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		City:        r.City,
		Address:     r.Address,
		ExpiresAt:   r.ExpiresAt,
	}
}

// CreateListing godoc
// @Summary Create a listing for a donor profile
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param donor_id query string true "Donor profile ID"
// @Param request body ListingRequest true "Listing data"
// @Success 201 {object} model.Listing
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /listings [post]
func (h *ListingHandler) CreateListing(c echo.Context) error {
	subject, err := currentSubject(c)
	if err != nil {
		return err
	}

	donorID, err := uuid.Parse(c.QueryParam("donor_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Detail: "invalid donor_id",
			Code:   "INVALID_UUID",
		})
	}

	var req ListingRequest
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

	listing, err := h.listingService.CreateListing(c.Request().Context(), subject, donorID, req.toInput())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, listing)
}

// UpdateListing godoc
// @Summary Update an OPEN listing
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body ListingRequest true "Listing data"
// @Success 200 {object} model.Listing
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /listings/{id} [put]
func (h *ListingHandler) UpdateListing(c echo.Context) error {
	subject, err := currentSubject(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Detail: "invalid listing ID",
			Code:   "INVALID_UUID",
		})
	}

	var req ListingRequest
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

	listing, err := h.listingService.UpdateListing(c.Request().Context(), subject, id, req.toInput())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, listing)
}

// CancelListing godoc
// @Summary Cancel an OPEN listing
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} model.Listing
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /listings/{id}/cancel [post]
func (h *ListingHandler) CancelListing(c echo.Context) error {
	subject, err := currentSubject(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Detail: "invalid listing ID",
			Code:   "INVALID_UUID",
		})
	}

	listing, err := h.listingService.CancelListing(c.Request().Context(), subject, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, listing)
}

// DeleteListing godoc
// @Summary Delete an OPEN, unclaimed listing
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /listings/{id} [delete]
func (h *ListingHandler) DeleteListing(c echo.Context) error {
	subject, err := currentSubject(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Detail: "invalid listing ID",
			Code:   "INVALID_UUID",
		})
	}

	if err := h.listingService.DeleteListing(c.Request().Context(), subject, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetListing godoc
// @Summary Get a listing by id
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} model.Listing
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /listings/{id} [get]
func (h *ListingHandler) GetListing(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Detail: "invalid listing ID",
			Code:   "INVALID_UUID",
		})
	}

	listing, err := h.listingService.GetListing(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, listing)
}

// SearchListings godoc
// @Summary Search listings by city and status
// @Tags listings
// @Produce json
// @Param city query string false "City (case-insensitive exact match)"
// @Param status query string false "Status filter, defaults to OPEN; use 'all' to disable"
// @Success 200 {array} service.ListingView
// @Failure 400 {object} errors.ErrorResponse
// @Router /listings [get]
// @Router /listings/search [get]
func (h *ListingHandler) SearchListings(c echo.Context) error {
	filter := repository.ListingFilter{
		City:   c.QueryParam("city"),
		Status: searchStatus(c.QueryParam("status")),
	}

	views, err := h.listingService.SearchListings(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, views)
}

// searchStatus resolves the status query parameter. The default matches the
// original API: searches show OPEN listings unless the caller asks otherwise;
// "all" disables the filter entirely.
func searchStatus(raw string) model.ListingStatus {
	switch raw {
	case "":
		return model.ListingStatusOpen
	case "all":
		return ""
	default:
		return model.ListingStatus(raw)
	}
}

// MyListings godoc
// @Summary List the caller's own listings
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Listing
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /listings/my [get]
func (h *ListingHandler) MyListings(c echo.Context) error {
	subject, err := currentSubject(c)
	if err != nil {
		return err
	}

	listings, err := h.listingService.MyListings(c.Request().Context(), subject)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, listings)
}
