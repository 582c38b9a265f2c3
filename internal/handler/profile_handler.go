package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Giftmbatha/food-rescue/internal/errors"
	"github.com/Giftmbatha/food-rescue/internal/model"
	"github.com/Giftmbatha/food-rescue/internal/service"
)

// ProfileHandler handles donor and NGO profile endpoints. Both variants
// share the service; the route fixes the role.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileRequest represents a profile create/update request.
type ProfileRequest struct {
	Name         string `json:"name" validate:"required"`
	City         string `json:"city" validate:"required"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
}

func (r ProfileRequest) toInput() service.ProfileInput {
	return service.ProfileInput{
		Name:         r.Name,
		City:         r.City,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.Phone,
		Address:      r.Address,
	}
}

// CreateDonor godoc
// @Summary Create the caller's donor profile
// @Tags donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileRequest true "Profile data"
// @Success 201 {object} model.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /donors [post]
func (h *ProfileHandler) CreateDonor(c echo.Context) error {
	return h.create(c, model.RoleDonor)
}

// CreateNGO godoc
// @Summary Create the caller's NGO profile
// @Tags ngos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileRequest true "Profile data"
// @Success 201 {object} model.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /ngos [post]
func (h *ProfileHandler) CreateNGO(c echo.Context) error {
	return h.create(c, model.RoleOrganization)
}

// UpdateDonor godoc
// @Summary Update a donor profile
// @Tags donors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Param request body ProfileRequest true "Profile data"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /donors/{id} [put]
func (h *ProfileHandler) UpdateDonor(c echo.Context) error {
	return h.update(c)
}

// UpdateNGO godoc
// @Summary Update an NGO profile
// @Tags ngos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Param request body ProfileRequest true "Profile data"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ngos/{id} [put]
func (h *ProfileHandler) UpdateNGO(c echo.Context) error {
	return h.update(c)
}

// ListDonors godoc
// @Summary List donor profiles
// @Tags donors
// @Produce json
// @Success 200 {array} model.Profile
// @Router /donors [get]
func (h *ProfileHandler) ListDonors(c echo.Context) error {
	return h.list(c, model.RoleDonor)
}

// ListNGOs godoc
// @Summary List NGO profiles
// @Tags ngos
// @Produce json
// @Success 200 {array} model.Profile
// @Router /ngos [get]
func (h *ProfileHandler) ListNGOs(c echo.Context) error {
	return h.list(c, model.RoleOrganization)
}

// GetProfile godoc
// @Summary Get a profile by id
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /donors/{id} [get]
// @Router /ngos/{id} [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Detail: "invalid profile ID",
			Code:   "INVALID_UUID",
		})
	}

	profile, err := h.profileService.GetProfile(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, profile)
}

// GetOwnProfile godoc
// @Summary Get the caller's own profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Profile
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /profiles/me [get]
func (h *ProfileHandler) GetOwnProfile(c echo.Context) error {
	subject, err := currentSubject(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.GetOwnProfile(c.Request().Context(), subject)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) create(c echo.Context, role model.Role) error {
	subject, err := currentSubject(c)
	if err != nil {
		return err
	}

	var req ProfileRequest
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

	profile, err := h.profileService.CreateProfile(c.Request().Context(), subject, role, req.toInput())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) update(c echo.Context) error {
	subject, err := currentSubject(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Detail: "invalid profile ID",
			Code:   "INVALID_UUID",
		})
	}

	var req ProfileRequest
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

	profile, err := h.profileService.UpdateProfile(c.Request().Context(), subject, id, req.toInput())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) list(c echo.Context, role model.Role) error {
	profiles, err := h.profileService.ListProfiles(c.Request().Context(), role)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, profiles)
}
