package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateAccount is returned when the email is already registered.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrInvalidRole is returned when a role is outside the allowed set.
	ErrInvalidRole = errors.New("role must be 'donor' or 'ngo'")
	// ErrTokenExpired is returned when a token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned when token signature verification fails.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrForbidden is returned when an authenticated subject is not entitled.
	ErrForbidden = errors.New("not allowed")
	// ErrProfileExists is returned when the account already owns a profile.
	ErrProfileExists = errors.New("profile already exists for this account")
	// ErrProfileNotFound is returned when a profile is not found.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrListingNotFound is returned when a listing is not found.
	ErrListingNotFound = errors.New("listing not found")
	// ErrClaimNotFound is returned when a claim is not found.
	ErrClaimNotFound = errors.New("claim not found")
	// ErrListingNotOpen is returned when an operation needs an OPEN listing.
	ErrListingNotOpen = errors.New("listing is not open")
	// ErrListingExpired is returned when a listing is past its expiry.
	ErrListingExpired = errors.New("listing has expired")
	// ErrAlreadyClaimed is returned to the losers of a claim race.
	ErrAlreadyClaimed = errors.New("listing already claimed")
	// ErrClaimNotActive is returned when an operation needs an ACTIVE claim.
	ErrClaimNotActive = errors.New("claim is not active")
)

// ValidationError carries a field-level message. It is locally correctable
// by the caller and always maps to 400.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// NewValidationError creates a validation error with the given detail.
func NewValidationError(detail string) *ValidationError {
	return &ValidationError{Detail: detail}
}

// ErrorResponse represents a standardized error response. The original
// client reads the "detail" field on every non-2xx body.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Detail: e.Message,
		Code:   e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Every sentinel has a
// stable machine-readable code; anything unrecognized becomes a 500.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return NewHTTPError(http.StatusBadRequest, ve.Detail, "VALIDATION_ERROR")
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrDuplicateAccount):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_ACCOUNT")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "TOKEN_EXPIRED")
	case errors.Is(err, ErrTokenInvalid):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "TOKEN_INVALID")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrProfileExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "PROFILE_ALREADY_EXISTS")
	case errors.Is(err, ErrProfileNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PROFILE_NOT_FOUND")
	case errors.Is(err, ErrListingNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "LISTING_NOT_FOUND")
	case errors.Is(err, ErrClaimNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CLAIM_NOT_FOUND")
	case errors.Is(err, ErrListingNotOpen):
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_STATE")
	case errors.Is(err, ErrListingExpired):
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_STATE")
	case errors.Is(err, ErrClaimNotActive):
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_STATE")
	case errors.Is(err, ErrAlreadyClaimed):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_CLAIMED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
