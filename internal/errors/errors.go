package errors

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

var (
	// ErrAuthenticationFailed covers bad credentials, unknown identifiers and
	// inactive accounts. The message is deliberately generic so callers cannot
	// enumerate accounts.
	ErrAuthenticationFailed = errors.New("invalid credentials")
	// ErrTokenInvalid is returned for expired, malformed or revoked tokens.
	ErrTokenInvalid = errors.New("invalid or expired token")
	// ErrPermissionDenied is returned when an authenticated principal lacks
	// the rank or ownership an operation requires.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrTenantMismatch marks a cross-organization access attempt. It is
	// surfaced to clients as not-found, never forbidden, so probing cannot
	// confirm that a resource exists in another tenant.
	ErrTenantMismatch = errors.New("record not found")
	// ErrPrivilegeEscalation is returned when a role change would grant a
	// role at or above the grantor's own rank.
	ErrPrivilegeEscalation = errors.New("cannot assign a role at or above your own")
	// ErrUserAlreadyExists is returned when registering a taken username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrOrganizationExists is returned when a tenant slug is already taken.
	ErrOrganizationExists = errors.New("organization already exists")
	// ErrOrganizationFull is returned when provisioning would exceed the
	// organization's max_users quota.
	ErrOrganizationFull = errors.New("organization user quota reached")
	// ErrNotFound is the generic record miss.
	ErrNotFound = errors.New("record not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Tenant mismatches and
// plain record misses share one shape on purpose.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrAuthenticationFailed):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "AUTHENTICATION_FAILED")
	case errors.Is(err, ErrTokenInvalid):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "TOKEN_INVALID")
	case errors.Is(err, ErrPrivilegeEscalation):
		return NewHTTPError(http.StatusForbidden, err.Error(), "PRIVILEGE_ESCALATION_REJECTED")
	case errors.Is(err, ErrPermissionDenied):
		return NewHTTPError(http.StatusForbidden, err.Error(), "PERMISSION_DENIED")
	case errors.Is(err, ErrTenantMismatch),
		errors.Is(err, ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return NewHTTPError(http.StatusNotFound, "record not found", "NOT_FOUND")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrOrganizationExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "ORGANIZATION_EXISTS")
	case errors.Is(err, ErrOrganizationFull):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "ORGANIZATION_FULL")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
