package domain

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrSuperAdminExists   = errors.New("super admin already exists")
	ErrUserHasAssignments = errors.New("user still holds assigned requests")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Authorization errors
var (
	ErrForbidden    = errors.New("not allowed")
	ErrInvalidScope = errors.New("user scope is incomplete")
)

// Validation errors
var (
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidStation   = errors.New("invalid station")
	ErrInvalidRegion    = errors.New("invalid region")
	ErrInvalidAssignee  = errors.New("invalid assignee")
	ErrInvalidResult    = errors.New("result must be verified or flagged")
	ErrInvalidCategory  = errors.New("invalid photo category")
	ErrFileTooLarge     = errors.New("file exceeds 2MB limit")
	ErrUploadTooLarge   = errors.New("total file size exceeds 6MB limit")
	ErrNotAnImage       = errors.New("only image files are allowed")
	ErrTenantIncomplete = errors.New("tenant name and at least one tenant phone are required")
)

// Lifecycle errors
var (
	ErrRequestNotFound      = errors.New("verification request not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrStaleStatus          = errors.New("request was modified concurrently")
	ErrPhotoNotFound        = errors.New("photo not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// OTP errors
var (
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
	ErrOTPNotFound    = errors.New("otp not found")
	ErrOTPResendLimit = errors.New("otp resend limit exceeded")
)

// TransitionError reports an operation the request's current status does
// not allow. It matches ErrInvalidTransition.
func TransitionError(current Status) error {
	return fmt.Errorf("%w: request is %s", ErrInvalidTransition, current)
}
