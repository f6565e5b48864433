package handlers

import (
	"errors"
	"net/http"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/http/middleware"
	"github.com/gin-gonic/gin"
)

var errorStatus = []struct {
	status int
	errs   []error
}{
	{http.StatusUnsupportedMediaType, []error{domain.ErrNotAnImage}},
	{http.StatusTooManyRequests, []error{domain.ErrOTPMaxAttempts, domain.ErrOTPResendLimit}},
	{http.StatusConflict, []error{
		domain.ErrStaleStatus, domain.ErrUserAlreadyExists, domain.ErrSuperAdminExists,
		domain.ErrUserHasAssignments,
	}},
	{http.StatusNotFound, []error{
		domain.ErrRequestNotFound, domain.ErrUserNotFound, domain.ErrPhotoNotFound,
		domain.ErrNotificationNotFound, domain.ErrOTPNotFound,
	}},
	{http.StatusForbidden, []error{domain.ErrForbidden}},
	{http.StatusUnauthorized, []error{
		domain.ErrInvalidCredentials, domain.ErrTokenInvalid, domain.ErrTokenExpired,
		domain.ErrTokenMalformed, domain.ErrSessionNotFound, domain.ErrSessionExpired,
	}},
	{http.StatusBadRequest, []error{
		domain.ErrInvalidAssignee, domain.ErrInvalidStation, domain.ErrInvalidRegion,
		domain.ErrInvalidResult, domain.ErrInvalidCategory, domain.ErrFileTooLarge,
		domain.ErrUploadTooLarge, domain.ErrInvalidRole, domain.ErrInvalidScope,
		domain.ErrWrongPassword, domain.ErrInvalidTransition, domain.ErrOTPExpired,
		domain.ErrOTPInvalid, domain.ErrTenantIncomplete,
	}},
}

// statusFor maps a domain error to its HTTP status
func statusFor(err error) int {
	for _, group := range errorStatus {
		for _, target := range group.errs {
			if errors.Is(err, target) {
				return group.status
			}
		}
	}
	return http.StatusInternalServerError
}

// respondError writes the error envelope. Internal errors never leak
// their message; the request logger picks the cause up from c.Errors.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// actorOrAbort fetches the actor set by the auth middleware
func actorOrAbort(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}
	return actor, true
}
