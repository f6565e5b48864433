package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrInvalidTransition, http.StatusBadRequest},
		{domain.TransitionError(domain.StatusAssigned), http.StatusBadRequest},
		{domain.ErrTenantIncomplete, http.StatusBadRequest},
		{domain.ErrOTPInvalid, http.StatusBadRequest},
		{fmt.Errorf("assignee 9: %w", domain.ErrInvalidAssignee), http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrRequestNotFound, http.StatusNotFound},
		{domain.ErrPhotoNotFound, http.StatusNotFound},
		{domain.ErrStaleStatus, http.StatusConflict},
		{domain.ErrSuperAdminExists, http.StatusConflict},
		{domain.ErrUserHasAssignments, http.StatusConflict},
		{fmt.Errorf("%w: retry in 30 seconds", domain.ErrOTPResendLimit), http.StatusTooManyRequests},
		{domain.ErrOTPMaxAttempts, http.StatusTooManyRequests},
		{domain.ErrNotAnImage, http.StatusUnsupportedMediaType},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, statusFor(tt.err))
		})
	}
}

func TestRespondError_HidesInternalErrors(t *testing.T) {
	r := newEngine(nil)
	r.GET("/boom", func(c *gin.Context) { respondError(c, errors.New("pq: relation does not exist")) })

	w := doJSON(r, http.MethodGet, "/boom", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decode(t, w)["error"])
}
