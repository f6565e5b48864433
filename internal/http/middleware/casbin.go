package middleware

import (
	"net/http"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/gin-gonic/gin"
)

// CasbinMW checks the route policy for the authenticated role
type CasbinMW struct {
	policy domain.PolicyService
	audit  domain.AuditLogger
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(policy domain.PolicyService, audit domain.AuditLogger) *CasbinMW {
	return &CasbinMW{policy: policy, audit: audit}
}

// Enforce returns the casbin authorization middleware. It must run after
// the auth middleware.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(UserRoleKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User role not found in context"})
			return
		}

		path := c.Request.URL.Path
		method := c.Request.Method

		allowed, err := mw.policy.CheckPermission(role.(string), path, method)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			return
		}
		if !allowed {
			userID := c.GetUint(UserIDKey)
			mw.audit.LogEvent(c.Request.Context(), domain.NewAuditEvent(domain.AccessDeniedEvent, userID).
				WithMetadata("path", path).
				WithMetadata("method", method).
				WithMetadata("role", role).
				WithError(domain.ErrForbidden))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access Denied"})
			return
		}

		c.Next()
	}
}
