package handlers

import (
	"net/http"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/http/middleware"
	"github.com/gin-gonic/gin"
)

// PolicyHandlers manages route policies at runtime
type PolicyHandlers struct {
	policySvc domain.PolicyService
	audit     domain.AuditLogger
}

// NewPolicyHandlers creates policy handlers
func NewPolicyHandlers(policySvc domain.PolicyService, audit domain.AuditLogger) *PolicyHandlers {
	return &PolicyHandlers{policySvc: policySvc, audit: audit}
}

// PolicyRequest names a role, a route pattern and an HTTP method
type PolicyRequest struct {
	Role   string `json:"role" binding:"required"`
	Path   string `json:"path" binding:"required,startswith=/"`
	Method string `json:"method" binding:"required,oneof=GET POST PUT PATCH DELETE"`
}

// List returns all stored policies
func (h *PolicyHandlers) List(c *gin.Context) {
	policies := h.policySvc.GetPolicies()
	out := make([]gin.H, 0, len(policies))
	for _, p := range policies {
		if len(p) < 3 {
			continue
		}
		out = append(out, gin.H{"subject": p[0], "path": p[1], "method": p[2]})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// Add stores a policy
func (h *PolicyHandlers) Add(c *gin.Context) {
	var r PolicyRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.policySvc.AddPolicy(r.Role, r.Path, r.Method); err != nil {
		respondError(c, err)
		return
	}
	h.record(c, domain.PolicyAddedEvent, r)
	c.Status(http.StatusNoContent)
}

// Remove deletes a policy
func (h *PolicyHandlers) Remove(c *gin.Context) {
	var r PolicyRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.policySvc.RemovePolicy(r.Role, r.Path, r.Method); err != nil {
		respondError(c, err)
		return
	}
	h.record(c, domain.PolicyRemovedEvent, r)
	c.Status(http.StatusNoContent)
}

func (h *PolicyHandlers) record(c *gin.Context, eventType domain.AuditEventType, r PolicyRequest) {
	var userID uint
	if actor, ok := middleware.ActorFrom(c); ok {
		userID = actor.UserID()
	}
	h.audit.LogEvent(c.Request.Context(), domain.NewAuditEvent(eventType, userID).
		WithMetadata("role", r.Role).
		WithMetadata("path", r.Path).
		WithMetadata("method", r.Method))
}
