package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/gin-gonic/gin"
)

// NotificationHandlers serves the in-app inbox
type NotificationHandlers struct {
	notifySvc domain.NotificationService
}

// NewNotificationHandlers creates notification handlers
func NewNotificationHandlers(notifySvc domain.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{notifySvc: notifySvc}
}

// List returns the caller's latest notifications
func (h *NotificationHandlers) List(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	ns, err := h.notifySvc.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toNotificationResponses(ns)})
}

// MarkAllRead marks every notification of the caller as read
func (h *NotificationHandlers) MarkAllRead(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	n, err := h.notifySvc.MarkAllRead(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"updated": n}})
}

// MarkRead marks one notification as read
func (h *NotificationHandlers) MarkRead(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		badRequest(c, fmt.Errorf("invalid notification id %q", c.Param("id")))
		return
	}

	if err := h.notifySvc.MarkRead(c.Request.Context(), actor, uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Notification marked as read"}})
}
