package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/gin-gonic/gin"
)

// UserHandlers serves staff administration
type UserHandlers struct {
	userSvc domain.UserService
}

// NewUserHandlers creates user handlers
func NewUserHandlers(userSvc domain.UserService) *UserHandlers {
	return &UserHandlers{userSvc: userSvc}
}

// UserRequest is the body of create and update. Password is optional on
// update.
type UserRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"omitempty,min=6"`
	Role      string `json:"role" binding:"required"`
	StationID *uint  `json:"stationId"`
	RegionID  *uint  `json:"regionId"`
}

type userQuery struct {
	Role      string `form:"role"`
	StationID *uint  `form:"stationId"`
}

func userID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		badRequest(c, fmt.Errorf("invalid user id %q", c.Param("id")))
		return 0, false
	}
	return uint(id), true
}

// List returns staff visible to the caller
func (h *UserHandlers) List(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var q userQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	users, err := h.userSvc.List(c.Request.Context(), actor, domain.UserFilter{
		Role:      domain.Role(q.Role),
		StationID: q.StationID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toUserResponses(users)})
}

// Create adds a staff user
func (h *UserHandlers) Create(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Password == "" {
		badRequest(c, fmt.Errorf("password is required"))
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), actor, domain.NewUser{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      domain.Role(req.Role),
		StationID: req.StationID,
		RegionID:  req.RegionID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": toUserResponse(user)})
}

// Update replaces a staff user's editable fields
func (h *UserHandlers) Update(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := userID(c)
	if !ok {
		return
	}
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), actor, id, domain.UserUpdate{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      domain.Role(req.Role),
		StationID: req.StationID,
		RegionID:  req.RegionID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toUserResponse(user)})
}

// Delete removes a staff user
func (h *UserHandlers) Delete(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := userID(c)
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "User deleted"}})
}
