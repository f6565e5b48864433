package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// VerificationHandlers serves the staff side of the lifecycle
type VerificationHandlers struct {
	verifySvc domain.VerificationService
}

// NewVerificationHandlers creates verification handlers
func NewVerificationHandlers(verifySvc domain.VerificationService) *VerificationHandlers {
	return &VerificationHandlers{verifySvc: verifySvc}
}

// DelegateRequest assigns a submitted request to an officer
type DelegateRequest struct {
	AssigneeID uint   `json:"assigneeId" binding:"required"`
	Comment    string `json:"comment" binding:"max=1000"`
}

// FindingRequest records a verification outcome
type FindingRequest struct {
	Result  string `json:"result" binding:"required,oneof=verified flagged"`
	Comment string `json:"comment" binding:"max=1000"`
}

type listQuery struct {
	SearchText string `form:"searchText"`
	StartDate  string `form:"startDate"`
	EndDate    string `form:"endDate"`
}

// parseDate accepts a calendar day or an RFC 3339 timestamp. A bare end
// day covers the whole day.
func parseDate(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", value)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func bindListFilter(c *gin.Context) (domain.ListFilter, bool) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return domain.ListFilter{}, false
	}
	from, err := parseDate(q.StartDate, false)
	if err != nil {
		badRequest(c, err)
		return domain.ListFilter{}, false
	}
	to, err := parseDate(q.EndDate, true)
	if err != nil {
		badRequest(c, err)
		return domain.ListFilter{}, false
	}
	return domain.ListFilter{SearchText: q.SearchText, From: from, To: to}, true
}

func requestID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, fmt.Errorf("invalid request id: %w", err))
		return uuid.Nil, false
	}
	return id, true
}

// List returns the requests visible to the caller
func (h *VerificationHandlers) List(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	filter, ok := bindListFilter(c)
	if !ok {
		return
	}

	reqs, err := h.verifySvc.List(c.Request.Context(), actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toRequestResponses(reqs)})
}

// Get returns one request with its photos and history
func (h *VerificationHandlers) Get(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}

	req, err := h.verifySvc.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toRequestResponse(req)})
}

// Delegate assigns a submitted request to an officer of the same station
func (h *VerificationHandlers) Delegate(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}
	var body DelegateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	req, err := h.verifySvc.Delegate(c.Request.Context(), actor, id, body.AssigneeID, body.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toRequestResponse(req)})
}

// Verify records an officer finding or a final disposition
func (h *VerificationHandlers) Verify(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := requestID(c)
	if !ok {
		return
	}
	var body FindingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	req, err := h.verifySvc.RecordFinding(c.Request.Context(), actor, id, domain.Status(body.Result), body.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toRequestResponse(req)})
}

// Stats returns per-day counts for the caller's oversight scope
func (h *VerificationHandlers) Stats(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	stats, err := h.verifySvc.Stats(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	if stats == nil {
		stats = []domain.DayStats{}
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// Logs returns verified and flagged requests
func (h *VerificationHandlers) Logs(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	filter, ok := bindListFilter(c)
	if !ok {
		return
	}

	reqs, err := h.verifySvc.Logs(c.Request.Context(), actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toRequestResponses(reqs)})
}
