package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// uploadFields maps multipart file fields to photo categories
var uploadFields = []struct {
	field    string
	category domain.PhotoCategory
}{
	{"tenantPhoto", domain.PhotoTenant},
	{"idDocumentPhoto", domain.PhotoIDDocument},
	{"familyPhoto", domain.PhotoFamily},
}

// multipart framing on top of the photo bytes themselves
const formOverhead = 1 << 20

// LandlordHandlers serves the public intake flow and photo downloads
type LandlordHandlers struct {
	verifySvc domain.VerificationService
	userSvc   domain.UserService
	maxBody   int64
}

// NewLandlordHandlers creates landlord handlers. maxUploadBytes is the
// total photo allowance of one completion request.
func NewLandlordHandlers(verifySvc domain.VerificationService, userSvc domain.UserService, maxUploadBytes int64) *LandlordHandlers {
	return &LandlordHandlers{
		verifySvc: verifySvc,
		userSvc:   userSvc,
		maxBody:   maxUploadBytes + formOverhead,
	}
}

// IntakeRequest is the landlord's initial submission
type IntakeRequest struct {
	LandlordName  string   `json:"landlordName" binding:"required"`
	LandlordPhone string   `json:"landlordPhone" binding:"required,phone"`
	Address       string   `json:"address" binding:"required"`
	StationID     uint     `json:"stationId" binding:"required"`
	TenantName    string   `json:"tenantName" binding:"required"`
	TenantPhones  []string `json:"tenantPhones" binding:"omitempty,dive,phone"`
}

// CompleteRequest carries the tenant fields of the multipart completion form
type CompleteRequest struct {
	TenantName      string   `form:"tenantName"`
	TenantPhones    []string `form:"tenantPhones" binding:"omitempty,dive,phone"`
	FatherName      string   `form:"fatherName"`
	NationalID      string   `form:"nationalId" binding:"omitempty,nationalid"`
	PurposeOfStay   string   `form:"purposeOfStay" binding:"max=500"`
	PreviousAddress string   `form:"previousAddress" binding:"max=500"`
	FamilyMembers   *int     `form:"familyMembers" binding:"omitempty,min=1"`
}

// VerifyOTPRequest confirms the landlord's phone
type VerifyOTPRequest struct {
	RequestID string `json:"requestId" binding:"required,uuid"`
	OTP       string `json:"otp" binding:"required,numeric"`
}

// ResendOTPRequest asks for a fresh code
type ResendOTPRequest struct {
	RequestID string `json:"requestId" binding:"required,uuid"`
}

// Register opens a verification request and sends the OTP
func (h *LandlordHandlers) Register(c *gin.Context) {
	var req IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	created, err := h.verifySvc.Register(c.Request.Context(), domain.IntakeInput{
		LandlordName:  req.LandlordName,
		LandlordPhone: req.LandlordPhone,
		Address:       req.Address,
		StationID:     req.StationID,
		TenantDetails: domain.TenantDetails{
			TenantName:   req.TenantName,
			TenantPhones: req.TenantPhones,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{
		"request":      toRequestResponse(created),
		"otpExpiresAt": created.OTP.ExpiresAt,
	}})
}

// Complete attaches tenant details and photos while the request is pending
func (h *LandlordHandlers) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, fmt.Errorf("invalid request id: %w", err))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)
	var form CompleteRequest
	if err := c.ShouldBind(&form); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			respondError(c, domain.ErrUploadTooLarge)
			return
		}
		badRequest(c, err)
		return
	}

	uploads, err := readUploads(c.Request.MultipartForm)
	if err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.verifySvc.CompleteDetails(c.Request.Context(), id, domain.TenantDetails{
		TenantName:      form.TenantName,
		TenantPhones:    form.TenantPhones,
		FatherName:      form.FatherName,
		NationalID:      form.NationalID,
		PurposeOfStay:   form.PurposeOfStay,
		PreviousAddress: form.PreviousAddress,
		FamilyMembers:   form.FamilyMembers,
	}, uploads)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toRequestResponse(updated)})
}

func readUploads(form *multipart.Form) ([]domain.PhotoUpload, error) {
	if form == nil {
		return nil, nil
	}
	var uploads []domain.PhotoUpload
	for _, f := range uploadFields {
		for _, fh := range form.File[f.field] {
			data, err := readFile(fh)
			if err != nil {
				return nil, err
			}
			uploads = append(uploads, domain.PhotoUpload{
				Category:    f.category,
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}
	return uploads, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}
	return data, nil
}

// VerifyOTP submits the request once the landlord's code matches
func (h *LandlordHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, _ := uuid.Parse(req.RequestID)

	submitted, err := h.verifySvc.VerifyOTP(c.Request.Context(), id, req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toRequestResponse(submitted)})
}

// ResendOTP issues a fresh code, throttled per request
func (h *LandlordHandlers) ResendOTP(c *gin.Context) {
	var req ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, _ := uuid.Parse(req.RequestID)

	otp, err := h.verifySvc.ResendOTP(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"message":      "OTP sent",
		"otpExpiresAt": otp.ExpiresAt.Format(time.RFC3339),
	}})
}

// Image streams one stored photo
func (h *LandlordHandlers) Image(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, fmt.Errorf("invalid request id: %w", err))
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		badRequest(c, fmt.Errorf("invalid photo index %q", c.Param("index")))
		return
	}

	photo, data, err := h.verifySvc.Photo(c.Request.Context(), actor, id, domain.PhotoCategory(c.Param("type")), index)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, photo.ContentType, data)
}

// Stations lists the police stations a landlord can pick
func (h *LandlordHandlers) Stations(c *gin.Context) {
	stations, err := h.userSvc.ListStations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(stations))
	for _, s := range stations {
		out = append(out, gin.H{"id": s.ID, "name": s.Name, "regionId": s.RegionID})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}
