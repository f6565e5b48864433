package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	fixedID   = uuid.MustParse("6f1c2b9e-4d7a-4b8e-9a51-3c2d1e0f9a77")
	createdAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	lead      = domain.StationLead{ID: 11, StationID: 1, RegionID: 10}
	officer   = domain.Officer{ID: 21, StationID: 1, RegionID: 10}
	admin     = domain.SuperAdmin{ID: 1}
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
}

// withActor stands in for the auth middleware
func withActor(actor domain.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor != nil {
			c.Set(middleware.ActorKey, actor)
			c.Set(middleware.UserIDKey, actor.UserID())
			c.Set(middleware.UserRoleKey, string(actor.Role()))
		}
		c.Next()
	}
}

func newEngine(actor domain.Actor) *gin.Engine {
	r := gin.New()
	r.Use(withActor(actor))
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	data, ok := decode(t, w)["data"].(map[string]any)
	require.True(t, ok, w.Body.String())
	return data
}

func sampleRequest(status domain.Status) *domain.VerificationRequest {
	members := 3
	return &domain.VerificationRequest{
		ID:            fixedID,
		LandlordName:  "Ramesh Sharma",
		LandlordPhone: "+15551234567",
		Address:       "12 MG Road",
		TenantDetails: domain.TenantDetails{
			TenantName:    "Anil Kumar",
			TenantPhones:  []string{"+15557654321"},
			NationalID:    "123412341234",
			FamilyMembers: &members,
		},
		StationID: 1,
		RegionID:  10,
		Status:    status,
		OTP:       domain.OTP{Code: "482913", ExpiresAt: createdAt.Add(10 * time.Minute)},
		Photos: []domain.Photo{
			{Category: domain.PhotoTenant, Index: 0, BlobKey: "k1", ContentType: "image/png", Filename: "t.png", Size: 80},
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}
