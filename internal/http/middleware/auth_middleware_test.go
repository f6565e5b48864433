package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func uintPtr(v uint) *uint { return &v }

func authFixture() (*mocks.MockTokenService, *mocks.MockSessionRepository, *mocks.MockUserRepository) {
	tokens := mocks.NewMockTokenService()
	tokens.ValidateTokenFunc = func(token string) (*domain.TokenClaims, error) {
		switch token {
		case "good":
			return &domain.TokenClaims{UserID: 11, Role: domain.RoleAdmin1, SessionID: "sess-11"}, nil
		case "orphan":
			return &domain.TokenClaims{UserID: 99, Role: domain.RoleAdmin2, SessionID: "sess-99"}, nil
		case "expired":
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	sessions := mocks.NewMockSessionRepository()
	sessions.FindByIDFunc = func(ctx context.Context, id string) (*domain.Session, error) {
		switch id {
		case "sess-11":
			return &domain.Session{ID: id, UserID: 11}, nil
		case "sess-99":
			return &domain.Session{ID: id, UserID: 99}, nil
		}
		return nil, domain.ErrSessionNotFound
	}
	users := mocks.NewMockUserRepository()
	users.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		if id == 11 {
			// the stored scope wins over whatever the token claims
			return &domain.User{ID: 11, Role: domain.RoleAdmin1, StationID: uintPtr(1), RegionID: uintPtr(10)}, nil
		}
		return nil, domain.ErrUserNotFound
	}
	return tokens, sessions, users
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		optional       bool
		expectedStatus int
		expectedActor  domain.Actor
	}{
		{name: "missing header", expectedStatus: http.StatusUnauthorized},
		{name: "missing header optional", optional: true, expectedStatus: http.StatusOK},
		{name: "wrong scheme", header: "Basic good", expectedStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer expired", expectedStatus: http.StatusUnauthorized},
		{name: "invalid token optional", header: "Bearer junk", optional: true, expectedStatus: http.StatusUnauthorized},
		{name: "deleted user", header: "Bearer orphan", expectedStatus: http.StatusUnauthorized},
		{
			name:           "valid token",
			header:         "Bearer good",
			expectedStatus: http.StatusOK,
			expectedActor:  domain.StationLead{ID: 11, StationID: 1, RegionID: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewAuthMW(authFixture())
			handler := mw.WithJWT()
			if tt.optional {
				handler = mw.OptionalJWT()
			}

			var seen domain.Actor
			r := gin.New()
			r.GET("/x", handler, func(c *gin.Context) {
				seen, _ = ActorFrom(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedActor, seen)
		})
	}
}

func TestCasbinMW_Enforce(t *testing.T) {
	policy := mocks.NewMockPolicyService()
	policy.CheckPermissionFunc = func(role, resource, action string) (bool, error) {
		return role == "admin0" && resource == "/verification/stats" && action == "GET", nil
	}
	audit := mocks.NewMockAuditLogger()
	mw := NewCasbinMW(policy, audit)

	route := func(role string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if role != "" {
				c.Set(UserRoleKey, role)
				c.Set(UserIDKey, uint(31))
			}
		})
		r.GET("/verification/stats", mw.Enforce(), func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}
	serve := func(r *gin.Engine) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/verification/stats", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, serve(route("admin0")))
	assert.Equal(t, http.StatusForbidden, serve(route("admin2")))
	assert.Equal(t, http.StatusUnauthorized, serve(route("")))

	denied := audit.OfType(domain.AccessDeniedEvent)
	if assert.Len(t, denied, 1) {
		assert.Equal(t, uint(31), denied[0].UserID)
		assert.Equal(t, "/verification/stats", denied[0].Metadata["path"])
	}
}
