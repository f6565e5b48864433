package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/http/middleware"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authRouter(svc *mocks.MockAuthService, actor domain.Actor) *gin.Engine {
	h := NewAuthHandlers(svc)
	r := newEngine(actor)
	r.Use(func(c *gin.Context) {
		if actor != nil {
			c.Set(middleware.SessionIDKey, "sess-1")
		}
	})
	r.POST("/auth/login", h.Login)
	r.POST("/auth/register", h.Register)
	r.GET("/auth/me", h.Me)
	r.POST("/auth/logout", h.Logout)
	r.POST("/auth/change-password", h.ChangePassword)
	r.POST("/auth/admin/change-password", h.AdminChangePassword)
	return r
}

func stationID(id uint) *uint { return &id }

func TestAuthHandlers_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		setupMock      func(*mocks.MockAuthService)
		expectedStatus int
	}{
		{
			name: "returns token and user",
			body: map[string]any{"email": "lead@central.police", "password": "s3cret!"},
			setupMock: func(m *mocks.MockAuthService) {
				m.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
					return &domain.AuthResult{
						User:      &domain.User{ID: 11, Name: "SHO Central", Email: email, Role: domain.RoleAdmin1, StationID: stationID(1)},
						Token:     "jwt-token",
						ExpiresIn: 86400,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid email",
			body:           map[string]any{"email": "lead", "password": "s3cret!"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "wrong password",
			body: map[string]any{"email": "lead@central.police", "password": "nope"},
			setupMock: func(m *mocks.MockAuthService) {
				m.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
					return nil, domain.ErrInvalidCredentials
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			w := doJSON(authRouter(svc, nil), http.MethodPost, "/auth/login", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedStatus == http.StatusOK {
				data := dataOf(t, w)
				assert.Equal(t, "jwt-token", data["token"])
				assert.Equal(t, float64(86400), data["expiresIn"])
				user := data["user"].(map[string]any)
				assert.Equal(t, "admin1", user["role"])
				assert.NotContains(t, user, "passwordHash")
			}
		})
	}
}

func TestAuthHandlers_Register(t *testing.T) {
	body := map[string]any{"name": "Root", "email": "root@police.gov", "password": "bootstrap1", "role": "superAdmin"}

	t.Run("bootstrap passes no caller", func(t *testing.T) {
		svc := mocks.NewMockAuthService()
		svc.RegisterFunc = func(ctx context.Context, caller domain.Actor, input domain.NewUser) (*domain.AuthResult, error) {
			assert.Nil(t, caller)
			assert.Equal(t, domain.RoleSuperAdmin, input.Role)
			return &domain.AuthResult{User: &domain.User{ID: 1, Role: input.Role}, Token: "t", ExpiresIn: 86400}, nil
		}

		w := doJSON(authRouter(svc, nil), http.MethodPost, "/auth/register", body)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("second bootstrap conflicts", func(t *testing.T) {
		svc := mocks.NewMockAuthService()
		svc.RegisterFunc = func(ctx context.Context, caller domain.Actor, input domain.NewUser) (*domain.AuthResult, error) {
			return nil, domain.ErrSuperAdminExists
		}

		w := doJSON(authRouter(svc, nil), http.MethodPost, "/auth/register", body)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("authenticated caller is forwarded", func(t *testing.T) {
		svc := mocks.NewMockAuthService()
		svc.RegisterFunc = func(ctx context.Context, caller domain.Actor, input domain.NewUser) (*domain.AuthResult, error) {
			assert.Equal(t, lead, caller)
			return nil, domain.ErrForbidden
		}

		w := doJSON(authRouter(svc, lead), http.MethodPost, "/auth/register", body)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAuthHandlers_MeAndLogout(t *testing.T) {
	svc := mocks.NewMockAuthService()
	svc.GetUserProfileFunc = func(ctx context.Context, userID uint) (*domain.User, error) {
		return &domain.User{ID: userID, Name: "Constable Verma", Role: domain.RoleAdmin2, StationID: stationID(1)}, nil
	}
	var loggedOut string
	svc.LogoutFunc = func(ctx context.Context, sessionID string) error {
		loggedOut = sessionID
		return nil
	}
	r := authRouter(svc, officer)

	w := doJSON(r, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Constable Verma", dataOf(t, w)["name"])

	w = doJSON(r, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sess-1", loggedOut)
}

func TestAuthHandlers_ChangePassword(t *testing.T) {
	svc := mocks.NewMockAuthService()
	svc.ChangePasswordFunc = func(ctx context.Context, actor domain.Actor, current, next string) error {
		if current != "old-pass" {
			return domain.ErrWrongPassword
		}
		return nil
	}
	svc.AdminChangePasswordFunc = func(ctx context.Context, actor domain.Actor, userID uint, next string) error {
		if _, ok := actor.(domain.SuperAdmin); !ok {
			return domain.ErrForbidden
		}
		return nil
	}

	w := doJSON(authRouter(svc, officer), http.MethodPost, "/auth/change-password",
		map[string]any{"currentPassword": "old-pass", "newPassword": "new-pass"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(authRouter(svc, officer), http.MethodPost, "/auth/change-password",
		map[string]any{"currentPassword": "guess", "newPassword": "new-pass"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "current password is incorrect", decode(t, w)["error"])

	w = doJSON(authRouter(svc, officer), http.MethodPost, "/auth/change-password",
		map[string]any{"currentPassword": "old-pass", "newPassword": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(authRouter(svc, admin), http.MethodPost, "/auth/admin/change-password",
		map[string]any{"userId": 21, "newPassword": "reset-pass"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(authRouter(svc, lead), http.MethodPost, "/auth/admin/change-password",
		map[string]any{"userId": 21, "newPassword": "reset-pass"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
