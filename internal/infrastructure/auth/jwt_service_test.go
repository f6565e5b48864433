package auth

import (
	"testing"
	"time"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestJWTServiceImpl_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret-0123456789", "tv-test", 24*time.Hour)

	user := &domain.User{ID: 42, Role: domain.RoleAdmin1, StationID: uintPtr(3), RegionID: uintPtr(1)}
	token, err := svc.GenerateToken(user, "sess-1")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, domain.RoleAdmin1, claims.Role)
	assert.Equal(t, uint(3), claims.StationID)
	assert.Equal(t, uint(1), claims.RegionID)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, int64(24*60*60), claims.ExpiresAt-claims.IssuedAt)
	assert.Equal(t, int64(86400), svc.TTL())
}

func TestJWTServiceImpl_SuperAdminHasNoScope(t *testing.T) {
	svc := NewJWTService("test-secret-0123456789", "tv-test", time.Hour)

	token, err := svc.GenerateToken(&domain.User{ID: 1, Role: domain.RoleSuperAdmin}, "s")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Zero(t, claims.StationID)
	assert.Zero(t, claims.RegionID)
}

func TestJWTServiceImpl_ValidateToken_Errors(t *testing.T) {
	svc := NewJWTService("test-secret-0123456789", "tv-test", time.Hour)

	sign := func(secret string, claims jwt.MapClaims) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return tok
	}
	now := time.Now()

	tests := []struct {
		name        string
		token       string
		expectedErr error
	}{
		{
			name:        "garbage",
			token:       "not-a-token",
			expectedErr: domain.ErrTokenMalformed,
		},
		{
			name: "wrong secret",
			token: sign("other-secret-0123456789", jwt.MapClaims{
				"user_id": 1, "role": "admin2", "iss": "tv-test", "iat": now.Unix(), "exp": now.Add(time.Hour).Unix(),
			}),
			expectedErr: domain.ErrTokenInvalid,
		},
		{
			name: "expired",
			token: sign("test-secret-0123456789", jwt.MapClaims{
				"user_id": 1, "role": "admin2", "iss": "tv-test", "iat": now.Add(-2 * time.Hour).Unix(), "exp": now.Add(-time.Hour).Unix(),
			}),
			expectedErr: domain.ErrTokenExpired,
		},
		{
			name: "wrong issuer",
			token: sign("test-secret-0123456789", jwt.MapClaims{
				"user_id": 1, "role": "admin2", "iss": "someone-else", "iat": now.Unix(), "exp": now.Add(time.Hour).Unix(),
			}),
			expectedErr: domain.ErrTokenInvalid,
		},
		{
			name: "missing user id",
			token: sign("test-secret-0123456789", jwt.MapClaims{
				"role": "admin2", "iss": "tv-test", "iat": now.Unix(), "exp": now.Add(time.Hour).Unix(),
			}),
			expectedErr: domain.ErrTokenMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}
