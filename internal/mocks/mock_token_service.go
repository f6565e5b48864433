package mocks

import (
	"fmt"
	"time"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateTokenFunc func(user *domain.User, sessionID string) (string, error)
	ValidateTokenFunc func(token string) (*domain.TokenClaims, error)
	TTLSeconds        int64
}

func NewMockTokenService() *MockTokenService {
	return &MockTokenService{TTLSeconds: 86400}
}

func (m *MockTokenService) GenerateToken(user *domain.User, sessionID string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(user, sessionID)
	}
	return fmt.Sprintf("token_%d_%s", user.ID, sessionID), nil
}

func (m *MockTokenService) ValidateToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(token)
	}
	now := time.Now().Unix()
	return &domain.TokenClaims{UserID: 1, Role: domain.RoleSuperAdmin, SessionID: "sess", IssuedAt: now, ExpiresAt: now + m.TTLSeconds}, nil
}

func (m *MockTokenService) TTL() int64 {
	return m.TTLSeconds
}

var _ domain.TokenService = (*MockTokenService)(nil)
