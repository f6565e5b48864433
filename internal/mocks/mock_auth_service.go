package mocks

import (
	"context"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	LoginFunc               func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RegisterFunc            func(ctx context.Context, caller domain.Actor, input domain.NewUser) (*domain.AuthResult, error)
	LogoutFunc              func(ctx context.Context, sessionID string) error
	GetUserProfileFunc      func(ctx context.Context, userID uint) (*domain.User, error)
	ChangePasswordFunc      func(ctx context.Context, actor domain.Actor, current, next string) error
	AdminChangePasswordFunc func(ctx context.Context, actor domain.Actor, userID uint, next string) error
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) Register(ctx context.Context, caller domain.Actor, input domain.NewUser) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, caller, input)
	}
	return nil, domain.ErrForbidden
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockAuthService) ChangePassword(ctx context.Context, actor domain.Actor, current, next string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, actor, current, next)
	}
	return nil
}

func (m *MockAuthService) AdminChangePassword(ctx context.Context, actor domain.Actor, userID uint, next string) error {
	if m.AdminChangePasswordFunc != nil {
		return m.AdminChangePasswordFunc(ctx, actor, userID, next)
	}
	return nil
}

var _ domain.AuthService = (*MockAuthService)(nil)
