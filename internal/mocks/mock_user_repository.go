package mocks

import (
	"context"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc            func(ctx context.Context, user *domain.User) error
	FindByEmailFunc       func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc          func(ctx context.Context, id uint) (*domain.User, error)
	UpdateFunc            func(ctx context.Context, user *domain.User) error
	UpdatePasswordFunc    func(ctx context.Context, id uint, passwordHash string) error
	DeleteFunc            func(ctx context.Context, id uint) error
	ListFunc              func(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error)
	FindByStationRoleFunc func(ctx context.Context, stationID uint, role domain.Role) ([]*domain.User, error)
	FindByRegionRoleFunc  func(ctx context.Context, regionID uint, role domain.Role) ([]*domain.User, error)
	ExistsWithRoleFunc    func(ctx context.Context, role domain.Role) (bool, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*domain.User{}, nil
}

func (m *MockUserRepository) FindByStationRole(ctx context.Context, stationID uint, role domain.Role) ([]*domain.User, error) {
	if m.FindByStationRoleFunc != nil {
		return m.FindByStationRoleFunc(ctx, stationID, role)
	}
	return []*domain.User{}, nil
}

func (m *MockUserRepository) FindByRegionRole(ctx context.Context, regionID uint, role domain.Role) ([]*domain.User, error) {
	if m.FindByRegionRoleFunc != nil {
		return m.FindByRegionRoleFunc(ctx, regionID, role)
	}
	return []*domain.User{}, nil
}

func (m *MockUserRepository) ExistsWithRole(ctx context.Context, role domain.Role) (bool, error) {
	if m.ExistsWithRoleFunc != nil {
		return m.ExistsWithRoleFunc(ctx, role)
	}
	return false, nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
