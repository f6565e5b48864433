package mocks

import (
	"context"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
)

// MockUserService implements domain.UserService for testing
type MockUserService struct {
	ListFunc         func(ctx context.Context, actor domain.Actor, filter domain.UserFilter) ([]*domain.User, error)
	CreateFunc       func(ctx context.Context, actor domain.Actor, input domain.NewUser) (*domain.User, error)
	UpdateFunc       func(ctx context.Context, actor domain.Actor, id uint, input domain.UserUpdate) (*domain.User, error)
	DeleteFunc       func(ctx context.Context, actor domain.Actor, id uint) error
	ListStationsFunc func(ctx context.Context) ([]*domain.Station, error)
}

func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

func (m *MockUserService) List(ctx context.Context, actor domain.Actor, filter domain.UserFilter) ([]*domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, actor, filter)
	}
	return []*domain.User{}, nil
}

func (m *MockUserService) Create(ctx context.Context, actor domain.Actor, input domain.NewUser) (*domain.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, input)
	}
	return &domain.User{ID: 1, Name: input.Name, Email: input.Email, Role: input.Role}, nil
}

func (m *MockUserService) Update(ctx context.Context, actor domain.Actor, id uint, input domain.UserUpdate) (*domain.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, id, input)
	}
	return &domain.User{ID: id, Name: input.Name, Email: input.Email, Role: input.Role}, nil
}

func (m *MockUserService) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, id)
	}
	return nil
}

func (m *MockUserService) ListStations(ctx context.Context) ([]*domain.Station, error) {
	if m.ListStationsFunc != nil {
		return m.ListStationsFunc(ctx)
	}
	return []*domain.Station{}, nil
}

var _ domain.UserService = (*MockUserService)(nil)
