package mocks

import (
	"context"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/google/uuid"
)

// MockVerificationRepository implements domain.VerificationRepository for
// testing. Applied transitions are recorded in Transitions.
type MockVerificationRepository struct {
	CreateFunc          func(ctx context.Context, req *domain.VerificationRequest) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.VerificationRequest, error)
	UpdateDetailsFunc   func(ctx context.Context, id uuid.UUID, details domain.TenantDetails, photos []domain.Photo) error
	UpdateOTPFunc       func(ctx context.Context, id uuid.UUID, otp domain.OTP) error
	ApplyTransitionFunc func(ctx context.Context, t domain.Transition) error
	ListFunc            func(ctx context.Context, scope domain.RequestScope, filter domain.ListFilter) ([]*domain.VerificationRequest, error)
	ListTerminalFunc    func(ctx context.Context, scope domain.RequestScope, filter domain.ListFilter) ([]*domain.VerificationRequest, error)
	DailyStatsFunc      func(ctx context.Context, scope domain.RequestScope) ([]domain.DayStats, error)
	CountAssignedFunc   func(ctx context.Context, userID uint) (int64, error)

	Transitions []domain.Transition
}

func NewMockVerificationRepository() *MockVerificationRepository {
	return &MockVerificationRepository{}
}

func (m *MockVerificationRepository) Create(ctx context.Context, req *domain.VerificationRequest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return nil
}

func (m *MockVerificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.VerificationRequest, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrRequestNotFound
}

func (m *MockVerificationRepository) UpdateDetails(ctx context.Context, id uuid.UUID, details domain.TenantDetails, photos []domain.Photo) error {
	if m.UpdateDetailsFunc != nil {
		return m.UpdateDetailsFunc(ctx, id, details, photos)
	}
	return nil
}

func (m *MockVerificationRepository) UpdateOTP(ctx context.Context, id uuid.UUID, otp domain.OTP) error {
	if m.UpdateOTPFunc != nil {
		return m.UpdateOTPFunc(ctx, id, otp)
	}
	return nil
}

func (m *MockVerificationRepository) ApplyTransition(ctx context.Context, t domain.Transition) error {
	if m.ApplyTransitionFunc != nil {
		if err := m.ApplyTransitionFunc(ctx, t); err != nil {
			return err
		}
	}
	m.Transitions = append(m.Transitions, t)
	return nil
}

func (m *MockVerificationRepository) List(ctx context.Context, scope domain.RequestScope, filter domain.ListFilter) ([]*domain.VerificationRequest, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, scope, filter)
	}
	return []*domain.VerificationRequest{}, nil
}

func (m *MockVerificationRepository) ListTerminal(ctx context.Context, scope domain.RequestScope, filter domain.ListFilter) ([]*domain.VerificationRequest, error) {
	if m.ListTerminalFunc != nil {
		return m.ListTerminalFunc(ctx, scope, filter)
	}
	return []*domain.VerificationRequest{}, nil
}

func (m *MockVerificationRepository) DailyStats(ctx context.Context, scope domain.RequestScope) ([]domain.DayStats, error) {
	if m.DailyStatsFunc != nil {
		return m.DailyStatsFunc(ctx, scope)
	}
	return []domain.DayStats{}, nil
}

func (m *MockVerificationRepository) CountAssigned(ctx context.Context, userID uint) (int64, error) {
	if m.CountAssignedFunc != nil {
		return m.CountAssignedFunc(ctx, userID)
	}
	return 0, nil
}

var _ domain.VerificationRepository = (*MockVerificationRepository)(nil)
