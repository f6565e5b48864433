package mocks

import (
	"context"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/google/uuid"
)

// MockVerificationService implements domain.VerificationService for handler tests
type MockVerificationService struct {
	RegisterFunc        func(ctx context.Context, input domain.IntakeInput) (*domain.VerificationRequest, error)
	CompleteDetailsFunc func(ctx context.Context, id uuid.UUID, details domain.TenantDetails, uploads []domain.PhotoUpload) (*domain.VerificationRequest, error)
	VerifyOTPFunc       func(ctx context.Context, id uuid.UUID, code string) (*domain.VerificationRequest, error)
	ResendOTPFunc       func(ctx context.Context, id uuid.UUID) (*domain.OTP, error)
	GetFunc             func(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.VerificationRequest, error)
	DelegateFunc        func(ctx context.Context, actor domain.Actor, id uuid.UUID, assigneeID uint, comment string) (*domain.VerificationRequest, error)
	RecordFindingFunc   func(ctx context.Context, actor domain.Actor, id uuid.UUID, result domain.Status, comment string) (*domain.VerificationRequest, error)
	ListFunc            func(ctx context.Context, actor domain.Actor, filter domain.ListFilter) ([]*domain.VerificationRequest, error)
	StatsFunc           func(ctx context.Context, actor domain.Actor) ([]domain.DayStats, error)
	LogsFunc            func(ctx context.Context, actor domain.Actor, filter domain.ListFilter) ([]*domain.VerificationRequest, error)
	PhotoFunc           func(ctx context.Context, actor domain.Actor, id uuid.UUID, category domain.PhotoCategory, index int) (*domain.Photo, []byte, error)
}

func NewMockVerificationService() *MockVerificationService {
	return &MockVerificationService{}
}

func (m *MockVerificationService) Register(ctx context.Context, input domain.IntakeInput) (*domain.VerificationRequest, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	return &domain.VerificationRequest{ID: uuid.New(), Status: domain.StatusPending}, nil
}

func (m *MockVerificationService) CompleteDetails(ctx context.Context, id uuid.UUID, details domain.TenantDetails, uploads []domain.PhotoUpload) (*domain.VerificationRequest, error) {
	if m.CompleteDetailsFunc != nil {
		return m.CompleteDetailsFunc(ctx, id, details, uploads)
	}
	return &domain.VerificationRequest{ID: id, Status: domain.StatusPending, TenantDetails: details}, nil
}

func (m *MockVerificationService) VerifyOTP(ctx context.Context, id uuid.UUID, code string) (*domain.VerificationRequest, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, id, code)
	}
	return &domain.VerificationRequest{ID: id, Status: domain.StatusSubmitted}, nil
}

func (m *MockVerificationService) ResendOTP(ctx context.Context, id uuid.UUID) (*domain.OTP, error) {
	if m.ResendOTPFunc != nil {
		return m.ResendOTPFunc(ctx, id)
	}
	return &domain.OTP{}, nil
}

func (m *MockVerificationService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.VerificationRequest, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, actor, id)
	}
	return nil, domain.ErrRequestNotFound
}

func (m *MockVerificationService) Delegate(ctx context.Context, actor domain.Actor, id uuid.UUID, assigneeID uint, comment string) (*domain.VerificationRequest, error) {
	if m.DelegateFunc != nil {
		return m.DelegateFunc(ctx, actor, id, assigneeID, comment)
	}
	return &domain.VerificationRequest{ID: id, Status: domain.StatusAssigned, AssignedTo: &assigneeID}, nil
}

func (m *MockVerificationService) RecordFinding(ctx context.Context, actor domain.Actor, id uuid.UUID, result domain.Status, comment string) (*domain.VerificationRequest, error) {
	if m.RecordFindingFunc != nil {
		return m.RecordFindingFunc(ctx, actor, id, result, comment)
	}
	return &domain.VerificationRequest{ID: id, Status: result}, nil
}

func (m *MockVerificationService) List(ctx context.Context, actor domain.Actor, filter domain.ListFilter) ([]*domain.VerificationRequest, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, actor, filter)
	}
	return []*domain.VerificationRequest{}, nil
}

func (m *MockVerificationService) Stats(ctx context.Context, actor domain.Actor) ([]domain.DayStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, actor)
	}
	return []domain.DayStats{}, nil
}

func (m *MockVerificationService) Logs(ctx context.Context, actor domain.Actor, filter domain.ListFilter) ([]*domain.VerificationRequest, error) {
	if m.LogsFunc != nil {
		return m.LogsFunc(ctx, actor, filter)
	}
	return []*domain.VerificationRequest{}, nil
}

func (m *MockVerificationService) Photo(ctx context.Context, actor domain.Actor, id uuid.UUID, category domain.PhotoCategory, index int) (*domain.Photo, []byte, error) {
	if m.PhotoFunc != nil {
		return m.PhotoFunc(ctx, actor, id, category, index)
	}
	return nil, nil, domain.ErrPhotoNotFound
}

var _ domain.VerificationService = (*MockVerificationService)(nil)
