package mocks

import (
	"context"
	"time"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/google/uuid"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc     func(ctx context.Context, requestID uuid.UUID, phone string) (*domain.OTP, error)
	VerifyFunc    func(ctx context.Context, req *domain.VerificationRequest, code string) error
	CanResendFunc func(ctx context.Context, requestID uuid.UUID) (bool, int64, error)
}

func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Issue(ctx context.Context, requestID uuid.UUID, phone string) (*domain.OTP, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, requestID, phone)
	}
	// Default behavior: fixed code valid for 10 minutes
	return &domain.OTP{Code: "123456", ExpiresAt: time.Now().Add(10 * time.Minute)}, nil
}

func (m *MockOTPService) Verify(ctx context.Context, req *domain.VerificationRequest, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, req, code)
	}
	if code != req.OTP.Code {
		return domain.ErrOTPInvalid
	}
	return nil
}

func (m *MockOTPService) CanResend(ctx context.Context, requestID uuid.UUID) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, requestID)
	}
	return true, 0, nil
}

var _ domain.OTPService = (*MockOTPService)(nil)
