package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/clock"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/mocks"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type otpFixture struct {
	svc   domain.OTPService
	sms   *mocks.MockSMSSender
	audit *mocks.MockAuditLogger
	clock *clock.FakeClock
	mr    *miniredis.Miniredis
}

func newOTPFixture(t *testing.T) *otpFixture {
	t.Helper()

	client, mr := setupTestRedis(t)
	f := &otpFixture{
		sms:   mocks.NewMockSMSSender(),
		audit: mocks.NewMockAuditLogger(),
		clock: clock.Fake(testNow),
		mr:    mr,
	}
	f.svc = NewOTPService(f.sms, client, f.clock, f.audit, createTestOTPConfig())
	return f
}

func TestOTPServiceImpl_Issue(t *testing.T) {
	t.Run("generates a six digit code and sends it", func(t *testing.T) {
		f := newOTPFixture(t)
		req := newRequest(domain.StatusPending)

		otp, err := f.svc.Issue(createTestContext(t), req.ID, req.LandlordPhone)
		require.NoError(t, err)

		assert.Len(t, otp.Code, 6)
		for _, c := range otp.Code {
			assert.True(t, c >= '0' && c <= '9', "code %q should be numeric", otp.Code)
		}
		assert.Equal(t, testNow.Add(10*time.Minute), otp.ExpiresAt)
		assert.Nil(t, otp.VerifiedAt)

		require.Len(t, f.sms.Sent, 1)
		assert.Equal(t, req.LandlordPhone, f.sms.Sent[0].To)
		assert.Contains(t, f.sms.Sent[0].Message, otp.Code)
		assert.True(t, f.mr.Exists("otp:res:"+req.ID.String()))
		assert.Len(t, f.audit.OfType(domain.OTPIssuedEvent), 1)
	})

	t.Run("sms failure is not fatal", func(t *testing.T) {
		f := newOTPFixture(t)
		f.sms.SendSMSFunc = func(to, message string) error {
			return errors.New("twilio unavailable")
		}
		req := newRequest(domain.StatusPending)

		otp, err := f.svc.Issue(createTestContext(t), req.ID, req.LandlordPhone)
		require.NoError(t, err)
		assert.NotEmpty(t, otp.Code)

		failures := f.audit.OfType(domain.SMSFailureEvent)
		require.Len(t, failures, 1)
		assert.False(t, failures[0].Success)
		assert.Equal(t, "twilio unavailable", failures[0].ErrorMsg)
	})

	t.Run("resets the attempt counter", func(t *testing.T) {
		f := newOTPFixture(t)
		req := newRequest(domain.StatusPending)
		f.mr.Set("otp:att:"+req.ID.String(), "3")

		_, err := f.svc.Issue(createTestContext(t), req.ID, req.LandlordPhone)
		require.NoError(t, err)
		assert.False(t, f.mr.Exists("otp:att:"+req.ID.String()))
	})
}

func TestOTPServiceImpl_Verify(t *testing.T) {
	verifiedAt := testNow

	tests := []struct {
		name          string
		mutate        func(req *domain.VerificationRequest)
		setup         func(f *otpFixture, req *domain.VerificationRequest)
		code          string
		expectedError error
	}{
		{
			name: "correct code",
			code: "482913",
		},
		{
			name:          "wrong code",
			code:          "000000",
			expectedError: domain.ErrOTPInvalid,
		},
		{
			name:          "code of different length",
			code:          "48291",
			expectedError: domain.ErrOTPInvalid,
		},
		{
			name: "expired code",
			setup: func(f *otpFixture, req *domain.VerificationRequest) {
				f.clock.Advance(10*time.Minute + time.Second)
			},
			code:          "482913",
			expectedError: domain.ErrOTPExpired,
		},
		{
			name: "code at exact expiry is still valid",
			setup: func(f *otpFixture, req *domain.VerificationRequest) {
				f.clock.Advance(10 * time.Minute)
			},
			code: "482913",
		},
		{
			name:          "request no longer pending",
			mutate:        func(req *domain.VerificationRequest) { req.Status = domain.StatusSubmitted },
			code:          "482913",
			expectedError: domain.ErrInvalidTransition,
		},
		{
			name: "already verified",
			mutate: func(req *domain.VerificationRequest) {
				req.OTP.VerifiedAt = &verifiedAt
			},
			code:          "482913",
			expectedError: domain.ErrInvalidTransition,
		},
		{
			name:          "cleared code",
			mutate:        func(req *domain.VerificationRequest) { req.OTP.Code = "" },
			code:          "",
			expectedError: domain.ErrInvalidTransition,
		},
		{
			name: "too many attempts",
			setup: func(f *otpFixture, req *domain.VerificationRequest) {
				f.mr.Set("otp:att:"+req.ID.String(), "3")
			},
			code:          "482913",
			expectedError: domain.ErrOTPMaxAttempts,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOTPFixture(t)
			req := newRequest(domain.StatusPending)
			if tt.mutate != nil {
				tt.mutate(req)
			}
			if tt.setup != nil {
				tt.setup(f, req)
			}

			err := f.svc.Verify(createTestContext(t), req, tt.code)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.False(t, f.mr.Exists("otp:att:"+req.ID.String()), "attempt counter should be cleared")
			assert.Len(t, f.audit.OfType(domain.OTPVerifiedEvent), 1)
		})
	}
}

func TestOTPServiceImpl_VerifyLocksAfterMaxAttempts(t *testing.T) {
	f := newOTPFixture(t)
	req := newRequest(domain.StatusPending)
	ctx := createTestContext(t)

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, f.svc.Verify(ctx, req, "111111"), domain.ErrOTPInvalid)
	}

	// the right code no longer helps once the budget is spent
	assert.ErrorIs(t, f.svc.Verify(ctx, req, "482913"), domain.ErrOTPMaxAttempts)
	assert.Len(t, f.audit.OfType(domain.OTPFailureEvent), 4)

	ttl := f.mr.TTL("otp:att:" + req.ID.String())
	assert.True(t, ttl > 0 && ttl <= 10*time.Minute, "attempt counter should expire, got %s", ttl)
}

func TestOTPServiceImpl_CanResend(t *testing.T) {
	f := newOTPFixture(t)
	req := newRequest(domain.StatusPending)
	ctx := context.Background()

	ok, wait, err := f.svc.CanResend(ctx, req.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, wait)

	_, err = f.svc.Issue(ctx, req.ID, req.LandlordPhone)
	require.NoError(t, err)

	ok, wait, err = f.svc.CanResend(ctx, req.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, wait > 0 && wait <= 60, "unexpected wait %d", wait)

	f.mr.FastForward(time.Minute + time.Second)

	ok, _, err = f.svc.CanResend(ctx, req.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOTPServiceImpl_CodesVary(t *testing.T) {
	f := newOTPFixture(t)
	req := newRequest(domain.StatusPending)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		otp, err := f.svc.Issue(context.Background(), req.ID, req.LandlordPhone)
		require.NoError(t, err)
		seen[otp.Code] = true
	}
	assert.Greater(t, len(seen), 1)
}
