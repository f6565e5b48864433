package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/clock"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// OTPServiceImpl implements domain.OTPService. Codes live on the request
// record; Redis only holds the attempt counter and the resend throttle.
type OTPServiceImpl struct {
	sms         domain.SMSSender
	redisClient *redis.Client
	clock       clock.Clock
	audit       domain.AuditLogger
	config      OTPConfig
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// NewOTPService creates a new Redis-backed OTP gate
func NewOTPService(sms domain.SMSSender, redisClient *redis.Client, clk clock.Clock, audit domain.AuditLogger, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		sms:         sms,
		redisClient: redisClient,
		clock:       clk,
		audit:       audit,
		config:      config,
	}
}

func attemptsKey(id uuid.UUID) string { return "otp:att:" + id.String() }
func resendKey(id uuid.UUID) string   { return "otp:res:" + id.String() }

// Issue generates a fresh code, resets the attempt counter and sends the
// code by SMS. Delivery failures are audited but do not fail the call.
func (s *OTPServiceImpl) Issue(ctx context.Context, requestID uuid.UUID, phone string) (*domain.OTP, error) {
	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	if err := s.redisClient.Del(ctx, attemptsKey(requestID)).Err(); err != nil {
		return nil, fmt.Errorf("failed to reset attempts counter: %w", err)
	}
	if err := s.redisClient.Set(ctx, resendKey(requestID), 1, s.config.ResendWindow).Err(); err != nil {
		return nil, fmt.Errorf("failed to set resend throttle: %w", err)
	}

	otp := &domain.OTP{
		Code:      code,
		ExpiresAt: s.clock.Now().UTC().Add(s.config.TTL),
	}

	message := fmt.Sprintf("Your OTP for tenant verification is: %s. Valid for %d minutes.", code, int(s.config.TTL.Minutes()))
	if err := s.sms.SendSMS(phone, message); err != nil {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.SMSFailureEvent, 0).
			WithRequest(requestID.String()).
			WithPhone(phone).
			WithError(err))
	} else {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.OTPIssuedEvent, 0).
			WithRequest(requestID.String()).
			WithPhone(phone))
	}

	return otp, nil
}

// Verify checks code against the OTP stored on req. It does not change
// the request; the caller applies the transition on success.
func (s *OTPServiceImpl) Verify(ctx context.Context, req *domain.VerificationRequest, code string) error {
	if req.Status != domain.StatusPending || req.OTP.VerifiedAt != nil || req.OTP.Code == "" {
		return domain.TransitionError(req.Status)
	}

	key := attemptsKey(req.ID)
	attempts, err := s.redisClient.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to increment attempts: %w", err)
	}
	if attempts == 1 {
		s.redisClient.Expire(ctx, key, s.config.TTL)
	}

	if attempts > int64(s.config.MaxAttempts) {
		s.fail(ctx, req, domain.ErrOTPMaxAttempts)
		return domain.ErrOTPMaxAttempts
	}

	if s.clock.Now().After(req.OTP.ExpiresAt) {
		s.fail(ctx, req, domain.ErrOTPExpired)
		return domain.ErrOTPExpired
	}

	if subtle.ConstantTimeCompare([]byte(req.OTP.Code), []byte(code)) != 1 {
		s.fail(ctx, req, domain.ErrOTPInvalid)
		return domain.ErrOTPInvalid
	}

	s.redisClient.Del(ctx, key)
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.OTPVerifiedEvent, 0).
		WithRequest(req.ID.String()).
		WithPhone(req.LandlordPhone))
	return nil
}

func (s *OTPServiceImpl) fail(ctx context.Context, req *domain.VerificationRequest, err error) {
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.OTPFailureEvent, 0).
		WithRequest(req.ID.String()).
		WithPhone(req.LandlordPhone).
		WithError(err))
}

// CanResend reports whether the resend window for requestID has elapsed,
// and if not, how many seconds remain.
func (s *OTPServiceImpl) CanResend(ctx context.Context, requestID uuid.UUID) (bool, int64, error) {
	ttl, err := s.redisClient.TTL(ctx, resendKey(requestID)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}

	// -2 when the key is missing, -1 without expiry
	if ttl <= 0 {
		return true, 0, nil
	}

	return false, int64(ttl.Seconds()), nil
}

// generateSecureCode generates a cryptographically secure OTP code
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
