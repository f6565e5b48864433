package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/clock"
	"github.com/google/uuid"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	directory   domain.DirectoryRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	audit       domain.AuditLogger
	clock       clock.Clock
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	directory domain.DirectoryRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	audit domain.AuditLogger,
	clk clock.Clock,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		directory:   directory,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		audit:       audit,
		clock:       clk,
	}
}

// Register creates a staff user and signs them in. Without a caller only
// the first super admin may be created.
func (s *AuthServiceImpl) Register(ctx context.Context, caller domain.Actor, input domain.NewUser) (*domain.AuthResult, error) {
	if caller == nil {
		if input.Role != domain.RoleSuperAdmin {
			return nil, domain.ErrForbidden
		}
		exists, err := s.userRepo.ExistsWithRole(ctx, domain.RoleSuperAdmin)
		if err != nil {
			return nil, fmt.Errorf("failed to check for super admin: %w", err)
		}
		if exists {
			return nil, domain.ErrSuperAdminExists
		}
	} else if _, ok := caller.(domain.SuperAdmin); !ok {
		return nil, domain.ErrForbidden
	}

	user, err := newStaffUser(ctx, s.directory, s.passwordSvc, input)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	var creator uint
	if caller != nil {
		creator = caller.UserID()
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserCreatedEvent, creator).
		WithMetadata("created_user_id", user.ID).
		WithMetadata("role", string(user.Role)))

	return s.startSession(ctx, user)
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, 0).
			WithMetadata("email", email).
			WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).
			WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.startSession(ctx, user)
	if err != nil {
		return nil, err
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID))
	return result, nil
}

// startSession stores a session and issues a token bound to it. Login and
// registration share it so both tokens live equally long.
func (s *AuthServiceImpl) startSession(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	now := s.clock.Now().UTC()
	ttl := s.tokenSvc.TTL()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(time.Duration(ttl) * time.Second),
		CreatedAt: now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.tokenSvc.GenerateToken(user, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &domain.AuthResult{
		User:      user,
		Token:     token,
		SessionID: session.ID,
		ExpiresIn: ttl,
	}, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// ChangePassword replaces the actor's own password after checking the
// current one.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, actor domain.Actor, current, next string) error {
	user, err := s.userRepo.FindByID(ctx, actor.UserID())
	if err != nil {
		return err
	}
	if !s.passwordSvc.Verify(user.PasswordHash, current) {
		return domain.ErrWrongPassword
	}
	return s.setPassword(ctx, actor.UserID(), user.ID, next)
}

// AdminChangePassword lets a super admin reset any user's password
func (s *AuthServiceImpl) AdminChangePassword(ctx context.Context, actor domain.Actor, userID uint, next string) error {
	if _, ok := actor.(domain.SuperAdmin); !ok {
		return domain.ErrForbidden
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.setPassword(ctx, actor.UserID(), userID, next)
}

func (s *AuthServiceImpl) setPassword(ctx context.Context, actorID, userID uint, password string) error {
	hash, err := s.passwordSvc.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.PasswordChangedEvent, actorID).
		WithMetadata("target_user_id", userID))
	return nil
}
