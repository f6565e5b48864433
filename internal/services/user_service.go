package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
)

// UserServiceImpl implements domain.UserService
type UserServiceImpl struct {
	userRepo    domain.UserRepository
	requests    domain.VerificationRepository
	directory   domain.DirectoryRepository
	passwordSvc domain.PasswordService
	audit       domain.AuditLogger
}

// NewUserService creates a new staff administration service
func NewUserService(userRepo domain.UserRepository, requests domain.VerificationRepository, directory domain.DirectoryRepository, passwordSvc domain.PasswordService, audit domain.AuditLogger) domain.UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		requests:    requests,
		directory:   directory,
		passwordSvc: passwordSvc,
		audit:       audit,
	}
}

// List returns staff users. A station lead only ever sees the officers of
// their own station.
func (s *UserServiceImpl) List(ctx context.Context, actor domain.Actor, filter domain.UserFilter) ([]*domain.User, error) {
	switch a := actor.(type) {
	case domain.SuperAdmin:
		return s.userRepo.List(ctx, filter)
	case domain.StationLead:
		return s.userRepo.List(ctx, domain.UserFilter{Role: domain.RoleAdmin2, StationID: &a.StationID})
	default:
		return nil, domain.ErrForbidden
	}
}

// Create adds a staff user
func (s *UserServiceImpl) Create(ctx context.Context, actor domain.Actor, input domain.NewUser) (*domain.User, error) {
	if _, ok := actor.(domain.SuperAdmin); !ok {
		return nil, domain.ErrForbidden
	}
	user, err := newStaffUser(ctx, s.directory, s.passwordSvc, input)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserCreatedEvent, actor.UserID()).
		WithMetadata("created_user_id", user.ID).
		WithMetadata("role", string(user.Role)))
	return user, nil
}

// Update replaces a user's editable fields. Super admins cannot change
// their own role, and an officer holding assigned requests keeps their
// role and station until those are reported on.
func (s *UserServiceImpl) Update(ctx context.Context, actor domain.Actor, id uint, input domain.UserUpdate) (*domain.User, error) {
	if _, ok := actor.(domain.SuperAdmin); !ok {
		return nil, domain.ErrForbidden
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.UserID() == id && input.Role != user.Role {
		return nil, fmt.Errorf("%w: cannot change your own role", domain.ErrForbidden)
	}

	stationID, regionID, err := resolveScope(ctx, s.directory, input.Role, input.StationID, input.RegionID)
	if err != nil {
		return nil, err
	}
	if input.Role != user.Role || !sameID(stationID, user.StationID) {
		if err := s.checkNoAssignments(ctx, id); err != nil {
			return nil, err
		}
	}
	user.Name = strings.TrimSpace(input.Name)
	user.Email = normalizeEmail(input.Email)
	user.Role = input.Role
	user.StationID = stationID
	user.RegionID = regionID

	if input.Password != "" {
		hash, err := s.passwordSvc.Hash(input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user. Super admins cannot delete themselves, and users
// holding assigned requests cannot be removed.
func (s *UserServiceImpl) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	if _, ok := actor.(domain.SuperAdmin); !ok {
		return domain.ErrForbidden
	}
	if actor.UserID() == id {
		return domain.ErrForbidden
	}
	if err := s.checkNoAssignments(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserDeletedEvent, actor.UserID()).
		WithMetadata("deleted_user_id", id))
	return nil
}

// checkNoAssignments refuses while the user still holds assigned requests;
// no other transition leaves that status.
func (s *UserServiceImpl) checkNoAssignments(ctx context.Context, id uint) error {
	n, err := s.requests.CountAssigned(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count assignments: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %d open", domain.ErrUserHasAssignments, n)
	}
	return nil
}

// ListStations returns every station
func (s *UserServiceImpl) ListStations(ctx context.Context) ([]*domain.Station, error) {
	return s.directory.ListStations(ctx)
}

// newStaffUser validates input and builds an unsaved user with a hashed
// password.
func newStaffUser(ctx context.Context, directory domain.DirectoryRepository, passwordSvc domain.PasswordService, input domain.NewUser) (*domain.User, error) {
	stationID, regionID, err := resolveScope(ctx, directory, input.Role, input.StationID, input.RegionID)
	if err != nil {
		return nil, err
	}

	hash, err := passwordSvc.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		Role:         input.Role,
		StationID:    stationID,
		RegionID:     regionID,
	}, nil
}

// resolveScope checks the station/region references a role needs. Station
// roles take their region from the station.
func resolveScope(ctx context.Context, directory domain.DirectoryRepository, role domain.Role, stationID, regionID *uint) (*uint, *uint, error) {
	switch role {
	case domain.RoleSuperAdmin:
		return nil, nil, nil
	case domain.RoleAdmin0:
		if regionID == nil {
			return nil, nil, fmt.Errorf("%w: regional supervisor needs a region", domain.ErrInvalidScope)
		}
		region, err := directory.FindRegion(ctx, *regionID)
		if err != nil {
			return nil, nil, err
		}
		return nil, &region.ID, nil
	case domain.RoleAdmin1, domain.RoleAdmin2:
		if stationID == nil {
			return nil, nil, fmt.Errorf("%w: %s needs a station", domain.ErrInvalidScope, role)
		}
		station, err := directory.FindStation(ctx, *stationID)
		if err != nil {
			return nil, nil, err
		}
		return &station.ID, &station.RegionID, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}
}

func sameID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
