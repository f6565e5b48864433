package services

import (
	"context"
	"testing"
	"time"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/clock"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/mocks"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func uintPtr(v uint) *uint { return &v }

// setupTestRedis creates an in-memory Redis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return client, mr
}

// createTestContext creates a context for testing with timeout
func createTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func createTestOTPConfig() OTPConfig {
	return OTPConfig{
		Length:       6,
		TTL:          10 * time.Minute,
		MaxAttempts:  3,
		ResendWindow: time.Minute,
	}
}

// Station 1 and 2 belong to region 10, station 3 to region 20.
func testDirectory() *mocks.MockDirectoryRepository {
	return mocks.NewMockDirectoryRepository(
		&domain.Station{ID: 1, Name: "Central Police Station", RegionID: 10},
		&domain.Station{ID: 2, Name: "North Police Station", RegionID: 10},
		&domain.Station{ID: 3, Name: "East Police Station", RegionID: 20},
	)
}

// staff used across engine tests
var (
	leadUser       = &domain.User{ID: 11, Name: "Inspector Rao", Role: domain.RoleAdmin1, StationID: uintPtr(1), RegionID: uintPtr(10)}
	otherLeadUser  = &domain.User{ID: 12, Name: "Inspector Gill", Role: domain.RoleAdmin1, StationID: uintPtr(2), RegionID: uintPtr(10)}
	officerUser    = &domain.User{ID: 21, Name: "Constable Verma", Role: domain.RoleAdmin2, StationID: uintPtr(1), RegionID: uintPtr(10)}
	otherOfficer   = &domain.User{ID: 22, Name: "Constable Iyer", Role: domain.RoleAdmin2, StationID: uintPtr(2), RegionID: uintPtr(10)}
	supervisorUser = &domain.User{ID: 31, Name: "SP Mehta", Role: domain.RoleAdmin0, RegionID: uintPtr(10)}
	superAdminUser = &domain.User{ID: 1, Name: "Admin", Role: domain.RoleSuperAdmin}

	lead         = domain.StationLead{ID: 11, StationID: 1, RegionID: 10}
	otherLead    = domain.StationLead{ID: 12, StationID: 2, RegionID: 10}
	officer      = domain.Officer{ID: 21, StationID: 1, RegionID: 10}
	officer2     = domain.Officer{ID: 22, StationID: 2, RegionID: 10}
	supervisor   = domain.RegionalSupervisor{ID: 31, RegionID: 10}
	farSuper     = domain.RegionalSupervisor{ID: 32, RegionID: 20}
	superAdminAc = domain.SuperAdmin{ID: 1}
)

// staffRepo returns a user repository backed by the fixed staff above
func staffRepo() *mocks.MockUserRepository {
	users := []*domain.User{leadUser, otherLeadUser, officerUser, otherOfficer, supervisorUser, superAdminUser}
	repo := mocks.NewMockUserRepository()
	repo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		for _, u := range users {
			if u.ID == id {
				return u, nil
			}
		}
		return nil, domain.ErrUserNotFound
	}
	repo.FindByStationRoleFunc = func(ctx context.Context, stationID uint, role domain.Role) ([]*domain.User, error) {
		var out []*domain.User
		for _, u := range users {
			if u.Role == role && u.StationID != nil && *u.StationID == stationID {
				out = append(out, u)
			}
		}
		return out, nil
	}
	repo.FindByRegionRoleFunc = func(ctx context.Context, regionID uint, role domain.Role) ([]*domain.User, error) {
		var out []*domain.User
		for _, u := range users {
			if u.Role == role && u.RegionID != nil && *u.RegionID == regionID {
				out = append(out, u)
			}
		}
		return out, nil
	}
	return repo
}

// newRequest builds a request at station 1 in the given status
func newRequest(status domain.Status) *domain.VerificationRequest {
	return &domain.VerificationRequest{
		ID:            uuid.New(),
		LandlordName:  "Ramesh Sharma",
		LandlordPhone: "+919812345678",
		Address:       "12 MG Road",
		TenantDetails: domain.TenantDetails{
			TenantName:   "Anil Kumar",
			TenantPhones: []string{"+919800000002"},
		},
		StationID:     1,
		RegionID:      10,
		Status:        status,
		OTP:           domain.OTP{Code: "482913", ExpiresAt: testNow.Add(10 * time.Minute)},
		CreatedAt:     testNow,
		UpdatedAt:     testNow,
	}
}

type verificationFixture struct {
	svc      domain.VerificationService
	repo     *mocks.MockVerificationRepository
	users    *mocks.MockUserRepository
	blobs    *mocks.MockBlobStore
	otp      *mocks.MockOTPService
	notifier *mocks.MockNotificationService
	audit    *mocks.MockAuditLogger
	clock    *clock.FakeClock
}

// newVerificationFixture wires the engine to mocks. When req is non-nil
// FindByID serves a copy-free pointer to it.
func newVerificationFixture(t *testing.T, req *domain.VerificationRequest) *verificationFixture {
	t.Helper()

	f := &verificationFixture{
		repo:     mocks.NewMockVerificationRepository(),
		users:    staffRepo(),
		blobs:    mocks.NewMockBlobStore(),
		otp:      mocks.NewMockOTPService(),
		notifier: mocks.NewMockNotificationService(),
		audit:    mocks.NewMockAuditLogger(),
		clock:    clock.Fake(testNow),
	}
	if req != nil {
		f.repo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.VerificationRequest, error) {
			if id == req.ID {
				return req, nil
			}
			return nil, domain.ErrRequestNotFound
		}
	}
	f.svc = NewVerificationService(VerificationDeps{
		Requests:  f.repo,
		Users:     f.users,
		Directory: testDirectory(),
		Blobs:     f.blobs,
		OTP:       f.otp,
		Notifier:  f.notifier,
		Audit:     f.audit,
		Clock:     f.clock,
		Limits:    UploadLimits{MaxFileBytes: 2 << 20, MaxTotalBytes: 6 << 20},
	})
	return f
}
