package app

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/infrastructure/repositories"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(repositories.Models()...))
	return db
}

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	directory := repositories.NewDirectoryRepository(setupSeedDB(t))
	authSvc := mocks.NewMockAuthService()
	registered := 0
	authSvc.RegisterFunc = func(ctx context.Context, caller domain.Actor, input domain.NewUser) (*domain.AuthResult, error) {
		assert.Nil(t, caller)
		assert.Equal(t, domain.RoleSuperAdmin, input.Role)
		registered++
		if registered > 1 {
			return nil, domain.ErrSuperAdminExists
		}
		return &domain.AuthResult{User: &domain.User{ID: 1, Role: input.Role}}, nil
	}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	admin := AdminSeed{Name: "Root", Email: "root@police.gov", Password: "bootstrap1"}

	require.NoError(t, Seed(ctx, directory, authSvc, admin, logger))
	require.NoError(t, Seed(ctx, directory, authSvc, admin, logger))

	stations, err := directory.ListStations(ctx)
	require.NoError(t, err)
	assert.Len(t, stations, 5)

	northern, err := directory.FindRegionByName(ctx, "Northern Region")
	require.NoError(t, err)
	central, err := directory.FindStationByName(ctx, "Central Police Station")
	require.NoError(t, err)
	north, err := directory.FindStationByName(ctx, "North Police Station")
	require.NoError(t, err)
	assert.Equal(t, northern.ID, central.RegionID)
	assert.Equal(t, northern.ID, north.RegionID)

	west, err := directory.FindStationByName(ctx, "West Police Station")
	require.NoError(t, err)
	assert.NotEqual(t, northern.ID, west.RegionID)
	assert.Equal(t, 2, registered)
}

func TestSeed_SkipsAdminWithoutEmail(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.RegisterFunc = func(ctx context.Context, caller domain.Actor, input domain.NewUser) (*domain.AuthResult, error) {
		t.Fatal("register must not be called")
		return nil, nil
	}
	directory := repositories.NewDirectoryRepository(setupSeedDB(t))

	err := Seed(context.Background(), directory, authSvc, AdminSeed{}, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	require.NoError(t, err)
}
