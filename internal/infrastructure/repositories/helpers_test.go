package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database with every table migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	// Every connection to :memory: is a separate database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(Models()...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

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

func uintPtr(v uint) *uint { return &v }

// seedDirectory creates two regions with one station each
func seedDirectory(t *testing.T, db *gorm.DB) (north, south *domain.Station) {
	t.Helper()
	ctx := context.Background()
	repo := NewDirectoryRepository(db)

	northRegion := &domain.Region{Name: "Northern Region"}
	southRegion := &domain.Region{Name: "Southern Region"}
	for _, r := range []*domain.Region{northRegion, southRegion} {
		if err := repo.CreateRegion(ctx, r); err != nil {
			t.Fatalf("failed to create region: %v", err)
		}
	}

	north = &domain.Station{Name: "North Police Station", RegionID: northRegion.ID}
	south = &domain.Station{Name: "South Police Station", RegionID: southRegion.ID}
	for _, s := range []*domain.Station{north, south} {
		if err := repo.CreateStation(ctx, s); err != nil {
			t.Fatalf("failed to create station: %v", err)
		}
	}
	return north, south
}
