package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
)

// DefaultDirectory is the region to station layout installed by Seed
var DefaultDirectory = []struct {
	Region   string
	Stations []string
}{
	{"Northern Region", []string{"Central Police Station", "North Police Station"}},
	{"Southern Region", []string{"South Police Station"}},
	{"Eastern Region", []string{"East Police Station"}},
	{"Western Region", []string{"West Police Station"}},
}

// AdminSeed describes the first superAdmin. An empty Email skips it.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// Seed installs the default directory and, optionally, the first
// superAdmin. Existing rows are left alone so it can run repeatedly.
func Seed(ctx context.Context, directory domain.DirectoryRepository, authSvc domain.AuthService, admin AdminSeed, logger *slog.Logger) error {
	for _, entry := range DefaultDirectory {
		region, err := directory.FindRegionByName(ctx, entry.Region)
		if errors.Is(err, domain.ErrInvalidRegion) {
			region = &domain.Region{Name: entry.Region}
			if err := directory.CreateRegion(ctx, region); err != nil {
				return fmt.Errorf("create region %s: %w", entry.Region, err)
			}
			logger.Info("region created", "name", region.Name, "id", region.ID)
		} else if err != nil {
			return fmt.Errorf("find region %s: %w", entry.Region, err)
		}

		for _, name := range entry.Stations {
			_, err := directory.FindStationByName(ctx, name)
			if err == nil {
				continue
			}
			if !errors.Is(err, domain.ErrInvalidStation) {
				return fmt.Errorf("find station %s: %w", name, err)
			}
			station := &domain.Station{Name: name, RegionID: region.ID}
			if err := directory.CreateStation(ctx, station); err != nil {
				return fmt.Errorf("create station %s: %w", name, err)
			}
			logger.Info("station created", "name", name, "id", station.ID, "region_id", region.ID)
		}
	}

	if admin.Email == "" {
		return nil
	}
	_, err := authSvc.Register(ctx, nil, domain.NewUser{
		Name:     admin.Name,
		Email:    admin.Email,
		Password: admin.Password,
		Role:     domain.RoleSuperAdmin,
	})
	switch {
	case errors.Is(err, domain.ErrSuperAdminExists):
		logger.Info("super admin already present")
	case err != nil:
		return fmt.Errorf("create super admin: %w", err)
	default:
		logger.Info("super admin created", "email", admin.Email)
	}
	return nil
}
