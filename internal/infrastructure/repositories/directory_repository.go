package repositories

import (
	"context"
	"errors"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"gorm.io/gorm"
)

// DirectoryRepositoryImpl implements domain.DirectoryRepository using GORM
type DirectoryRepositoryImpl struct {
	db *gorm.DB
}

// NewDirectoryRepository creates a new station/region repository
func NewDirectoryRepository(db *gorm.DB) domain.DirectoryRepository {
	return &DirectoryRepositoryImpl{db: db}
}

// FindStation implements domain.DirectoryRepository
func (r *DirectoryRepositoryImpl) FindStation(ctx context.Context, id uint) (*domain.Station, error) {
	return r.firstStation(ctx, "id = ?", id)
}

// FindStationByName implements domain.DirectoryRepository
func (r *DirectoryRepositoryImpl) FindStationByName(ctx context.Context, name string) (*domain.Station, error) {
	return r.firstStation(ctx, "name = ?", name)
}

func (r *DirectoryRepositoryImpl) firstStation(ctx context.Context, query string, arg interface{}) (*domain.Station, error) {
	var row DBStation
	if err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidStation
		}
		return nil, err
	}
	return &domain.Station{ID: row.ID, Name: row.Name, RegionID: row.RegionID}, nil
}

// ListStations implements domain.DirectoryRepository
func (r *DirectoryRepositoryImpl) ListStations(ctx context.Context) ([]*domain.Station, error) {
	var rows []DBStation
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	stations := make([]*domain.Station, 0, len(rows))
	for _, row := range rows {
		stations = append(stations, &domain.Station{ID: row.ID, Name: row.Name, RegionID: row.RegionID})
	}
	return stations, nil
}

// CreateStation implements domain.DirectoryRepository
func (r *DirectoryRepositoryImpl) CreateStation(ctx context.Context, station *domain.Station) error {
	if _, err := r.FindRegion(ctx, station.RegionID); err != nil {
		return err
	}
	row := DBStation{Name: station.Name, RegionID: station.RegionID}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	station.ID = row.ID
	return nil
}

// FindRegion implements domain.DirectoryRepository
func (r *DirectoryRepositoryImpl) FindRegion(ctx context.Context, id uint) (*domain.Region, error) {
	return r.firstRegion(ctx, "id = ?", id)
}

// FindRegionByName implements domain.DirectoryRepository
func (r *DirectoryRepositoryImpl) FindRegionByName(ctx context.Context, name string) (*domain.Region, error) {
	return r.firstRegion(ctx, "name = ?", name)
}

func (r *DirectoryRepositoryImpl) firstRegion(ctx context.Context, query string, arg interface{}) (*domain.Region, error) {
	var row DBRegion
	if err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidRegion
		}
		return nil, err
	}
	return &domain.Region{ID: row.ID, Name: row.Name, Description: row.Description}, nil
}

// CreateRegion implements domain.DirectoryRepository
func (r *DirectoryRepositoryImpl) CreateRegion(ctx context.Context, region *domain.Region) error {
	row := DBRegion{Name: region.Name, Description: region.Description}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	region.ID = row.ID
	return nil
}
