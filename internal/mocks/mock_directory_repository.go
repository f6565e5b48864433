package mocks

import (
	"context"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
)

// MockDirectoryRepository implements domain.DirectoryRepository for testing.
// Stations and Regions back the default lookups.
type MockDirectoryRepository struct {
	Stations map[uint]*domain.Station
	Regions  map[uint]*domain.Region

	FindStationFunc   func(ctx context.Context, id uint) (*domain.Station, error)
	ListStationsFunc  func(ctx context.Context) ([]*domain.Station, error)
	CreateStationFunc func(ctx context.Context, station *domain.Station) error
	CreateRegionFunc  func(ctx context.Context, region *domain.Region) error
}

// NewMockDirectoryRepository creates a directory seeded with the given stations
func NewMockDirectoryRepository(stations ...*domain.Station) *MockDirectoryRepository {
	m := &MockDirectoryRepository{
		Stations: map[uint]*domain.Station{},
		Regions:  map[uint]*domain.Region{},
	}
	for _, s := range stations {
		m.Stations[s.ID] = s
		if _, ok := m.Regions[s.RegionID]; !ok {
			m.Regions[s.RegionID] = &domain.Region{ID: s.RegionID}
		}
	}
	return m
}

func (m *MockDirectoryRepository) FindStation(ctx context.Context, id uint) (*domain.Station, error) {
	if m.FindStationFunc != nil {
		return m.FindStationFunc(ctx, id)
	}
	if s, ok := m.Stations[id]; ok {
		return s, nil
	}
	return nil, domain.ErrInvalidStation
}

func (m *MockDirectoryRepository) FindStationByName(ctx context.Context, name string) (*domain.Station, error) {
	for _, s := range m.Stations {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, domain.ErrInvalidStation
}

func (m *MockDirectoryRepository) ListStations(ctx context.Context) ([]*domain.Station, error) {
	if m.ListStationsFunc != nil {
		return m.ListStationsFunc(ctx)
	}
	out := make([]*domain.Station, 0, len(m.Stations))
	for _, s := range m.Stations {
		out = append(out, s)
	}
	return out, nil
}

func (m *MockDirectoryRepository) CreateStation(ctx context.Context, station *domain.Station) error {
	if m.CreateStationFunc != nil {
		return m.CreateStationFunc(ctx, station)
	}
	station.ID = uint(len(m.Stations) + 1)
	m.Stations[station.ID] = station
	return nil
}

func (m *MockDirectoryRepository) FindRegion(ctx context.Context, id uint) (*domain.Region, error) {
	if r, ok := m.Regions[id]; ok {
		return r, nil
	}
	return nil, domain.ErrInvalidRegion
}

func (m *MockDirectoryRepository) FindRegionByName(ctx context.Context, name string) (*domain.Region, error) {
	for _, r := range m.Regions {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, domain.ErrInvalidRegion
}

func (m *MockDirectoryRepository) CreateRegion(ctx context.Context, region *domain.Region) error {
	if m.CreateRegionFunc != nil {
		return m.CreateRegionFunc(ctx, region)
	}
	region.ID = uint(len(m.Regions) + 1)
	m.Regions[region.ID] = region
	return nil
}

var _ domain.DirectoryRepository = (*MockDirectoryRepository)(nil)
