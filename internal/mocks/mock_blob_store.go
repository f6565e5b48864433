package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
)

// MockBlobStore implements domain.BlobStore in memory
type MockBlobStore struct {
	mu    sync.Mutex
	Blobs map[string][]byte

	PutFunc func(ctx context.Context, data []byte) (string, error)
}

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{Blobs: map[string][]byte{}}
}

func (m *MockBlobStore) Put(ctx context.Context, data []byte) (string, error) {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := fmt.Sprintf("blob-%d", len(m.Blobs)+1)
	m.Blobs[key] = data
	return key, nil
}

func (m *MockBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.Blobs[key]
	if !ok {
		return nil, domain.ErrPhotoNotFound
	}
	return data, nil
}

var _ domain.BlobStore = (*MockBlobStore)(nil)
