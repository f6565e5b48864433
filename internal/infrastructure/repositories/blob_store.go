package repositories

import (
	"context"
	"encoding/hex"
	"errors"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/zeebo/blake3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlobStoreImpl is a content-addressed blob table. Keys are hex BLAKE3
// digests, so identical payloads are stored once.
type BlobStoreImpl struct {
	db *gorm.DB
}

// NewBlobStore creates a new blob store
func NewBlobStore(db *gorm.DB) domain.BlobStore {
	return &BlobStoreImpl{db: db}
}

// BlobKey returns the content address of data
func BlobKey(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Put implements domain.BlobStore
func (s *BlobStoreImpl) Put(ctx context.Context, data []byte) (string, error) {
	return putBlob(s.db.WithContext(ctx), data)
}

func putBlob(tx *gorm.DB, data []byte) (string, error) {
	key := BlobKey(data)
	row := DBBlob{Key: key, Data: data, Size: int64(len(data))}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return "", err
	}
	return key, nil
}

// Get implements domain.BlobStore
func (s *BlobStoreImpl) Get(ctx context.Context, key string) ([]byte, error) {
	var row DBBlob
	if err := s.db.WithContext(ctx).Where("digest = ?", key).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, err
	}
	return row.Data, nil
}
