package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DBRegion represents the database model for Region
type DBRegion struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:128"`
	Description string `gorm:"size:512"`
	CreatedAt   time.Time
}

func (DBRegion) TableName() string { return "regions" }

// DBStation represents the database model for Station
type DBStation struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:128"`
	RegionID  uint   `gorm:"index;not null"`
	CreatedAt time.Time
}

func (DBStation) TableName() string { return "stations" }

// DBVerificationRequest represents the database model for VerificationRequest
type DBVerificationRequest struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	LandlordName    string    `gorm:"size:255;not null"`
	LandlordPhone   string    `gorm:"size:32;not null"`
	Address         string    `gorm:"type:text;not null"`
	TenantName      string    `gorm:"size:255"`
	TenantPhones    datatypes.JSONSlice[string]
	FatherName      string `gorm:"size:255"`
	NationalID      string `gorm:"size:12"`
	PurposeOfStay   string `gorm:"size:500"`
	PreviousAddress string `gorm:"size:500"`
	FamilyMembers   *int
	StationID       uint   `gorm:"index;not null"`
	RegionID        uint   `gorm:"index;not null"`
	Status          string `gorm:"index;size:16;not null"`
	OTPCode         string `gorm:"size:16"`
	OTPExpiresAt    time.Time
	OTPVerifiedAt   *time.Time
	AssignedTo      *uint     `gorm:"index"`
	AssignedBy      *uint     `gorm:"index"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time `gorm:"index"`
}

func (DBVerificationRequest) TableName() string { return "verification_requests" }

// DBHistoryEntry is an append-only row; it is never updated or deleted
type DBHistoryEntry struct {
	ID        uint      `gorm:"primaryKey"`
	RequestID uuid.UUID `gorm:"type:uuid;index;not null"`
	ActorID   *uint
	Action    string `gorm:"size:255;not null"`
	Status    string `gorm:"size:16;not null"`
	Finding   string `gorm:"size:16"`
	Comment   string `gorm:"type:text"`
	CreatedAt time.Time
}

func (DBHistoryEntry) TableName() string { return "verification_history" }

// DBPhoto links a request photo slot to a stored blob
type DBPhoto struct {
	ID          uint      `gorm:"primaryKey"`
	RequestID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_photo_slot;not null"`
	Category    string    `gorm:"size:16;uniqueIndex:idx_photo_slot;not null"`
	Idx         int       `gorm:"uniqueIndex:idx_photo_slot;not null"`
	BlobKey     string    `gorm:"size:64;index;not null"`
	ContentType string    `gorm:"size:128"`
	Filename    string    `gorm:"size:255"`
	Size        int64
}

func (DBPhoto) TableName() string { return "verification_photos" }

// DBBlob stores each distinct payload once, keyed by its digest
type DBBlob struct {
	Key       string `gorm:"column:digest;primaryKey;size:64"`
	Data      []byte
	Size      int64
	CreatedAt time.Time
}

func (DBBlob) TableName() string { return "photo_blobs" }

// DBNotification represents the database model for Notification
type DBNotification struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Title     string `gorm:"size:255;not null"`
	Body      string `gorm:"type:text"`
	Meta      datatypes.JSONMap
	Read      bool      `gorm:"column:is_read;index"`
	CreatedAt time.Time `gorm:"index"`
}

func (DBNotification) TableName() string { return "notifications" }

// Models lists every table owned by the repositories, in migration order
func Models() []interface{} {
	return []interface{}{
		&DBRegion{},
		&DBStation{},
		&DBUser{},
		&DBVerificationRequest{},
		&DBHistoryEntry{},
		&DBBlob{},
		&DBPhoto{},
		&DBNotification{},
	}
}
