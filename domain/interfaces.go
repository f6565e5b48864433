package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter UserFilter) ([]*User, error)
	FindByStationRole(ctx context.Context, stationID uint, role Role) ([]*User, error)
	FindByRegionRole(ctx context.Context, regionID uint, role Role) ([]*User, error)
	ExistsWithRole(ctx context.Context, role Role) (bool, error)
}

// DirectoryRepository resolves the station/region hierarchy
type DirectoryRepository interface {
	FindStation(ctx context.Context, id uint) (*Station, error)
	FindStationByName(ctx context.Context, name string) (*Station, error)
	ListStations(ctx context.Context) ([]*Station, error)
	CreateStation(ctx context.Context, station *Station) error
	FindRegion(ctx context.Context, id uint) (*Region, error)
	FindRegionByName(ctx context.Context, name string) (*Region, error)
	CreateRegion(ctx context.Context, region *Region) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// RequestScope restricts which verification requests a query may return.
// Zero value means unrestricted.
type RequestScope struct {
	StationID  *uint
	RegionID   *uint
	AssignedTo *uint
	// StationLead limits a station query to active states plus assigned
	// requests delegated by or to this user.
	StationLead *uint
}

// VerificationRepository persists verification requests and their history
type VerificationRepository interface {
	Create(ctx context.Context, req *VerificationRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*VerificationRequest, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, details TenantDetails, photos []Photo) error
	UpdateOTP(ctx context.Context, id uuid.UUID, otp OTP) error
	ApplyTransition(ctx context.Context, t Transition) error
	List(ctx context.Context, scope RequestScope, filter ListFilter) ([]*VerificationRequest, error)
	ListTerminal(ctx context.Context, scope RequestScope, filter ListFilter) ([]*VerificationRequest, error)
	DailyStats(ctx context.Context, scope RequestScope) ([]DayStats, error)
	CountAssigned(ctx context.Context, userID uint) (int64, error)
}

// BlobStore is a content-addressed byte store
type BlobStore interface {
	Put(ctx context.Context, data []byte) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

// NotificationRepository persists in-app notifications
type NotificationRepository interface {
	CreateBatch(ctx context.Context, notifications []*Notification) error
	ListForUser(ctx context.Context, userID uint, limit int) ([]*Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}

// NewUser carries the fields needed to create a staff user
type NewUser struct {
	Name      string
	Email     string
	Password  string
	Role      Role
	StationID *uint
	RegionID  *uint
}

// UserUpdate carries a full replacement of a user's editable fields.
// An empty Password leaves the credential unchanged.
type UserUpdate struct {
	Name      string
	Email     string
	Password  string
	Role      Role
	StationID *uint
	RegionID  *uint
}

// IntakeInput is the landlord's initial submission
type IntakeInput struct {
	LandlordName  string
	LandlordPhone string
	Address       string
	StationID     uint
	TenantDetails
}

// AuthService defines authentication business logic
type AuthService interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, caller Actor, input NewUser) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
	ChangePassword(ctx context.Context, actor Actor, current, next string) error
	AdminChangePassword(ctx context.Context, actor Actor, userID uint, next string) error
}

// UserService defines staff administration
type UserService interface {
	List(ctx context.Context, actor Actor, filter UserFilter) ([]*User, error)
	Create(ctx context.Context, actor Actor, input NewUser) (*User, error)
	Update(ctx context.Context, actor Actor, id uint, input UserUpdate) (*User, error)
	Delete(ctx context.Context, actor Actor, id uint) error
	ListStations(ctx context.Context) ([]*Station, error)
}

// OTPService gates landlord intake behind a phone one-time code
type OTPService interface {
	Issue(ctx context.Context, requestID uuid.UUID, phone string) (*OTP, error)
	Verify(ctx context.Context, req *VerificationRequest, code string) error
	CanResend(ctx context.Context, requestID uuid.UUID) (bool, int64, error)
}

// VerificationService is the lifecycle engine
type VerificationService interface {
	Register(ctx context.Context, input IntakeInput) (*VerificationRequest, error)
	CompleteDetails(ctx context.Context, id uuid.UUID, details TenantDetails, uploads []PhotoUpload) (*VerificationRequest, error)
	VerifyOTP(ctx context.Context, id uuid.UUID, code string) (*VerificationRequest, error)
	ResendOTP(ctx context.Context, id uuid.UUID) (*OTP, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*VerificationRequest, error)
	Delegate(ctx context.Context, actor Actor, id uuid.UUID, assigneeID uint, comment string) (*VerificationRequest, error)
	RecordFinding(ctx context.Context, actor Actor, id uuid.UUID, result Status, comment string) (*VerificationRequest, error)
	List(ctx context.Context, actor Actor, filter ListFilter) ([]*VerificationRequest, error)
	Stats(ctx context.Context, actor Actor) ([]DayStats, error)
	Logs(ctx context.Context, actor Actor, filter ListFilter) ([]*VerificationRequest, error)
	Photo(ctx context.Context, actor Actor, id uuid.UUID, category PhotoCategory, index int) (*Photo, []byte, error)
}

// NotificationService creates and serves in-app notifications
type NotificationService interface {
	Notify(ctx context.Context, recipients []uint, title, body string, requestID uuid.UUID)
	List(ctx context.Context, actor Actor) ([]*Notification, error)
	MarkRead(ctx context.Context, actor Actor, id uint) error
	MarkAllRead(ctx context.Context, actor Actor) (int64, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateToken(user *User, sessionID string) (string, error)
	ValidateToken(token string) (*TokenClaims, error)
	TTL() int64
}

// SMSSender delivers text messages
type SMSSender interface {
	SendSMS(to, message string) error
}

// PolicyService defines route policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      Role   `json:"role"`
	StationID uint   `json:"station_id,omitempty"`
	RegionID  uint   `json:"region_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
