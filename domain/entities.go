package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the stored role string of a staff user
type Role string

const (
	RoleSuperAdmin Role = "superAdmin"
	RoleAdmin0     Role = "admin0" // regional supervisor
	RoleAdmin1     Role = "admin1" // station lead
	RoleAdmin2     Role = "admin2" // officer
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin0, RoleAdmin1, RoleAdmin2:
		return true
	}
	return false
}

// PolicySubject is the route policy subject for r
func (r Role) PolicySubject() string {
	return "role_" + string(r)
}

// Status is the lifecycle state of a verification request
type Status string

const (
	StatusPending   Status = "pending"
	StatusSubmitted Status = "submitted"
	StatusAssigned  Status = "assigned"
	StatusReturned  Status = "returned"
	StatusVerified  Status = "verified"
	StatusFlagged   Status = "flagged"
)

// Terminal reports whether no further transitions are possible
func (s Status) Terminal() bool {
	return s == StatusVerified || s == StatusFlagged
}

// PhotoCategory groups uploaded photos
type PhotoCategory string

const (
	PhotoTenant     PhotoCategory = "tenant"
	PhotoIDDocument PhotoCategory = "id-document"
	PhotoFamily     PhotoCategory = "family"
)

// Valid reports whether c is a known category
func (c PhotoCategory) Valid() bool {
	return c == PhotoTenant || c == PhotoIDDocument || c == PhotoFamily
}

// User represents a staff member
type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	StationID    *uint
	RegionID     *uint
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Region aggregates stations
type Region struct {
	ID          uint
	Name        string
	Description string
}

// Station is the scope boundary of station leads and officers
type Station struct {
	ID       uint
	Name     string
	RegionID uint
}

// TenantDetails holds the tenant-side fields collected at intake
type TenantDetails struct {
	TenantName      string
	TenantPhones    []string
	FatherName      string
	NationalID      string
	PurposeOfStay   string
	PreviousAddress string
	FamilyMembers   *int
}

// OTP is the one-time code sub-record of a request
type OTP struct {
	Code       string
	ExpiresAt  time.Time
	VerifiedAt *time.Time
}

// Photo references a stored blob
type Photo struct {
	Category    PhotoCategory
	Index       int
	BlobKey     string
	ContentType string
	Filename    string
	Size        int64
}

// PhotoUpload is an incoming photo before it is stored
type PhotoUpload struct {
	Category    PhotoCategory
	Filename    string
	ContentType string
	Data        []byte
}

// HistoryEntry is one immutable audit record of a transition.
// ActorID is nil when the landlord triggered the transition.
type HistoryEntry struct {
	ID      uint
	ActorID *uint
	Action  string
	Status  Status
	Finding Status
	Comment string
	At      time.Time
}

// VerificationRequest is a tenant background-check request
type VerificationRequest struct {
	ID            uuid.UUID
	LandlordName  string
	LandlordPhone string
	Address       string
	TenantDetails
	StationID  uint
	RegionID   uint
	Status     Status
	OTP        OTP
	AssignedTo *uint
	AssignedBy *uint
	Photos     []Photo
	History    []HistoryEntry
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Transition describes a single compare-and-swap status change together
// with the history entry it appends. AssignedTo is always written (nil
// clears it); AssignedBy is only written when non-nil.
type Transition struct {
	RequestID     uuid.UUID
	From          Status
	To            Status
	AssignedTo    *uint
	AssignedBy    *uint
	OTPVerifiedAt *time.Time
	Entry         HistoryEntry
}

// Notification is an in-app notice for one user
type Notification struct {
	ID        uint
	UserID    uint
	Title     string
	Body      string
	Meta      map[string]any
	Read      bool
	CreatedAt time.Time
}

// ListFilter narrows list and log queries
type ListFilter struct {
	SearchText string
	From       *time.Time
	To         *time.Time
}

// DayStats counts requests created on one calendar day by status
type DayStats struct {
	Day       string `json:"day"`
	Submitted int    `json:"submitted"`
	Assigned  int    `json:"assigned"`
	Returned  int    `json:"returned"`
	Verified  int    `json:"verified"`
	Flagged   int    `json:"flagged"`
}

// UserFilter narrows user listings
type UserFilter struct {
	Role      Role
	StationID *uint
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User      *User
	Token     string
	SessionID string
	ExpiresIn int64
}

// Session represents a user session
type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}
