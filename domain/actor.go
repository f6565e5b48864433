package domain

import "fmt"

// Actor is the authenticated staff member performing an operation. The set
// of implementations is closed: SuperAdmin, RegionalSupervisor,
// StationLead and Officer.
type Actor interface {
	UserID() uint
	Role() Role
	actor()
}

type SuperAdmin struct {
	ID uint
}

type RegionalSupervisor struct {
	ID       uint
	RegionID uint
}

type StationLead struct {
	ID        uint
	StationID uint
	RegionID  uint
}

type Officer struct {
	ID        uint
	StationID uint
	RegionID  uint
}

func (a SuperAdmin) UserID() uint         { return a.ID }
func (a RegionalSupervisor) UserID() uint { return a.ID }
func (a StationLead) UserID() uint        { return a.ID }
func (a Officer) UserID() uint            { return a.ID }

func (SuperAdmin) Role() Role         { return RoleSuperAdmin }
func (RegionalSupervisor) Role() Role { return RoleAdmin0 }
func (StationLead) Role() Role        { return RoleAdmin1 }
func (Officer) Role() Role            { return RoleAdmin2 }

func (SuperAdmin) actor()         {}
func (RegionalSupervisor) actor() {}
func (StationLead) actor()        {}
func (Officer) actor()            {}

// ActorFromUser builds the actor variant for a stored user. Users whose
// scope references are missing for their role are rejected.
func ActorFromUser(u *User) (Actor, error) {
	switch u.Role {
	case RoleSuperAdmin:
		return SuperAdmin{ID: u.ID}, nil
	case RoleAdmin0:
		if u.RegionID == nil {
			return nil, fmt.Errorf("%w: regional supervisor %d has no region", ErrInvalidScope, u.ID)
		}
		return RegionalSupervisor{ID: u.ID, RegionID: *u.RegionID}, nil
	case RoleAdmin1, RoleAdmin2:
		if u.StationID == nil {
			return nil, fmt.Errorf("%w: user %d has no station", ErrInvalidScope, u.ID)
		}
		var region uint
		if u.RegionID != nil {
			region = *u.RegionID
		}
		if u.Role == RoleAdmin1 {
			return StationLead{ID: u.ID, StationID: *u.StationID, RegionID: region}, nil
		}
		return Officer{ID: u.ID, StationID: *u.StationID, RegionID: region}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, u.Role)
	}
}
