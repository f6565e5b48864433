package auth

import (
	"fmt"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// ModelText is the route policy model. Subjects are "role_" + role, objects
// are gin-style path patterns and actions are method regexes.
const ModelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// Subject returns the Casbin subject for a role
func Subject(role domain.Role) string {
	return role.PolicySubject()
}

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds an enforcer persisted through the gorm adapter
// and seeds the default route policies on an empty table.
func NewCasbinService(db *gorm.DB) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(ModelText)
	if err != nil {
		return nil, err
	}
	E, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, err
	}
	if err := E.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := SeedPolicies(E); err != nil {
		return nil, err
	}
	return &CasbinService{E}, nil
}

// NewMemoryEnforcer returns an enforcer with the default policies and no
// persistence.
func NewMemoryEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(ModelText)
	if err != nil {
		return nil, err
	}
	E, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	if err := SeedPolicies(E); err != nil {
		return nil, err
	}
	return E, nil
}

var allRoles = []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin0, domain.RoleAdmin1, domain.RoleAdmin2}

type route struct {
	path   string
	method string
	roles  []domain.Role
}

var defaultRoutes = []route{
	{"/auth/me", "GET", allRoles},
	{"/auth/logout", "POST", allRoles},
	{"/auth/change-password", "POST", allRoles},
	{"/auth/admin/change-password", "POST", []domain.Role{domain.RoleSuperAdmin}},

	{"/verification", "GET", allRoles},
	{"/verification/:id", "GET", allRoles},
	{"/verification/:id/verify", "POST", allRoles},
	{"/verification/:id/delegate", "POST", []domain.Role{domain.RoleAdmin1}},
	{"/verification/stats", "GET", []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin0}},
	{"/verification/logs", "GET", []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin0}},
	{"/landlord/image/:id/:type/:index", "GET", allRoles},

	{"/notifications", "(GET)|(POST)", allRoles},
	{"/notifications/:id/read", "POST", allRoles},

	{"/users", "GET", []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin1}},
	{"/users", "POST", []domain.Role{domain.RoleSuperAdmin}},
	{"/users/:id", "(PUT)|(DELETE)", []domain.Role{domain.RoleSuperAdmin}},

	{"/admin/policies", "(GET)|(POST)|(DELETE)", []domain.Role{domain.RoleSuperAdmin}},
}

// SeedPolicies installs the default route policies when the enforcer has
// none.
func SeedPolicies(e *casbin.Enforcer) error {
	existing, err := e.GetPolicy()
	if err != nil {
		return fmt.Errorf("failed to read policies: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	var rules [][]string
	for _, r := range defaultRoutes {
		for _, role := range r.roles {
			rules = append(rules, []string{Subject(role), r.path, r.method})
		}
	}
	if _, err := e.AddPolicies(rules); err != nil {
		return fmt.Errorf("failed to seed policies: %w", err)
	}
	return nil
}
