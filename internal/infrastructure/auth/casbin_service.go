package auth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/casbin/casbin/v2"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

type CasbinService struct{ E *casbin.Enforcer }

func NewCasbinService(db *gorm.DB, modelPath string) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	E, err := casbin.NewEnforcer(modelPath, adp)
	if err != nil {
		return nil, err
	}
	if err := E.LoadPolicy(); err != nil {
		return nil, err
	}
	return &CasbinService{E}, nil
}

// userSubject formats a user id as a Casbin subject.
func userSubject(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

// CasbinRoleAssignments implements domain.RoleAssignments on a Casbin
// enforcer. Users are grouped into roles ("g" rules) and roles hold
// permissions ("p" rules).
type CasbinRoleAssignments struct {
	enforcer *casbin.Enforcer
}

// NewRoleAssignments creates the policy store behind the authorization guard.
func NewRoleAssignments(enforcer *casbin.Enforcer) domain.RoleAssignments {
	return &CasbinRoleAssignments{enforcer: enforcer}
}

// RolesForUser implements domain.RoleAssignments
func (c *CasbinRoleAssignments) RolesForUser(userID uint) ([]string, error) {
	return c.enforcer.GetRolesForUser(userSubject(userID))
}

// UsersForRole implements domain.RoleAssignments
func (c *CasbinRoleAssignments) UsersForRole(role string) ([]uint, error) {
	subjects, err := c.enforcer.GetUsersForRole(role)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(subjects))
	for _, subject := range subjects {
		raw, ok := strings.CutPrefix(subject, "user:")
		if !ok {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// AssignRolesToUser implements domain.RoleAssignments with sync semantics:
// existing role memberships of the user are replaced.
func (c *CasbinRoleAssignments) AssignRolesToUser(userID uint, roles []string) error {
	subject := userSubject(userID)
	if _, err := c.enforcer.DeleteRolesForUser(subject); err != nil {
		return err
	}
	for _, role := range roles {
		if _, err := c.enforcer.AddGroupingPolicy(subject, role); err != nil {
			return err
		}
	}
	return nil
}

// SyncRolePermissions implements domain.RoleAssignments
func (c *CasbinRoleAssignments) SyncRolePermissions(role string, permissions []string) error {
	if _, err := c.enforcer.RemoveFilteredPolicy(0, role); err != nil {
		return err
	}
	for _, permission := range permissions {
		if _, err := c.enforcer.AddPolicy(role, permission); err != nil {
			return err
		}
	}
	return nil
}

// SyncPermissionRoles implements domain.RoleAssignments
func (c *CasbinRoleAssignments) SyncPermissionRoles(permission string, roles []string) error {
	if _, err := c.enforcer.RemoveFilteredPolicy(1, permission); err != nil {
		return err
	}
	for _, role := range roles {
		if _, err := c.enforcer.AddPolicy(role, permission); err != nil {
			return err
		}
	}
	return nil
}

// HasPermission implements domain.RoleAssignments
func (c *CasbinRoleAssignments) HasPermission(userID uint, permission string) (bool, error) {
	return c.enforcer.Enforce(userSubject(userID), permission)
}

// RemoveRole implements domain.RoleAssignments. Both the role's permission
// rules and its memberships are removed.
func (c *CasbinRoleAssignments) RemoveRole(role string) error {
	_, err := c.enforcer.DeleteRole(role)
	return err
}

// RemovePermission implements domain.RoleAssignments
func (c *CasbinRoleAssignments) RemovePermission(permission string) error {
	_, err := c.enforcer.RemoveFilteredPolicy(1, permission)
	return err
}
