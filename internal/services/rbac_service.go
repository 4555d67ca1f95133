package services

import (
	"context"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// RBACService manages role and permission entities plus the policy-store
// assignments between users, roles and permissions. Super admin only.
type RBACService struct {
	roles       domain.RoleRepository
	permissions domain.PermissionRepository
	userRepo    domain.UserRepository
	assignments domain.RoleAssignments
	authz       domain.AuthzService
}

// NewRBACService creates a new RBAC service
func NewRBACService(
	roles domain.RoleRepository,
	permissions domain.PermissionRepository,
	userRepo domain.UserRepository,
	assignments domain.RoleAssignments,
	authz domain.AuthzService,
) *RBACService {
	return &RBACService{
		roles:       roles,
		permissions: permissions,
		userRepo:    userRepo,
		assignments: assignments,
		authz:       authz,
	}
}

func (s *RBACService) ListRoles(ctx context.Context, principal *domain.Principal) ([]domain.Role, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, domain.Internal("failed to list roles", err)
	}
	return roles, nil
}

func (s *RBACService) CreateRole(ctx context.Context, principal *domain.Principal, name string) (*domain.Role, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	role := &domain.Role{Name: name}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, wrapStoreErr("failed to create role", err)
	}
	return role, nil
}

func (s *RBACService) GetRole(ctx context.Context, principal *domain.Principal, id uint) (*domain.Role, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr("failed to look up role", err)
	}
	return role, nil
}

func (s *RBACService) UpdateRole(ctx context.Context, principal *domain.Principal, id uint, name string) (*domain.Role, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr("failed to look up role", err)
	}
	if role.Name == domain.RoleSuperAdmin {
		return nil, domain.Forbidden("the super admin role can not be modified")
	}
	role.Name = name
	if err := s.roles.Update(ctx, role); err != nil {
		return nil, wrapStoreErr("failed to update role", err)
	}
	return role, nil
}

// DeleteRole removes the role entity and every policy and grouping that
// references it.
func (s *RBACService) DeleteRole(ctx context.Context, principal *domain.Principal, id uint) error {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return err
	}
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return wrapStoreErr("failed to look up role", err)
	}
	if role.Name == domain.RoleSuperAdmin {
		return domain.Forbidden("the super admin role can not be deleted")
	}
	if err := s.roles.Delete(ctx, role.ID); err != nil {
		return wrapStoreErr("failed to delete role", err)
	}
	if err := s.assignments.RemoveRole(role.Name); err != nil {
		return domain.Internal("failed to remove role policies", err)
	}
	return nil
}

func (s *RBACService) ListPermissions(ctx context.Context, principal *domain.Principal) ([]domain.Permission, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	permissions, err := s.permissions.List(ctx)
	if err != nil {
		return nil, domain.Internal("failed to list permissions", err)
	}
	return permissions, nil
}

func (s *RBACService) CreatePermission(ctx context.Context, principal *domain.Principal, name string) (*domain.Permission, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	permission := &domain.Permission{Name: name}
	if err := s.permissions.Create(ctx, permission); err != nil {
		return nil, wrapStoreErr("failed to create permission", err)
	}
	return permission, nil
}

func (s *RBACService) GetPermission(ctx context.Context, principal *domain.Principal, id uint) (*domain.Permission, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	permission, err := s.permissions.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr("failed to look up permission", err)
	}
	return permission, nil
}

func (s *RBACService) UpdatePermission(ctx context.Context, principal *domain.Principal, id uint, name string) (*domain.Permission, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	permission, err := s.permissions.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr("failed to look up permission", err)
	}
	permission.Name = name
	if err := s.permissions.Update(ctx, permission); err != nil {
		return nil, wrapStoreErr("failed to update permission", err)
	}
	return permission, nil
}

func (s *RBACService) DeletePermission(ctx context.Context, principal *domain.Principal, id uint) error {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return err
	}
	permission, err := s.permissions.FindByID(ctx, id)
	if err != nil {
		return wrapStoreErr("failed to look up permission", err)
	}
	if err := s.permissions.Delete(ctx, permission.ID); err != nil {
		return wrapStoreErr("failed to delete permission", err)
	}
	if err := s.assignments.RemovePermission(permission.Name); err != nil {
		return domain.Internal("failed to remove permission policies", err)
	}
	return nil
}

// AssignRolesToUser replaces the user's role memberships with the given
// role names. Every name must exist as a role entity.
func (s *RBACService) AssignRolesToUser(ctx context.Context, principal *domain.Principal, userID uint, roleNames []string) error {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return err
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return domain.NotFound("unable to find the user")
		}
		return domain.Internal("failed to look up user", err)
	}
	if err := s.requireRoles(ctx, roleNames); err != nil {
		return err
	}
	if err := s.assignments.AssignRolesToUser(userID, roleNames); err != nil {
		return domain.Internal("failed to assign roles", err)
	}
	return nil
}

// SyncRolePermissions replaces the permission set granted by a role.
func (s *RBACService) SyncRolePermissions(ctx context.Context, principal *domain.Principal, roleID uint, permissionNames []string) error {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return err
	}
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return wrapStoreErr("failed to look up role", err)
	}
	if err := s.requirePermissions(ctx, permissionNames); err != nil {
		return err
	}
	if err := s.assignments.SyncRolePermissions(role.Name, permissionNames); err != nil {
		return domain.Internal("failed to sync role permissions", err)
	}
	return nil
}

// SyncPermissionRoles replaces the set of roles a permission is granted to.
func (s *RBACService) SyncPermissionRoles(ctx context.Context, principal *domain.Principal, permissionID uint, roleNames []string) error {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return err
	}
	permission, err := s.permissions.FindByID(ctx, permissionID)
	if err != nil {
		return wrapStoreErr("failed to look up permission", err)
	}
	if err := s.requireRoles(ctx, roleNames); err != nil {
		return err
	}
	if err := s.assignments.SyncPermissionRoles(permission.Name, roleNames); err != nil {
		return domain.Internal("failed to sync permission roles", err)
	}
	return nil
}

func (s *RBACService) requireRoles(ctx context.Context, names []string) error {
	found, err := s.roles.FindByNames(ctx, names)
	if err != nil {
		return domain.Internal("failed to look up roles", err)
	}
	if len(found) != len(uniqueNames(names)) {
		return domain.NotFound("unable to find one or more of the roles")
	}
	return nil
}

func (s *RBACService) requirePermissions(ctx context.Context, names []string) error {
	found, err := s.permissions.FindByNames(ctx, names)
	if err != nil {
		return domain.Internal("failed to look up permissions", err)
	}
	if len(found) != len(uniqueNames(names)) {
		return domain.NotFound("unable to find one or more of the permissions")
	}
	return nil
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := names[:0:0]
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
