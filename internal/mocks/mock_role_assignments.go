package mocks

// MockRoleAssignments implements domain.RoleAssignments for testing
type MockRoleAssignments struct {
	RolesForUserFunc        func(userID uint) ([]string, error)
	UsersForRoleFunc        func(role string) ([]uint, error)
	AssignRolesToUserFunc   func(userID uint, roles []string) error
	SyncRolePermissionsFunc func(role string, permissions []string) error
	SyncPermissionRolesFunc func(permission string, roles []string) error
	HasPermissionFunc       func(userID uint, permission string) (bool, error)
	RemoveRoleFunc          func(role string) error
	RemovePermissionFunc    func(permission string) error
}

// NewMockRoleAssignments creates a new MockRoleAssignments
func NewMockRoleAssignments() *MockRoleAssignments {
	return &MockRoleAssignments{}
}

func (m *MockRoleAssignments) RolesForUser(userID uint) ([]string, error) {
	if m.RolesForUserFunc != nil {
		return m.RolesForUserFunc(userID)
	}
	return nil, nil
}

func (m *MockRoleAssignments) UsersForRole(role string) ([]uint, error) {
	if m.UsersForRoleFunc != nil {
		return m.UsersForRoleFunc(role)
	}
	return nil, nil
}

func (m *MockRoleAssignments) AssignRolesToUser(userID uint, roles []string) error {
	if m.AssignRolesToUserFunc != nil {
		return m.AssignRolesToUserFunc(userID, roles)
	}
	return nil
}

func (m *MockRoleAssignments) SyncRolePermissions(role string, permissions []string) error {
	if m.SyncRolePermissionsFunc != nil {
		return m.SyncRolePermissionsFunc(role, permissions)
	}
	return nil
}

func (m *MockRoleAssignments) SyncPermissionRoles(permission string, roles []string) error {
	if m.SyncPermissionRolesFunc != nil {
		return m.SyncPermissionRolesFunc(permission, roles)
	}
	return nil
}

func (m *MockRoleAssignments) HasPermission(userID uint, permission string) (bool, error) {
	if m.HasPermissionFunc != nil {
		return m.HasPermissionFunc(userID, permission)
	}
	return false, nil
}

func (m *MockRoleAssignments) RemoveRole(role string) error {
	if m.RemoveRoleFunc != nil {
		return m.RemoveRoleFunc(role)
	}
	return nil
}

func (m *MockRoleAssignments) RemovePermission(permission string) error {
	if m.RemovePermissionFunc != nil {
		return m.RemovePermissionFunc(permission)
	}
	return nil
}
