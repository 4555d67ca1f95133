package mocks

import (
	"context"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// MockRoleRepository implements domain.RoleRepository for testing
type MockRoleRepository struct {
	ListFunc        func(ctx context.Context) ([]domain.Role, error)
	CreateFunc      func(ctx context.Context, role *domain.Role) error
	FindByIDFunc    func(ctx context.Context, id uint) (*domain.Role, error)
	FindByNamesFunc func(ctx context.Context, names []string) ([]domain.Role, error)
	UpdateFunc      func(ctx context.Context, role *domain.Role) error
	DeleteFunc      func(ctx context.Context, id uint) error
}

// NewMockRoleRepository creates a new MockRoleRepository
func NewMockRoleRepository() *MockRoleRepository {
	return &MockRoleRepository{}
}

func (m *MockRoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, role)
	}
	role.ID = 1
	return nil
}

func (m *MockRoleRepository) FindByID(ctx context.Context, id uint) (*domain.Role, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.NotFound("unable to find the role")
}

func (m *MockRoleRepository) FindByNames(ctx context.Context, names []string) ([]domain.Role, error) {
	if m.FindByNamesFunc != nil {
		return m.FindByNamesFunc(ctx, names)
	}
	roles := make([]domain.Role, 0, len(names))
	for i, name := range names {
		roles = append(roles, domain.Role{ID: uint(i + 1), Name: name})
	}
	return roles, nil
}

func (m *MockRoleRepository) Update(ctx context.Context, role *domain.Role) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, role)
	}
	return nil
}

func (m *MockRoleRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockPermissionRepository implements domain.PermissionRepository for testing
type MockPermissionRepository struct {
	ListFunc        func(ctx context.Context) ([]domain.Permission, error)
	CreateFunc      func(ctx context.Context, permission *domain.Permission) error
	FindByIDFunc    func(ctx context.Context, id uint) (*domain.Permission, error)
	FindByNamesFunc func(ctx context.Context, names []string) ([]domain.Permission, error)
	UpdateFunc      func(ctx context.Context, permission *domain.Permission) error
	DeleteFunc      func(ctx context.Context, id uint) error
}

// NewMockPermissionRepository creates a new MockPermissionRepository
func NewMockPermissionRepository() *MockPermissionRepository {
	return &MockPermissionRepository{}
}

func (m *MockPermissionRepository) List(ctx context.Context) ([]domain.Permission, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockPermissionRepository) Create(ctx context.Context, permission *domain.Permission) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, permission)
	}
	permission.ID = 1
	return nil
}

func (m *MockPermissionRepository) FindByID(ctx context.Context, id uint) (*domain.Permission, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.NotFound("unable to find the permission")
}

func (m *MockPermissionRepository) FindByNames(ctx context.Context, names []string) ([]domain.Permission, error) {
	if m.FindByNamesFunc != nil {
		return m.FindByNamesFunc(ctx, names)
	}
	permissions := make([]domain.Permission, 0, len(names))
	for i, name := range names {
		permissions = append(permissions, domain.Permission{ID: uint(i + 1), Name: name})
	}
	return permissions, nil
}

func (m *MockPermissionRepository) Update(ctx context.Context, permission *domain.Permission) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, permission)
	}
	return nil
}

func (m *MockPermissionRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
