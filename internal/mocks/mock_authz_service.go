package mocks

import (
	"context"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// MockAuthzService implements domain.AuthzService for testing
type MockAuthzService struct {
	ResolveFunc        func(ctx context.Context, token string) (*domain.Principal, error)
	HasAnyRoleFunc     func(principal *domain.Principal, roles ...string) bool
	HasPermissionFunc  func(principal *domain.Principal, permission string) (bool, error)
	RequireAnyRoleFunc func(principal *domain.Principal, roles ...string) error
}

// NewMockAuthzService creates a new MockAuthzService
func NewMockAuthzService() *MockAuthzService {
	return &MockAuthzService{}
}

func (m *MockAuthzService) Resolve(ctx context.Context, token string) (*domain.Principal, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, token)
	}
	return nil, domain.Unauthenticated("unauthorized")
}

func (m *MockAuthzService) HasAnyRole(principal *domain.Principal, roles ...string) bool {
	if m.HasAnyRoleFunc != nil {
		return m.HasAnyRoleFunc(principal, roles...)
	}
	for _, role := range roles {
		if principal.HasRole(role) {
			return true
		}
	}
	return false
}

func (m *MockAuthzService) HasPermission(principal *domain.Principal, permission string) (bool, error) {
	if m.HasPermissionFunc != nil {
		return m.HasPermissionFunc(principal, permission)
	}
	return false, nil
}

func (m *MockAuthzService) RequireAnyRole(principal *domain.Principal, roles ...string) error {
	if m.RequireAnyRoleFunc != nil {
		return m.RequireAnyRoleFunc(principal, roles...)
	}
	if !m.HasAnyRole(principal, roles...) {
		return domain.Forbidden("forbidden")
	}
	return nil
}
