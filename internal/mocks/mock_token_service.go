package mocks

import (
	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	MintFunc func(user *domain.User) (string, error)
}

// NewMockTokenService creates a new MockTokenService
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) Mint(user *domain.User) (string, error) {
	if m.MintFunc != nil {
		return m.MintFunc(user)
	}
	return "mock_access_token", nil
}
