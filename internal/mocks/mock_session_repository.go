package mocks

import (
	"context"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// MockSessionRepository implements domain.SessionRepository for testing
type MockSessionRepository struct {
	CreateFunc       func(ctx context.Context, session *domain.SessionToken) error
	FindByTokenFunc  func(ctx context.Context, token string) (*domain.SessionToken, error)
	FindByUserFunc   func(ctx context.Context, userID uint) (*domain.SessionToken, error)
	DeleteByUserFunc func(ctx context.Context, userID uint) error
}

// NewMockSessionRepository creates a new MockSessionRepository
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.SessionToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	session.ID = 1
	return nil
}

func (m *MockSessionRepository) FindByToken(ctx context.Context, token string) (*domain.SessionToken, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	return nil, domain.Unauthenticated("unauthorized")
}

func (m *MockSessionRepository) FindByUser(ctx context.Context, userID uint) (*domain.SessionToken, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	return nil, domain.NotFound("no session token for the user")
}

func (m *MockSessionRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if m.DeleteByUserFunc != nil {
		return m.DeleteByUserFunc(ctx, userID)
	}
	return nil
}
