package mocks

import (
	"context"
)

// MockAvatarService implements domain.AvatarService for testing
type MockAvatarService struct {
	StoreFunc func(ctx context.Context, image, mobile string) (string, error)
	URLFunc   func(filename string) string
}

// NewMockAvatarService creates a new MockAvatarService
func NewMockAvatarService() *MockAvatarService {
	return &MockAvatarService{}
}

func (m *MockAvatarService) Store(ctx context.Context, image, mobile string) (string, error) {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, image, mobile)
	}
	if image == "" {
		return "default.png", nil
	}
	return mobile + ".jpg", nil
}

func (m *MockAvatarService) URL(filename string) string {
	if m.URLFunc != nil {
		return m.URLFunc(filename)
	}
	return "http://cdn.local/image/avatar/" + filename
}
