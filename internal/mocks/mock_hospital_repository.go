package mocks

import (
	"context"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// MockHospitalUserRepository implements domain.HospitalUserRepository for testing
type MockHospitalUserRepository struct {
	CreateFunc     func(ctx context.Context, hu *domain.HospitalUser) error
	FindByUserFunc func(ctx context.Context, userID uint) (*domain.HospitalUser, error)
	UpdateFunc     func(ctx context.Context, hu *domain.HospitalUser) error
}

// NewMockHospitalUserRepository creates a new MockHospitalUserRepository
func NewMockHospitalUserRepository() *MockHospitalUserRepository {
	return &MockHospitalUserRepository{}
}

func (m *MockHospitalUserRepository) Create(ctx context.Context, hu *domain.HospitalUser) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, hu)
	}
	hu.ID = 1
	return nil
}

func (m *MockHospitalUserRepository) FindByUser(ctx context.Context, userID uint) (*domain.HospitalUser, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	return nil, domain.NotFound("unable to find the hospital association")
}

func (m *MockHospitalUserRepository) Update(ctx context.Context, hu *domain.HospitalUser) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, hu)
	}
	return nil
}
