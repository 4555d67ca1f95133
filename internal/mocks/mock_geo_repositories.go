package mocks

import (
	"context"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// MockProvinceRepository implements domain.ProvinceRepository for testing
type MockProvinceRepository struct {
	ListFunc     func(ctx context.Context, search string) ([]domain.Province, error)
	CreateFunc   func(ctx context.Context, province *domain.Province) error
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Province, error)
	UpdateFunc   func(ctx context.Context, province *domain.Province) error
	DeleteFunc   func(ctx context.Context, id uint) error
}

// NewMockProvinceRepository creates a new MockProvinceRepository
func NewMockProvinceRepository() *MockProvinceRepository {
	return &MockProvinceRepository{}
}

func (m *MockProvinceRepository) List(ctx context.Context, search string) ([]domain.Province, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, search)
	}
	return nil, nil
}

func (m *MockProvinceRepository) Create(ctx context.Context, province *domain.Province) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, province)
	}
	province.ID = 1
	return nil
}

func (m *MockProvinceRepository) FindByID(ctx context.Context, id uint) (*domain.Province, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.NotFound("unable to find the province")
}

func (m *MockProvinceRepository) Update(ctx context.Context, province *domain.Province) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, province)
	}
	return nil
}

func (m *MockProvinceRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockDistrictRepository implements domain.DistrictRepository for testing
type MockDistrictRepository struct {
	ListFunc     func(ctx context.Context, search string, provinceID uint) ([]domain.District, error)
	CreateFunc   func(ctx context.Context, district *domain.District) error
	FindByIDFunc func(ctx context.Context, id uint) (*domain.District, error)
	UpdateFunc   func(ctx context.Context, district *domain.District) error
	DeleteFunc   func(ctx context.Context, id uint) error
}

// NewMockDistrictRepository creates a new MockDistrictRepository
func NewMockDistrictRepository() *MockDistrictRepository {
	return &MockDistrictRepository{}
}

func (m *MockDistrictRepository) List(ctx context.Context, search string, provinceID uint) ([]domain.District, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, search, provinceID)
	}
	return nil, nil
}

func (m *MockDistrictRepository) Create(ctx context.Context, district *domain.District) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, district)
	}
	district.ID = 1
	return nil
}

func (m *MockDistrictRepository) FindByID(ctx context.Context, id uint) (*domain.District, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.NotFound("unable to find the district")
}

func (m *MockDistrictRepository) Update(ctx context.Context, district *domain.District) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, district)
	}
	return nil
}

func (m *MockDistrictRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockCityRepository implements domain.CityRepository for testing
type MockCityRepository struct {
	ListFunc     func(ctx context.Context, search string, districtID uint) ([]domain.City, error)
	CreateFunc   func(ctx context.Context, city *domain.City) error
	FindByIDFunc func(ctx context.Context, id uint) (*domain.City, error)
	UpdateFunc   func(ctx context.Context, city *domain.City) error
	DeleteFunc   func(ctx context.Context, id uint) error
}

// NewMockCityRepository creates a new MockCityRepository
func NewMockCityRepository() *MockCityRepository {
	return &MockCityRepository{}
}

func (m *MockCityRepository) List(ctx context.Context, search string, districtID uint) ([]domain.City, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, search, districtID)
	}
	return nil, nil
}

func (m *MockCityRepository) Create(ctx context.Context, city *domain.City) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, city)
	}
	city.ID = 1
	return nil
}

func (m *MockCityRepository) FindByID(ctx context.Context, id uint) (*domain.City, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.NotFound("unable to find the city")
}

func (m *MockCityRepository) Update(ctx context.Context, city *domain.City) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, city)
	}
	return nil
}

func (m *MockCityRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
