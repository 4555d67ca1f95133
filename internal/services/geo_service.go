package services

import (
	"context"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// GeoService manages the province/district/city reference hierarchy.
// Listing is open to any principal; mutation requires super admin.
type GeoService struct {
	provinces domain.ProvinceRepository
	districts domain.DistrictRepository
	cities    domain.CityRepository
	authz     domain.AuthzService
}

// NewGeoService creates a new geography service
func NewGeoService(
	provinces domain.ProvinceRepository,
	districts domain.DistrictRepository,
	cities domain.CityRepository,
	authz domain.AuthzService,
) *GeoService {
	return &GeoService{
		provinces: provinces,
		districts: districts,
		cities:    cities,
		authz:     authz,
	}
}

func (s *GeoService) ListProvinces(ctx context.Context, search string) ([]domain.Province, error) {
	provinces, err := s.provinces.List(ctx, search)
	if err != nil {
		return nil, domain.Internal("failed to list provinces", err)
	}
	return provinces, nil
}

func (s *GeoService) GetProvince(ctx context.Context, id uint) (*domain.Province, error) {
	province, err := s.provinces.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr("failed to look up province", err)
	}
	return province, nil
}

func (s *GeoService) CreateProvince(ctx context.Context, principal *domain.Principal, name string) (*domain.Province, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	province := &domain.Province{Name: name}
	if err := s.provinces.Create(ctx, province); err != nil {
		return nil, wrapStoreErr("failed to create province", err)
	}
	return province, nil
}

func (s *GeoService) UpdateProvince(ctx context.Context, principal *domain.Principal, id uint, name string) (*domain.Province, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	province, err := s.provinces.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr("failed to look up province", err)
	}
	province.Name = name
	if err := s.provinces.Update(ctx, province); err != nil {
		return nil, wrapStoreErr("failed to update province", err)
	}
	return province, nil
}

func (s *GeoService) DeleteProvince(ctx context.Context, principal *domain.Principal, id uint) error {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return err
	}
	if _, err := s.provinces.FindByID(ctx, id); err != nil {
		return wrapStoreErr("failed to look up province", err)
	}
	if err := s.provinces.Delete(ctx, id); err != nil {
		return wrapStoreErr("failed to delete province", err)
	}
	return nil
}

func (s *GeoService) ListDistricts(ctx context.Context, search string, provinceID uint) ([]domain.District, error) {
	districts, err := s.districts.List(ctx, search, provinceID)
	if err != nil {
		return nil, domain.Internal("failed to list districts", err)
	}
	return districts, nil
}

func (s *GeoService) GetDistrict(ctx context.Context, id uint) (*domain.District, error) {
	district, err := s.districts.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr("failed to look up district", err)
	}
	return district, nil
}

func (s *GeoService) CreateDistrict(ctx context.Context, principal *domain.Principal, name string, provinceID uint) (*domain.District, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	if _, err := s.provinces.FindByID(ctx, provinceID); err != nil {
		return nil, wrapStoreErr("failed to look up province", err)
	}
	district := &domain.District{Name: name, ProvinceID: provinceID}
	if err := s.districts.Create(ctx, district); err != nil {
		return nil, wrapStoreErr("failed to create district", err)
	}
	return district, nil
}

func (s *GeoService) UpdateDistrict(ctx context.Context, principal *domain.Principal, id uint, name string, provinceID uint) (*domain.District, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	district, err := s.districts.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr("failed to look up district", err)
	}
	if provinceID != 0 && provinceID != district.ProvinceID {
		if _, err := s.provinces.FindByID(ctx, provinceID); err != nil {
			return nil, wrapStoreErr("failed to look up province", err)
		}
		district.ProvinceID = provinceID
	}
	district.Name = name
	if err := s.districts.Update(ctx, district); err != nil {
		return nil, wrapStoreErr("failed to update district", err)
	}
	return district, nil
}

func (s *GeoService) DeleteDistrict(ctx context.Context, principal *domain.Principal, id uint) error {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return err
	}
	if _, err := s.districts.FindByID(ctx, id); err != nil {
		return wrapStoreErr("failed to look up district", err)
	}
	if err := s.districts.Delete(ctx, id); err != nil {
		return wrapStoreErr("failed to delete district", err)
	}
	return nil
}

func (s *GeoService) ListCities(ctx context.Context, search string, districtID uint) ([]domain.City, error) {
	cities, err := s.cities.List(ctx, search, districtID)
	if err != nil {
		return nil, domain.Internal("failed to list cities", err)
	}
	return cities, nil
}

func (s *GeoService) GetCity(ctx context.Context, id uint) (*domain.City, error) {
	city, err := s.cities.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr("failed to look up city", err)
	}
	return city, nil
}

func (s *GeoService) CreateCity(ctx context.Context, principal *domain.Principal, name string, districtID uint) (*domain.City, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	if _, err := s.districts.FindByID(ctx, districtID); err != nil {
		return nil, wrapStoreErr("failed to look up district", err)
	}
	city := &domain.City{Name: name, DistrictID: districtID}
	if err := s.cities.Create(ctx, city); err != nil {
		return nil, wrapStoreErr("failed to create city", err)
	}
	return city, nil
}

func (s *GeoService) UpdateCity(ctx context.Context, principal *domain.Principal, id uint, name string, districtID uint) (*domain.City, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	city, err := s.cities.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr("failed to look up city", err)
	}
	if districtID != 0 && districtID != city.DistrictID {
		if _, err := s.districts.FindByID(ctx, districtID); err != nil {
			return nil, wrapStoreErr("failed to look up district", err)
		}
		city.DistrictID = districtID
	}
	city.Name = name
	if err := s.cities.Update(ctx, city); err != nil {
		return nil, wrapStoreErr("failed to update city", err)
	}
	return city, nil
}

func (s *GeoService) DeleteCity(ctx context.Context, principal *domain.Principal, id uint) error {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return err
	}
	if _, err := s.cities.FindByID(ctx, id); err != nil {
		return wrapStoreErr("failed to look up city", err)
	}
	if err := s.cities.Delete(ctx, id); err != nil {
		return wrapStoreErr("failed to delete city", err)
	}
	return nil
}
