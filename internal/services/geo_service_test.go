package services

import (
	"context"
	"testing"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
	"github.com/shashankj99/med-o-sys-api-auth/internal/mocks"
)

type geoServiceDeps struct {
	provinces *mocks.MockProvinceRepository
	districts *mocks.MockDistrictRepository
	cities    *mocks.MockCityRepository
	authz     *mocks.MockAuthzService
}

func newGeoServiceDeps() *geoServiceDeps {
	return &geoServiceDeps{
		provinces: mocks.NewMockProvinceRepository(),
		districts: mocks.NewMockDistrictRepository(),
		cities:    mocks.NewMockCityRepository(),
		authz:     mocks.NewMockAuthzService(),
	}
}

func (d *geoServiceDeps) build() *GeoService {
	return NewGeoService(d.provinces, d.districts, d.cities, d.authz)
}

func TestGeoService_ListIsOpen(t *testing.T) {
	deps := newGeoServiceDeps()
	deps.provinces.ListFunc = func(ctx context.Context, search string) ([]domain.Province, error) {
		return []domain.Province{{ID: 1, Name: "Bagmati"}}, nil
	}
	svc := deps.build()

	// Listing never consults the guard, so no principal is needed.
	provinces, err := svc.ListProvinces(context.Background(), "")
	if err != nil {
		t.Fatalf("ListProvinces: %v", err)
	}
	if len(provinces) != 1 || provinces[0].Name != "Bagmati" {
		t.Errorf("unexpected provinces %v", provinces)
	}
}

func TestGeoService_MutationsRequireSuperAdmin(t *testing.T) {
	svc := newGeoServiceDeps().build()
	ctx := context.Background()

	if _, err := svc.CreateProvince(ctx, plainPrincipal(), "Bagmati"); domain.KindOf(err) != domain.KindForbidden {
		t.Errorf("expected forbidden province create, got %v", err)
	}
	if _, err := svc.CreateDistrict(ctx, plainPrincipal(), "Kathmandu", 1); domain.KindOf(err) != domain.KindForbidden {
		t.Errorf("expected forbidden district create, got %v", err)
	}
	if err := svc.DeleteCity(ctx, plainPrincipal(), 1); domain.KindOf(err) != domain.KindForbidden {
		t.Errorf("expected forbidden city delete, got %v", err)
	}
}

func TestGeoService_CreateDistrict(t *testing.T) {
	deps := newGeoServiceDeps()
	svc := deps.build()
	ctx := context.Background()

	// The parent province must exist.
	_, err := svc.CreateDistrict(ctx, superAdminPrincipal(), "Kathmandu", 99)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("expected not found for a missing province, got %v", err)
	}

	deps.provinces.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Province, error) {
		return &domain.Province{ID: id, Name: "Bagmati"}, nil
	}
	district, err := svc.CreateDistrict(ctx, superAdminPrincipal(), "Kathmandu", 3)
	if err != nil {
		t.Fatalf("CreateDistrict: %v", err)
	}
	if district.ProvinceID != 3 {
		t.Errorf("expected province 3, got %d", district.ProvinceID)
	}
}

func TestGeoService_CreateCity_RequiresDistrict(t *testing.T) {
	deps := newGeoServiceDeps()
	svc := deps.build()

	_, err := svc.CreateCity(context.Background(), superAdminPrincipal(), "Kirtipur", 42)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("expected not found for a missing district, got %v", err)
	}

	deps.districts.FindByIDFunc = func(ctx context.Context, id uint) (*domain.District, error) {
		return &domain.District{ID: id, Name: "Kathmandu", ProvinceID: 3}, nil
	}
	city, err := svc.CreateCity(context.Background(), superAdminPrincipal(), "Kirtipur", 42)
	if err != nil {
		t.Fatalf("CreateCity: %v", err)
	}
	if city.DistrictID != 42 {
		t.Errorf("expected district 42, got %d", city.DistrictID)
	}
}

func TestGeoService_UpdateDistrict_Reparent(t *testing.T) {
	deps := newGeoServiceDeps()
	deps.districts.FindByIDFunc = func(ctx context.Context, id uint) (*domain.District, error) {
		return &domain.District{ID: id, Name: "Kathmandu", ProvinceID: 3}, nil
	}
	provinceLookups := 0
	deps.provinces.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Province, error) {
		provinceLookups++
		return &domain.Province{ID: id}, nil
	}
	svc := deps.build()
	ctx := context.Background()

	// Same province, no lookup needed.
	district, err := svc.UpdateDistrict(ctx, superAdminPrincipal(), 1, "Kathmandu Valley", 3)
	if err != nil {
		t.Fatalf("UpdateDistrict: %v", err)
	}
	if district.Name != "Kathmandu Valley" || provinceLookups != 0 {
		t.Errorf("unexpected district %+v (lookups %d)", district, provinceLookups)
	}

	// Moving to another province validates it first.
	district, err = svc.UpdateDistrict(ctx, superAdminPrincipal(), 1, "Kathmandu", 5)
	if err != nil {
		t.Fatalf("UpdateDistrict: %v", err)
	}
	if district.ProvinceID != 5 || provinceLookups != 1 {
		t.Errorf("expected a reparent to province 5, got %+v (lookups %d)", district, provinceLookups)
	}
}
