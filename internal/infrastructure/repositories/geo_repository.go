package repositories

import (
	"context"
	"errors"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
	"gorm.io/gorm"
)

// DBProvince represents the database model for a province.
type DBProvince struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:255;not null"`
}

func (DBProvince) TableName() string { return "provinces" }

// DBDistrict represents the database model for a district.
type DBDistrict struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"index;size:255;not null"`
	ProvinceID uint   `gorm:"index;not null"`
}

func (DBDistrict) TableName() string { return "districts" }

// DBCity represents the database model for a city.
type DBCity struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"index;size:255;not null"`
	DistrictID uint   `gorm:"index;not null"`
}

func (DBCity) TableName() string { return "cities" }

// ProvinceRepositoryImpl implements domain.ProvinceRepository using GORM
type ProvinceRepositoryImpl struct {
	db *gorm.DB
}

// NewProvinceRepository creates a new province repository
func NewProvinceRepository(db *gorm.DB) domain.ProvinceRepository {
	return &ProvinceRepositoryImpl{db: db}
}

// List implements domain.ProvinceRepository
func (r *ProvinceRepositoryImpl) List(ctx context.Context, search string) ([]domain.Province, error) {
	q := dbFrom(ctx, r.db).Model(&DBProvince{})
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	var rows []DBProvince
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	provinces := make([]domain.Province, 0, len(rows))
	for _, row := range rows {
		provinces = append(provinces, domain.Province{ID: row.ID, Name: row.Name})
	}
	return provinces, nil
}

// Create implements domain.ProvinceRepository
func (r *ProvinceRepositoryImpl) Create(ctx context.Context, province *domain.Province) error {
	row := &DBProvince{Name: province.Name}
	if err := dbFrom(ctx, r.db).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Conflict("a province with this name already exists")
		}
		return err
	}
	province.ID = row.ID
	return nil
}

// FindByID implements domain.ProvinceRepository
func (r *ProvinceRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Province, error) {
	var row DBProvince
	if err := dbFrom(ctx, r.db).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("unable to find the province")
		}
		return nil, err
	}
	return &domain.Province{ID: row.ID, Name: row.Name}, nil
}

// Update implements domain.ProvinceRepository
func (r *ProvinceRepositoryImpl) Update(ctx context.Context, province *domain.Province) error {
	return dbFrom(ctx, r.db).Save(&DBProvince{ID: province.ID, Name: province.Name}).Error
}

// Delete implements domain.ProvinceRepository
func (r *ProvinceRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := dbFrom(ctx, r.db).Delete(&DBProvince{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("unable to find the province")
	}
	return nil
}

// DistrictRepositoryImpl implements domain.DistrictRepository using GORM
type DistrictRepositoryImpl struct {
	db *gorm.DB
}

// NewDistrictRepository creates a new district repository
func NewDistrictRepository(db *gorm.DB) domain.DistrictRepository {
	return &DistrictRepositoryImpl{db: db}
}

// List implements domain.DistrictRepository
func (r *DistrictRepositoryImpl) List(ctx context.Context, search string, provinceID uint) ([]domain.District, error) {
	q := dbFrom(ctx, r.db).Model(&DBDistrict{})
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	if provinceID != 0 {
		q = q.Where("province_id = ?", provinceID)
	}
	var rows []DBDistrict
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	districts := make([]domain.District, 0, len(rows))
	for _, row := range rows {
		districts = append(districts, domain.District{ID: row.ID, Name: row.Name, ProvinceID: row.ProvinceID})
	}
	return districts, nil
}

// Create implements domain.DistrictRepository
func (r *DistrictRepositoryImpl) Create(ctx context.Context, district *domain.District) error {
	row := &DBDistrict{Name: district.Name, ProvinceID: district.ProvinceID}
	if err := dbFrom(ctx, r.db).Create(row).Error; err != nil {
		return err
	}
	district.ID = row.ID
	return nil
}

// FindByID implements domain.DistrictRepository
func (r *DistrictRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.District, error) {
	var row DBDistrict
	if err := dbFrom(ctx, r.db).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("unable to find the district")
		}
		return nil, err
	}
	return &domain.District{ID: row.ID, Name: row.Name, ProvinceID: row.ProvinceID}, nil
}

// Update implements domain.DistrictRepository
func (r *DistrictRepositoryImpl) Update(ctx context.Context, district *domain.District) error {
	return dbFrom(ctx, r.db).Save(&DBDistrict{ID: district.ID, Name: district.Name, ProvinceID: district.ProvinceID}).Error
}

// Delete implements domain.DistrictRepository
func (r *DistrictRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := dbFrom(ctx, r.db).Delete(&DBDistrict{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("unable to find the district")
	}
	return nil
}

// CityRepositoryImpl implements domain.CityRepository using GORM
type CityRepositoryImpl struct {
	db *gorm.DB
}

// NewCityRepository creates a new city repository
func NewCityRepository(db *gorm.DB) domain.CityRepository {
	return &CityRepositoryImpl{db: db}
}

// List implements domain.CityRepository
func (r *CityRepositoryImpl) List(ctx context.Context, search string, districtID uint) ([]domain.City, error) {
	q := dbFrom(ctx, r.db).Model(&DBCity{})
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	if districtID != 0 {
		q = q.Where("district_id = ?", districtID)
	}
	var rows []DBCity
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	cities := make([]domain.City, 0, len(rows))
	for _, row := range rows {
		cities = append(cities, domain.City{ID: row.ID, Name: row.Name, DistrictID: row.DistrictID})
	}
	return cities, nil
}

// Create implements domain.CityRepository
func (r *CityRepositoryImpl) Create(ctx context.Context, city *domain.City) error {
	row := &DBCity{Name: city.Name, DistrictID: city.DistrictID}
	if err := dbFrom(ctx, r.db).Create(row).Error; err != nil {
		return err
	}
	city.ID = row.ID
	return nil
}

// FindByID implements domain.CityRepository
func (r *CityRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.City, error) {
	var row DBCity
	if err := dbFrom(ctx, r.db).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("unable to find the city")
		}
		return nil, err
	}
	return &domain.City{ID: row.ID, Name: row.Name, DistrictID: row.DistrictID}, nil
}

// Update implements domain.CityRepository
func (r *CityRepositoryImpl) Update(ctx context.Context, city *domain.City) error {
	return dbFrom(ctx, r.db).Save(&DBCity{ID: city.ID, Name: city.Name, DistrictID: city.DistrictID}).Error
}

// Delete implements domain.CityRepository
func (r *CityRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := dbFrom(ctx, r.db).Delete(&DBCity{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("unable to find the city")
	}
	return nil
}
