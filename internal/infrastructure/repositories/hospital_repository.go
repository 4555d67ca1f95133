package repositories

import (
	"context"
	"errors"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
	"gorm.io/gorm"
)

// DBHospitalUser represents the database model for a hospital association.
type DBHospitalUser struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"uniqueIndex;not null"`
	HospitalID uint `gorm:"index;not null"`
}

func (DBHospitalUser) TableName() string { return "hospital_users" }

// HospitalUserRepositoryImpl implements domain.HospitalUserRepository using GORM
type HospitalUserRepositoryImpl struct {
	db *gorm.DB
}

// NewHospitalUserRepository creates a new hospital association repository
func NewHospitalUserRepository(db *gorm.DB) domain.HospitalUserRepository {
	return &HospitalUserRepositoryImpl{db: db}
}

// Create implements domain.HospitalUserRepository
func (r *HospitalUserRepositoryImpl) Create(ctx context.Context, hu *domain.HospitalUser) error {
	row := &DBHospitalUser{UserID: hu.UserID, HospitalID: hu.HospitalID}
	if err := dbFrom(ctx, r.db).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Conflict("the user is already associated with a hospital")
		}
		return err
	}
	hu.ID = row.ID
	return nil
}

// FindByUser implements domain.HospitalUserRepository
func (r *HospitalUserRepositoryImpl) FindByUser(ctx context.Context, userID uint) (*domain.HospitalUser, error) {
	var row DBHospitalUser
	err := dbFrom(ctx, r.db).Where("user_id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("the user is not associated with any hospital")
		}
		return nil, err
	}
	return &domain.HospitalUser{ID: row.ID, UserID: row.UserID, HospitalID: row.HospitalID}, nil
}

// Update implements domain.HospitalUserRepository
func (r *HospitalUserRepositoryImpl) Update(ctx context.Context, hu *domain.HospitalUser) error {
	return dbFrom(ctx, r.db).Save(&DBHospitalUser{ID: hu.ID, UserID: hu.UserID, HospitalID: hu.HospitalID}).Error
}
