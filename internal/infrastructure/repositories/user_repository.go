package repositories

import (
	"errors"
	"time"

	"context"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID             uint      `gorm:"primaryKey"`
	FirstName      string    `gorm:"size:255;not null"`
	MiddleName     string    `gorm:"size:255"`
	LastName       string    `gorm:"size:255;not null"`
	NepName        string    `gorm:"size:255"`
	ProvinceID     uint      `gorm:"index"`
	DistrictID     uint      `gorm:"index"`
	CityID         uint      `gorm:"index"`
	WardNo         int       `gorm:"not null"`
	DobAD          time.Time `gorm:"not null"`
	DobBS          string    `gorm:"size:32"`
	Mobile         string    `gorm:"uniqueIndex;size:10;not null"`
	Email          string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string    `gorm:"column:password;not null"`
	Age            int       `gorm:"not null"`
	BloodGroup     string    `gorm:"size:3;index"`
	Gender         string    `gorm:"size:8"`
	Img            string    `gorm:"size:255"`
	MobileVerified bool      `gorm:"default:false"`
	EmailVerified  bool      `gorm:"default:false"`
	Status         bool      `gorm:"index;default:false"`
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := userToDB(user)
	if err := dbFrom(ctx, r.db).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Conflict("the mobile number or email address has already been taken")
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	return nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByMobile implements domain.UserRepository
func (r *UserRepositoryImpl) FindByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	return r.findOne(ctx, "mobile = ?", mobile)
}

// FindByIdentifier implements domain.UserRepository. The identifier matches
// the mobile number or the email address.
func (r *UserRepositoryImpl) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	return r.findOne(ctx, "mobile = ? OR email = ?", identifier, identifier)
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var dbUser DBUser
	err := dbFrom(ctx, r.db).Where(query, args...).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("unable to find the user")
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	err := dbFrom(ctx, r.db).Save(userToDB(user)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Conflict("the mobile number or email address has already been taken")
	}
	return err
}

// Delete implements domain.UserRepository
func (r *UserRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := dbFrom(ctx, r.db).Delete(&DBUser{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("user with this id doesn't exist")
	}
	return nil
}

// List implements domain.UserRepository. roleMembers narrows the listing to
// the given user ids; nil means no role filter was requested.
func (r *UserRepositoryImpl) List(ctx context.Context, filter domain.UserFilter, roleMembers []uint) (*domain.UserPage, error) {
	q := dbFrom(ctx, r.db).Model(&DBUser{})

	if filter.StartDate != nil && filter.EndDate != nil {
		q = q.Where("created_at BETWEEN ? AND ?", *filter.StartDate, *filter.EndDate)
	}
	if filter.ProvinceID != 0 {
		q = q.Where("province_id = ?", filter.ProvinceID)
	}
	if filter.DistrictID != 0 {
		q = q.Where("district_id = ?", filter.DistrictID)
	}
	if filter.CityID != 0 {
		q = q.Where("city_id = ?", filter.CityID)
	}
	if filter.BloodGroup != "" {
		q = q.Where("blood_group = ?", filter.BloodGroup)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where(
			"first_name LIKE ? OR middle_name LIKE ? OR last_name LIKE ? OR nep_name LIKE ? OR mobile LIKE ? OR email LIKE ?",
			like, like, like, like, like, like,
		)
	}
	if roleMembers != nil {
		q = q.Where("id IN ?", roleMembers)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var dbUsers []DBUser
	err := q.Order("id").Offset((page - 1) * limit).Limit(limit).Find(&dbUsers).Error
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, *userToDomain(&dbUsers[i]))
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &domain.UserPage{
		Users:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// userToDB converts domain user to database user
func userToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:             user.ID,
		FirstName:      user.FirstName,
		MiddleName:     user.MiddleName,
		LastName:       user.LastName,
		NepName:        user.NepName,
		ProvinceID:     user.ProvinceID,
		DistrictID:     user.DistrictID,
		CityID:         user.CityID,
		WardNo:         user.WardNo,
		DobAD:          user.DobAD,
		DobBS:          user.DobBS,
		Mobile:         user.Mobile,
		Email:          user.Email,
		PasswordHash:   user.PasswordHash,
		Age:            user.Age,
		BloodGroup:     user.BloodGroup,
		Gender:         user.Gender,
		Img:            user.Img,
		MobileVerified: user.MobileVerified,
		EmailVerified:  user.EmailVerified,
		Status:         user.Status,
		CreatedAt:      user.CreatedAt,
	}
}

// userToDomain converts database user to domain user
func userToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:             dbUser.ID,
		FirstName:      dbUser.FirstName,
		MiddleName:     dbUser.MiddleName,
		LastName:       dbUser.LastName,
		NepName:        dbUser.NepName,
		ProvinceID:     dbUser.ProvinceID,
		DistrictID:     dbUser.DistrictID,
		CityID:         dbUser.CityID,
		WardNo:         dbUser.WardNo,
		DobAD:          dbUser.DobAD,
		DobBS:          dbUser.DobBS,
		Mobile:         dbUser.Mobile,
		Email:          dbUser.Email,
		PasswordHash:   dbUser.PasswordHash,
		Age:            dbUser.Age,
		BloodGroup:     dbUser.BloodGroup,
		Gender:         dbUser.Gender,
		Img:            dbUser.Img,
		MobileVerified: dbUser.MobileVerified,
		EmailVerified:  dbUser.EmailVerified,
		Status:         dbUser.Status,
		CreatedAt:      dbUser.CreatedAt,
		UpdatedAt:      dbUser.UpdatedAt,
	}
}
