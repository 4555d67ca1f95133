package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
	"gorm.io/gorm"
)

// DBOtp represents the database model for an OTP artifact.
type DBOtp struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Code      string `gorm:"column:otp;index;size:6;not null"`
	Purpose   string `gorm:"column:type;index;size:16;not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBOtp) TableName() string {
	return "otps"
}

// DBVerificationToken represents the database model for a verification token.
type DBVerificationToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Token     string `gorm:"index;size:512;not null"`
	Purpose   string `gorm:"column:type;index;size:16;not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBVerificationToken) TableName() string {
	return "verification_tokens"
}

// OTPRepositoryImpl implements domain.OTPRepository using GORM
type OTPRepositoryImpl struct {
	db *gorm.DB
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &OTPRepositoryImpl{db: db}
}

// Create implements domain.OTPRepository
func (r *OTPRepositoryImpl) Create(ctx context.Context, otp *domain.OTP) error {
	dbOtp := &DBOtp{UserID: otp.UserID, Code: otp.Code, Purpose: otp.Purpose}
	if err := dbFrom(ctx, r.db).Create(dbOtp).Error; err != nil {
		return err
	}
	otp.ID = dbOtp.ID
	otp.CreatedAt = dbOtp.CreatedAt
	return nil
}

// FindByCode implements domain.OTPRepository
func (r *OTPRepositoryImpl) FindByCode(ctx context.Context, code, purpose string) (*domain.OTP, error) {
	var dbOtp DBOtp
	err := dbFrom(ctx, r.db).Where("otp = ? AND type = ?", code, purpose).First(&dbOtp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("the code that you entered is incorrect")
		}
		return nil, err
	}
	return &domain.OTP{
		ID:        dbOtp.ID,
		UserID:    dbOtp.UserID,
		Code:      dbOtp.Code,
		Purpose:   dbOtp.Purpose,
		CreatedAt: dbOtp.CreatedAt,
	}, nil
}

// Exists implements domain.OTPRepository
func (r *OTPRepositoryImpl) Exists(ctx context.Context, userID uint, code, purpose string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&DBOtp{}).
		Where("user_id = ? AND otp = ? AND type = ?", userID, code, purpose).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete implements domain.OTPRepository
func (r *OTPRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Delete(&DBOtp{}, id).Error
}

// VerificationTokenRepositoryImpl implements domain.VerificationTokenRepository using GORM
type VerificationTokenRepositoryImpl struct {
	db *gorm.DB
}

// NewVerificationTokenRepository creates a new verification token repository
func NewVerificationTokenRepository(db *gorm.DB) domain.VerificationTokenRepository {
	return &VerificationTokenRepositoryImpl{db: db}
}

// Create implements domain.VerificationTokenRepository
func (r *VerificationTokenRepositoryImpl) Create(ctx context.Context, token *domain.VerificationToken) error {
	dbToken := &DBVerificationToken{UserID: token.UserID, Token: token.Token, Purpose: token.Purpose}
	if err := dbFrom(ctx, r.db).Create(dbToken).Error; err != nil {
		return err
	}
	token.ID = dbToken.ID
	token.CreatedAt = dbToken.CreatedAt
	return nil
}

// FindByToken implements domain.VerificationTokenRepository
func (r *VerificationTokenRepositoryImpl) FindByToken(ctx context.Context, token, purpose string) (*domain.VerificationToken, error) {
	var dbToken DBVerificationToken
	err := dbFrom(ctx, r.db).Where("token = ? AND type = ?", token, purpose).First(&dbToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("unable to find the verification token")
		}
		return nil, err
	}
	return &domain.VerificationToken{
		ID:        dbToken.ID,
		UserID:    dbToken.UserID,
		Token:     dbToken.Token,
		Purpose:   dbToken.Purpose,
		CreatedAt: dbToken.CreatedAt,
	}, nil
}

// Delete implements domain.VerificationTokenRepository
func (r *VerificationTokenRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Delete(&DBVerificationToken{}, id).Error
}
