package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
	"gorm.io/gorm"
)

// DBSessionToken represents the database model for a session token.
type DBSessionToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex;not null"`
	Token     string `gorm:"index;size:1024;not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBSessionToken) TableName() string {
	return "session_tokens"
}

// SessionRepositoryImpl implements domain.SessionRepository using GORM. The
// unique index on user_id backs the one-token-per-user invariant.
type SessionRepositoryImpl struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.SessionToken) error {
	dbSession := &DBSessionToken{UserID: session.UserID, Token: session.Token}
	if err := dbFrom(ctx, r.db).Create(dbSession).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Conflict("a session already exists for this user")
		}
		return err
	}
	session.ID = dbSession.ID
	session.CreatedAt = dbSession.CreatedAt
	return nil
}

// FindByToken implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByToken(ctx context.Context, token string) (*domain.SessionToken, error) {
	var dbSession DBSessionToken
	err := dbFrom(ctx, r.db).Where("token = ?", token).First(&dbSession).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.Unauthenticated("unauthorized")
		}
		return nil, err
	}
	return sessionToDomain(&dbSession), nil
}

// FindByUser implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByUser(ctx context.Context, userID uint) (*domain.SessionToken, error) {
	var dbSession DBSessionToken
	err := dbFrom(ctx, r.db).Where("user_id = ?", userID).First(&dbSession).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("no session exists for this user")
		}
		return nil, err
	}
	return sessionToDomain(&dbSession), nil
}

// DeleteByUser implements domain.SessionRepository. Deleting a session that
// does not exist is not an error.
func (r *SessionRepositoryImpl) DeleteByUser(ctx context.Context, userID uint) error {
	return dbFrom(ctx, r.db).Where("user_id = ?", userID).Delete(&DBSessionToken{}).Error
}

func sessionToDomain(dbSession *DBSessionToken) *domain.SessionToken {
	return &domain.SessionToken{
		ID:        dbSession.ID,
		UserID:    dbSession.UserID,
		Token:     dbSession.Token,
		CreatedAt: dbSession.CreatedAt,
	}
}
