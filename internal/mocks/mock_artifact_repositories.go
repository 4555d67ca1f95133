package mocks

import (
	"context"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// MockOTPRepository implements domain.OTPRepository for testing
type MockOTPRepository struct {
	CreateFunc     func(ctx context.Context, otp *domain.OTP) error
	FindByCodeFunc func(ctx context.Context, code, purpose string) (*domain.OTP, error)
	ExistsFunc     func(ctx context.Context, userID uint, code, purpose string) (bool, error)
	DeleteFunc     func(ctx context.Context, id uint) error
}

// NewMockOTPRepository creates a new MockOTPRepository
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

func (m *MockOTPRepository) Create(ctx context.Context, otp *domain.OTP) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, otp)
	}
	otp.ID = 1
	return nil
}

func (m *MockOTPRepository) FindByCode(ctx context.Context, code, purpose string) (*domain.OTP, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code, purpose)
	}
	return nil, domain.NotFound("the code that you entered is incorrect")
}

func (m *MockOTPRepository) Exists(ctx context.Context, userID uint, code, purpose string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, userID, code, purpose)
	}
	return false, nil
}

func (m *MockOTPRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockVerificationTokenRepository implements
// domain.VerificationTokenRepository for testing
type MockVerificationTokenRepository struct {
	CreateFunc      func(ctx context.Context, token *domain.VerificationToken) error
	FindByTokenFunc func(ctx context.Context, token, purpose string) (*domain.VerificationToken, error)
	DeleteFunc      func(ctx context.Context, id uint) error
}

// NewMockVerificationTokenRepository creates a new MockVerificationTokenRepository
func NewMockVerificationTokenRepository() *MockVerificationTokenRepository {
	return &MockVerificationTokenRepository{}
}

func (m *MockVerificationTokenRepository) Create(ctx context.Context, token *domain.VerificationToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	token.ID = 1
	return nil
}

func (m *MockVerificationTokenRepository) FindByToken(ctx context.Context, token, purpose string) (*domain.VerificationToken, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token, purpose)
	}
	return nil, domain.NotFound("unable to find the verification token")
}

func (m *MockVerificationTokenRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
