package mocks

import (
	"context"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// MockAuthService implements domain.AuthService for testing handlers
type MockAuthService struct {
	RegisterFunc             func(ctx context.Context, in *domain.RegisterInput) (*domain.User, error)
	VerifyMobileFunc         func(ctx context.Context, code string) (*domain.User, error)
	VerifyEmailFunc          func(ctx context.Context, token string) (*domain.User, error)
	LoginFunc                func(ctx context.Context, identifier, password string) (string, error)
	LogoutFunc               func(ctx context.Context, principal *domain.Principal) error
	ResendOTPFunc            func(ctx context.Context, mobile string) error
	RequestPasswordResetFunc func(ctx context.Context, identifier, channel string) error
	ResetViaOTPFunc          func(ctx context.Context, code string) (*domain.User, error)
	ResetViaTokenFunc        func(ctx context.Context, token string) (*domain.User, error)
	SetNewPasswordFunc       func(ctx context.Context, email, password string) error
}

// NewMockAuthService creates a new MockAuthService
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, in *domain.RegisterInput) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return &domain.User{ID: 1, Mobile: in.Mobile, Email: in.Email}, nil
}

func (m *MockAuthService) VerifyMobile(ctx context.Context, code string) (*domain.User, error) {
	if m.VerifyMobileFunc != nil {
		return m.VerifyMobileFunc(ctx, code)
	}
	return &domain.User{ID: 1, MobileVerified: true}, nil
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, token)
	}
	return &domain.User{ID: 1, MobileVerified: true, EmailVerified: true, Status: true}, nil
}

func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, identifier, password)
	}
	return "mock_access_token", nil
}

func (m *MockAuthService) Logout(ctx context.Context, principal *domain.Principal) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, principal)
	}
	return nil
}

func (m *MockAuthService) ResendOTP(ctx context.Context, mobile string) error {
	if m.ResendOTPFunc != nil {
		return m.ResendOTPFunc(ctx, mobile)
	}
	return nil
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, identifier, channel string) error {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, identifier, channel)
	}
	return nil
}

func (m *MockAuthService) ResetViaOTP(ctx context.Context, code string) (*domain.User, error) {
	if m.ResetViaOTPFunc != nil {
		return m.ResetViaOTPFunc(ctx, code)
	}
	return &domain.User{ID: 1, Email: "user@example.com"}, nil
}

func (m *MockAuthService) ResetViaToken(ctx context.Context, token string) (*domain.User, error) {
	if m.ResetViaTokenFunc != nil {
		return m.ResetViaTokenFunc(ctx, token)
	}
	return &domain.User{ID: 1, Email: "user@example.com"}, nil
}

func (m *MockAuthService) SetNewPassword(ctx context.Context, email, password string) error {
	if m.SetNewPasswordFunc != nil {
		return m.SetNewPasswordFunc(ctx, email, password)
	}
	return nil
}
