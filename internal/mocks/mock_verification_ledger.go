package mocks

import (
	"context"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// MockVerificationLedger implements domain.VerificationLedger for testing
type MockVerificationLedger struct {
	IssueOTPFunc     func(ctx context.Context, userID uint, purpose string) (*domain.OTP, error)
	IssueTokenFunc   func(ctx context.Context, userID uint, purpose string) (*domain.VerificationToken, error)
	FindOTPFunc      func(ctx context.Context, code, purpose string) (*domain.OTP, error)
	FindTokenFunc    func(ctx context.Context, token, purpose string) (*domain.VerificationToken, error)
	ConsumeOTPFunc   func(ctx context.Context, otp *domain.OTP) error
	ConsumeTokenFunc func(ctx context.Context, token *domain.VerificationToken) error
}

// NewMockVerificationLedger creates a new MockVerificationLedger
func NewMockVerificationLedger() *MockVerificationLedger {
	return &MockVerificationLedger{}
}

func (m *MockVerificationLedger) IssueOTP(ctx context.Context, userID uint, purpose string) (*domain.OTP, error) {
	if m.IssueOTPFunc != nil {
		return m.IssueOTPFunc(ctx, userID, purpose)
	}
	return &domain.OTP{ID: 1, UserID: userID, Code: "123456", Purpose: purpose}, nil
}

func (m *MockVerificationLedger) IssueToken(ctx context.Context, userID uint, purpose string) (*domain.VerificationToken, error) {
	if m.IssueTokenFunc != nil {
		return m.IssueTokenFunc(ctx, userID, purpose)
	}
	return &domain.VerificationToken{ID: 1, UserID: userID, Token: "mock_token", Purpose: purpose}, nil
}

func (m *MockVerificationLedger) FindOTP(ctx context.Context, code, purpose string) (*domain.OTP, error) {
	if m.FindOTPFunc != nil {
		return m.FindOTPFunc(ctx, code, purpose)
	}
	return nil, domain.NotFound("the code that you entered is incorrect")
}

func (m *MockVerificationLedger) FindToken(ctx context.Context, token, purpose string) (*domain.VerificationToken, error) {
	if m.FindTokenFunc != nil {
		return m.FindTokenFunc(ctx, token, purpose)
	}
	return nil, domain.NotFound("unable to find the verification token")
}

func (m *MockVerificationLedger) ConsumeOTP(ctx context.Context, otp *domain.OTP) error {
	if m.ConsumeOTPFunc != nil {
		return m.ConsumeOTPFunc(ctx, otp)
	}
	return nil
}

func (m *MockVerificationLedger) ConsumeToken(ctx context.Context, token *domain.VerificationToken) error {
	if m.ConsumeTokenFunc != nil {
		return m.ConsumeTokenFunc(ctx, token)
	}
	return nil
}
