package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// VerificationLedgerImpl implements domain.VerificationLedger on the OTP and
// verification token repositories.
type VerificationLedgerImpl struct {
	otpRepo   domain.OTPRepository
	tokenRepo domain.VerificationTokenRepository
	config    LedgerConfig
}

// LedgerConfig holds verification artifact settings.
type LedgerConfig struct {
	// SecretKey seeds verification token generation.
	SecretKey string
	// MaxGenerateAttempts caps OTP regeneration on collision.
	MaxGenerateAttempts int
}

// NewVerificationLedger creates a new verification ledger.
func NewVerificationLedger(otpRepo domain.OTPRepository, tokenRepo domain.VerificationTokenRepository, config LedgerConfig) domain.VerificationLedger {
	if config.MaxGenerateAttempts <= 0 {
		config.MaxGenerateAttempts = 5
	}
	return &VerificationLedgerImpl{
		otpRepo:   otpRepo,
		tokenRepo: tokenRepo,
		config:    config,
	}
}

// IssueOTP implements domain.VerificationLedger. A freshly generated code
// must not collide with another open OTP of the same user and purpose; the
// retry loop is bounded so exhaustion surfaces instead of recursing forever.
func (l *VerificationLedgerImpl) IssueOTP(ctx context.Context, userID uint, purpose string) (*domain.OTP, error) {
	for attempt := 0; attempt < l.config.MaxGenerateAttempts; attempt++ {
		code, err := generateOTPCode()
		if err != nil {
			return nil, domain.Internal("failed to generate OTP code", err)
		}

		exists, err := l.otpRepo.Exists(ctx, userID, code, purpose)
		if err != nil {
			return nil, domain.Internal("failed to check for OTP collision", err)
		}
		if exists {
			continue
		}

		otp := &domain.OTP{UserID: userID, Code: code, Purpose: purpose}
		if err := l.otpRepo.Create(ctx, otp); err != nil {
			return nil, domain.Internal("failed to store OTP", err)
		}
		return otp, nil
	}

	return nil, domain.Internal("failed to generate a unique OTP",
		fmt.Errorf("exhausted %d attempts for user %d", l.config.MaxGenerateAttempts, userID))
}

// IssueToken implements domain.VerificationLedger. The token is the
// hex-encoded concatenation of the server secret and the current timestamp:
// unguessable enough for a single-use bearer artifact, opaque to consumers.
func (l *VerificationLedgerImpl) IssueToken(ctx context.Context, userID uint, purpose string) (*domain.VerificationToken, error) {
	raw := l.config.SecretKey + time.Now().Format("Mon, Jan 2, 2006 3:04 PM")
	token := &domain.VerificationToken{
		UserID:  userID,
		Token:   hex.EncodeToString([]byte(raw)),
		Purpose: purpose,
	}
	if err := l.tokenRepo.Create(ctx, token); err != nil {
		return nil, domain.Internal("failed to store verification token", err)
	}
	return token, nil
}

// FindOTP implements domain.VerificationLedger
func (l *VerificationLedgerImpl) FindOTP(ctx context.Context, code, purpose string) (*domain.OTP, error) {
	return l.otpRepo.FindByCode(ctx, code, purpose)
}

// FindToken implements domain.VerificationLedger
func (l *VerificationLedgerImpl) FindToken(ctx context.Context, token, purpose string) (*domain.VerificationToken, error) {
	return l.tokenRepo.FindByToken(ctx, token, purpose)
}

// ConsumeOTP implements domain.VerificationLedger. A consumed artifact is
// gone; replaying the same code resolves to nothing.
func (l *VerificationLedgerImpl) ConsumeOTP(ctx context.Context, otp *domain.OTP) error {
	return l.otpRepo.Delete(ctx, otp.ID)
}

// ConsumeToken implements domain.VerificationLedger
func (l *VerificationLedgerImpl) ConsumeToken(ctx context.Context, token *domain.VerificationToken) error {
	return l.tokenRepo.Delete(ctx, token.ID)
}

// generateOTPCode draws six digits, the first from 1-9 so the code never
// carries a leading zero.
func generateOTPCode() (string, error) {
	digits := make([]byte, 6)

	first, err := rand.Int(rand.Reader, big.NewInt(9))
	if err != nil {
		return "", fmt.Errorf("failed to generate random digit: %w", err)
	}
	digits[0] = byte('1' + first.Int64())

	for i := 1; i < len(digits); i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
