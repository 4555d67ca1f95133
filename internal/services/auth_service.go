package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// AuthServiceImpl implements domain.AuthService. It orchestrates the
// register -> verify(mobile) -> verify(email) -> activate -> login flow and
// both password-reset flows, keeping every multi-write sequence inside a
// single store transaction.
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	ledger      domain.VerificationLedger
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	avatarSvc   domain.AvatarService
	dispatcher  domain.NotificationDispatcher
	throttle    domain.OTPThrottle
	grants      domain.ResetGrantStore
	tx          domain.TxManager
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	ledger domain.VerificationLedger,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	avatarSvc domain.AvatarService,
	dispatcher domain.NotificationDispatcher,
	throttle domain.OTPThrottle,
	grants domain.ResetGrantStore,
	tx domain.TxManager,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		ledger:      ledger,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		avatarSvc:   avatarSvc,
		dispatcher:  dispatcher,
		throttle:    throttle,
		grants:      grants,
		tx:          tx,
	}
}

// Register implements domain.AuthService. The user is created inactive with
// both verification flags down and exactly one open activation OTP.
func (s *AuthServiceImpl) Register(ctx context.Context, in *domain.RegisterInput) (*domain.User, error) {
	if _, err := s.userRepo.FindByMobile(ctx, in.Mobile); err == nil {
		return nil, domain.Conflict("the mobile number has already been taken")
	} else if domain.KindOf(err) != domain.KindNotFound {
		return nil, domain.Internal("failed to check mobile uniqueness", err)
	}
	if _, err := s.userRepo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.Conflict("the email has already been taken")
	} else if domain.KindOf(err) != domain.KindNotFound {
		return nil, domain.Internal("failed to check email uniqueness", err)
	}

	age, err := normalizeAge(in.DobAD, in.Age)
	if err != nil {
		return nil, err
	}

	img, err := s.avatarSvc.Store(ctx, in.Img, in.Mobile)
	if err != nil {
		return nil, err
	}

	hashed, err := s.passwordSvc.Hash(in.Password)
	if err != nil {
		return nil, domain.Internal("failed to hash password", err)
	}

	user := &domain.User{
		FirstName:    in.FirstName,
		MiddleName:   in.MiddleName,
		LastName:     in.LastName,
		NepName:      in.NepName,
		ProvinceID:   in.ProvinceID,
		DistrictID:   in.DistrictID,
		CityID:       in.CityID,
		WardNo:       in.WardNo,
		DobAD:        in.DobAD,
		DobBS:        in.DobBS,
		Mobile:       in.Mobile,
		Email:        in.Email,
		PasswordHash: hashed,
		Age:          age,
		BloodGroup:   in.BloodGroup,
		Gender:       in.Gender,
		Img:          img,
	}
	user.CapitalizeNames()

	var otp *domain.OTP
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		otp, err = s.ledger.IssueOTP(ctx, user.ID, domain.PurposeActivate)
		return err
	})
	if err != nil {
		return nil, wrapStoreErr("failed to register user", err)
	}

	if err := s.dispatcher.Enqueue(ctx, domain.Notification{
		UserID:    user.ID,
		Template:  domain.TemplateActivateOTP,
		Recipient: user.Mobile,
		Payload:   otp.Code,
	}); err != nil {
		return nil, domain.Internal("failed to queue the verification code", err)
	}

	return user, nil
}

// VerifyMobile implements domain.AuthService. A matched OTP flips the
// mobile-verified flag, issues the activation token for the email channel
// and consumes the code, all in one transaction.
func (s *AuthServiceImpl) VerifyMobile(ctx context.Context, code string) (*domain.User, error) {
	var user *domain.User
	var token *domain.VerificationToken

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		otp, err := s.ledger.FindOTP(ctx, code, domain.PurposeActivate)
		if err != nil {
			if domain.KindOf(err) == domain.KindNotFound {
				// Same message whether the code is wrong or was never
				// issued for this mobile.
				return domain.NotFound("the code that you entered is incorrect")
			}
			return err
		}

		user, err = s.userRepo.FindByID(ctx, otp.UserID)
		if err != nil {
			return err
		}

		user.MobileVerified = true
		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}

		token, err = s.ledger.IssueToken(ctx, user.ID, domain.PurposeActivate)
		if err != nil {
			return err
		}

		return s.ledger.ConsumeOTP(ctx, otp)
	})
	if err != nil {
		return nil, wrapStoreErr("failed to verify mobile", err)
	}

	if err := s.dispatcher.Enqueue(ctx, domain.Notification{
		UserID:    user.ID,
		Template:  domain.TemplateActivationLink,
		Recipient: user.Email,
		Payload:   token.Token,
	}); err != nil {
		return nil, domain.Internal("failed to queue the activation mail", err)
	}

	log.Printf("MOBILE_VERIFIED: user_id=%d mobile=%s", user.ID, user.Mobile)
	return user, nil
}

// VerifyEmail implements domain.AuthService. The account goes active only
// once both channels are verified; verifying email first leaves it inactive.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, tokenStr string) (*domain.User, error) {
	var user *domain.User

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		token, err := s.ledger.FindToken(ctx, tokenStr, domain.PurposeActivate)
		if err != nil {
			if domain.KindOf(err) == domain.KindNotFound {
				return domain.NotFound("unable to find the verification token")
			}
			return err
		}

		user, err = s.userRepo.FindByID(ctx, token.UserID)
		if err != nil {
			return err
		}

		user.EmailVerified = true
		if user.MobileVerified {
			user.Status = true
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}

		return s.ledger.ConsumeToken(ctx, token)
	})
	if err != nil {
		return nil, wrapStoreErr("failed to verify email", err)
	}

	if user.Status {
		log.Printf("ACCOUNT_ACTIVATED: user_id=%d email=%s", user.ID, user.Email)
	}
	return user, nil
}

// Login implements domain.AuthService. The identifier matches the mobile
// number or the email address. Logging in twice returns the same token.
func (s *AuthServiceImpl) Login(ctx context.Context, identifier, password string) (string, error) {
	user, err := s.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return "", domain.NotFound("unable to find the user associated with this mobile number or email address")
		}
		return "", domain.Internal("failed to look up user", err)
	}

	if !user.Status {
		return "", domain.Unauthenticated("you've not activated the account yet")
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return "", domain.Unauthenticated("the credentials didn't match")
	}

	if session, err := s.sessionRepo.FindByUser(ctx, user.ID); err == nil {
		return session.Token, nil
	} else if domain.KindOf(err) != domain.KindNotFound {
		return "", domain.Internal("failed to look up session", err)
	}

	token, err := s.tokenSvc.Mint(user)
	if err != nil {
		return "", domain.Internal("failed to mint session token", err)
	}

	session := &domain.SessionToken{UserID: user.ID, Token: token}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		// Lost a race against a concurrent login; the existing token wins.
		if domain.KindOf(err) == domain.KindConflict {
			if existing, ferr := s.sessionRepo.FindByUser(ctx, user.ID); ferr == nil {
				return existing.Token, nil
			}
		}
		return "", domain.Internal("failed to store session token", err)
	}

	return token, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, principal *domain.Principal) error {
	if err := s.sessionRepo.DeleteByUser(ctx, principal.User.ID); err != nil {
		return domain.Internal("failed to delete session token", err)
	}
	return nil
}

// ResendOTP implements domain.AuthService with Redis-backed throttling so a
// mobile cannot request codes back to back.
func (s *AuthServiceImpl) ResendOTP(ctx context.Context, mobile string) error {
	user, err := s.userRepo.FindByMobile(ctx, mobile)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return domain.NotFound("unable to find the user associated with this mobile number")
		}
		return domain.Internal("failed to look up user", err)
	}

	if user.MobileVerified {
		return domain.ValidationError("the mobile number has already been verified")
	}

	ok, wait, err := s.throttle.Allow(ctx, mobile)
	if err != nil {
		return domain.Internal("failed to check resend throttle", err)
	}
	if !ok {
		return domain.ValidationError(fmt.Sprintf("please wait %d seconds before requesting a new code", wait))
	}

	otp, err := s.ledger.IssueOTP(ctx, user.ID, domain.PurposeActivate)
	if err != nil {
		return err
	}
	if err := s.throttle.Mark(ctx, mobile); err != nil {
		return domain.Internal("failed to set resend throttle", err)
	}

	if err := s.dispatcher.Enqueue(ctx, domain.Notification{
		UserID:    user.ID,
		Template:  domain.TemplateActivateOTP,
		Recipient: user.Mobile,
		Payload:   otp.Code,
	}); err != nil {
		return domain.Internal("failed to queue the verification code", err)
	}

	return nil
}

// RequestPasswordReset implements domain.AuthService. The artifact never
// travels back to the caller; it reaches the user out of band.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, identifier, channel string) error {
	user, err := s.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return domain.NotFound("unable to find the user associated with this mobile number or email address")
		}
		return domain.Internal("failed to look up user", err)
	}

	if channel == domain.ResetChannelSMS {
		otp, err := s.ledger.IssueOTP(ctx, user.ID, domain.PurposeReset)
		if err != nil {
			return err
		}
		if err := s.dispatcher.Enqueue(ctx, domain.Notification{
			UserID:    user.ID,
			Template:  domain.TemplateResetOTP,
			Recipient: user.Mobile,
			Payload:   otp.Code,
		}); err != nil {
			return domain.Internal("failed to queue the reset code", err)
		}
		return nil
	}

	token, err := s.ledger.IssueToken(ctx, user.ID, domain.PurposeReset)
	if err != nil {
		return err
	}
	if err := s.dispatcher.Enqueue(ctx, domain.Notification{
		UserID:    user.ID,
		Template:  domain.TemplateResetLink,
		Recipient: user.Email,
		Payload:   token.Token,
	}); err != nil {
		return domain.Internal("failed to queue the reset mail", err)
	}
	return nil
}

// ResetViaOTP implements domain.AuthService. Consuming the artifact and
// invalidating the session commit together; a reset grant is then recorded
// so SetNewPassword can verify the handshake.
func (s *AuthServiceImpl) ResetViaOTP(ctx context.Context, code string) (*domain.User, error) {
	var user *domain.User

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		otp, err := s.ledger.FindOTP(ctx, code, domain.PurposeReset)
		if err != nil {
			if domain.KindOf(err) == domain.KindNotFound {
				return domain.NotFound("the OTP has already been expired")
			}
			return err
		}

		user, err = s.userRepo.FindByID(ctx, otp.UserID)
		if err != nil {
			return err
		}

		if err := s.ledger.ConsumeOTP(ctx, otp); err != nil {
			return err
		}
		return s.sessionRepo.DeleteByUser(ctx, user.ID)
	})
	if err != nil {
		return nil, wrapStoreErr("failed to reset via OTP", err)
	}

	if err := s.grants.Grant(ctx, user.Email); err != nil {
		return nil, domain.Internal("failed to record reset grant", err)
	}

	log.Printf("PASSWORD_RESET_GRANTED: user_id=%d channel=sms", user.ID)
	return user, nil
}

// ResetViaToken implements domain.AuthService
func (s *AuthServiceImpl) ResetViaToken(ctx context.Context, tokenStr string) (*domain.User, error) {
	var user *domain.User

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		token, err := s.ledger.FindToken(ctx, tokenStr, domain.PurposeReset)
		if err != nil {
			if domain.KindOf(err) == domain.KindNotFound {
				return domain.NotFound("the reset password token has already expired")
			}
			return err
		}

		user, err = s.userRepo.FindByID(ctx, token.UserID)
		if err != nil {
			return err
		}

		if err := s.ledger.ConsumeToken(ctx, token); err != nil {
			return err
		}
		return s.sessionRepo.DeleteByUser(ctx, user.ID)
	})
	if err != nil {
		return nil, wrapStoreErr("failed to reset via token", err)
	}

	if err := s.grants.Grant(ctx, user.Email); err != nil {
		return nil, domain.Internal("failed to record reset grant", err)
	}

	log.Printf("PASSWORD_RESET_GRANTED: user_id=%d channel=email", user.ID)
	return user, nil
}

// SetNewPassword implements domain.AuthService. An open reset grant for the
// email is required and consumed, binding the password change to a verified
// reset request.
func (s *AuthServiceImpl) SetNewPassword(ctx context.Context, email, password string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return domain.NotFound("unable to find the user")
		}
		return domain.Internal("failed to look up user", err)
	}

	ok, err := s.grants.Consume(ctx, email)
	if err != nil {
		return domain.Internal("failed to consume reset grant", err)
	}
	if !ok {
		return domain.Forbidden("the password reset has not been verified for this account")
	}

	hashed, err := s.passwordSvc.Hash(password)
	if err != nil {
		return domain.Internal("failed to hash password", err)
	}

	user.PasswordHash = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return domain.Internal("failed to update password", err)
	}

	log.Printf("PASSWORD_CHANGED: user_id=%d", user.ID)
	return nil
}

// wrapStoreErr keeps typed domain errors intact and wraps raw store
// failures as Internal.
func wrapStoreErr(msg string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.Internal(msg, err)
}
