package domain

import (
	"context"
	"time"
)

// UserFilter narrows and paginates administrative user listings.
type UserFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	ProvinceID uint
	DistrictID uint
	CityID     uint
	BloodGroup string
	Status     *bool
	Search     string
	Role       string
	Page       int
	Limit      int
}

// UserPage is one page of a filtered user listing.
type UserPage struct {
	Users      []User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserRepository defines user data access operations.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByMobile(ctx context.Context, mobile string) (*User, error)
	// FindByIdentifier matches the mobile number or the email address.
	FindByIdentifier(ctx context.Context, identifier string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter UserFilter, roleMembers []uint) (*UserPage, error)
}

// OTPRepository defines access to single-use numeric codes.
type OTPRepository interface {
	Create(ctx context.Context, otp *OTP) error
	FindByCode(ctx context.Context, code, purpose string) (*OTP, error)
	// Exists reports whether an unconsumed OTP with the same code and
	// purpose is already open for the user.
	Exists(ctx context.Context, userID uint, code, purpose string) (bool, error)
	Delete(ctx context.Context, id uint) error
}

// VerificationTokenRepository defines access to single-use opaque tokens.
type VerificationTokenRepository interface {
	Create(ctx context.Context, token *VerificationToken) error
	FindByToken(ctx context.Context, token, purpose string) (*VerificationToken, error)
	Delete(ctx context.Context, id uint) error
}

// SessionRepository enforces the one-token-per-user invariant.
type SessionRepository interface {
	Create(ctx context.Context, session *SessionToken) error
	FindByToken(ctx context.Context, token string) (*SessionToken, error)
	FindByUser(ctx context.Context, userID uint) (*SessionToken, error)
	DeleteByUser(ctx context.Context, userID uint) error
}

// ProvinceRepository defines province reference data access.
type ProvinceRepository interface {
	List(ctx context.Context, search string) ([]Province, error)
	Create(ctx context.Context, province *Province) error
	FindByID(ctx context.Context, id uint) (*Province, error)
	Update(ctx context.Context, province *Province) error
	Delete(ctx context.Context, id uint) error
}

// DistrictRepository defines district reference data access.
type DistrictRepository interface {
	List(ctx context.Context, search string, provinceID uint) ([]District, error)
	Create(ctx context.Context, district *District) error
	FindByID(ctx context.Context, id uint) (*District, error)
	Update(ctx context.Context, district *District) error
	Delete(ctx context.Context, id uint) error
}

// CityRepository defines city reference data access.
type CityRepository interface {
	List(ctx context.Context, search string, districtID uint) ([]City, error)
	Create(ctx context.Context, city *City) error
	FindByID(ctx context.Context, id uint) (*City, error)
	Update(ctx context.Context, city *City) error
	Delete(ctx context.Context, id uint) error
}

// RoleRepository defines role entity access. Role membership lives in the
// policy store, not here.
type RoleRepository interface {
	List(ctx context.Context) ([]Role, error)
	Create(ctx context.Context, role *Role) error
	FindByID(ctx context.Context, id uint) (*Role, error)
	FindByNames(ctx context.Context, names []string) ([]Role, error)
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, id uint) error
}

// PermissionRepository defines permission entity access.
type PermissionRepository interface {
	List(ctx context.Context) ([]Permission, error)
	Create(ctx context.Context, permission *Permission) error
	FindByID(ctx context.Context, id uint) (*Permission, error)
	FindByNames(ctx context.Context, names []string) ([]Permission, error)
	Update(ctx context.Context, permission *Permission) error
	Delete(ctx context.Context, id uint) error
}

// HospitalUserRepository defines hospital association access.
type HospitalUserRepository interface {
	Create(ctx context.Context, hu *HospitalUser) error
	FindByUser(ctx context.Context, userID uint) (*HospitalUser, error)
	Update(ctx context.Context, hu *HospitalUser) error
}

// TxManager runs fn inside a single store transaction. Repository calls made
// with the ctx passed to fn join that transaction.
type TxManager interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ResetGrantStore records that a user completed reset verification, binding
// it to the subsequent password change. Grants are short-lived.
type ResetGrantStore interface {
	Grant(ctx context.Context, email string) error
	Consume(ctx context.Context, email string) (bool, error)
}

// OTPThrottle limits how often a fresh OTP may be requested per mobile.
type OTPThrottle interface {
	// Allow reports whether a resend is permitted and, when it is not, the
	// seconds remaining in the window.
	Allow(ctx context.Context, mobile string) (bool, int64, error)
	Mark(ctx context.Context, mobile string) error
}

// RegisterInput carries a registration profile as submitted.
type RegisterInput struct {
	FirstName  string
	MiddleName string
	LastName   string
	NepName    string
	ProvinceID uint
	DistrictID uint
	CityID     uint
	WardNo     int
	DobAD      time.Time
	DobBS      string
	Mobile     string
	Email      string
	Password   string
	Age        int
	BloodGroup string
	Gender     string
	Img        string
}

// UpdateUserInput carries a profile update. An empty Password keeps the
// stored hash; an empty Img keeps the stored avatar.
type UpdateUserInput struct {
	FirstName  string
	MiddleName string
	LastName   string
	NepName    string
	ProvinceID uint
	DistrictID uint
	CityID     uint
	WardNo     int
	DobAD      time.Time
	DobBS      string
	Mobile     string
	Email      string
	Password   string
	Age        int
	BloodGroup string
	Gender     string
	Img        string
}

// AuthService orchestrates the registration, verification, activation,
// login and password-reset flows.
type AuthService interface {
	Register(ctx context.Context, in *RegisterInput) (*User, error)
	VerifyMobile(ctx context.Context, code string) (*User, error)
	VerifyEmail(ctx context.Context, token string) (*User, error)
	Login(ctx context.Context, identifier, password string) (string, error)
	Logout(ctx context.Context, principal *Principal) error
	ResendOTP(ctx context.Context, mobile string) error
	RequestPasswordReset(ctx context.Context, identifier, channel string) error
	ResetViaOTP(ctx context.Context, code string) (*User, error)
	ResetViaToken(ctx context.Context, token string) (*User, error)
	SetNewPassword(ctx context.Context, email, password string) error
}

// VerificationLedger issues and consumes single-use verification artifacts.
type VerificationLedger interface {
	IssueOTP(ctx context.Context, userID uint, purpose string) (*OTP, error)
	IssueToken(ctx context.Context, userID uint, purpose string) (*VerificationToken, error)
	FindOTP(ctx context.Context, code, purpose string) (*OTP, error)
	FindToken(ctx context.Context, token, purpose string) (*VerificationToken, error)
	ConsumeOTP(ctx context.Context, otp *OTP) error
	ConsumeToken(ctx context.Context, token *VerificationToken) error
}

// AuthzService resolves principals from bearer tokens and answers role and
// permission predicates.
type AuthzService interface {
	Resolve(ctx context.Context, token string) (*Principal, error)
	HasAnyRole(principal *Principal, roles ...string) bool
	HasPermission(principal *Principal, permission string) (bool, error)
	// RequireAnyRole returns Forbidden when the principal holds none of the
	// given roles.
	RequireAnyRole(principal *Principal, roles ...string) error
}

// RoleAssignments is the policy store behind the authorization guard.
type RoleAssignments interface {
	RolesForUser(userID uint) ([]string, error)
	UsersForRole(role string) ([]uint, error)
	AssignRolesToUser(userID uint, roles []string) error
	SyncRolePermissions(role string, permissions []string) error
	SyncPermissionRoles(permission string, roles []string) error
	HasPermission(userID uint, permission string) (bool, error)
	RemoveRole(role string) error
	RemovePermission(permission string) error
}

// PasswordService defines password hashing operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService mints opaque session token strings.
type TokenService interface {
	Mint(user *User) (string, error)
}

// NotificationDispatcher durably records the intent to notify a user.
// Delivery is asynchronous and never blocks the request path.
type NotificationDispatcher interface {
	Enqueue(ctx context.Context, n Notification) error
}

// NotificationSender delivers a notification over a concrete channel.
type NotificationSender interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// AvatarService resolves an uploaded image to a stored filename.
type AvatarService interface {
	Store(ctx context.Context, image, mobile string) (string, error)
	URL(filename string) string
}
