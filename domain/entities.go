package domain

import (
	"strings"
	"time"
)

// Blood groups accepted on registration.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Genders accepted on registration.
var Genders = []string{"male", "female", "others"}

// Artifact purposes.
const (
	PurposeActivate = "activate"
	PurposeReset    = "reset"
)

// Password reset channels.
const (
	ResetChannelSMS   = "sms"
	ResetChannelEmail = "email"
)

// Notification templates.
const (
	TemplateActivateOTP    = "otp_activate"
	TemplateActivationLink = "activation_link"
	TemplateResetOTP       = "otp_reset"
	TemplateResetLink      = "reset_link"
)

// RoleSuperAdmin guards every administrative operation.
const RoleSuperAdmin = "super admin"

// HospitalMemberRoles are the roles a user must already hold before a
// hospital can be associated with them.
var HospitalMemberRoles = []string{
	RoleSuperAdmin, "hospital admin", "doctor", "nurse", "para medic", "accountant",
}

// User represents an identity record of the platform.
type User struct {
	ID             uint
	FirstName      string
	MiddleName     string
	LastName       string
	NepName        string
	ProvinceID     uint
	DistrictID     uint
	CityID         uint
	WardNo         int
	DobAD          time.Time
	DobBS          string
	Mobile         string
	Email          string
	PasswordHash   string
	Age            int
	BloodGroup     string
	Gender         string
	Img            string
	MobileVerified bool
	EmailVerified  bool
	Status         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName joins the name parts, skipping an absent middle name.
func (u *User) FullName() string {
	if u.MiddleName == "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName + " " + u.MiddleName + " " + u.LastName
}

// CapitalizeNames upper-cases the initial of each name part.
func (u *User) CapitalizeNames() {
	u.FirstName = capitalize(u.FirstName)
	u.MiddleName = capitalize(u.MiddleName)
	u.LastName = capitalize(u.LastName)
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// OTP is a single-use six digit verification code.
type OTP struct {
	ID        uint
	UserID    uint
	Code      string
	Purpose   string
	CreatedAt time.Time
}

// VerificationToken is an opaque single-use bearer artifact used for
// email-channel verification and activation links.
type VerificationToken struct {
	ID        uint
	UserID    uint
	Token     string
	Purpose   string
	CreatedAt time.Time
}

// SessionToken is the single live access token of a user.
type SessionToken struct {
	ID        uint
	UserID    uint
	Token     string
	CreatedAt time.Time
}

// Principal is the authenticated identity resolved from a bearer token.
type Principal struct {
	User  *User
	Roles []string
}

// HasRole reports whether the principal carries the named role.
func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Province is the top level of the geographic hierarchy.
type Province struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// District belongs to a province.
type District struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	ProvinceID uint   `json:"province_id"`
}

// City belongs to a district.
type City struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	DistrictID uint   `json:"district_id"`
}

// Role is a named RBAC role. Assignments live in the policy store.
type Role struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Permission is a named RBAC permission.
type Permission struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// HospitalUser associates a user with a hospital.
type HospitalUser struct {
	ID         uint `json:"id"`
	UserID     uint `json:"user_id"`
	HospitalID uint `json:"hospital_id"`
}

// Notification is the durably recorded intent to notify a user. Delivery
// happens out of band.
type Notification struct {
	ID        string `json:"id"`
	UserID    uint   `json:"user_id"`
	Template  string `json:"template"`
	Recipient string `json:"recipient"`
	Payload   string `json:"payload,omitempty"`
}
