package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// AuthHandlers handles the registration, verification, login and
// password-reset HTTP requests.
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	FirstName            string `json:"first_name" binding:"required,max=50"`
	MiddleName           string `json:"middle_name" binding:"omitempty,max=50"`
	LastName             string `json:"last_name" binding:"required,max=50"`
	NepName              string `json:"nep_name" binding:"omitempty,max=150"`
	ProvinceID           uint   `json:"province_id" binding:"required"`
	DistrictID           uint   `json:"district_id" binding:"required"`
	CityID               uint   `json:"city_id" binding:"required"`
	WardNo               int    `json:"ward_no" binding:"required,min=1"`
	DobAD                string `json:"dob_ad" binding:"required"`
	DobBS                string `json:"dob_bs" binding:"required"`
	Mobile               string `json:"mobile" binding:"required,len=10,numeric"`
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	Age                  int    `json:"age" binding:"omitempty,min=0"`
	BloodGroup           string `json:"blood_group" binding:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Gender               string `json:"gender" binding:"required,oneof=male female others"`
	Img                  string `json:"img"`
}

// LoginRequest represents a login request. User matches the mobile number
// or the email address.
type LoginRequest struct {
	User     string `json:"user" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VerifyMobileRequest represents an OTP verification request
type VerifyMobileRequest struct {
	OTP string `json:"otp" binding:"required,len=6,numeric"`
}

// ResendOTPRequest represents an OTP resend request
type ResendOTPRequest struct {
	Mobile string `json:"mobile" binding:"required,len=10,numeric"`
}

// ForgotPasswordRequest represents a password reset request
type ForgotPasswordRequest struct {
	User    string `json:"user" binding:"required"`
	Channel string `json:"channel" binding:"required,oneof=sms email"`
}

// ResetOTPRequest represents the OTP leg of the reset flow
type ResetOTPRequest struct {
	OTP string `json:"otp" binding:"required,len=6,numeric"`
}

// NewPasswordRequest represents the final leg of the reset flow
type NewPasswordRequest struct {
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	dob, err := time.Parse("2006-01-02", req.DobAD)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "the dob ad must be a valid date in YYYY-MM-DD format"})
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &domain.RegisterInput{
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		NepName:    req.NepName,
		ProvinceID: req.ProvinceID,
		DistrictID: req.DistrictID,
		CityID:     req.CityID,
		WardNo:     req.WardNo,
		DobAD:      dob,
		DobBS:      req.DobBS,
		Mobile:     req.Mobile,
		Email:      req.Email,
		Password:   req.Password,
		Age:        req.Age,
		BloodGroup: req.BloodGroup,
		Gender:     req.Gender,
		Img:        req.Img,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"message": "User registered successfully. Please verify your mobile number.",
			"user_id": user.ID,
		},
	})
}

// VerifyMobile handles OTP verification of the mobile channel
func (h *AuthHandlers) VerifyMobile(c *gin.Context) {
	var req VerifyMobileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.authSvc.VerifyMobile(c.Request.Context(), req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Mobile number verified successfully. Please check your email for the activation link.",
			"user_id": user.ID,
		},
	})
}

// VerifyEmail handles the activation link of the email channel
func (h *AuthHandlers) VerifyEmail(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "the token parameter is required"})
		return
	}

	user, err := h.authSvc.VerifyEmail(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Email verified successfully. Please verify your mobile number to activate the account."
	if user.Status {
		message = "Your account has been activated successfully."
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": message,
			"user_id": user.ID,
		},
	})
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	token, err := h.authSvc.Login(c.Request.Context(), req.User, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token": token,
			"token_type":   "Bearer",
		},
	})
}

// Logout handles user logout (requires authentication)
func (h *AuthHandlers) Logout(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), principal); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Logged out successfully"},
	})
}

// ResendOTP handles re-sending an activation code
func (h *AuthHandlers) ResendOTP(c *gin.Context) {
	var req ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if err := h.authSvc.ResendOTP(c.Request.Context(), req.Mobile); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "OTP sent successfully"},
	})
}

// ForgotPassword handles a password reset request over either channel
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if err := h.authSvc.RequestPasswordReset(c.Request.Context(), req.User, req.Channel); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Password reset instructions sent successfully"},
	})
}

// ResetViaOTP handles the OTP leg of the reset flow
func (h *AuthHandlers) ResetViaOTP(c *gin.Context) {
	var req ResetOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.authSvc.ResetViaOTP(c.Request.Context(), req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Reset request verified. You can now set a new password.",
			"email":   user.Email,
		},
	})
}

// ResetViaToken handles the link leg of the reset flow
func (h *AuthHandlers) ResetViaToken(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "the token parameter is required"})
		return
	}

	user, err := h.authSvc.ResetViaToken(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Reset request verified. You can now set a new password.",
			"email":   user.Email,
		},
	})
}

// SetNewPassword handles the final leg of the reset flow
func (h *AuthHandlers) SetNewPassword(c *gin.Context) {
	var req NewPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if err := h.authSvc.SetNewPassword(c.Request.Context(), req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Password changed successfully"},
	})
}
