package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
	"github.com/shashankj99/med-o-sys-api-auth/internal/mocks"
)

func newAuthTestRouter(authSvc domain.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandlers(authSvc)
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/verify/mobile", h.VerifyMobile)
	r.GET("/auth/activate/:token", h.VerifyEmail)
	r.POST("/auth/otp/resend", h.ResendOTP)
	r.POST("/auth/password/forgot", h.ForgotPassword)
	r.POST("/auth/password/reset/otp", h.ResetViaOTP)
	r.GET("/auth/password/reset/:token", h.ResetViaToken)
	r.POST("/auth/password/new", h.SetNewPassword)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func validRegisterBody() map[string]any {
	return map[string]any{
		"first_name":            "ram",
		"last_name":             "shrestha",
		"nep_name":              "राम श्रेष्ठ",
		"province_id":           1,
		"district_id":           1,
		"city_id":               1,
		"ward_no":               5,
		"dob_ad":                "1995-04-12",
		"dob_bs":                "2051-12-30",
		"mobile":                "9841000000",
		"email":                 "ram@example.com",
		"password":              "secret123",
		"password_confirmation": "secret123",
		"blood_group":           "A+",
		"gender":                "male",
	}
}

func TestAuthHandlers_Register(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(body map[string]any)
		expectedStatus int
	}{
		{
			name:           "valid request",
			mutate:         func(body map[string]any) {},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "short mobile",
			mutate:         func(body map[string]any) { body["mobile"] = "98410" },
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "password mismatch",
			mutate:         func(body map[string]any) { body["password_confirmation"] = "different1" },
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "unknown blood group",
			mutate:         func(body map[string]any) { body["blood_group"] = "C+" },
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "malformed dob",
			mutate:         func(body map[string]any) { body["dob_ad"] = "12-04-1995" },
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthTestRouter(mocks.NewMockAuthService())
			body := validRegisterBody()
			tt.mutate(body)

			w := postJSON(r, "/auth/register", body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthHandlers_Register_PassesParsedInput(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	var captured *domain.RegisterInput
	authSvc.RegisterFunc = func(ctx context.Context, in *domain.RegisterInput) (*domain.User, error) {
		captured = in
		return &domain.User{ID: 42}, nil
	}
	r := newAuthTestRouter(authSvc)

	w := postJSON(r, "/auth/register", validRegisterBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if captured == nil {
		t.Fatal("expected the service to be called")
	}
	if captured.DobAD.Format("2006-01-02") != "1995-04-12" {
		t.Errorf("expected the parsed date of birth, got %v", captured.DobAD)
	}
	if !strings.Contains(w.Body.String(), `"user_id":42`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestAuthHandlers_Login(t *testing.T) {
	tests := []struct {
		name           string
		loginFunc      func(ctx context.Context, identifier, password string) (string, error)
		body           map[string]any
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success returns bearer token",
			body:           map[string]any{"user": "9841000000", "password": "secret123"},
			expectedStatus: http.StatusOK,
			expectedBody:   "mock_access_token",
		},
		{
			name: "wrong credentials",
			loginFunc: func(ctx context.Context, identifier, password string) (string, error) {
				return "", domain.Unauthenticated("the credentials didn't match")
			},
			body:           map[string]any{"user": "9841000000", "password": "wrongpass"},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "the credentials didn't match",
		},
		{
			name: "inactive account",
			loginFunc: func(ctx context.Context, identifier, password string) (string, error) {
				return "", domain.Unauthenticated("you've not activated the account yet")
			},
			body:           map[string]any{"user": "ram@example.com", "password": "secret123"},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "you've not activated the account yet",
		},
		{
			name:           "missing password",
			body:           map[string]any{"user": "9841000000"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.LoginFunc = tt.loginFunc
			r := newAuthTestRouter(authSvc)

			w := postJSON(r, "/auth/login", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedBody != "" && !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %s", tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestAuthHandlers_VerifyMobile(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.VerifyMobileFunc = func(ctx context.Context, code string) (*domain.User, error) {
		if code != "123456" {
			return nil, domain.NotFound("the code that you entered is incorrect")
		}
		return &domain.User{ID: 9, MobileVerified: true}, nil
	}
	r := newAuthTestRouter(authSvc)

	w := postJSON(r, "/auth/verify/mobile", map[string]any{"otp": "123456"})
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = postJSON(r, "/auth/verify/mobile", map[string]any{"otp": "654321"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}

	// Non-numeric codes never reach the service.
	w = postJSON(r, "/auth/verify/mobile", map[string]any{"otp": "12a456"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthHandlers_VerifyEmail(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.VerifyEmailFunc = func(ctx context.Context, token string) (*domain.User, error) {
		if token == "pending" {
			return &domain.User{ID: 2, EmailVerified: true}, nil
		}
		return &domain.User{ID: 2, EmailVerified: true, MobileVerified: true, Status: true}, nil
	}
	r := newAuthTestRouter(authSvc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/activate/abc123", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "activated successfully") {
		t.Errorf("expected the activation message, got %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/activate/pending", nil))
	if !strings.Contains(w.Body.String(), "verify your mobile number") {
		t.Errorf("expected the pending message, got %s", w.Body.String())
	}
}

func TestAuthHandlers_ResetFlow(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.ResetViaOTPFunc = func(ctx context.Context, code string) (*domain.User, error) {
		if code != "123456" {
			return nil, domain.NotFound("the OTP has already been expired")
		}
		return &domain.User{ID: 3, Email: "sita@example.com"}, nil
	}
	r := newAuthTestRouter(authSvc)

	w := postJSON(r, "/auth/password/reset/otp", map[string]any{"otp": "123456"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "sita@example.com") {
		t.Errorf("expected the account email in the response, got %s", w.Body.String())
	}

	w = postJSON(r, "/auth/password/reset/otp", map[string]any{"otp": "999999"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}

	w = postJSON(r, "/auth/password/new", map[string]any{
		"email":                 "sita@example.com",
		"password":              "newsecret1",
		"password_confirmation": "newsecret1",
	})
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthHandlers_SetNewPassword_NotGranted(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.SetNewPasswordFunc = func(ctx context.Context, email, password string) error {
		return domain.Forbidden("the password reset has not been verified for this account")
	}
	r := newAuthTestRouter(authSvc)

	w := postJSON(r, "/auth/password/new", map[string]any{
		"email":                 "sita@example.com",
		"password":              "newsecret1",
		"password_confirmation": "newsecret1",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthHandlers_ForgotPassword(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	var gotChannel string
	authSvc.RequestPasswordResetFunc = func(ctx context.Context, identifier, channel string) error {
		gotChannel = channel
		return nil
	}
	r := newAuthTestRouter(authSvc)

	w := postJSON(r, "/auth/password/forgot", map[string]any{"user": "9841000000", "channel": "sms"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotChannel != "sms" {
		t.Errorf("expected the sms channel, got %q", gotChannel)
	}

	w = postJSON(r, "/auth/password/forgot", map[string]any{"user": "9841000000", "channel": "carrier pigeon"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d: %s", w.Code, w.Body.String())
	}
}
