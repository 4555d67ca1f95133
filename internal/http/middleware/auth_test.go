package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
	"github.com/shashankj99/med-o-sys-api-auth/internal/mocks"
)

func newGuardedRouter(authzSvc domain.AuthzService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := NewAuthMW(authzSvc)
	r.GET("/guarded", mw.Handler(), func(c *gin.Context) {
		p := c.MustGet("principal").(*domain.Principal)
		c.JSON(http.StatusOK, gin.H{"data": p.User.Email})
	})
	r.POST("/guarded", mw.Handler(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "ok"})
	})
	return r
}

func resolveKnown(token string) func(ctx context.Context, t string) (*domain.Principal, error) {
	return func(ctx context.Context, t string) (*domain.Principal, error) {
		if t != token {
			return nil, domain.Unauthenticated("unauthorized")
		}
		return &domain.Principal{
			User:  &domain.User{ID: 1, Email: "ram@example.com"},
			Roles: []string{"doctor"},
		}, nil
	}
}

func TestAuthMW_MissingToken(t *testing.T) {
	r := newGuardedRouter(mocks.NewMockAuthzService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Authorization header parameter is required") {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestAuthMW_UnknownToken(t *testing.T) {
	r := newGuardedRouter(mocks.NewMockAuthzService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unauthorized") {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestAuthMW_StoreFailure(t *testing.T) {
	authzSvc := mocks.NewMockAuthzService()
	authzSvc.ResolveFunc = func(ctx context.Context, token string) (*domain.Principal, error) {
		return nil, domain.Internal("session lookup failed", nil)
	}
	r := newGuardedRouter(authzSvc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer any")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}

func TestAuthMW_TokenSources(t *testing.T) {
	authzSvc := mocks.NewMockAuthzService()
	authzSvc.ResolveFunc = resolveKnown("valid_token")
	r := newGuardedRouter(authzSvc)

	tests := []struct {
		name    string
		request func() *http.Request
	}{
		{
			name: "bearer header",
			request: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
				req.Header.Set("Authorization", "Bearer valid_token")
				return req
			},
		},
		{
			name: "raw header",
			request: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
				req.Header.Set("Authorization", "valid_token")
				return req
			},
		},
		{
			name: "query parameter",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/guarded?access_token=valid_token", nil)
			},
		},
		{
			name: "form field",
			request: func() *http.Request {
				form := url.Values{"access_token": {"valid_token"}}
				req := httptest.NewRequest(http.MethodPost, "/guarded", strings.NewReader(form.Encode()))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				return req
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, tt.request())
			if w.Code != http.StatusOK {
				t.Errorf("expected status 200, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthMW_SetsPrincipal(t *testing.T) {
	authzSvc := mocks.NewMockAuthzService()
	authzSvc.ResolveFunc = resolveKnown("valid_token")
	r := newGuardedRouter(authzSvc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer valid_token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ram@example.com") {
		t.Errorf("expected the handler to see the resolved principal, got %s", w.Body.String())
	}
}
