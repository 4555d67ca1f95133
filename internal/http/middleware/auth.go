package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// AuthMW resolves bearer tokens into principals for guarded routes.
type AuthMW struct {
	authzSvc domain.AuthzService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(authzSvc domain.AuthzService) *AuthMW {
	return &AuthMW{authzSvc: authzSvc}
}

// Handler returns the authentication middleware function. The token is read
// from the Authorization header or, failing that, an access_token query or
// form field.
func (mw *AuthMW) Handler() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Authorization header parameter is required"})
			c.Abort()
			return
		}

		principal, err := mw.authzSvc.Resolve(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			if domain.KindOf(err) == domain.KindInternal {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": domain.MessageOf(err)})
			c.Abort()
			return
		}

		c.Set("principal", principal)
		c.Next()
	})
}

func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return authHeader
	}
	if token := c.Query("access_token"); token != "" {
		return token
	}
	return c.PostForm("access_token")
}
