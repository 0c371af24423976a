package middleware

import (
	"context"
	"strings"

	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// AuthCookieName is the cookie checked when no Authorization header is sent
const AuthCookieName = "auth_token"

// AuthMiddleware validates the session token and puts the caller's identity
// on both the gin context and the request context.
func AuthMiddleware(authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Error(c, apperror.Unauthorized("Authorization header or auth_token cookie required"))
			c.Abort()
			return
		}

		claims, err := authUC.ParseToken(tokenString)
		if err != nil {
			response.Error(c, apperror.Unauthorized("Invalid token"))
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), claims.UserID)
		c.Set(string(domain.KeyUserEmail), claims.Email)
		c.Set(string(domain.KeyUserRole), claims.Role)

		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, domain.KeyUserRole, claims.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
			return strings.TrimSpace(header[7:])
		}
		return ""
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie
	}
	return ""
}
