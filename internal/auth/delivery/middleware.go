package delivery

import (
	"strings"

	"vidtube-backend/internal/auth/usecase"
	"vidtube-backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// AuthMiddleware gates a route on a valid access token taken from the
// accessToken cookie or the Authorization header. On success the resolved
// user is attached to the gin context; any failure short-circuits with 401.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			abortWithError(c, apperrors.ErrMissingAccessToken)
			return
		}

		user, err := authUsecase.ValidateAccessToken(c.Request.Context(), tokenString)
		if err != nil {
			abortWithError(c, apperrors.ErrInvalidAccessToken)
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if cookie, err := c.Cookie(accessTokenCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
