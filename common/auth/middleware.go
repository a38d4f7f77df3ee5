package auth

import (
	"context"
	"strings"

	"github.com/Aidin1998/marketgw/common/apiutil"
	apperrors "github.com/Aidin1998/marketgw/common/errors"
	"github.com/Aidin1998/marketgw/pkg/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// userKey is the gin context key holding the authenticated principal
const userKey = "auth.user"

// Authenticator resolves a bearer token into a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Middleware admits requests carrying a valid bearer token for an active
// principal. Missing or invalid tokens get 401 with a Bearer challenge; a
// disabled principal gets 400.
func Middleware(logger *zap.Logger, authenticator Authenticator) gin.HandlerFunc {
	logger = logger.Named("auth")

	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apiutil.WriteError(c, logger, apperrors.ErrInvalidToken)
			return
		}

		user, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("bearer token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			apiutil.WriteError(c, logger, apperrors.ErrInvalidToken)
			return
		}

		if user.Disabled {
			apiutil.WriteError(c, logger, apperrors.ErrInactiveAccount)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the principal admitted by Middleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// bearerToken extracts the credential from "Bearer <token>". The scheme is
// case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
