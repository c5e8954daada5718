package middlewares

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"homeschool/internal/apperrors"
	"homeschool/internal/repositories"
	"homeschool/internal/responses"
	"homeschool/internal/utils"
)

const userIDKey = "userId"

// Authenticate validates the Bearer access token, rejects blacklisted
// jtis (logged-out tokens) and stores the user ID in the context.
func Authenticate(blacklist *repositories.RedisRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, apperrors.Unauthorized("missing Authorization header"))
			return
		}

		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(c, apperrors.Unauthorized("invalid Authorization format"))
			return
		}

		claims, err := utils.VerifyJWT(parts[1], utils.AccessTokenSecret)
		if err != nil {
			if errors.Is(err, utils.ErrTokenExpired) {
				abort(c, apperrors.TokenExpired())
				return
			}
			abort(c, apperrors.Unauthorized("invalid token"))
			return
		}

		if blacklist != nil {
			revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				abort(c, apperrors.Unauthorized("token has been revoked"))
				return
			}
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			abort(c, apperrors.Unauthorized("invalid token subject"))
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	responses.Fail(c, err)
	c.Abort()
}

// CurrentUserID returns the authenticated user's ID set by Authenticate.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
