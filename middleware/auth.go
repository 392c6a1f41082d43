package middleware

import (
	"strings"

	"safarexpress/models"
	"safarexpress/services/token"
	"safarexpress/utils"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

var (
	errMissingToken = utils.Unauthorized("missing_token", "Missing access token.")
	errInvalidToken = utils.Unauthorized("invalid_token", "Invalid or expired access token.")
	errForbidden    = utils.Forbidden("forbidden", "Insufficient permissions for this operation.")
)

// AccessTokenVerifier is satisfied by *token.Service.
type AccessTokenVerifier interface {
	VerifyAccessToken(raw string) (*token.Claims, error)
}

// Authenticate requires a valid bearer access token and stores the caller
// as the request's Actor.
func Authenticate(verifier AccessTokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, errMissingToken)
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if raw == "" {
			utils.RespondError(c, errMissingToken)
			return
		}

		claims, err := verifier.VerifyAccessToken(raw)
		if err != nil {
			utils.RespondError(c, errInvalidToken)
			return
		}

		c.Set(actorKey, models.Actor{UserID: claims.UserID(), Role: claims.Role, Email: claims.Email})
		c.Next()
	}
}

// RequireRole must run after Authenticate.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			utils.RespondError(c, errMissingToken)
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		utils.RespondError(c, errForbidden)
	}
}

// ActorFrom returns the authenticated caller, if any.
func ActorFrom(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
