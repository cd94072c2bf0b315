package middleware

import (
	"context"
	"errors"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/constants"
	apierrors "github.com/gcet-campuspreneurs/campuspreneurs-api/internal/errors"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ActorResolver turns a session's user ID into an Actor.
type ActorResolver interface {
	ActorFor(ctx context.Context, userID string) (services.Actor, error)
}

// LoadActor resolves the session user, if any, and stores the Actor in the context.
// Requests without a valid session continue as anonymous.
func LoadActor(resolver ActorResolver, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := services.Actor{}

		session := sessions.Default(c)
		if userID, ok := session.Get(constants.ContextKeyUserID).(string); ok && userID != "" {
			resolved, err := resolver.ActorFor(c.Request.Context(), userID)
			switch {
			case err == nil:
				actor = resolved
				c.Set(constants.ContextKeyUserID, userID)
			case errors.Is(err, services.ErrUserNotFound):
				session.Clear()
				if err := session.Save(); err != nil {
					log.Warn("Failed to clear stale session", zap.Error(err))
				}
			default:
				log.Error("Failed to resolve session user", zap.String("user_id", userID), zap.Error(err))
				apierrors.InternalError(c, "")
				c.Abort()
				return
			}
		}

		c.Set(constants.ContextKeyActor, actor)
		c.Next()
	}
}

// RequireAuth rejects anonymous callers
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentActor(c).Authenticated() {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := CurrentActor(c)
		if !actor.Authenticated() {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !actor.Admin {
			apierrors.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentActor returns the caller stored by LoadActor, or an anonymous Actor.
func CurrentActor(c *gin.Context) services.Actor {
	if v, ok := c.Get(constants.ContextKeyActor); ok {
		if actor, ok := v.(services.Actor); ok {
			return actor
		}
	}
	return services.Actor{}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}
