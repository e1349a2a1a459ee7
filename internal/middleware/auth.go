package middleware

import (
	"errors"
	"log/slog"

	"heartsupport/internal/apperr"
	"heartsupport/internal/models"
	"heartsupport/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	CheckUserKey   = "user"
	SessionUserKey = "user_id"
)

// LoadUser resolves the session's user and stores it on the context.
// Sessions pointing at a deleted or banned user are cleared.
func LoadUser(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(SessionUserKey).(uint)
		if !ok {
			c.Next()
			return
		}

		user, err := auth.SessionUser(c.Request.Context(), userID)
		switch {
		case err == nil:
			c.Set(CheckUserKey, user)
		case errors.Is(err, apperr.ErrUnauthorized), errors.Is(err, apperr.ErrSuspended):
			session.Delete(SessionUserKey)
			if err := session.Save(); err != nil {
				slog.Warn("failed to clear session", "error", err)
			}
		default:
			slog.Error("failed to load session user", "user_id", userID, "error", err)
		}
		c.Next()
	}
}

// CurrentUser returns the user LoadUser attached, if any.
func CurrentUser(c *gin.Context) *models.User {
	u, exists := c.Get(CheckUserKey)
	if !exists {
		return nil
	}
	user, _ := u.(*models.User)
	return user
}

// AdminRequired rejects requests without an admin session.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortWithError(c, apperr.ErrUnauthorized)
			return
		}
		if !user.IsAdmin() {
			abortWithError(c, apperr.ErrForbidden)
			return
		}
		c.Next()
	}
}

func abortWithError(c *gin.Context, e *apperr.Error) {
	c.AbortWithStatusJSON(apperr.HTTPStatus(e.Kind), gin.H{
		"success": false,
		"error":   e.Kind,
		"message": e.Message,
	})
}
