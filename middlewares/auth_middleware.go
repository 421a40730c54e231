package middlewares

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mirandac559/sistema-frequencia-escolar/models"
	"github.com/mirandac559/sistema-frequencia-escolar/sessions"
)

const userContextKey = "auth.user"

// RequireUser resolves the session cookie to an active user and attaches
// it to the context. The active flag is re-checked on every request, so a
// deactivated account loses its existing sessions immediately; the stale
// session row is dropped on the way out.
func RequireUser(db *gorm.DB, store *sessions.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(sessions.CookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, map[string]any{"error": "authentication required"})
			}
			sess, err := store.Get(cookie.Value)
			if err != nil {
				if errors.Is(err, sessions.ErrNotFound) {
					return c.JSON(http.StatusUnauthorized, map[string]any{"error": "authentication required"})
				}
				return c.JSON(http.StatusInternalServerError, map[string]any{"error": "internal error"})
			}

			var user models.User
			if err := db.First(&user, sess.UserID).Error; err != nil {
				_ = store.Delete(sess.Token)
				return c.JSON(http.StatusUnauthorized, map[string]any{"error": "authentication required"})
			}
			if !user.IsActive {
				_ = store.Delete(sess.Token)
				return c.JSON(http.StatusUnauthorized, map[string]any{"error": "authentication required"})
			}

			c.Set(userContextKey, &user)
			return next(c)
		}
	}
}

// RequireAdmin gates a route to admin users. Chain after RequireUser.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil || !user.IsAdmin() {
				return c.JSON(http.StatusForbidden, map[string]any{"error": "access denied"})
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user set by RequireUser, or nil.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}
