package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mirandac559/sistema-frequencia-escolar/middlewares"
	"github.com/mirandac559/sistema-frequencia-escolar/models"
	"github.com/mirandac559/sistema-frequencia-escolar/sessions"
)

type AuthHandler struct {
	db    *gorm.DB
	store *sessions.Store
}

func NewAuthHandler(db *gorm.DB, store *sessions.Store) *AuthHandler {
	return &AuthHandler{db: db, store: store}
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/login
//
// Unknown username, wrong password and deactivated account all yield the
// same response so usernames cannot be probed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	var user models.User
	err := h.db.Where("username = ?", req.Username).First(&user).Error
	if err != nil ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil ||
		!user.IsActive {
		return jsonError(c, http.StatusUnauthorized, "invalid credentials")
	}

	sess, err := h.store.Create(user.ID)
	if err != nil {
		return internalError(c, err)
	}
	c.SetCookie(&http.Cookie{
		Name:     sessions.CookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, user)
}

// POST /api/auth/logout
//
// Always succeeds; a missing or already-cleared session is not an error.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(sessions.CookieName); err == nil && cookie.Value != "" {
		if err := h.store.Delete(cookie.Value); err != nil {
			return internalError(c, err)
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     sessions.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, map[string]any{"message": "logged out"})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middlewares.CurrentUser(c))
}
