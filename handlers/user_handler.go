package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mirandac559/sistema-frequencia-escolar/middlewares"
	"github.com/mirandac559/sistema-frequencia-escolar/models"
	"github.com/mirandac559/sistema-frequencia-escolar/sessions"
)

type UserHandler struct {
	db    *gorm.DB
	store *sessions.Store
}

func NewUserHandler(db *gorm.DB, store *sessions.Store) *UserHandler {
	return &UserHandler{db: db, store: store}
}

type createUserReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=admin teacher"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type updateUserReq struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	IsActive *bool   `json:"is_active"`
}

// GET /api/users: unlike the other list endpoints this includes inactive
// accounts, so admins can reactivate them.
func (h *UserHandler) List(c echo.Context) error {
	var users []models.User
	if err := h.db.Order("id ASC").Find(&users).Error; err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// POST /api/users
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	var existing models.User
	if err := h.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return jsonError(c, http.StatusBadRequest, "username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return internalError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return internalError(c, err)
	}
	role := req.Role
	if role == "" {
		role = models.RoleTeacher
	}
	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		Email:        req.Email,
		FullName:     req.FullName,
		IsActive:     true,
	}
	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return jsonError(c, http.StatusBadRequest, "username already exists")
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// PUT /api/users/:id. Patch semantics, absent fields keep their value.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid id")
	}
	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "user not found")
		}
		return internalError(c, err)
	}

	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid payload")
	}
	if req.Role != nil && !(*req.Role == models.RoleAdmin || *req.Role == models.RoleTeacher) {
		return jsonError(c, http.StatusBadRequest, "role must be one of: admin teacher")
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return internalError(c, err)
		}
		user.PasswordHash = string(hash)
	}

	if err := h.db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return jsonError(c, http.StatusBadRequest, "username already exists")
		}
		return internalError(c, err)
	}
	// A deactivated account must lose its live sessions right away.
	if req.IsActive != nil && !*req.IsActive {
		if err := h.store.DeleteForUser(user.ID); err != nil {
			return internalError(c, err)
		}
	}
	return c.JSON(http.StatusOK, user)
}

// DELETE /api/users/:id. Hard delete; admins cannot delete themselves.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid id")
	}
	current := middlewares.CurrentUser(c)
	if current != nil && current.ID == id {
		return jsonError(c, http.StatusBadRequest, "cannot delete your own account")
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "user not found")
		}
		return internalError(c, err)
	}
	if err := h.db.Delete(&user).Error; err != nil {
		return internalError(c, err)
	}
	if err := h.store.DeleteForUser(user.ID); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "user deleted"})
}
