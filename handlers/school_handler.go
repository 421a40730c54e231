package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mirandac559/sistema-frequencia-escolar/models"
)

type SchoolHandler struct {
	db *gorm.DB
}

func NewSchoolHandler(db *gorm.DB) *SchoolHandler { return &SchoolHandler{db: db} }

type createSchoolReq struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// GET /api/schools
func (h *SchoolHandler) List(c echo.Context) error {
	var schools []models.School
	if err := h.db.Order("id ASC").Find(&schools).Error; err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, schools)
}

// POST /api/schools
func (h *SchoolHandler) Create(c echo.Context) error {
	var req createSchoolReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	school := models.School{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	if err := h.db.Create(&school).Error; err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusCreated, school)
}
