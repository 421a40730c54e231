package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mirandac559/sistema-frequencia-escolar/models"
)

type ClassHandler struct {
	db *gorm.DB
}

func NewClassHandler(db *gorm.DB) *ClassHandler { return &ClassHandler{db: db} }

type createClassReq struct {
	Name        string `json:"name" validate:"required"`
	Grade       string `json:"grade" validate:"required"`
	Year        int    `json:"year"`
	Teacher     string `json:"teacher" validate:"required"`
	Description string `json:"description"`
	SchoolID    uint   `json:"school_id"`
}

type updateClassReq struct {
	Name        *string `json:"name"`
	Grade       *string `json:"grade"`
	Year        *int    `json:"year"`
	Teacher     *string `json:"teacher"`
	Description *string `json:"description"`
	SchoolID    *uint   `json:"school_id"`
}

// GET /api/classes: active classes only.
func (h *ClassHandler) List(c echo.Context) error {
	var classes []models.Class
	if err := h.db.Where("is_active = ?", true).Order("id ASC").Find(&classes).Error; err != nil {
		return internalError(c, err)
	}
	if err := h.fillStudentCounts(classes); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, classes)
}

// GET /api/classes/:id. Soft-deleted classes stay addressable here.
func (h *ClassHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid id")
	}
	var class models.Class
	if err := h.db.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "class not found")
		}
		return internalError(c, err)
	}
	if err := h.countStudents(&class); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, class)
}

// POST /api/classes
func (h *ClassHandler) Create(c echo.Context) error {
	var req createClassReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}
	schoolID := req.SchoolID
	if schoolID == 0 {
		// fall back to the bootstrap school
		var school models.School
		if err := h.db.Order("id ASC").First(&school).Error; err != nil {
			return jsonError(c, http.StatusBadRequest, "no school registered")
		}
		schoolID = school.ID
	}

	class := models.Class{
		Name:        req.Name,
		Grade:       req.Grade,
		Year:        year,
		Teacher:     req.Teacher,
		Description: req.Description,
		SchoolID:    schoolID,
		IsActive:    true,
	}
	if err := h.db.Create(&class).Error; err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusCreated, class)
}

// PUT /api/classes/:id. Patch semantics.
func (h *ClassHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid id")
	}
	var class models.Class
	if err := h.db.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "class not found")
		}
		return internalError(c, err)
	}

	var req updateClassReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid payload")
	}
	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.Grade != nil {
		class.Grade = *req.Grade
	}
	if req.Year != nil {
		class.Year = *req.Year
	}
	if req.Teacher != nil {
		class.Teacher = *req.Teacher
	}
	if req.Description != nil {
		class.Description = *req.Description
	}
	if req.SchoolID != nil {
		class.SchoolID = *req.SchoolID
	}

	if err := h.db.Save(&class).Error; err != nil {
		return internalError(c, err)
	}
	if err := h.countStudents(&class); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, class)
}

// DELETE /api/classes/:id. Soft delete, the row stays for history.
func (h *ClassHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid id")
	}
	var class models.Class
	if err := h.db.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "class not found")
		}
		return internalError(c, err)
	}
	class.IsActive = false
	if err := h.db.Save(&class).Error; err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "class deleted"})
}

// countStudents counts every student row of the class, soft-deleted ones
// included (kept as-is from the original system).
func (h *ClassHandler) countStudents(class *models.Class) error {
	return h.db.Model(&models.Student{}).
		Where("class_id = ?", class.ID).
		Count(&class.StudentCount).Error
}

func (h *ClassHandler) fillStudentCounts(classes []models.Class) error {
	if len(classes) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(classes))
	for i := range classes {
		ids = append(ids, classes[i].ID)
	}
	type pair struct {
		ClassID uint
		N       int64
	}
	var pairs []pair
	err := h.db.Model(&models.Student{}).
		Select("class_id, COUNT(*) AS n").
		Where("class_id IN ?", ids).
		Group("class_id").
		Scan(&pairs).Error
	if err != nil {
		return err
	}
	counts := make(map[uint]int64, len(pairs))
	for _, p := range pairs {
		counts[p.ClassID] = p.N
	}
	for i := range classes {
		classes[i].StudentCount = counts[classes[i].ID]
	}
	return nil
}
