package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mirandac559/sistema-frequencia-escolar/models"
)

type StudentHandler struct {
	db *gorm.DB
}

func NewStudentHandler(db *gorm.DB) *StudentHandler { return &StudentHandler{db: db} }

type createStudentReq struct {
	StudentID   string `json:"student_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	BirthDate   string `json:"birth_date"`
	ParentName  string `json:"parent_name"`
	ParentPhone string `json:"parent_phone"`
	ClassID     uint   `json:"class_id" validate:"required"`
}

type updateStudentReq struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	BirthDate   *string `json:"birth_date"`
	ParentName  *string `json:"parent_name"`
	ParentPhone *string `json:"parent_phone"`
	ClassID     *uint   `json:"class_id"`
}

// GET /api/students: active students only.
func (h *StudentHandler) List(c echo.Context) error {
	var students []models.Student
	if err := h.db.Where("is_active = ?", true).Order("id ASC").Find(&students).Error; err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, students)
}

// GET /api/students/:id. Soft-deleted students stay addressable here.
func (h *StudentHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid id")
	}
	var student models.Student
	if err := h.db.First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "student not found")
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, student)
}

// POST /api/students
func (h *StudentHandler) Create(c echo.Context) error {
	var req createStudentReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	birthDate := ""
	if req.BirthDate != "" {
		d, err := parseDate(req.BirthDate)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
		}
		birthDate = d
	}

	var existing models.Student
	if err := h.db.Where("student_id = ?", req.StudentID).First(&existing).Error; err == nil {
		return jsonError(c, http.StatusBadRequest, "student id already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return internalError(c, err)
	}

	student := models.Student{
		StudentID:   req.StudentID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		BirthDate:   birthDate,
		ParentName:  req.ParentName,
		ParentPhone: req.ParentPhone,
		ClassID:     req.ClassID,
		IsActive:    true,
	}
	if err := h.db.Create(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return jsonError(c, http.StatusBadRequest, "student id already exists")
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusCreated, student)
}

// PUT /api/students/:id. Patch semantics; student_id is immutable.
func (h *StudentHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid id")
	}
	var student models.Student
	if err := h.db.First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "student not found")
		}
		return internalError(c, err)
	}

	var req updateStudentReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid payload")
	}
	if req.BirthDate != nil && *req.BirthDate != "" {
		d, err := parseDate(*req.BirthDate)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
		}
		student.BirthDate = d
	}
	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.ParentName != nil {
		student.ParentName = *req.ParentName
	}
	if req.ParentPhone != nil {
		student.ParentPhone = *req.ParentPhone
	}
	if req.ClassID != nil {
		student.ClassID = *req.ClassID
	}

	if err := h.db.Save(&student).Error; err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, student)
}

// DELETE /api/students/:id. Soft delete; attendance history keeps its
// foreign keys intact.
func (h *StudentHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid id")
	}
	var student models.Student
	if err := h.db.First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "student not found")
		}
		return internalError(c, err)
	}
	student.IsActive = false
	if err := h.db.Save(&student).Error; err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "student deleted"})
}
