package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mirandac559/sistema-frequencia-escolar/middlewares"
	"github.com/mirandac559/sistema-frequencia-escolar/models"
)

type AttendanceHandler struct {
	db *gorm.DB
}

func NewAttendanceHandler(db *gorm.DB) *AttendanceHandler { return &AttendanceHandler{db: db} }

const duplicateAttendanceMsg = "attendance already recorded for this student on this date"

type createAttendanceReq struct {
	StudentID uint   `json:"student_id" validate:"required"`
	ClassID   uint   `json:"class_id" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=present absent late"`
	Notes     string `json:"notes"`
}

type updateAttendanceReq struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// GET /api/attendance?class_id=&date=. Filters combine with AND; with no
// filters the full table comes back.
func (h *AttendanceHandler) List(c echo.Context) error {
	tx := h.db.Model(&models.Attendance{})

	if classIDStr := strings.TrimSpace(c.QueryParam("class_id")); classIDStr != "" {
		classID, err := strconv.ParseUint(classIDStr, 10, 32)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "class_id must be an integer")
		}
		tx = tx.Where("class_id = ?", classID)
	}
	if dateStr := strings.TrimSpace(c.QueryParam("date")); dateStr != "" {
		date, err := parseDate(dateStr)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		tx = tx.Where("date = ?", date)
	}

	var rows []models.Attendance
	if err := tx.Order("date ASC, id ASC").Find(&rows).Error; err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /api/attendance. One record per student per day; recorded_by is
// always the caller, never the payload.
func (h *AttendanceHandler) Create(c echo.Context) error {
	var req createAttendanceReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	var existing models.Attendance
	if err := h.db.Where("student_id = ? AND date = ?", req.StudentID, date).
		First(&existing).Error; err == nil {
		return jsonError(c, http.StatusBadRequest, duplicateAttendanceMsg)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return internalError(c, err)
	}

	user := middlewares.CurrentUser(c)
	rec := models.Attendance{
		StudentID:  req.StudentID,
		ClassID:    req.ClassID,
		Date:       date,
		Status:     req.Status,
		Notes:      req.Notes,
		RecordedBy: user.ID,
	}
	if err := h.db.Create(&rec).Error; err != nil {
		// Two concurrent creates can both pass the pre-check; the unique
		// index decides the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return jsonError(c, http.StatusBadRequest, duplicateAttendanceMsg)
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

// PUT /api/attendance/:id. Only status and notes are mutable.
func (h *AttendanceHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid id")
	}
	var rec models.Attendance
	if err := h.db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "attendance record not found")
		}
		return internalError(c, err)
	}

	var req updateAttendanceReq
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid payload")
	}
	if req.Status != nil {
		if !models.AttendanceStatus(*req.Status).Valid() {
			return jsonError(c, http.StatusBadRequest, "status must be one of: present absent late")
		}
		rec.Status = *req.Status
	}
	if req.Notes != nil {
		rec.Notes = *req.Notes
	}

	if err := h.db.Save(&rec).Error; err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// DELETE /api/attendance/:id. Hard delete.
func (h *AttendanceHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid id")
	}
	var rec models.Attendance
	if err := h.db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, http.StatusNotFound, "attendance record not found")
		}
		return internalError(c, err)
	}
	if err := h.db.Delete(&rec).Error; err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "attendance record deleted"})
}

// GET /api/attendance/statistics
func (h *AttendanceHandler) Statistics(c echo.Context) error {
	var totalClasses, totalStudents, totalTeachers int64

	if err := h.db.Model(&models.Class{}).
		Where("is_active = ?", true).Count(&totalClasses).Error; err != nil {
		return internalError(c, err)
	}
	if err := h.db.Model(&models.Student{}).
		Where("is_active = ?", true).Count(&totalStudents).Error; err != nil {
		return internalError(c, err)
	}
	if err := h.db.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleTeacher, true).
		Count(&totalTeachers).Error; err != nil {
		return internalError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"totalClasses":  totalClasses,
		"totalStudents": totalStudents,
		"totalTeachers": totalTeachers,
	})
}
