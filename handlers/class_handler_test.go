package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mirandac559/sistema-frequencia-escolar/models"
)

func TestCreateClassDefaults(t *testing.T) {
	e, db := setupTest(t)
	cookie := login(t, e, "admin", "admin123")

	rec := doReq(e, http.MethodPost, "/api/classes", map[string]any{
		"name":    "5th-A",
		"grade":   "5º Ano",
		"teacher": "Maria Silva",
	}, cookie)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created models.Class
	decode(t, rec, &created)
	assert.Equal(t, time.Now().Year(), created.Year)
	assert.True(t, created.IsActive)

	var school models.School
	assert.NoError(t, db.Order("id ASC").First(&school).Error)
	assert.Equal(t, school.ID, created.SchoolID)
}

func TestCreateClassRequiresAdmin(t *testing.T) {
	e, _ := setupTest(t)
	profCookie := login(t, e, "professor", "prof123")

	rec := doReq(e, http.MethodPost, "/api/classes", map[string]any{
		"name": "X", "grade": "1", "teacher": "T",
	}, profCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestClassListVisibleToTeachers(t *testing.T) {
	e, _ := setupTest(t)
	profCookie := login(t, e, "professor", "prof123")

	rec := doReq(e, http.MethodGet, "/api/classes", nil, profCookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	var classes []models.Class
	decode(t, rec, &classes)
	// seeded default class
	assert.NotEmpty(t, classes)
}

func TestSoftDeletedClassHiddenFromListButAddressable(t *testing.T) {
	e, _ := setupTest(t)
	cookie := login(t, e, "admin", "admin123")

	rec := doReq(e, http.MethodPost, "/api/classes", map[string]any{
		"name": "Extinta", "grade": "3º Ano", "teacher": "T",
	}, cookie)
	assert.Equal(t, http.StatusCreated, rec.Code)
	var created models.Class
	decode(t, rec, &created)

	rec = doReq(e, http.MethodDelete, "/api/classes/"+itoa(created.ID), nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doReq(e, http.MethodGet, "/api/classes", nil, cookie)
	var classes []models.Class
	decode(t, rec, &classes)
	for _, cl := range classes {
		assert.NotEqual(t, created.ID, cl.ID)
	}

	rec = doReq(e, http.MethodGet, "/api/classes/"+itoa(created.ID), nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	var got models.Class
	decode(t, rec, &got)
	assert.False(t, got.IsActive)
}

// student_count counts every student row of the class, soft-deleted ones
// included.
func TestStudentCountIncludesInactiveStudents(t *testing.T) {
	e, _ := setupTest(t)
	cookie := login(t, e, "admin", "admin123")

	rec := doReq(e, http.MethodPost, "/api/classes", map[string]any{
		"name": "Contagem", "grade": "2º Ano", "teacher": "T",
	}, cookie)
	var class models.Class
	decode(t, rec, &class)

	var first models.Student
	for i, code := range []string{"CT001", "CT002"} {
		rec = doReq(e, http.MethodPost, "/api/students", map[string]any{
			"student_id": code,
			"name":       "Aluno " + code,
			"email":      code + "@escola.br",
			"class_id":   class.ID,
		}, cookie)
		assert.Equal(t, http.StatusCreated, rec.Code)
		if i == 0 {
			decode(t, rec, &first)
		}
	}

	rec = doReq(e, http.MethodDelete, "/api/students/"+itoa(first.ID), nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doReq(e, http.MethodGet, "/api/classes/"+itoa(class.ID), nil, cookie)
	var got models.Class
	decode(t, rec, &got)
	assert.Equal(t, int64(2), got.StudentCount)
}

func TestClassPatchKeepsOmittedFields(t *testing.T) {
	e, _ := setupTest(t)
	cookie := login(t, e, "admin", "admin123")

	rec := doReq(e, http.MethodPost, "/api/classes", map[string]any{
		"name":        "Original",
		"grade":       "4º Ano",
		"teacher":     "Ana",
		"description": "antes",
	}, cookie)
	var created models.Class
	decode(t, rec, &created)

	rec = doReq(e, http.MethodPut, "/api/classes/"+itoa(created.ID), map[string]any{
		"teacher": "Beatriz",
	}, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	var after models.Class
	decode(t, rec, &after)
	assert.Equal(t, "Beatriz", after.Teacher)
	assert.Equal(t, created.Name, after.Name)
	assert.Equal(t, created.Grade, after.Grade)
	assert.Equal(t, created.Year, after.Year)
	assert.Equal(t, created.Description, after.Description)
}

func TestUpdateMissingClassIs404(t *testing.T) {
	e, _ := setupTest(t)
	cookie := login(t, e, "admin", "admin123")

	rec := doReq(e, http.MethodPut, "/api/classes/99999", map[string]any{"name": "x"}, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
