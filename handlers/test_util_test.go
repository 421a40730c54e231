package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mirandac559/sistema-frequencia-escolar/database"
	"github.com/mirandac559/sistema-frequencia-escolar/handlers"
	"github.com/mirandac559/sistema-frequencia-escolar/routes"
	"github.com/mirandac559/sistema-frequencia-escolar/sessions"
)

// setupTest builds a server on an in-memory database with the default
// seed data (admin/admin123, professor/prof123, one school, one class).
func setupTest(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap database: %v", err)
	}
	// the in-memory database lives per connection
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store := sessions.NewStore(db, time.Hour)

	e := echo.New()
	e.Validator = handlers.NewValidator()
	routes.Register(e, db, store)
	return e, db
}

func doReq(e *echo.Echo, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// login authenticates and returns the session cookie.
func login(t *testing.T, e *echo.Echo, username, password string) *http.Cookie {
	t.Helper()
	rec := doReq(e, http.MethodPost, "/api/auth/login", map[string]any{
		"username": username,
		"password": password,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", username, rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessions.CookieName {
			return c
		}
	}
	t.Fatalf("login %s: no session cookie", username)
	return nil
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
