package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

func jsonError(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]any{"error": msg})
}

// internalError logs the underlying cause and returns a sanitized 500.
func internalError(c echo.Context, err error) error {
	log.WithError(err).WithFields(log.Fields{
		"method": c.Request().Method,
		"path":   c.Path(),
	}).Error("request failed")
	return jsonError(c, http.StatusInternalServerError, "internal error")
}

func parseID(c echo.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

// parseDate accepts YYYY-MM-DD only and returns it normalized.
func parseDate(s string) (string, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", err
	}
	return t.Format(dateLayout), nil
}
