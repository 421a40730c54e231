package routes

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mirandac559/sistema-frequencia-escolar/handlers"
	"github.com/mirandac559/sistema-frequencia-escolar/middlewares"
	"github.com/mirandac559/sistema-frequencia-escolar/sessions"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, db *gorm.DB, store *sessions.Store) {
	auth := handlers.NewAuthHandler(db, store)
	users := handlers.NewUserHandler(db, store)
	classes := handlers.NewClassHandler(db)
	students := handlers.NewStudentHandler(db)
	attendance := handlers.NewAttendanceHandler(db)
	schools := handlers.NewSchoolHandler(db)

	requireUser := middlewares.RequireUser(db, store)
	requireAdmin := middlewares.RequireAdmin()

	e.GET("/healthz", handlers.Health)

	api := e.Group("/api")

	// Auth. Logout stays unguarded so it is idempotent: clearing an
	// already-dead session must still succeed.
	api.POST("/auth/login", auth.Login)
	api.POST("/auth/logout", auth.Logout)
	api.GET("/auth/me", auth.Me, requireUser)

	// Users (admin only, including the listing).
	u := api.Group("/users", requireUser, requireAdmin)
	u.GET("", users.List)
	u.POST("", users.Create)
	u.PUT("/:id", users.Update)
	u.DELETE("/:id", users.Delete)

	// Classes: reads for any authenticated caller, writes admin only.
	api.GET("/classes", classes.List, requireUser)
	api.GET("/classes/:id", classes.Get, requireUser)
	api.POST("/classes", classes.Create, requireUser, requireAdmin)
	api.PUT("/classes/:id", classes.Update, requireUser, requireAdmin)
	api.DELETE("/classes/:id", classes.Delete, requireUser, requireAdmin)

	// Students: same split as classes.
	api.GET("/students", students.List, requireUser)
	api.GET("/students/:id", students.Get, requireUser)
	api.POST("/students", students.Create, requireUser, requireAdmin)
	api.PUT("/students/:id", students.Update, requireUser, requireAdmin)
	api.DELETE("/students/:id", students.Delete, requireUser, requireAdmin)

	// Attendance: any authenticated caller, teacher or admin.
	a := api.Group("/attendance", requireUser)
	a.GET("", attendance.List)
	a.POST("", attendance.Create)
	a.GET("/statistics", attendance.Statistics)
	a.PUT("/:id", attendance.Update)
	a.DELETE("/:id", attendance.Delete)

	// Schools.
	api.GET("/schools", schools.List, requireUser)
	api.POST("/schools", schools.Create, requireUser, requireAdmin)
}
