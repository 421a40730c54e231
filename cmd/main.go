package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/mirandac559/sistema-frequencia-escolar/config"
	"github.com/mirandac559/sistema-frequencia-escolar/database"
	"github.com/mirandac559/sistema-frequencia-escolar/handlers"
	"github.com/mirandac559/sistema-frequencia-escolar/routes"
	"github.com/mirandac559/sistema-frequencia-escolar/sessions"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}
	if err := database.Seed(db); err != nil {
		log.WithError(err).Fatal("failed to seed database")
	}

	store := sessions.NewStore(db, time.Duration(cfg.SessionTTLHours)*time.Hour)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	routes.Register(e, db, store)

	addr := ":" + cfg.AppPort
	log.WithField("addr", addr).Info("server listening")
	if err := e.Start(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
