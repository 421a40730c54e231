// Creates an admin account from the command line, for recovering an
// installation whose seeded admin was removed.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mirandac559/sistema-frequencia-escolar/config"
	"github.com/mirandac559/sistema-frequencia-escolar/database"
	"github.com/mirandac559/sistema-frequencia-escolar/models"
)

func main() {
	username := flag.String("username", "admin", "username for the new admin")
	password := flag.String("password", "", "password for the new admin (required)")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "usage: create_admin -username <name> -password <password>")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}

	var existing models.User
	err = db.Where("username = ?", *username).First(&existing).Error
	if err == nil {
		log.WithField("username", *username).Warn("user already exists")
		os.Exit(0)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.WithError(err).Fatal("failed to query users")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("failed to hash password")
	}
	u := models.User{
		Username:     *username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&u).Error; err != nil {
		log.WithError(err).Fatal("failed to insert admin")
	}
	log.WithField("username", u.Username).Info("admin user created")
}
