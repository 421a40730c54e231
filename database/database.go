package database

import (
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mirandac559/sistema-frequencia-escolar/config"
	"github.com/mirandac559/sistema-frequencia-escolar/models"
)

// Connect opens the Postgres database and runs migrations. TranslateError
// is on so unique-index violations surface as gorm.ErrDuplicatedKey.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.School{},
		&models.Class{},
		&models.Student{},
		&models.Attendance{},
		&models.Session{},
	)
}

// Seed creates the default admin/teacher accounts and a default school and
// class when they are missing. Safe to run on every start.
func Seed(db *gorm.DB) error {
	if err := seedUser(db, "admin", "admin123", models.RoleAdmin); err != nil {
		return err
	}
	if err := seedUser(db, "professor", "prof123", models.RoleTeacher); err != nil {
		return err
	}

	var school models.School
	if err := db.First(&school).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		school = models.School{
			Name:    "Escola Exemplo",
			Address: "Rua das Flores, 123",
			Phone:   "(11) 1234-5678",
			Email:   "contato@escolaexemplo.com.br",
		}
		if err := db.Create(&school).Error; err != nil {
			return err
		}
		log.WithField("school", school.Name).Info("seeded default school")
	}

	var class models.Class
	if err := db.First(&class).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		class = models.Class{
			Name:        "Turma A",
			Grade:       "5º Ano",
			Year:        time.Now().Year(),
			Teacher:     "Professor Exemplo",
			Description: "Turma do 5º ano do ensino fundamental",
			SchoolID:    school.ID,
			IsActive:    true,
		}
		if err := db.Create(&class).Error; err != nil {
			return err
		}
		log.WithField("class", class.Name).Info("seeded default class")
	}
	return nil
}

func seedUser(db *gorm.DB, username, password, role string) error {
	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(&u).Error; err != nil {
		return err
	}
	log.WithFields(log.Fields{"username": username, "role": role}).Info("seeded default user")
	return nil
}
