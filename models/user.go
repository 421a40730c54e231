package models

import "time"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:60;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         string    `json:"role" gorm:"size:20;not null;default:teacher"` // "admin" | "teacher"
	Email        string    `json:"email" gorm:"size:120"`
	FullName     string    `json:"full_name" gorm:"size:120"`
	IsActive     bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
