package models

import "time"

type Student struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	StudentID   string    `json:"student_id" gorm:"uniqueIndex;size:20;not null"` // external code
	Name        string    `json:"name" gorm:"size:100;not null"`
	Email       string    `json:"email" gorm:"size:120;not null"`
	Phone       string    `json:"phone" gorm:"size:20"`
	Address     string    `json:"address" gorm:"type:text"`
	BirthDate   string    `json:"birth_date" gorm:"size:10"` // YYYY-MM-DD, may be empty
	ParentName  string    `json:"parent_name" gorm:"size:100"`
	ParentPhone string    `json:"parent_phone" gorm:"size:20"`
	ClassID     uint      `json:"class_id" gorm:"index;not null"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
