package models

import "time"

type Class struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Grade       string    `json:"grade" gorm:"size:50;not null"`
	Year        int       `json:"year" gorm:"not null"`
	Teacher     string    `json:"teacher" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"type:text"`
	SchoolID    uint      `json:"school_id" gorm:"index;not null"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Counts every student row referencing this class, soft-deleted
	// included. Filled by the handler, not persisted.
	StudentCount int64 `json:"student_count" gorm:"-"`
}
