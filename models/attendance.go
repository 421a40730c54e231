package models

import "time"

// AttendanceStatus is the daily status recorded for a student.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate:
		return true
	default:
		return false
	}
}

// Attendance is one record per student per calendar day. The composite
// unique index is the authority on that rule; a duplicate insert comes
// back as gorm.ErrDuplicatedKey.
type Attendance struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	StudentID  uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_attendances_student_date"`
	ClassID    uint      `json:"class_id" gorm:"index;not null"`
	Date       string    `json:"date" gorm:"size:10;not null;uniqueIndex:idx_attendances_student_date"` // YYYY-MM-DD
	Status     string    `json:"status" gorm:"size:20;not null"`
	Notes      string    `json:"notes" gorm:"type:text"`
	RecordedBy uint      `json:"recorded_by" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}
