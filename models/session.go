package models

import "time"

// Session is one server-side login session, addressed by its opaque token.
type Session struct {
	Token     string    `json:"token" gorm:"primaryKey;size:36"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) Expired() bool { return time.Now().After(s.ExpiresAt) }
