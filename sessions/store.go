// Package sessions keeps login sessions in the database, addressed by an
// opaque token carried in a cookie. Handlers get the store injected; there
// is no package-level state.
package sessions

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mirandac559/sistema-frequencia-escolar/models"
)

// CookieName is the cookie carrying the session token.
const CookieName = "session_token"

var ErrNotFound = errors.New("session not found")

type Store struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewStore(db *gorm.DB, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl}
}

func (s *Store) TTL() time.Duration { return s.ttl }

// Create opens a new session for the user and returns it.
func (s *Store) Create(userID uint) (*models.Session, error) {
	sess := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.db.Create(&sess).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

// Get resolves a token to a live session. Expired sessions are purged and
// reported as ErrNotFound.
func (s *Store) Get(token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	var sess models.Session
	if err := s.db.First(&sess, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sess.Expired() {
		_ = s.Delete(token)
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Delete removes a session. Deleting an unknown token is not an error.
func (s *Store) Delete(token string) error {
	if token == "" {
		return nil
	}
	return s.db.Delete(&models.Session{}, "token = ?", token).Error
}

// DeleteForUser drops every session bound to the user, used when an
// account is deactivated or removed.
func (s *Store) DeleteForUser(userID uint) error {
	return s.db.Delete(&models.Session{}, "user_id = ?", userID).Error
}
