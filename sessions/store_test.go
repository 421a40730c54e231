package sessions_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mirandac559/sistema-frequencia-escolar/models"
	"github.com/mirandac559/sistema-frequencia-escolar/sessions"
)

func newStore(t *testing.T, ttl time.Duration) (*sessions.Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return sessions.NewStore(db, ttl), db
}

func TestCreateAndGet(t *testing.T) {
	store, _ := newStore(t, time.Hour)

	sess, err := store.Create(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, uint(42), sess.UserID)

	got, err := store.Get(sess.Token)
	assert.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
}

func TestGetUnknownToken(t *testing.T) {
	store, _ := newStore(t, time.Hour)

	_, err := store.Get("does-not-exist")
	assert.ErrorIs(t, err, sessions.ErrNotFound)

	_, err = store.Get("")
	assert.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestExpiredSessionIsPurged(t *testing.T) {
	store, db := newStore(t, -time.Minute)

	sess, err := store.Create(7)
	assert.NoError(t, err)

	_, err = store.Get(sess.Token)
	assert.ErrorIs(t, err, sessions.ErrNotFound)

	var count int64
	assert.NoError(t, db.Model(&models.Session{}).Where("token = ?", sess.Token).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, _ := newStore(t, time.Hour)

	sess, err := store.Create(1)
	assert.NoError(t, err)

	assert.NoError(t, store.Delete(sess.Token))
	assert.NoError(t, store.Delete(sess.Token))
	assert.NoError(t, store.Delete(""))

	_, err = store.Get(sess.Token)
	assert.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestDeleteForUserDropsAllSessions(t *testing.T) {
	store, _ := newStore(t, time.Hour)

	a, _ := store.Create(5)
	b, _ := store.Create(5)
	other, _ := store.Create(6)

	assert.NoError(t, store.DeleteForUser(5))

	_, err := store.Get(a.Token)
	assert.ErrorIs(t, err, sessions.ErrNotFound)
	_, err = store.Get(b.Token)
	assert.ErrorIs(t, err, sessions.ErrNotFound)

	got, err := store.Get(other.Token)
	assert.NoError(t, err)
	assert.Equal(t, uint(6), got.UserID)
}
