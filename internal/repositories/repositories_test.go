package repositories

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ripplehq/ripple-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Notification{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string, name, username *string) *models.User {
	t.Helper()

	user := &models.User{
		ID:       id,
		Email:    fmt.Sprintf("%s@example.com", id),
		Name:     name,
		Username: username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, id, authorID, content string, createdAt time.Time) *models.Post {
	t.Helper()

	post := &models.Post{
		ID:        id,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func strPtr(s string) *string {
	return &s
}
