package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/ripplehq/ripple-backend/internal/apperrors"
	"github.com/ripplehq/ripple-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentScenarioUnreadLifecycle(t *testing.T) {
	db := newTestDB(t)
	commentRepo := NewPostgresCommentRepository(db)
	notifRepo := NewPostgresNotificationRepository(db)

	seedUser(t, db, "u1", strPtr("Alice"), nil)
	seedUser(t, db, "u2", strPtr("Bob"), nil)
	seedPost(t, db, "p1", "u1", "hello", time.Now())

	_, err := commentRepo.CreateWithFanOut(&models.Comment{Content: "nice!", AuthorID: "u2", PostID: "p1"})
	require.NoError(t, err)

	count, err := notifRepo.GetUnreadCount("u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, notifRepo.MarkAllRead("u1"))
	count, err = notifRepo.GetUnreadCount("u1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// Idempotent on an already-all-read set.
	require.NoError(t, notifRepo.MarkAllRead("u1"))
	count, err = notifRepo.GetUnreadCount("u1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestGetByRecipientNewestFirstCappedAt20(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	seedUser(t, db, "u1", nil, nil)
	seedUser(t, db, "u2", nil, nil)
	seedPost(t, db, "p1", "u1", "hello", time.Now())

	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 25; i++ {
		commentID := fmt.Sprintf("c%d", i)
		comment := models.Comment{ID: commentID, Content: "hi", AuthorID: "u2", PostID: "p1", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, db.Create(&comment).Error)

		postID := "p1"
		notification := models.Notification{
			ID:          fmt.Sprintf("n%d", i),
			RecipientID: "u1",
			Type:        models.NotificationTypeComment,
			Message:     "someone commented on your post",
			PostID:      &postID,
			CommentID:   &commentID,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&notification).Error)
	}

	notifications, err := repo.GetByRecipient("u1")
	require.NoError(t, err)
	require.Len(t, notifications, 20)
	assert.Equal(t, "n24", notifications[0].ID)
	assert.Equal(t, "n5", notifications[19].ID)

	// Denormalized references come back for display.
	require.NotNil(t, notifications[0].Post)
	assert.Equal(t, "hello", notifications[0].Post.Content)
	require.NotNil(t, notifications[0].Comment)
	assert.Equal(t, "hi", notifications[0].Comment.Content)
}

func TestMarkRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	seedUser(t, db, "u1", nil, nil)
	notification := models.Notification{
		ID:          "n1",
		RecipientID: "u1",
		Type:        models.NotificationTypeComment,
		Message:     "someone commented on your post",
	}
	require.NoError(t, db.Create(&notification).Error)

	require.NoError(t, repo.MarkRead("n1"))

	var stored models.Notification
	require.NoError(t, db.First(&stored, "id = ?", "n1").Error)
	assert.True(t, stored.IsRead)

	assert.ErrorIs(t, repo.MarkRead("ghost"), apperrors.ErrNotFound)
}
