package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ripplehq/ripple-backend/internal/apperrors"
	"github.com/ripplehq/ripple-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	CreateWithFanOut(comment *models.Comment) (*models.CommentResponse, error)
}

// PostgresCommentRepository implements CommentRepository on a relational
// store.
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository.
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateWithFanOut inserts the comment and, when the post belongs to someone
// else, exactly one notification for the post's author. Both writes run in a
// single transaction, and the unique index on notifications.comment_id keeps
// the fan-out idempotent if a caller ever retries. Commenting on one's own
// post never notifies.
func (r *PostgresCommentRepository) CreateWithFanOut(comment *models.Comment) (*models.CommentResponse, error) {
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now()

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, "id = ?", comment.PostID).Error; err != nil {
			return err
		}

		var author models.User
		if err := tx.First(&author, "id = ?", comment.AuthorID).Error; err != nil {
			return err
		}

		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		if post.AuthorID == comment.AuthorID {
			return nil
		}

		notification := models.Notification{
			ID:          uuid.NewString(),
			RecipientID: post.AuthorID,
			Type:        models.NotificationTypeComment,
			Message:     fmt.Sprintf("%s commented on your post", author.DisplayName()),
			PostID:      &post.ID,
			CommentID:   &comment.ID,
			CreatedAt:   comment.CreatedAt,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "comment_id"}},
			DoNothing: true,
		}).Create(&notification).Error
	})
	if err != nil {
		return nil, apperrors.FromStore(err)
	}

	var created models.Comment
	if err := r.db.Preload("Author").First(&created, "id = ?", comment.ID).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}
	resp := created.Response()
	return &resp, nil
}
