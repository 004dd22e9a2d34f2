package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/ripplehq/ripple-backend/internal/apperrors"
	"github.com/ripplehq/ripple-backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(post *models.Post) (*models.PostResponse, error)
	GetAll() ([]models.PostResponse, error)
	GetByAuthor(authorID string) ([]models.PostResponse, error)
	GetByID(id string) (*models.Post, error)
	GetWithComments(id string) (*models.PostResponse, error)
	IncrementLikeCount(id string) (*models.Post, error)
}

// PostgresPostRepository implements PostRepository on a relational store.
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository.
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// Create inserts a new post and returns it with its author summary and a
// zero comment count.
func (r *PostgresPostRepository) Create(post *models.Post) (*models.PostResponse, error) {
	post.ID = uuid.NewString()
	post.CreatedAt = time.Now()
	if err := r.db.Create(post).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}

	var created models.Post
	if err := r.db.Preload("Author").First(&created, "id = ?", post.ID).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}
	resp := created.Response(0)
	return &resp, nil
}

// GetAll retrieves every post, newest first, annotated with author summaries
// and comment counts.
func (r *PostgresPostRepository) GetAll() ([]models.PostResponse, error) {
	return r.list(r.db)
}

// GetByAuthor retrieves posts authored by the given user, newest first.
func (r *PostgresPostRepository) GetByAuthor(authorID string) ([]models.PostResponse, error) {
	return r.list(r.db.Where("author_id = ?", authorID))
}

func (r *PostgresPostRepository) list(tx *gorm.DB) ([]models.PostResponse, error) {
	var posts []models.Post
	if err := tx.Preload("Author").Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}

	counts, err := r.commentCounts(posts)
	if err != nil {
		return nil, err
	}

	responses := make([]models.PostResponse, len(posts))
	for i := range posts {
		responses[i] = posts[i].Response(counts[posts[i].ID])
	}
	return responses, nil
}

// commentCounts maps post id to comment count for the given posts in one
// grouped query.
func (r *PostgresPostRepository) commentCounts(posts []models.Post) (map[string]int64, error) {
	counts := make(map[string]int64, len(posts))
	if len(posts) == 0 {
		return counts, nil
	}

	ids := make([]string, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}

	var rows []struct {
		PostID string
		Count  int64
	}
	err := r.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.FromStore(err)
	}

	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

// GetByID retrieves a post by id.
func (r *PostgresPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}
	return &post, nil
}

// GetWithComments retrieves a post with its comments in chronological reading
// order, each annotated with its author summary.
func (r *PostgresPostRepository) GetWithComments(id string) (*models.PostResponse, error) {
	var post models.Post
	err := r.db.Preload("Author").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author").
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, apperrors.FromStore(err)
	}

	resp := post.Response(int64(len(post.Comments)))
	resp.Comments = make([]models.CommentResponse, len(post.Comments))
	for i := range post.Comments {
		resp.Comments[i] = post.Comments[i].Response()
	}
	return &resp, nil
}

// IncrementLikeCount adds exactly 1 to the post's like counter as a single
// store-level update, so concurrent likers never lose increments, and returns
// the updated post.
func (r *PostgresPostRepository) IncrementLikeCount(id string) (*models.Post, error) {
	res := r.db.Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", 1))
	if res.Error != nil {
		return nil, apperrors.FromStore(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.GetByID(id)
}
