package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ripplehq/ripple-backend/internal/apperrors"
	"github.com/ripplehq/ripple-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	GetByID(id string) (*models.User, error)
	GetOrCreate(id string) (*models.User, error)
	UpsertFromIdentity(user *models.User) error
	UpdateProfile(id string, req *models.UpdateProfileRequest) (*models.User, error)
	Delete(id string) error
	Search(query string, limit int) ([]models.UserSummary, error)
	GetByUsernameOrID(key string) (*models.User, error)
}

// PostgresUserRepository implements UserRepository on a relational store.
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository.
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// GetByID retrieves a user by its identity-provider id.
func (r *PostgresUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}
	return &user, nil
}

// GetOrCreate returns the user, lazily provisioning a minimal record with a
// placeholder email when the identity is known but not yet synced by the
// provider webhook. The insert is an idempotent do-nothing upsert, so
// concurrent first references never race.
func (r *PostgresUserRepository) GetOrCreate(id string) (*models.User, error) {
	placeholder := models.User{
		ID:    id,
		Email: fmt.Sprintf("user_%s@temp.com", id),
	}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&placeholder).Error; err != nil {
		return nil, apperrors.FromStore(err)
	}
	return r.GetByID(id)
}

// UpsertFromIdentity writes the richer identity payload delivered by the
// provider webhook, overwriting any lazily provisioned placeholder.
func (r *PostgresUserRepository) UpsertFromIdentity(user *models.User) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "username", "avatar_url", "updated_at"}),
	}).Create(user).Error
	return apperrors.FromStore(err)
}

// UpdateProfile ensures the user exists, then applies a partial update. Nil
// fields are left unchanged; empty strings overwrite.
func (r *PostgresUserRepository) UpdateProfile(id string, req *models.UpdateProfileRequest) (*models.User, error) {
	if _, err := r.GetOrCreate(id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if len(updates) > 0 {
		if err := r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, apperrors.FromStore(err)
		}
	}
	return r.GetByID(id)
}

// Delete removes a user by id. Owned posts, comments and notifications go
// with it via FK cascade.
func (r *PostgresUserRepository) Delete(id string) error {
	return apperrors.FromStore(r.db.Delete(&models.User{}, "id = ?", id).Error)
}

// Search matches users whose name or username contains the query,
// case-insensitively. Ordering is username then id to keep results stable.
func (r *PostgresUserRepository) Search(query string, limit int) ([]models.UserSummary, error) {
	var users []models.User
	pattern := "%" + strings.ToLower(query) + "%"
	err := r.db.
		Where("LOWER(name) LIKE ? OR LOWER(username) LIKE ?", pattern, pattern).
		Order("username, id").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, apperrors.FromStore(err)
	}

	summaries := make([]models.UserSummary, len(users))
	for i := range users {
		summaries[i] = users[i].Summary()
	}
	return summaries, nil
}

// GetByUsernameOrID looks up a user by username first, falling back to the
// id, so profile links stay stable for users with no username set.
func (r *PostgresUserRepository) GetByUsernameOrID(key string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "username = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = r.db.First(&user, "id = ?", key).Error
	}
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	return &user, nil
}
