package repositories

import (
	"fmt"
	"testing"

	"github.com/ripplehq/ripple-backend/internal/apperrors"
	"github.com/ripplehq/ripple-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateProvisionsPlaceholder(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)

	user, err := repo.GetOrCreate("user_1")
	require.NoError(t, err)
	assert.Equal(t, "user_1", user.ID)
	assert.Equal(t, "user_user_1@temp.com", user.Email)
	assert.Nil(t, user.Name)

	// A second reference is a no-op, not a duplicate.
	again, err := repo.GetOrCreate("user_1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetOrCreateKeepsSyncedIdentity(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)

	seedUser(t, db, "user_1", strPtr("Alice"), strPtr("alice"))

	user, err := repo.GetOrCreate("user_1")
	require.NoError(t, err)
	require.NotNil(t, user.Name)
	assert.Equal(t, "Alice", *user.Name)
	assert.Equal(t, "user_1@example.com", user.Email)
}

func TestUpsertFromIdentityOverwritesPlaceholder(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)

	_, err := repo.GetOrCreate("user_1")
	require.NoError(t, err)

	err = repo.UpsertFromIdentity(&models.User{
		ID:       "user_1",
		Email:    "alice@example.com",
		Name:     strPtr("Alice Doe"),
		Username: strPtr("alice"),
	})
	require.NoError(t, err)

	user, err := repo.GetByID("user_1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	require.NotNil(t, user.Name)
	assert.Equal(t, "Alice Doe", *user.Name)
}

func TestUpdateProfilePartial(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)

	_, err := repo.UpdateProfile("user_1", &models.UpdateProfileRequest{Bio: strPtr("hello")})
	require.NoError(t, err)

	// Omitting bio in a later update leaves it unchanged.
	user, err := repo.UpdateProfile("user_1", &models.UpdateProfileRequest{Name: strPtr("Alice")})
	require.NoError(t, err)
	require.NotNil(t, user.Bio)
	assert.Equal(t, "hello", *user.Bio)
	require.NotNil(t, user.Name)
	assert.Equal(t, "Alice", *user.Name)

	// An explicit empty string is a valid overwrite.
	user, err = repo.UpdateProfile("user_1", &models.UpdateProfileRequest{Bio: strPtr("")})
	require.NoError(t, err)
	require.NotNil(t, user.Bio)
	assert.Equal(t, "", *user.Bio)
}

func TestUpdateProfileDuplicateUsernameConflicts(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)

	seedUser(t, db, "user_1", nil, strPtr("alice"))
	seedUser(t, db, "user_2", nil, nil)

	_, err := repo.UpdateProfile("user_2", &models.UpdateProfileRequest{Username: strPtr("alice")})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSearchCaseInsensitiveAndCapped(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)

	seedUser(t, db, "user_1", strPtr("Alice"), strPtr("wonder"))
	seedUser(t, db, "user_2", strPtr("Bob"), strPtr("salad"))
	seedUser(t, db, "user_3", strPtr("Carol"), strPtr("carol"))

	results, err := repo.Search("AL", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	ids := []string{results[0].ID, results[1].ID}
	assert.Contains(t, ids, "user_1")
	assert.Contains(t, ids, "user_2")

	// Cap applies once more users match than the limit.
	for i := 0; i < 12; i++ {
		seedUser(t, db, fmt.Sprintf("user_extra_%d", i), strPtr("Alan"), strPtr(fmt.Sprintf("alan%d", i)))
	}
	results, err = repo.Search("al", 10)
	require.NoError(t, err)
	assert.Len(t, results, 10)

	results, err = repo.Search("zzz", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGetByUsernameOrID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)

	seedUser(t, db, "user_1", strPtr("Alice"), strPtr("alice"))
	seedUser(t, db, "user_2", strPtr("NoHandle"), nil)

	user, err := repo.GetByUsernameOrID("alice")
	require.NoError(t, err)
	assert.Equal(t, "user_1", user.ID)

	// Profile links still work for users with no username.
	user, err = repo.GetByUsernameOrID("user_2")
	require.NoError(t, err)
	assert.Equal(t, "user_2", user.ID)

	_, err = repo.GetByUsernameOrID("ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
