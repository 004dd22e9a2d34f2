package models

import "time"

// User is a profile synced from the identity provider. The ID is assigned by
// the provider and never changes; the row itself may be provisioned lazily the
// first time the user is referenced, before the provider webhook delivers the
// full identity payload.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Name      *string   `json:"name"`
	Username  *string   `json:"username" gorm:"uniqueIndex"`
	Bio       *string   `json:"bio"`
	AvatarURL *string   `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Posts         []Post         `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Comments      []Comment      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Notifications []Notification `json:"-" gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
}

// UserSummary is the compact author shape embedded in posts, comments and
// search results.
type UserSummary struct {
	ID        string  `json:"id"`
	Name      *string `json:"name"`
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatarUrl"`
}

// Summary returns the compact representation of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
	}
}

// DisplayName picks the best available label for notification messages:
// name, then username, then a generic fallback.
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return "Someone"
}

// UpdateProfileRequest carries a partial profile update. Nil pointers mean
// "leave unchanged"; an empty string is a valid overwrite.
type UpdateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=100"`
	Username  *string `json:"username" validate:"omitempty,max=40"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,max=2048"`
}
