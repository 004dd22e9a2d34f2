// Package apperrors defines the error taxonomy shared by repositories and
// handlers. Repositories translate store-level failures into these sentinels
// at their boundary so handlers can map them to HTTP statuses with errors.Is
// without knowing about GORM.
package apperrors

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation means the client sent empty or invalid input.
	ErrValidation = errors.New("invalid input")
	// ErrConflict means a unique constraint was violated, e.g. a duplicate
	// username.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized means no caller identity could be resolved.
	ErrUnauthorized = errors.New("unauthorized")
)

// FromStore maps a GORM error to the taxonomy. Unknown errors pass through
// unchanged and surface as 500s.
func FromStore(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
