// Package validators adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound request structs.
package validators

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator wraps a single validator instance for the whole server.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
