// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"
	"github.com/jellydator/validation/is"

	customValidation "github.com/afrireads/bookgate/internal/validation"
)

// CreateAccessLinkRequest contains the parameters for issuing an access link.
// ExpiresInHours is optional; zero means the configured default lifetime.
type CreateAccessLinkRequest struct {
	UserID         string  `json:"user_id" binding:"required"`
	BookID         string  `json:"book_id" binding:"required"`
	ExpiresInHours float64 `json:"expires_in_hours"`
}

// Validate checks if the create access link request is valid.
func (r *CreateAccessLinkRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required,
			is.UUID,
		),
		validation.Field(&r.BookID,
			validation.Required,
			is.UUID,
		),
		validation.Field(&r.ExpiresInHours,
			customValidation.PositiveHours,
		),
	)
}
