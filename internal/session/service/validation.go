package service

import (
	"github.com/finalstore/backend/internal/common/constants"
)

// validateRegistration enforces the service-level preconditions: email,
// password and display name must all be present. Format checks (email
// syntax, field lengths) are the transport layer's job; these rules hold no
// matter how the service is driven.
func validateRegistration(email, password, name string) error {
	if email == "" {
		return ErrValidationEmailRequired
	}
	if len(email) > constants.EmailMaxLength {
		return ErrValidationEmailLength
	}
	if password == "" {
		return ErrValidationPasswordRequired
	}
	if len(password) < constants.PasswordMinLength || len(password) > constants.PasswordMaxLength {
		return ErrValidationPasswordLength
	}
	if name == "" {
		return ErrValidationNameRequired
	}
	return nil
}

func validatePasswordChange(newPassword string) error {
	if newPassword == "" {
		return ErrValidationPasswordRequired
	}
	if len(newPassword) < constants.PasswordMinLength || len(newPassword) > constants.PasswordMaxLength {
		return ErrValidationPasswordLength
	}
	return nil
}
