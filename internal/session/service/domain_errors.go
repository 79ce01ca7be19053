package service

import (
	"net/http"

	commonerrors "github.com/finalstore/backend/internal/common/errors"
)

var (
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid email or password",
	)

	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"email already registered",
	)

	ErrInvalidToken = commonerrors.NewDomainError(
		"INVALID_TOKEN",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"token is not valid",
	)

	ErrPreviousPasswordIncorrect = commonerrors.NewDomainError(
		"PREVIOUS_PASSWORD_INCORRECT",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Previous password is incorrect",
	)

	ErrValidationEmailRequired = commonerrors.NewDomainError(
		"VALIDATION_EMAIL_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"email is required",
	)

	ErrValidationPasswordRequired = commonerrors.NewDomainError(
		"VALIDATION_PASSWORD_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"password is required",
	)

	ErrValidationNameRequired = commonerrors.NewDomainError(
		"VALIDATION_NAME_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"name is required",
	)

	ErrValidationPasswordLength = commonerrors.NewDomainError(
		"VALIDATION_PASSWORD_LENGTH",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"password length is out of bounds",
	)

	ErrValidationEmailLength = commonerrors.NewDomainError(
		"VALIDATION_EMAIL_LENGTH",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"email is too long",
	)
)
