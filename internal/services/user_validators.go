package services

import (
	"errors"

	"catalog/internal/repositories"
)

// Email uniqueness is checked against the store before inserts and updates.
// These checks are advisory: they produce a friendly field error up front,
// while the unique index on users.email remains the authoritative guard
// under concurrency.

// validateEmailForInsert fails when any existing user already owns the
// prospective email.
func (s *UserService) validateEmailForInsert(email string) error {
	var fieldErrors []FieldMessage

	existing, err := s.repo.FindByEmail(email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if existing != nil {
		fieldErrors = append(fieldErrors, FieldMessage{FieldName: "email", Message: "Email already exists"})
	}

	if len(fieldErrors) > 0 {
		return &ValidationError{Errors: fieldErrors}
	}
	return nil
}

// validateEmailForUpdate fails when the prospective email belongs to a
// different user than the one addressed by targetID, so a user can keep
// their own unchanged email.
func (s *UserService) validateEmailForUpdate(targetID uint, email string) error {
	var fieldErrors []FieldMessage

	existing, err := s.repo.FindByEmail(email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if existing != nil && existing.ID != targetID {
		fieldErrors = append(fieldErrors, FieldMessage{FieldName: "email", Message: "Email already exists"})
	}

	if len(fieldErrors) > 0 {
		return &ValidationError{Errors: fieldErrors}
	}
	return nil
}
