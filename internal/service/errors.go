package service

import (
	"errors"

	"edu-quiz/internal/domain"
)

// asDomainError passes domain errors through untouched and wraps anything
// else as an internal error carrying msg.
func asDomainError(err error, msg string) error {
	if err == nil {
		return nil
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		return err
	}
	return domain.NewInternalError(msg, err)
}
